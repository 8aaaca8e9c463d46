// Package csvsource reads issues from CSV files with a header row.
package csvsource

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/runoshun/gh-issues/internal/domain"
)

// Ensure Reader implements domain.IssueReader.
var _ domain.IssueReader = (*Reader)(nil)

const bom = "\ufeff"

// Reader yields issues from CSV input. Columns are matched by header name,
// ignoring case and surrounding whitespace; unknown columns are ignored.
// Fields are ordered to minimize memory padding.
type Reader struct {
	rc      io.ReadCloser
	csv     *csv.Reader
	columns map[string]int
	err     error // sticky: once set, Next keeps returning it
	row     int
}

// New creates a Reader over rc. The Reader owns rc and closes it in Close.
func New(rc io.ReadCloser) *Reader {
	r := csv.NewReader(rc)
	// The header fixes the field count for every following record.
	r.FieldsPerRecord = 0
	return &Reader{
		rc:  rc,
		csv: r,
	}
}

// Close closes the underlying input.
func (r *Reader) Close() error {
	return r.rc.Close()
}

// Next returns the next record or io.EOF.
func (r *Reader) Next() (domain.Record, error) {
	if r.err != nil {
		return domain.Record{}, r.err
	}

	if r.columns == nil {
		if err := r.readHeader(); err != nil {
			r.err = err
			return domain.Record{}, err
		}
	}

	fields, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.err = io.EOF
			return domain.Record{}, io.EOF
		}
		r.row++
		r.err = toParseError(r.row, err)
		return domain.Record{}, r.err
	}
	r.row++
	line, _ := r.csv.FieldPos(0)

	issue := domain.Issue{
		Title:     r.field(fields, domain.FieldTitle),
		Label:     r.field(fields, domain.FieldLabel),
		Milestone: r.field(fields, domain.FieldMilestone),
		Assignee:  r.field(fields, domain.FieldAssignee),
		Body:      r.field(fields, domain.FieldBody),
	}
	if name, ok := invalidText(issue); !ok {
		r.err = &domain.ParseError{Row: r.row, Line: line, Field: name, Err: domain.ErrNotText}
		return domain.Record{}, r.err
	}
	if err := issue.Validate(); err != nil {
		pe := &domain.ParseError{Row: r.row, Line: line, Err: err}
		var fe *domain.FieldError
		if errors.As(err, &fe) {
			pe.Field = fe.Field
			pe.Err = fe.Err
		}
		r.err = pe
		return domain.Record{}, pe
	}

	return domain.Record{Issue: issue, Row: r.row, Line: line}, nil
}

// readHeader reads the header row and checks the required columns.
// An empty input has no header and yields io.EOF.
func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return toParseError(0, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, bom)
		}
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}

	line, _ := r.csv.FieldPos(0)
	for _, name := range domain.RequiredFields {
		if _, ok := columns[name]; !ok {
			return &domain.ParseError{Line: line, Field: name, Err: domain.ErrMissingField}
		}
	}

	r.columns = columns
	return nil
}

// field returns the value of the named column, or "" when the column is absent.
func (r *Reader) field(fields []string, name string) string {
	idx, ok := r.columns[name]
	if !ok || idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

// invalidText returns the first field of issue that is not valid UTF-8.
func invalidText(issue domain.Issue) (string, bool) {
	for _, f := range []struct{ name, value string }{
		{domain.FieldTitle, issue.Title},
		{domain.FieldLabel, issue.Label},
		{domain.FieldMilestone, issue.Milestone},
		{domain.FieldAssignee, issue.Assignee},
		{domain.FieldBody, issue.Body},
	} {
		if !utf8.ValidString(f.value) {
			return f.name, false
		}
	}
	return "", true
}

func toParseError(row int, err error) error {
	pe := &domain.ParseError{Row: row, Err: err}
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		pe.Line = csvErr.StartLine
		pe.Err = csvErr.Err
	}
	return pe
}
