// Package yamlsource reads issues from YAML files.
//
// Two layouts are accepted: a single document holding a list of issues,
//
//	- title: Bug A
//	  assignee: alice
//	  body: steps...
//	- title: Bug B
//	  ...
//
// or a stream of documents separated by "---", each holding one issue.
package yamlsource

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/gh-issues/internal/domain"
)

// Ensure Reader implements domain.IssueReader.
var _ domain.IssueReader = (*Reader)(nil)

// Reader yields issues from YAML input, one document at a time.
// Fields are ordered to minimize memory padding.
type Reader struct {
	rc      io.ReadCloser
	dec     *yaml.Decoder
	err     error        // sticky: once set, Next keeps returning it
	pending []*yaml.Node // issues of the current document not yet returned
	row     int
}

// New creates a Reader over rc. The Reader owns rc and closes it in Close.
func New(rc io.ReadCloser) *Reader {
	return &Reader{
		rc:  rc,
		dec: yaml.NewDecoder(rc),
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

	for len(r.pending) == 0 {
		if err := r.nextDocument(); err != nil {
			r.err = err
			return domain.Record{}, err
		}
	}

	node := r.pending[0]
	r.pending = r.pending[1:]
	r.row++

	issue, err := decodeIssue(node)
	if err != nil {
		pe := &domain.ParseError{Row: r.row, Line: node.Line, Err: err}
		var fe *domain.FieldError
		if errors.As(err, &fe) {
			pe.Field = fe.Field
			pe.Err = fe.Err
		}
		r.err = pe
		return domain.Record{}, pe
	}

	return domain.Record{Issue: issue, Row: r.row, Line: node.Line}, nil
}

// nextDocument decodes the next document into r.pending.
// Empty documents leave r.pending empty.
func (r *Reader) nextDocument() error {
	var doc yaml.Node
	if err := r.dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return &domain.ParseError{Row: r.row + 1, Err: err}
	}

	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		root = doc.Content[0]
	}

	switch root.Kind {
	case yaml.SequenceNode:
		r.pending = root.Content
	case yaml.MappingNode:
		r.pending = []*yaml.Node{root}
	case yaml.ScalarNode:
		if root.Tag == "!!null" {
			return nil
		}
		fallthrough
	default:
		return &domain.ParseError{
			Row:  r.row + 1,
			Line: root.Line,
			Err:  errors.New("expected a list of issues or a single issue mapping"),
		}
	}
	return nil
}

// issueNodes holds the raw value node of every issue key. A key that is
// absent leaves its node zero; an explicit null is kept as a null scalar.
type issueNodes struct {
	Title     yaml.Node `yaml:"title"`
	Label     yaml.Node `yaml:"label"`
	Milestone yaml.Node `yaml:"milestone"`
	Assignee  yaml.Node `yaml:"assignee"`
	Body      yaml.Node `yaml:"body"`
}

// decodeIssue converts one issue mapping. Aliases and merge keys are
// resolved by the decoder; unknown keys are ignored.
func decodeIssue(node *yaml.Node) (domain.Issue, error) {
	if kind := resolve(node).Kind; kind != yaml.MappingNode {
		return domain.Issue{}, fmt.Errorf("expected an issue mapping, got %s", kindName(kind))
	}

	var raw issueNodes
	if err := node.Decode(&raw); err != nil {
		return domain.Issue{}, err
	}
	fields := []struct {
		value *yaml.Node
		name  string
	}{
		{name: domain.FieldTitle, value: &raw.Title},
		{name: domain.FieldLabel, value: &raw.Label},
		{name: domain.FieldMilestone, value: &raw.Milestone},
		{name: domain.FieldAssignee, value: &raw.Assignee},
		{name: domain.FieldBody, value: &raw.Body},
	}
	present := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.value.Kind == 0 {
			continue
		}
		if resolve(f.value).Kind != yaml.ScalarNode {
			return domain.Issue{}, &domain.FieldError{Field: f.name, Err: domain.ErrNotText}
		}
		present[f.name] = true
	}
	for _, name := range domain.RequiredFields {
		if !present[name] {
			return domain.Issue{}, &domain.FieldError{Field: name, Err: domain.ErrMissingField}
		}
	}

	var issue domain.Issue
	if err := node.Decode(&issue); err != nil {
		return domain.Issue{}, err
	}
	if err := issue.Validate(); err != nil {
		return domain.Issue{}, err
	}
	return issue, nil
}

// resolve follows aliases to the node they refer to.
func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
