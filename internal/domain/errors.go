package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrMissingField      = errors.New("missing required field")
	ErrNotText           = errors.New("value is not text")
	ErrEmptyField        = errors.New("required field is empty")
	ErrDispatchFailed    = errors.New("issue creation failed")
	ErrNoToken           = errors.New("no GitHub token (set github.token, GITHUB_TOKEN or GH_TOKEN)")
	ErrInvalidRepo       = errors.New("invalid repository (expected OWNER/REPO)")
	ErrRepoNotDetected   = errors.New("could not detect a GitHub repository from git remotes")
	ErrNotGitRepository  = errors.New("not a git repository (or any of the parent directories)")
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrInvalidPolicy     = errors.New("invalid failure policy")
	ErrInvalidBackend    = errors.New("invalid backend")
	ErrConfigExists      = errors.New("config file already exists")
)

// ArgumentError reports invalid command-line usage.
type ArgumentError struct {
	Err error
}

func (e *ArgumentError) Error() string {
	return e.Err.Error()
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// FileError reports that the input file could not be opened or read.
type FileError struct {
	Err  error
	Path string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("open input %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// FieldError reports an invalid value for a single field.
type FieldError struct {
	Err   error
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed input record.
// Row is 0 when the error concerns the header or the document as a whole.
// Fields are ordered to minimize memory padding.
type ParseError struct {
	Err   error
	Field string
	Row   int
	Line  int
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Row > 0 {
		fmt.Fprintf(&b, "row %d", e.Row)
	} else {
		b.WriteString("header")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %q", e.Field)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError reports a requested input format with no reader.
type UnsupportedFormatError struct {
	Format    Format
	Supported []Format
}

func (e *UnsupportedFormatError) Error() string {
	names := make([]string, len(e.Supported))
	for i, f := range e.Supported {
		names[i] = string(f)
	}
	return fmt.Sprintf("%v: %q (supported: %s)", ErrUnsupportedFormat, e.Format, strings.Join(names, ", "))
}

// Is makes errors.Is(err, ErrUnsupportedFormat) match.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// DispatchError reports that creating the issue for one record failed.
// ExitCode is -1 when the tracker command did not run to completion
// or when the failure did not come from a process.
// Fields are ordered to minimize memory padding.
type DispatchError struct {
	Err      error
	Title    string
	Stderr   string
	Row      int
	ExitCode int
}

func (e *DispatchError) Error() string {
	var b strings.Builder
	if e.Row > 0 {
		fmt.Fprintf(&b, "row %d", e.Row)
		if e.Title != "" {
			fmt.Fprintf(&b, " (%q)", e.Title)
		}
		b.WriteString(": ")
	}
	b.WriteString(ErrDispatchFailed.Error())
	if e.ExitCode > 0 {
		fmt.Fprintf(&b, " (exit status %d)", e.ExitCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		fmt.Fprintf(&b, ": %s", s)
	}
	return b.String()
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDispatchFailed) match.
func (e *DispatchError) Is(target error) bool {
	return target == ErrDispatchFailed
}
