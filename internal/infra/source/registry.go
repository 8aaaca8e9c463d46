// Package source selects an input reader by file format.
package source

import (
	"io"
	"os"
	"sort"

	"github.com/runoshun/gh-issues/internal/domain"
)

// Ensure Registry implements domain.SourceOpener.
var _ domain.SourceOpener = (*Registry)(nil)

// ReaderFunc builds a reader over an opened input. The reader owns rc.
type ReaderFunc func(rc io.ReadCloser) domain.IssueReader

// Registry maps formats to readers.
type Registry struct {
	readers map[domain.Format]ReaderFunc
	open    func(path string) (io.ReadCloser, error)
}

// NewRegistry creates an empty registry that opens files from disk.
func NewRegistry() *Registry {
	return &Registry{
		readers: make(map[domain.Format]ReaderFunc),
		open: func(path string) (io.ReadCloser, error) {
			return os.Open(path) //nolint:gosec // path is the user's --input
		},
	}
}

// Register adds or replaces the reader for format.
func (r *Registry) Register(format domain.Format, fn ReaderFunc) {
	r.readers[format] = fn
}

// Formats returns the registered formats, sorted.
func (r *Registry) Formats() []domain.Format {
	formats := make([]domain.Format, 0, len(r.readers))
	for f := range r.readers {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Open returns a reader for the file at path.
// The format is checked before the file is opened.
func (r *Registry) Open(format domain.Format, path string) (domain.IssueReader, error) {
	fn, ok := r.readers[format]
	if !ok {
		return nil, &domain.UnsupportedFormatError{Format: format, Supported: r.Formats()}
	}

	rc, err := r.open(path)
	if err != nil {
		return nil, &domain.FileError{Path: path, Err: err}
	}
	return fn(rc), nil
}
