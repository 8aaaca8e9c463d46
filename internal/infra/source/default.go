package source

import (
	"io"

	"github.com/runoshun/gh-issues/internal/domain"
	"github.com/runoshun/gh-issues/internal/infra/csvsource"
	"github.com/runoshun/gh-issues/internal/infra/yamlsource"
)

// NewDefaultRegistry returns a registry with every built-in reader.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(domain.FormatCSV, func(rc io.ReadCloser) domain.IssueReader { return csvsource.New(rc) })
	r.Register(domain.FormatYAML, func(rc io.ReadCloser) domain.IssueReader { return yamlsource.New(rc) })
	return r
}
