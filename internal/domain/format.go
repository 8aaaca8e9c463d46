package domain

import (
	"strings"
)

// Format identifies an input file format.
type Format string

// Supported input formats.
const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// DefaultFormat is used when no extension is given.
const DefaultFormat = FormatCSV

// ParseFormat normalizes an extension given on the command line.
// A leading dot and letter case are ignored, and "yml" is an alias of "yaml".
// The result is not checked against any registry.
func ParseFormat(ext string) Format {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if ext == "yml" {
		return FormatYAML
	}
	return Format(ext)
}

func (f Format) String() string {
	return string(f)
}
