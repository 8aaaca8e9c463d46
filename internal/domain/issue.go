// Package domain contains core business entities and interfaces.
package domain

import "strings"

// Issue is one record of the input file, describing one remote issue to create.
// Label and Milestone are optional; an empty string means "not set".
type Issue struct {
	Title     string `yaml:"title"`
	Label     string `yaml:"label"`
	Milestone string `yaml:"milestone"`
	Assignee  string `yaml:"assignee"`
	Body      string `yaml:"body"`
}

// Validate checks the required fields of the issue.
// Body is required as a field but may be empty.
func (i Issue) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return &FieldError{Field: FieldTitle, Err: ErrEmptyField}
	}
	if strings.TrimSpace(i.Assignee) == "" {
		return &FieldError{Field: FieldAssignee, Err: ErrEmptyField}
	}
	return nil
}

// Labels returns the label value split on commas, trimmed, with empties dropped.
func (i Issue) Labels() []string {
	if strings.TrimSpace(i.Label) == "" {
		return nil
	}
	var labels []string
	for _, part := range strings.Split(i.Label, ",") {
		if l := strings.TrimSpace(part); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

// Record is an Issue together with its position in the input.
type Record struct {
	Issue Issue
	Row   int // 1-based record index, header excluded
	Line  int // 1-based line in the source file where the record starts
}

// Input field names.
const (
	FieldTitle     = "title"
	FieldLabel     = "label"
	FieldMilestone = "milestone"
	FieldAssignee  = "assignee"
	FieldBody      = "body"
)

// RequiredFields lists the fields every input record must provide.
var RequiredFields = []string{FieldTitle, FieldAssignee, FieldBody}

// CreatedIssue describes an issue created by an IssueCreator.
type CreatedIssue struct {
	URL    string
	Number int // 0 when the backend does not report it
}
