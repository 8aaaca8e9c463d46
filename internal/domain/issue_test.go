package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_Validate(t *testing.T) {
	tests := []struct {
		name      string
		issue     Issue
		wantField string
	}{
		{name: "complete", issue: Issue{Title: "Bug A", Assignee: "alice", Body: "steps"}},
		{name: "optional fields and body empty", issue: Issue{Title: "Bug A", Assignee: "alice"}},
		{name: "empty title", issue: Issue{Assignee: "alice"}, wantField: FieldTitle},
		{name: "blank title", issue: Issue{Title: "  ", Assignee: "alice"}, wantField: FieldTitle},
		{name: "empty assignee", issue: Issue{Title: "Bug A"}, wantField: FieldAssignee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.issue.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.wantField, fe.Field)
			assert.ErrorIs(t, err, ErrEmptyField)
		})
	}
}

func TestIssue_Labels(t *testing.T) {
	tests := []struct {
		label string
		want  []string
	}{
		{label: "", want: nil},
		{label: "   ", want: nil},
		{label: "bug", want: []string{"bug"}},
		{label: "bug, help wanted ,", want: []string{"bug", "help wanted"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Issue{Label: tt.label}.Labels(), "label %q", tt.label)
	}
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand("gh", []string{"issue", "create"}, "/work")

	assert.Equal(t, &ExecCommand{Program: "gh", Args: []string{"issue", "create"}, Dir: "/work"}, cmd)
}
