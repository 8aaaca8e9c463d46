package yamlsource

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/runoshun/gh-issues/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReader(content string) *Reader {
	return New(io.NopCloser(strings.NewReader(content)))
}

func readAll(t *testing.T, r *Reader) ([]domain.Record, error) {
	t.Helper()
	var records []domain.Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}

func TestReader_List(t *testing.T) {
	content := `
- title: Bug A
  label: bug
  milestone: v1.0
  assignee: alice
  body: |
    steps to reproduce
    1. open the app
- title: Bug B
  assignee: bob
  body: ""
`
	records, err := readAll(t, newReader(content))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, domain.Issue{
		Title:     "Bug A",
		Label:     "bug",
		Milestone: "v1.0",
		Assignee:  "alice",
		Body:      "steps to reproduce\n1. open the app\n",
	}, records[0].Issue)
	assert.Equal(t, 1, records[0].Row)
	assert.Equal(t, 2, records[0].Line)

	assert.Equal(t, domain.Issue{Title: "Bug B", Assignee: "bob"}, records[1].Issue)
	assert.Equal(t, 2, records[1].Row)
	assert.Equal(t, 9, records[1].Line)
}

func TestReader_DocumentStream(t *testing.T) {
	content := `title: Bug A
assignee: alice
body: first
---
title: Bug B
assignee: bob
body: second
label: ~
`
	records, err := readAll(t, newReader(content))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Bug A", records[0].Issue.Title)
	assert.Equal(t, "Bug B", records[1].Issue.Title)
	assert.Empty(t, records[1].Issue.Label)
	assert.Equal(t, 2, records[1].Row)
}

func TestReader_NonStringScalarsAreText(t *testing.T) {
	content := `- title: 42
  milestone: 2.0
  assignee: alice
  body: true
`
	records, err := readAll(t, newReader(content))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "42", records[0].Issue.Title)
	assert.Equal(t, "2.0", records[0].Issue.Milestone)
	assert.Equal(t, "true", records[0].Issue.Body)
}

func TestReader_Empty(t *testing.T) {
	for _, content := range []string{"", "---\n", "# only a comment\n"} {
		records, err := readAll(t, newReader(content))
		require.NoError(t, err, "content %q", content)
		assert.Empty(t, records)
	}
}

func TestReader_MissingRequiredField(t *testing.T) {
	content := `- title: Bug A
  assignee: alice
  body: ok
- title: Bug B
  body: no assignee
`
	records, err := readAll(t, newReader(content))
	require.Len(t, records, 1)

	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Row)
	assert.Equal(t, 4, pe.Line)
	assert.Equal(t, domain.FieldAssignee, pe.Field)
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestReader_NonTextValue(t *testing.T) {
	content := `- title: Bug A
  assignee: [alice, bob]
  body: ok
`
	_, err := readAll(t, newReader(content))

	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, domain.FieldAssignee, pe.Field)
	assert.ErrorIs(t, err, domain.ErrNotText)
}

func TestReader_EntryNotMapping(t *testing.T) {
	_, err := readAll(t, newReader("- just a string\n"))

	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 1, pe.Row)
	assert.Contains(t, err.Error(), "expected an issue mapping, got scalar")
}

func TestReader_TopLevelScalar(t *testing.T) {
	_, err := readAll(t, newReader("hello\n"))

	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, err.Error(), "expected a list of issues")
}

func TestReader_SyntaxError(t *testing.T) {
	content := `- title: Bug A
  assignee: alice
  body: ok
- title: "unterminated
`
	_, err := readAll(t, newReader(content))

	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe))
}

func TestReader_Aliases(t *testing.T) {
	content := `- &one
  title: Bug A
  assignee: &who alice
  body: steps
- *one
- title: Bug C
  assignee: *who
  body: ok
`
	records, err := readAll(t, newReader(content))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, records[0].Issue, records[1].Issue)
	assert.Equal(t, 2, records[1].Row)
	assert.Equal(t, domain.Issue{Title: "Bug C", Assignee: "alice", Body: "ok"}, records[2].Issue)
}

func TestReader_MergeKeys(t *testing.T) {
	content := `- &base
  title: Template
  label: bug
  assignee: alice
  body: shared body
- <<: *base
  title: Bug B
- <<: *base
  title: Bug C
  assignee: bob
  label: ~
`
	records, err := readAll(t, newReader(content))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, domain.Issue{Title: "Bug B", Label: "bug", Assignee: "alice", Body: "shared body"}, records[1].Issue)
	assert.Equal(t, domain.Issue{Title: "Bug C", Assignee: "bob", Body: "shared body"}, records[2].Issue)
}

func TestReader_AnchoredListValue(t *testing.T) {
	content := `- title: Bug A
  assignee: alice
  label: &labels [bug, ui]
  body: ok
`
	_, err := readAll(t, newReader(content))

	var pe *domain.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, domain.FieldLabel, pe.Field)
	assert.ErrorIs(t, err, domain.ErrNotText)
}
