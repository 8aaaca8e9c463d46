package ghapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/runoshun/gh-issues/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const (
	issuesURL     = "https://api.github.com/repos/acme/widgets/issues"
	milestonesURL = "https://api.github.com/repos/acme/widgets/milestones"
)

var widgets = domain.Repo{Owner: "acme", Name: "widgets"}

func newMockedClient(t *testing.T) *Client {
	t.Helper()
	httpClient := &http.Client{}
	httpmock.ActivateNonDefault(httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	client, err := New(Options{HTTPClient: httpClient, Repo: widgets, RateLimit: rate.Inf})
	require.NoError(t, err)
	return client
}

// captureIssue registers a responder for issue creation that stores the decoded request.
func captureIssue(t *testing.T, got *map[string]any) {
	t.Helper()
	httpmock.RegisterResponder(http.MethodPost, issuesURL, func(req *http.Request) (*http.Response, error) {
		if err := json.NewDecoder(req.Body).Decode(got); err != nil {
			return httpmock.NewStringResponse(http.StatusBadRequest, err.Error()), nil
		}
		return httpmock.NewJsonResponse(http.StatusCreated, map[string]any{
			"number":   12,
			"html_url": "https://github.com/acme/widgets/issues/12",
		})
	})
}

func TestClient_Create_MinimalIssue(t *testing.T) {
	client := newMockedClient(t)
	var got map[string]any
	captureIssue(t, &got)

	created, err := client.Create(context.Background(), domain.Issue{Title: "Bug A", Assignee: "alice", Body: "steps..."})

	require.NoError(t, err)
	assert.Equal(t, 12, created.Number)
	assert.Equal(t, "https://github.com/acme/widgets/issues/12", created.URL)
	assert.Equal(t, "Bug A", got["title"])
	assert.Equal(t, "steps...", got["body"])
	assert.Equal(t, []any{"alice"}, got["assignees"])
	assert.NotContains(t, got, "labels")
	assert.NotContains(t, got, "milestone")
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestClient_Create_LabelsAndMilestone(t *testing.T) {
	client := newMockedClient(t)
	var got map[string]any
	captureIssue(t, &got)
	httpmock.RegisterResponder(http.MethodGet, milestonesURL, httpmock.NewStringResponder(http.StatusOK,
		`[{"number": 3, "title": "v1.0"}, {"number": 5, "title": "v2.0"}]`))

	_, err := client.Create(context.Background(), domain.Issue{
		Title: "Bug A", Label: "bug, p1", Milestone: "v2.0", Assignee: "alice", Body: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"bug", "p1"}, got["labels"])
	assert.Equal(t, float64(5), got["milestone"])

	// Milestones are listed once per client
	_, err = client.Create(context.Background(), domain.Issue{Title: "Bug B", Milestone: "v1.0", Assignee: "bob"})
	require.NoError(t, err)
	assert.Equal(t, float64(3), got["milestone"])
	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["GET "+milestonesURL])
	assert.Equal(t, 2, info["POST "+issuesURL])
}

func TestClient_Create_UnknownMilestone(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodGet, milestonesURL, httpmock.NewStringResponder(http.StatusOK, `[]`))

	_, err := client.Create(context.Background(), domain.Issue{Title: "Bug A", Milestone: "someday", Assignee: "alice"})

	assert.ErrorIs(t, err, domain.ErrMilestoneNotFound)
	assert.ErrorIs(t, err, domain.ErrDispatchFailed)
	assert.Equal(t, 0, httpmock.GetCallCountInfo()["POST "+issuesURL])
}

func TestClient_Create_APIError(t *testing.T) {
	client := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodPost, issuesURL, httpmock.NewStringResponder(http.StatusUnprocessableEntity,
		`{"message": "Validation Failed", "errors": [{"resource": "Issue", "field": "assignees", "code": "invalid"}]}`))

	_, err := client.Create(context.Background(), domain.Issue{Title: "Bug A", Assignee: "nobody"})

	var de *domain.DispatchError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, -1, de.ExitCode)
	assert.Equal(t, "Bug A", de.Title)
	assert.Contains(t, err.Error(), "Validation Failed")
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{Repo: widgets})
	assert.ErrorIs(t, err, domain.ErrNoToken)

	_, err = New(Options{Token: "t"})
	assert.ErrorIs(t, err, domain.ErrInvalidRepo)

	client, err := New(Options{Token: "t", Repo: widgets, BaseURL: "https://ghe.example.com/api/v3/"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClient_Describe(t *testing.T) {
	client := NewWithService(nil, widgets)

	got := client.Describe(domain.Issue{Title: "Bug A", Assignee: "alice", Label: "bug,p1", Milestone: "v1"})

	assert.Equal(t, `POST /repos/acme/widgets/issues title="Bug A" assignee=alice labels=[bug,p1] milestone="v1"`, got)
}

func TestClient_Describe_UnknownRepo(t *testing.T) {
	client := NewWithService(nil, domain.Repo{})

	got := client.Describe(domain.Issue{Title: "Bug A", Assignee: "alice"})

	assert.Equal(t, `POST /repos/{owner}/{repo}/issues title="Bug A" assignee=alice`, got)
}
