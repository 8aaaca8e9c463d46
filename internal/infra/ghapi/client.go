// Package ghapi creates issues through the GitHub REST API.
package ghapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v39/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/runoshun/gh-issues/internal/domain"
)

// Ensure Client implements domain.IssueCreator.
var _ domain.IssueCreator = (*Client)(nil)

// DefaultRateLimit keeps content-creating requests well below GitHub's
// secondary rate limit of 80 per minute.
const DefaultRateLimit = rate.Limit(1)

// IssuesService is the part of github.IssuesService used by Client.
type IssuesService interface {
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
	ListMilestones(ctx context.Context, owner, repo string, opts *github.MilestoneListOptions) ([]*github.Milestone, *github.Response, error)
}

// Options configures a Client.
type Options struct {
	HTTPClient *http.Client // base client; when nil, an oauth2 client using Token is built
	Token      string
	BaseURL    string // GitHub Enterprise API URL; empty = api.github.com
	Repo       domain.Repo
	RateLimit  rate.Limit // requests per second; zero = DefaultRateLimit
}

// Client creates issues with go-github.
type Client struct {
	issues     IssuesService
	milestones map[string]int // title -> number, loaded on first use
	repo       domain.Repo
}

// New creates a Client for opts.Repo.
func New(opts Options) (*Client, error) {
	if opts.Repo.IsZero() {
		return nil, domain.ErrInvalidRepo
	}

	base := opts.HTTPClient
	if base == nil {
		if opts.Token == "" {
			return nil, domain.ErrNoToken
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		base = oauth2.NewClient(context.Background(), ts)
	}

	limit := opts.RateLimit
	if limit == 0 {
		limit = DefaultRateLimit
	}
	httpClient := &http.Client{
		Transport: NewRateLimitTransport(limit, 1, base.Transport),
		Timeout:   base.Timeout,
	}

	gh := github.NewClient(httpClient)
	if opts.BaseURL != "" {
		var err error
		gh, err = github.NewEnterpriseClient(opts.BaseURL, opts.BaseURL, httpClient)
		if err != nil {
			return nil, fmt.Errorf("github client: %w", err)
		}
	}

	return NewWithService(gh.Issues, opts.Repo), nil
}

// NewWithService creates a Client over an existing issues service.
func NewWithService(issues IssuesService, repo domain.Repo) *Client {
	return &Client{
		issues: issues,
		repo:   repo,
	}
}

// Describe renders the API request Create would send.
func (c *Client) Describe(issue domain.Issue) string {
	owner, name := c.repo.Owner, c.repo.Name
	if c.repo.IsZero() {
		owner, name = "{owner}", "{repo}"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "POST /repos/%s/%s/issues title=%q assignee=%s", owner, name, issue.Title, issue.Assignee)
	if labels := issue.Labels(); len(labels) > 0 {
		fmt.Fprintf(&b, " labels=[%s]", strings.Join(labels, ","))
	}
	if issue.Milestone != "" {
		fmt.Fprintf(&b, " milestone=%q", issue.Milestone)
	}
	return b.String()
}

// Create creates the issue. Any failure is returned as a *domain.DispatchError.
func (c *Client) Create(ctx context.Context, issue domain.Issue) (*domain.CreatedIssue, error) {
	req := &github.IssueRequest{
		Title:     github.String(issue.Title),
		Body:      github.String(issue.Body),
		Assignees: &[]string{issue.Assignee},
	}
	if labels := issue.Labels(); len(labels) > 0 {
		req.Labels = &labels
	}
	if issue.Milestone != "" {
		number, err := c.milestoneNumber(ctx, issue.Milestone)
		if err != nil {
			return nil, &domain.DispatchError{Title: issue.Title, ExitCode: -1, Err: err}
		}
		req.Milestone = github.Int(number)
	}

	created, _, err := c.issues.Create(ctx, c.repo.Owner, c.repo.Name, req)
	if err != nil {
		return nil, &domain.DispatchError{Title: issue.Title, ExitCode: -1, Err: err}
	}
	return &domain.CreatedIssue{URL: created.GetHTMLURL(), Number: created.GetNumber()}, nil
}

// milestoneNumber resolves a milestone title, listing all milestones once.
func (c *Client) milestoneNumber(ctx context.Context, title string) (int, error) {
	if c.milestones == nil {
		milestones := make(map[string]int)
		opts := &github.MilestoneListOptions{
			State:       "all",
			ListOptions: github.ListOptions{PerPage: 100},
		}
		for {
			page, resp, err := c.issues.ListMilestones(ctx, c.repo.Owner, c.repo.Name, opts)
			if err != nil {
				return 0, fmt.Errorf("list milestones: %w", err)
			}
			for _, m := range page {
				milestones[m.GetTitle()] = m.GetNumber()
			}
			if resp == nil || resp.NextPage == 0 {
				break
			}
			opts.Page = resp.NextPage
		}
		c.milestones = milestones
	}

	number, ok := c.milestones[strings.TrimSpace(title)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrMilestoneNotFound, title)
	}
	return number, nil
}
