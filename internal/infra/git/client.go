// Package git resolves the GitHub repository of a working directory.
package git

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"github.com/runoshun/gh-issues/internal/domain"
)

// Ensure Client implements domain.RepoDetector.
var _ domain.RepoDetector = (*Client)(nil)

// Client reads repository metadata with go-git.
type Client struct {
	dir string
}

// NewClient creates a client for the repository containing dir.
func NewClient(dir string) *Client {
	return &Client{dir: dir}
}

// DetectRepo returns the repository named by the "origin" remote, or by the
// first remote in name order when there is no origin.
func (c *Client) DetectRepo() (domain.Repo, error) {
	repo, err := gogit.PlainOpenWithOptions(c.dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return domain.Repo{}, domain.ErrNotGitRepository
		}
		return domain.Repo{}, fmt.Errorf("open git repository: %w", err)
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return domain.Repo{}, fmt.Errorf("list remotes: %w", err)
	}
	sort.Slice(remotes, func(i, j int) bool {
		ni, nj := remotes[i].Config().Name, remotes[j].Config().Name
		if (ni == "origin") != (nj == "origin") {
			return ni == "origin"
		}
		return ni < nj
	})

	for _, remote := range remotes {
		for _, u := range remote.Config().URLs {
			if r, err := ParseRemoteURL(u); err == nil {
				return r, nil
			}
		}
	}
	return domain.Repo{}, domain.ErrRepoNotDetected
}

// ParseRemoteURL extracts host, owner and name from a git remote URL.
// Supported forms: https://host/owner/repo(.git), ssh://git@host/owner/repo(.git)
// and scp-like git@host:owner/repo(.git).
func ParseRemoteURL(raw string) (domain.Repo, error) {
	raw = strings.TrimSpace(raw)

	var host, path string
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return domain.Repo{}, fmt.Errorf("%w: %v", domain.ErrInvalidRepo, err)
		}
		host, path = u.Hostname(), u.Path
	} else if at := strings.Index(raw, "@"); at >= 0 && strings.Contains(raw[at:], ":") {
		rest := raw[at+1:]
		colon := strings.Index(rest, ":")
		host, path = rest[:colon], rest[colon+1:]
	} else {
		return domain.Repo{}, fmt.Errorf("%w: unsupported remote URL %q", domain.ErrInvalidRepo, raw)
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if host == "" || len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return domain.Repo{}, fmt.Errorf("%w: unsupported remote URL %q", domain.ErrInvalidRepo, raw)
	}
	return domain.Repo{Host: host, Owner: parts[0], Name: parts[1]}, nil
}
