// Package ghcli creates issues by running `gh issue create`.
package ghcli

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/runoshun/gh-issues/internal/domain"
)

// Ensure Client implements domain.IssueCreator.
var _ domain.IssueCreator = (*Client)(nil)

// Options configures a Client.
type Options struct {
	Stdout  io.Writer   // receives gh's stdout as it is produced (optional)
	Stderr  io.Writer   // receives gh's stderr as it is produced (optional)
	Program string      // gh executable; defaults to domain.DefaultGHPath
	Dir     string      // working directory for gh; empty = current
	Repo    domain.Repo // target repository; zero = let gh decide
}

// Client runs one gh process per issue.
// Fields are ordered to minimize memory padding.
type Client struct {
	executor domain.CommandExecutor
	stdout   io.Writer
	stderr   io.Writer
	program  string
	dir      string
	repo     domain.Repo
}

// New creates a Client.
func New(executor domain.CommandExecutor, opts Options) *Client {
	program := opts.Program
	if program == "" {
		program = domain.DefaultGHPath
	}
	return &Client{
		executor: executor,
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
		program:  program,
		dir:      opts.Dir,
		repo:     opts.Repo,
	}
}

// BuildArgs returns the gh arguments creating issue. Every flag and every
// value is its own argument; optional flags are left out when empty.
func BuildArgs(issue domain.Issue, repo domain.Repo) []string {
	args := []string{
		"issue", "create",
		"--title", issue.Title,
		"--body", issue.Body,
		"--assignee", issue.Assignee,
	}
	if issue.Label != "" {
		args = append(args, "--label", issue.Label)
	}
	if issue.Milestone != "" {
		args = append(args, "--milestone", issue.Milestone)
	}
	if !repo.IsZero() {
		args = append(args, "--repo", repo.String())
	}
	return args
}

// Command returns the command that creates issue.
func (c *Client) Command(issue domain.Issue) *domain.ExecCommand {
	return domain.NewCommand(c.program, BuildArgs(issue, c.repo), c.dir)
}

// Describe renders the command as a shell-quoted line.
func (c *Client) Describe(issue domain.Issue) string {
	cmd := c.Command(issue)
	parts := make([]string, 0, len(cmd.Args)+1)
	parts = append(parts, shellQuote(cmd.Program))
	for _, a := range cmd.Args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

// Create runs gh and waits for it to exit. Output is echoed to the configured
// writers and captured; a non-zero exit becomes a *domain.DispatchError.
func (c *Client) Create(ctx context.Context, issue domain.Issue) (*domain.CreatedIssue, error) {
	var outBuf, errBuf bytes.Buffer
	stdout := io.Writer(&outBuf)
	if c.stdout != nil {
		stdout = io.MultiWriter(c.stdout, &outBuf)
	}
	stderr := io.Writer(&errBuf)
	if c.stderr != nil {
		stderr = io.MultiWriter(c.stderr, &errBuf)
	}

	if err := c.executor.ExecuteWithContext(ctx, c.Command(issue), stdout, stderr); err != nil {
		de := &domain.DispatchError{
			Title:    issue.Title,
			Stderr:   errBuf.String(),
			ExitCode: domain.ExitCode(err),
		}
		switch {
		case ctx.Err() != nil:
			de.Err = ctx.Err()
		case de.ExitCode < 0:
			de.Err = err
		}
		return nil, de
	}

	url := lastLine(outBuf.String())
	return &domain.CreatedIssue{URL: url, Number: issueNumber(url)}, nil
}

// lastLine returns the last non-empty line of s; gh prints the issue URL last.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// issueNumber parses the trailing number of an issue URL, or returns 0.
func issueNumber(url string) int {
	i := strings.LastIndex(url, "/issues/")
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(url[i+len("/issues/"):])
	if err != nil {
		return 0
	}
	return n
}

// shellQuote quotes s for display in a POSIX shell.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./:=@,+", r)) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
