// Package usecase contains application use cases.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/time/rate"

	"github.com/runoshun/gh-issues/internal/domain"
)

// CreateIssuesInput contains the parameters for creating issues from a file.
// Fields are ordered to minimize memory padding.
type CreateIssuesInput struct {
	Progress func(IssueResult)   // called after every row (optional)
	Path     string               // Input file path
	Format   domain.Format        // Input format
	Policy   domain.FailurePolicy // What to do after a failed row
	Timeout  time.Duration        // Per-row timeout; 0 = none
	Interval time.Duration        // Minimum delay between two dispatches; 0 = none
	DryRun   bool                 // If true, parse and validate without creating issues
}

// IssueResult is the outcome of one row.
// Fields are ordered to minimize memory padding.
type IssueResult struct {
	Err     error  // *domain.DispatchError when the row failed
	Title   string
	URL     string // Created issue URL (empty in dry-run or on failure)
	Preview string // What would be dispatched (dry-run only)
	Row     int
}

// CreateIssuesOutput contains the result of a run.
type CreateIssuesOutput struct {
	Results   []IssueResult
	Total     int // rows read
	Succeeded int
	Failed    int
}

// CreateIssues is the use case for creating one remote issue per input record.
type CreateIssues struct {
	sources domain.SourceOpener
	creator domain.IssueCreator
	logger  domain.Logger
}

// NewCreateIssues creates a new CreateIssues use case.
func NewCreateIssues(sources domain.SourceOpener, creator domain.IssueCreator, logger domain.Logger) *CreateIssues {
	return &CreateIssues{
		sources: sources,
		creator: creator,
		logger:  logger,
	}
}

// Execute reads the input lazily and dispatches every record in order.
// The returned output covers the rows handled so far even when err is
// non-nil. A parse error always stops the run; a dispatch error stops it
// under domain.PolicyAbort. Under domain.PolicyContinue the run goes on and
// ends with an error wrapping domain.ErrDispatchFailed if any row failed.
func (uc *CreateIssues) Execute(ctx context.Context, in CreateIssuesInput) (*CreateIssuesOutput, error) {
	policy := in.Policy
	if policy == "" {
		policy = domain.PolicyAbort
	}

	reader, err := uc.sources.Open(in.Format, in.Path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()
	uc.logDebug(0, "source", fmt.Sprintf("reading %s as %s", in.Path, in.Format))

	var limiter *rate.Limiter
	if in.Interval > 0 && !in.DryRun {
		limiter = rate.NewLimiter(rate.Every(in.Interval), 1)
	}

	out := &CreateIssuesOutput{}
	for {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			uc.logError(0, "source", err.Error())
			return out, err
		}
		out.Total++

		if in.DryRun {
			res := IssueResult{Row: rec.Row, Title: rec.Issue.Title, Preview: uc.creator.Describe(rec.Issue)}
			uc.record(out, in.Progress, res)
			continue
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return out, err
			}
		}

		res := uc.dispatch(ctx, rec, in.Timeout)
		uc.record(out, in.Progress, res)
		if res.Err != nil {
			out.Failed++
			if policy == domain.PolicyAbort {
				return out, res.Err
			}
			continue
		}
		out.Succeeded++
	}

	if out.Failed > 0 {
		return out, fmt.Errorf("%w: %d of %d rows failed", domain.ErrDispatchFailed, out.Failed, out.Total)
	}
	uc.logInfo(0, "run", fmt.Sprintf("done: %d rows, %d created", out.Total, out.Succeeded))
	return out, nil
}

// dispatch creates the issue for one record.
func (uc *CreateIssues) dispatch(ctx context.Context, rec domain.Record, timeout time.Duration) IssueResult {
	res := IssueResult{Row: rec.Row, Title: rec.Issue.Title}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	uc.logDebug(rec.Row, "dispatch", uc.creator.Describe(rec.Issue))
	created, err := uc.creator.Create(ctx, rec.Issue)
	if err != nil {
		var de *domain.DispatchError
		if !errors.As(err, &de) {
			de = &domain.DispatchError{Title: rec.Issue.Title, ExitCode: -1, Err: err}
		}
		de.Row = rec.Row
		res.Err = de
		uc.logDebug(rec.Row, "dispatch", de.Error())
		return res
	}

	res.URL = created.URL
	uc.logInfo(rec.Row, "dispatch", fmt.Sprintf("created %q %s", rec.Issue.Title, created.URL))
	return res
}

func (uc *CreateIssues) record(out *CreateIssuesOutput, progress func(IssueResult), res IssueResult) {
	out.Results = append(out.Results, res)
	if progress != nil {
		progress(res)
	}
}

func (uc *CreateIssues) logDebug(row int, category, msg string) {
	if uc.logger != nil {
		uc.logger.Debug(row, category, msg)
	}
}

func (uc *CreateIssues) logInfo(row int, category, msg string) {
	if uc.logger != nil {
		uc.logger.Info(row, category, msg)
	}
}

func (uc *CreateIssues) logError(row int, category, msg string) {
	if uc.logger != nil {
		uc.logger.Error(row, category, msg)
	}
}
