package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/gh-issues/internal/app"
	"github.com/runoshun/gh-issues/internal/domain"
	"github.com/runoshun/gh-issues/internal/usecase"
)

// createOptions holds the flags of the create command.
// Fields are ordered to minimize memory padding.
type createOptions struct {
	ext             string
	input           string
	backend         string
	repo            string
	timeout         time.Duration
	interval        time.Duration
	continueOnError bool
	dryRun          bool
}

// newCreateCommand creates the create command.
func newCreateCommand(c *app.Container) *cobra.Command {
	var opts createOptions

	cmd := &cobra.Command{
		Use:   "create -i PATH [-e csv|yaml]",
		Short: "Create one issue per input record",
		Long: `Create one GitHub issue per record of the input file, in input order.

CSV input needs a header with the columns title, label, milestone, assignee
and body. YAML input is a list of mappings with the same keys, or a stream
of documents holding one mapping each. title and assignee must not be empty;
label and milestone are optional.

By default the run stops at the first row that fails. With
--continue-on-error every row is attempted and the command still exits with
status 1 when any row failed.`,
		Example: `  # Create issues with gh in the current repository
  gh-issues create -i issues.csv

  # Validate a YAML file without creating anything
  gh-issues create -e yaml -i issues.yaml --dry-run

  # Use the REST API (token from GITHUB_TOKEN)
  gh-issues create -i issues.csv --backend api --repo acme/widgets --interval 1s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.input == "" {
				return usageError(cmd, errors.New(`required flag "input" not set`))
			}
			return runCreate(cmd, c, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ext, "ext", "e", "", "Input format: csv or yaml (default from config, else csv)")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Input file path (required)")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "How issues are created: gh or api (default from config, else gh)")
	cmd.Flags().StringVarP(&opts.repo, "repo", "R", "", "Target repository OWNER/REPO")
	cmd.Flags().BoolVar(&opts.continueOnError, "continue-on-error", false, "Attempt every row even after a failure")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Validate the input and print what would be created")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Per-row timeout, e.g. 30s (0 waits forever)")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "Minimum delay between two rows, e.g. 1s")

	return cmd
}

// runCreate resolves flags against the configuration and runs the use case.
func runCreate(cmd *cobra.Command, c *app.Container, opts createOptions) error {
	cfg, err := c.ConfigLoader.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	in, backend, err := resolveCreateInput(cmd, cfg, opts)
	if err != nil {
		return err
	}

	logger, err := c.NewLogger(cfg, verbosity(cmd), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	repoFlag := opts.repo
	if repoFlag == "" {
		repoFlag = cfg.Create.Repo
	}
	repo, err := c.ResolveRepo(repoFlag, backend, in.DryRun)
	if err != nil {
		return err
	}

	creator, err := c.NewIssueCreator(cfg, app.IssueCreatorOptions{
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		Backend: backend,
		Repo:    repo,
		DryRun:  in.DryRun,
	})
	if err != nil {
		return err
	}

	// gh prints the issue URL itself; the api backend needs it printed here.
	printURL := backend != domain.BackendGH
	in.Progress = func(res usecase.IssueResult) {
		printResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), res, printURL)
	}

	uc := c.CreateIssuesUseCase(creator, logger)
	out, err := uc.Execute(cmd.Context(), in)
	if out != nil {
		printSummary(cmd.ErrOrStderr(), out, in.DryRun)
	}
	return err
}

// resolveCreateInput merges flags over the configuration. Flags the user set
// explicitly win.
func resolveCreateInput(cmd *cobra.Command, cfg *domain.Config, opts createOptions) (usecase.CreateIssuesInput, domain.Backend, error) {
	in := usecase.CreateIssuesInput{
		Path:   opts.input,
		DryRun: opts.dryRun,
	}

	ext := opts.ext
	if ext == "" {
		ext = cfg.Create.Ext
	}
	in.Format = domain.ParseFormat(ext)

	backendName := opts.backend
	if backendName == "" {
		backendName = cfg.Create.Backend
	}
	backend, err := domain.ParseBackend(backendName)
	if err != nil {
		return in, "", err
	}

	if opts.continueOnError {
		in.Policy = domain.PolicyContinue
	} else if in.Policy, err = domain.ParseFailurePolicy(cfg.Create.OnError); err != nil {
		return in, "", err
	}

	if cmd.Flags().Changed("timeout") {
		in.Timeout = opts.timeout
	} else if in.Timeout, err = cfg.TimeoutDuration(); err != nil {
		return in, "", err
	}

	if cmd.Flags().Changed("interval") {
		in.Interval = opts.interval
	} else if in.Interval, err = cfg.IntervalDuration(); err != nil {
		return in, "", err
	}

	return in, backend, nil
}

// printResult reports one row. Status lines go to stderr; created URLs and
// dry-run previews go to stdout.
func printResult(stdout, stderr io.Writer, res usecase.IssueResult, printURL bool) {
	switch {
	case res.Preview != "":
		_, _ = fmt.Fprintf(stderr, "%s row %d: %s\n", styles.Muted.Render("•"), res.Row, res.Title)
		_, _ = fmt.Fprintln(stdout, styles.Preview.Render(res.Preview))
	case res.Err != nil:
		// res.Err names the row and title itself.
		_, _ = fmt.Fprintf(stderr, "%s %v\n", styles.Failure.Render("✗"), res.Err)
	default:
		_, _ = fmt.Fprintf(stderr, "%s row %d: %s\n", styles.Success.Render("✓"), res.Row, res.Title)
		if printURL && res.URL != "" {
			_, _ = fmt.Fprintln(stdout, res.URL)
		}
	}
}

// printSummary prints the totals of a run.
func printSummary(w io.Writer, out *usecase.CreateIssuesOutput, dryRun bool) {
	if dryRun {
		_, _ = fmt.Fprintf(w, "%s %d %s validated, nothing created\n",
			styles.Bold.Render("Dry run:"), out.Total, plural(out.Total, "issue"))
		return
	}

	line := fmt.Sprintf("Created %d of %d %s", out.Succeeded, out.Total, plural(out.Total, "issue"))
	if out.Failed > 0 {
		line += styles.Failure.Render(fmt.Sprintf(" (%d failed)", out.Failed))
	}
	_, _ = fmt.Fprintln(w, styles.Bold.Render(line))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
