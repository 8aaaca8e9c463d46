// Package cli provides the command-line interface for gh-issues.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/gh-issues/internal/app"
	"github.com/runoshun/gh-issues/internal/domain"
)

// Command group IDs.
const (
	groupIssues = "issues"
	groupSetup  = "setup"
)

// debugFlag is the persistent verbosity counter (-d, -dd, ...).
const debugFlag = "debug"

// NewRootCommand creates the root command for gh-issues.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "gh-issues",
		Short: "Create GitHub issues from a CSV or YAML file",
		Long: `gh-issues creates one GitHub issue per record of a CSV or YAML file.

Each record provides title, label, milestone, assignee and body. Issues are
created in input order, either by running "gh issue create" or through the
GitHub REST API.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				// Reported by the commands that need the config
				return nil
			}

			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), styles.Warning.Render("Warning: "+w))
			}
			return nil
		},
	}

	root.PersistentFlags().CountP(debugFlag, "d", "Increase log verbosity (-d info, -dd debug)")
	root.SetFlagErrorFunc(usageError)

	root.AddGroup(
		&cobra.Group{ID: groupIssues, Title: "Issue Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	createCmd := newCreateCommand(c)
	createCmd.GroupID = groupIssues

	formatsCmd := newFormatsCommand(c)
	formatsCmd.GroupID = groupIssues

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		createCmd,
		formatsCmd,
		configCmd,
	)

	return root
}

// usageError prints the command usage to stderr and wraps err as an
// ArgumentError.
func usageError(cmd *cobra.Command, err error) error {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
	return &domain.ArgumentError{Err: err}
}

// verbosity returns the -d count of cmd, or 0 when the flag is absent.
func verbosity(cmd *cobra.Command) int {
	n, err := cmd.Flags().GetCount(debugFlag)
	if err != nil {
		return 0
	}
	return n
}
