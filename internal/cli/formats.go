package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/gh-issues/internal/app"
	"github.com/runoshun/gh-issues/internal/domain"
)

// newFormatsCommand creates the formats command.
func newFormatsCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported input formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, f := range c.Sources.Formats() {
				if f == domain.FormatYAML {
					_, _ = fmt.Fprintf(w, "%s %s\n", f, styles.Muted.Render("(also: yml)"))
					continue
				}
				_, _ = fmt.Fprintln(w, f)
			}
			return nil
		},
	}
}
