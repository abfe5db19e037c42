package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kislikjeka/expensetrack/internal/screen"
	"github.com/kislikjeka/expensetrack/internal/transport/cli/output"
)

func NewDashboardCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show entry totals per currency and per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := screen.NewDashboard(
				opts.app.State.Entries,
				opts.app.State.Categories,
				opts.app.Currencies.DecimalsFor,
				opts.logger,
			)

			summary, err := d.Load(cmd.Context())
			if err != nil {
				return printFailure(cmd, opts, err, nil)
			}

			var warnings []output.WarningPayload
			for _, u := range summary.Untotalled {
				warnings = append(warnings, output.WarningPayload{
					Code:    "INVALID_AMOUNT",
					Message: fmt.Sprintf("entry %s (%s) has amount %q, which is not a number; it is left out of the totals", u.EntryID, u.Name, u.Amount),
				})
			}

			return printSuccess(cmd, opts, map[string]any{"summary": summary}, warnings)
		},
	}
}
