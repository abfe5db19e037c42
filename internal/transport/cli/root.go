package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kislikjeka/expensetrack/internal/app"
	"github.com/kislikjeka/expensetrack/internal/transport/cli/output"
	"github.com/kislikjeka/expensetrack/pkg/config"
	"github.com/kislikjeka/expensetrack/pkg/logger"
)

type RootOptions struct {
	Output string
	APIURL string

	cfg    *config.Config
	logger *logger.Logger
	app    *app.App
}

func NewRootCmd(cfg *config.Config, log *logger.Logger) *cobra.Command {
	opts := &RootOptions{
		Output: output.FormatHuman,
		cfg:    cfg,
		logger: log,
	}

	cmd := &cobra.Command{
		Use:           "expensetrack",
		Short:         "expensetrack records and edits expenses on a remote expenses API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !output.IsValidFormat(opts.Output) {
				return fmt.Errorf("invalid --output value %q: supported values are %s|%s", opts.Output, output.FormatHuman, output.FormatJSON)
			}
			opts.Output = strings.ToLower(strings.TrimSpace(opts.Output))

			if opts.APIURL != "" {
				opts.cfg.APIBaseURL = strings.TrimRight(opts.APIURL, "/")
			}

			a, err := app.New(opts.cfg, opts.logger)
			if err != nil {
				return fmt.Errorf("initialize client: %w", err)
			}
			opts.app = a
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Output, "output", output.FormatHuman, "Output format: human|json")
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", "", "Expenses API base URL (overrides EXPENSES_API_URL)")

	cmd.AddCommand(
		NewEntriesCmd(opts),
		NewCategoriesCmd(opts),
		NewDashboardCmd(opts),
	)

	return cmd
}
