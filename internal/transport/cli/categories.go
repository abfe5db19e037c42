package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/kislikjeka/expensetrack/internal/screen"
	apperrors "github.com/kislikjeka/expensetrack/internal/shared/errors"
)

func NewCategoriesCmd(opts *RootOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
	}

	command.AddCommand(
		newCategoriesListCmd(opts),
		newCategoriesAddCmd(opts),
	)

	return command
}

func newCategoriesListCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return printError(cmd, opts, apperrors.ErrCodeInvalidArg, "list does not accept positional arguments", map[string]any{"args": args})
			}

			s := screen.NewCategoryList(opts.app.State.Categories, opts.logger)
			defer s.Unmount()
			if err := s.Mount(cmd.Context()); err != nil {
				return printFailure(cmd, opts, err, nil)
			}

			rows := s.Rows()
			return printSuccess(cmd, opts, map[string]any{
				"categories": rows,
				"count":      len(rows),
			}, nil)
		},
	}
}

func newCategoriesAddCmd(opts *RootOptions) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := screen.NewCategoryList(opts.app.State.Categories, opts.logger)
			defer s.Unmount()

			s.SetName(strings.Join(args, " "))
			s.SetDescription(description)
			created, err := s.Submit(cmd.Context())
			if err != nil {
				return printFailure(cmd, opts, err, nil)
			}

			return printSuccess(cmd, opts, map[string]any{"category": created}, nil)
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Category description")

	return cmd
}
