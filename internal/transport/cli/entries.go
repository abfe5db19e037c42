package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kislikjeka/expensetrack/internal/module/entry"
	"github.com/kislikjeka/expensetrack/internal/screen"
	apperrors "github.com/kislikjeka/expensetrack/internal/shared/errors"
	"github.com/kislikjeka/expensetrack/internal/transport/cli/output"
)

func NewEntriesCmd(opts *RootOptions) *cobra.Command {
	command := &cobra.Command{
		Use:   "entries",
		Short: "Manage expense entries",
	}

	command.AddCommand(
		newEntriesListCmd(opts),
		newEntriesShowCmd(opts),
		newEntriesAddCmd(opts),
		newEntriesEditCmd(opts),
		newEntriesDeleteCmd(opts),
	)

	return command
}

func newEntriesListCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return printError(cmd, opts, apperrors.ErrCodeInvalidArg, "list does not accept positional arguments", map[string]any{"args": args})
			}

			s := screen.NewEntryList(opts.app.State.Entries, &screen.History{}, opts.logger, screen.Route{Name: screen.RouteEntryList})
			defer s.Unmount()
			if err := s.Mount(cmd.Context()); err != nil {
				return printFailure(cmd, opts, err, nil)
			}

			rows := s.Rows()
			return printSuccess(cmd, opts, map[string]any{
				"entries": rows,
				"count":   len(rows),
			}, nil)
		},
	}
}

func newEntriesShowCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok, err := parseEntryID(cmd, opts, args)
			if !ok {
				return err
			}

			s := screen.NewEntryEdit(opts.app.State.Entries, &screen.History{}, opts.logger, screen.Route{Name: screen.RouteEntryEdit, EntryID: id})
			defer s.Unmount()
			if err := s.Mount(cmd.Context()); err != nil {
				return printFailure(cmd, opts, err, map[string]any{"entry_id": id})
			}

			return printSuccess(cmd, opts, map[string]any{"entry": s.State().Current}, nil)
		},
	}
}

type entryAddFlags struct {
	amount      string
	name        string
	currency    string
	date        string
	category    string
	description string
}

func newEntriesAddCmd(opts *RootOptions) *cobra.Command {
	flags := &entryAddFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			history := &screen.History{}
			s := screen.NewEntryAdd(opts.app.State.Entries, history, opts.logger, opts.app.Currencies.Default)
			defer s.Unmount()

			s.SetForm(screen.NewEntryForm{
				Amount:      flags.amount,
				Name:        flags.name,
				Currency:    flags.currency,
				Date:        flags.date,
				Category:    flags.category,
				Description: flags.description,
			})
			nav := func() output.Navigation { return navigation(screen.RouteAddEntry, history) }
			if err := s.Submit(cmd.Context()); err != nil {
				return emit(cmd, opts, failureEnvelope(err, nil, nil).WithNavigation(nav()))
			}
			if err := s.Resolve(cmd.Context(), screen.ActionConfirm); err != nil {
				return emit(cmd, opts, failureEnvelope(err, nil, nil).WithNavigation(nav()))
			}

			created := s.State().Created
			var warnings []output.WarningPayload
			if created != nil {
				if _, known := opts.app.Currencies.Get(created.Currency); !known {
					warnings = append(warnings, output.WarningPayload{
						Code:    "UNKNOWN_CURRENCY",
						Message: fmt.Sprintf("currency %s is not configured; totals use %d decimals", created.Currency, opts.app.Currencies.DecimalsFor(created.Currency)),
					})
				}
			}

			return emit(cmd, opts, output.NewSuccessEnvelope(map[string]any{
				"entry": created,
			}, warnings).WithNavigation(nav()))
		},
	}

	cmd.Flags().StringVar(&flags.amount, "amount", "", "Amount, e.g. 12.50")
	cmd.Flags().StringVar(&flags.name, "name", "", "Entry name")
	cmd.Flags().StringVar(&flags.description, "description", "", "Entry description")
	cmd.Flags().StringVar(&flags.currency, "currency", "", "Currency code (defaults to the configured default)")
	cmd.Flags().StringVar(&flags.date, "date", "", "Date as YYYY-MM-DD (defaults to today)")
	cmd.Flags().StringVar(&flags.category, "category", "", "Category name")

	return cmd
}

type entryEditFlags struct {
	amount      string
	name        string
	description string
	category    string
}

func newEntriesEditCmd(opts *RootOptions) *cobra.Command {
	flags := &entryEditFlags{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an entry; amount, name and description are required",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok, err := parseEntryID(cmd, opts, args)
			if !ok {
				return err
			}

			history := &screen.History{}
			s := screen.NewEntryEdit(opts.app.State.Entries, history, opts.logger, screen.Route{Name: screen.RouteEntryEdit, EntryID: id})
			defer s.Unmount()

			var warnings []output.WarningPayload
			if err := s.Mount(cmd.Context()); err != nil {
				warnings = append(warnings, output.WarningPayload{
					Code:    apperrors.Code(err),
					Message: "current entry could not be loaded; fields not given keep no previous value",
					Details: map[string]any{"error": err.Error()},
				})
			}

			s.SetAmount(flags.amount)
			s.SetName(flags.name)
			s.SetDescription(flags.description)
			s.SetCategory(flags.category)

			nav := func() output.Navigation { return navigation(screen.RouteEntryEdit, history) }
			if err := s.Submit(cmd.Context()); err != nil {
				return emit(cmd, opts, failureEnvelope(err, map[string]any{"entry_id": id}, warnings).WithNavigation(nav()))
			}
			updated := s.State().Current
			if err := s.Resolve(cmd.Context(), screen.ActionConfirm); err != nil {
				return emit(cmd, opts, failureEnvelope(err, map[string]any{"entry_id": id}, warnings).WithNavigation(nav()))
			}

			return emit(cmd, opts, output.NewSuccessEnvelope(map[string]any{
				"entry": updated,
			}, warnings).WithNavigation(nav()))
		},
	}

	cmd.Flags().StringVar(&flags.amount, "amount", "", "New amount")
	cmd.Flags().StringVar(&flags.name, "name", "", "New name")
	cmd.Flags().StringVar(&flags.description, "description", "", "New description")
	cmd.Flags().StringVar(&flags.category, "category", "", "New category (kept when empty)")

	return cmd
}

func newEntriesDeleteCmd(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok, err := parseEntryID(cmd, opts, args)
			if !ok {
				return err
			}

			history := &screen.History{}
			s := screen.NewEntryEdit(opts.app.State.Entries, history, opts.logger, screen.Route{Name: screen.RouteEntryEdit, EntryID: id})
			defer s.Unmount()

			s.RequestDelete()
			action := screen.ActionConfirm
			if !yes {
				dialog := s.State().Dialog
				action, err = prompt(cmd, dialog)
				if err != nil {
					return err
				}
			}

			if err := s.Resolve(cmd.Context(), action); err != nil {
				return emit(cmd, opts, failureEnvelope(err, map[string]any{"entry_id": id}, nil).
					WithNavigation(navigation(screen.RouteEntryEdit, history)))
			}

			return emit(cmd, opts, output.NewSuccessEnvelope(map[string]any{
				"entry_id": id,
				"deleted":  action == screen.ActionConfirm,
			}, nil).WithNavigation(navigation(screen.RouteEntryEdit, history)))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")

	return cmd
}

// prompt asks the dialog's question on stderr and reads y/N from stdin.
func prompt(cmd *cobra.Command, dialog *screen.Dialog) (screen.ActionName, error) {
	if dialog == nil {
		return "", screen.ErrNoDialog
	}
	if _, err := fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s [y/N] ", dialog.Title, dialog.Message); err != nil {
		return "", err
	}

	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return screen.ActionCancel, nil
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return screen.ActionConfirm, nil
	default:
		return screen.ActionCancel, nil
	}
}

// parseEntryID reads the numeric <id> argument. When ok is false the error
// envelope has already been printed and err is what RunE should return.
func parseEntryID(cmd *cobra.Command, opts *RootOptions, args []string) (id int, ok bool, err error) {
	if len(args) != 1 {
		return 0, false, printError(cmd, opts, apperrors.ErrCodeInvalidArg, "exactly one argument is required: <id>", map[string]any{"required_args": []string{"id"}})
	}

	id, convErr := strconv.Atoi(strings.TrimSpace(args[0]))
	if convErr != nil {
		return 0, false, printError(cmd, opts, apperrors.ErrCodeInvalidArg, "id must be an integer", map[string]any{"field": "id", "value": args[0]})
	}
	return id, true, nil
}

var _ screen.EntryEditor = (*entry.Slice)(nil)
