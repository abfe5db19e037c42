package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/kislikjeka/expensetrack/internal/screen"
	apperrors "github.com/kislikjeka/expensetrack/internal/shared/errors"
	"github.com/kislikjeka/expensetrack/internal/transport/cli/output"
)

func printSuccess(cmd *cobra.Command, opts *RootOptions, data any, warnings []output.WarningPayload) error {
	return emit(cmd, opts, output.NewSuccessEnvelope(data, warnings))
}

func printError(cmd *cobra.Command, opts *RootOptions, code, message string, details any) error {
	return emit(cmd, opts, output.NewErrorEnvelope(code, message, details, nil))
}

// printFailure maps err to an error envelope
func printFailure(cmd *cobra.Command, opts *RootOptions, err error, details map[string]any) error {
	return emit(cmd, opts, failureEnvelope(err, details, nil))
}

func emit(cmd *cobra.Command, opts *RootOptions, envelope output.Envelope) error {
	envelope.Meta.APIBaseURL = opts.cfg.APIBaseURL
	return output.Print(cmd.OutOrStdout(), opts.Output, envelope)
}

func failureEnvelope(err error, details map[string]any, warnings []output.WarningPayload) output.Envelope {
	if details == nil {
		details = map[string]any{}
	}

	code := apperrors.Code(err)
	message := err.Error()

	var vErr *apperrors.ValidationError
	var httpErr *apperrors.HTTPError
	var netErr *apperrors.NetworkError
	switch {
	case errors.As(err, &vErr):
		message = vErr.Message
		details["fields"] = vErr.Fields
	case errors.As(err, &httpErr):
		details["status"] = httpErr.Status
		details["method"] = httpErr.Method
		details["url"] = httpErr.URL
		if code == apperrors.ErrCodeNotFound {
			message = "not found on the remote API"
		}
	case errors.As(err, &netErr):
		details["method"] = netErr.Method
		details["url"] = netErr.URL
		message = "the expenses API could not be reached"
	}
	details["error"] = err.Error()

	return output.NewErrorEnvelope(code, message, details, warnings)
}

// navigation reads where the screen named from sent the user
func navigation(from screen.RouteName, history *screen.History) output.Navigation {
	nav := output.Navigation{Screen: string(from)}
	route, ok := history.Current()
	if !ok {
		return nav
	}
	nav.NavigatedTo = string(route.Name)
	if route.Notice != nil {
		nav.Notice = route.Notice.Error()
	}
	return nav
}
