package output

import (
	"strings"
	"sync/atomic"

	apperrors "github.com/kislikjeka/expensetrack/internal/shared/errors"
)

var processExitCode atomic.Int32

func ResetProcessExitCode() {
	processExitCode.Store(0)
}

func CurrentProcessExitCode() int {
	return int(processExitCode.Load())
}

func SetProcessExitCodeFromEnvelope(envelope Envelope) {
	if envelope.Ok || envelope.Error == nil {
		processExitCode.Store(0)
		return
	}

	processExitCode.Store(int32(ExitCodeForErrorCode(envelope.Error.Code)))
}

func ExitCodeForErrorCode(errorCode string) int {
	switch strings.ToUpper(strings.TrimSpace(errorCode)) {
	case apperrors.ErrCodeInvalidArg, apperrors.ErrCodeValidation:
		return 2
	case apperrors.ErrCodeNotFound:
		return 3
	case apperrors.ErrCodeNetwork:
		return 4
	case apperrors.ErrCodeHTTP:
		return 5
	default:
		return 1
	}
}
