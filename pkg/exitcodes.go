package pkg

import (
	"errors"

	saveerrors "github.com/provide-io/pkgender/pkg/save/errors"
)

// Exit codes for different error types
const (
	ExitOK            = 0
	ExitGeneric       = 1
	ExitPanic         = 101
	ExitUnknownFormat = 102
	ExitBackupFailed  = 103
	ExitInvalidArgs   = 105
	ExitIOError       = 106
)

// ExitCode maps an error returned by Run to a process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, saveerrors.ErrInvalidInput), errors.Is(err, saveerrors.ErrInvalidName):
		return ExitInvalidArgs
	case errors.Is(err, saveerrors.ErrUnknownFormat), errors.Is(err, saveerrors.ErrImageTooSmall):
		return ExitUnknownFormat
	case errors.Is(err, saveerrors.ErrBackupFailed):
		return ExitBackupFailed
	case errors.Is(err, saveerrors.ErrReadFailed), errors.Is(err, saveerrors.ErrWriteFailed):
		return ExitIOError
	default:
		return ExitGeneric
	}
}
