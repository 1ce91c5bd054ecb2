// errors

package gitredate

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNilRepo        = errors.New("nil repo")
	ErrEmptyHistory   = errors.New("empty history")
	ErrDetachedHead   = errors.New("head is not on a branch")
	ErrTimesMismatch  = errors.New("time count doesn't match commit count")
	ErrEndBeforeStart = errors.New("end day is before start day")
)

// errorf wraps the error with [fmt.Errorf], unless the cause is a context
// cancellation, which is returned as is.
func errorf(cause error, format string, args ...any) error {
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		return cause
	}

	return fmt.Errorf(format, args...)
}
