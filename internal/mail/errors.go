package mail

import (
	"errors"
	"fmt"
	"strings"

	"github.io/infrasutra/mailbridge/internal/applescript"
)

var (
	// ErrValidation marks input rejected before any script is built.
	ErrValidation = errors.New("invalid request")
	// ErrNotFound marks a message, account or mailbox that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable marks Mail being unreachable or not authorized.
	ErrUnavailable = errors.New("mail unavailable")
	// ErrScript marks a script that failed or could not perform its action.
	ErrScript = errors.New("script failed")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// classify attaches one of the package sentinels to an execution error while
// keeping the underlying *applescript.Error reachable through errors.As.
func classify(err error) error {
	var sentinel error
	switch applescript.KindOf(err) {
	case applescript.KindUnavailable:
		sentinel = ErrUnavailable
	case applescript.KindLogical:
		// Mail reports missing objects as "Can’t get mailbox ...".
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "not found") ||
			strings.Contains(lower, "can’t get") ||
			strings.Contains(lower, "can't get") {
			sentinel = ErrNotFound
		} else {
			sentinel = ErrScript
		}
	default:
		sentinel = ErrScript
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
