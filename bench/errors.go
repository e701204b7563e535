package bench

import (
	"errors"
	"fmt"
)

// ErrNotPositive is wrapped by UsageError when an argument parses but is
// zero or negative.
var ErrNotPositive = errors.New("must be a positive integer")

// ErrVerify is wrapped by --verify failures. They exit 1 without the usage
// line.
var ErrVerify = errors.New("verification failed")

// UsageError reports malformed command-line input. Commands exit with status
// 1 and print their usage line when they see one.
type UsageError struct {
	Arg string // Offending argument, empty for count mismatches
	Err error
}

func (e *UsageError) Error() string {
	if e.Arg == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("invalid argument %q: %v", e.Arg, e.Err)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// IsUsage reports whether err is, or wraps, a *UsageError.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}
