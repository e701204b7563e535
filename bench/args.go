package bench

import (
	"fmt"
	"strconv"
)

// PositiveInts parses exactly want positional arguments as positive base-10
// integers.
func PositiveInts(args []string, want int) ([]int, error) {
	if len(args) != want {
		return nil, &UsageError{Err: fmt.Errorf("expected %d argument(s), got %d", want, len(args))}
	}

	vals := make([]int, want)
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return nil, &UsageError{Arg: arg, Err: err}
		}
		if v <= 0 {
			return nil, &UsageError{Arg: arg, Err: ErrNotPositive}
		}
		vals[i] = v
	}
	return vals, nil
}
