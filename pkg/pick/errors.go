package pick

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every sample-size validation failure.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError indicates a sample size outside [0, population size].
type InvalidArgumentError struct {
	Name  string
	Value int
	Max   int
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s must be in [0, %d], got %d", e.Name, e.Max, e.Value)
}

// Is reports whether target is ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func validateSize(n, size int) error {
	if n < 0 || n > size {
		return &InvalidArgumentError{Name: "n", Value: n, Max: size}
	}
	return nil
}
