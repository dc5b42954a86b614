package sim

import (
	"errors"
	"fmt"
)

// ErrStopped indicates a run was interrupted before its last step.
var ErrStopped = errors.New("sim: run stopped")

// FrameError wraps an error with the tick it happened on.
type FrameError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
