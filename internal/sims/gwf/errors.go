package gwf

import (
	"errors"
	"fmt"

	"github.com/scharlton2/modflowapi/internal/core"
)

var (
	// ErrNotConverged is returned when the solver exhausts its iterations.
	ErrNotConverged = errors.New("gwf: solver did not converge")

	// ErrFinished is returned by Advance once every timestep has run.
	ErrFinished = errors.New("gwf: simulation already finished")
)

// StepError wraps a failure with the timestep it occurred in.
type StepError struct {
	Period int
	Step   int
	Phase  string
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("stress period %d, timestep %d (%s): %v", e.Period+1, e.Step+1, e.Phase, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

func stepError(clock core.Clock, phase string, err error) error {
	return &StepError{Period: clock.Period, Step: clock.Step, Phase: phase, Err: err}
}
