package cuelist

import (
	"errors"
	"fmt"
)

// ErrUnknownCue is returned when a cue list contains a cue the executor cannot run.
var ErrUnknownCue = errors.New("unknown cue")

// DriverError is returned when the hardware fails while running a cue.
type DriverError struct {
	Cue Cue
	Err error
}

func (err *DriverError) Error() string {
	return fmt.Sprintf("running %s at %.3fs: %v", err.Cue.Description(), err.Cue.Time, err.Err)
}

func (err *DriverError) Unwrap() error {
	return err.Err
}
