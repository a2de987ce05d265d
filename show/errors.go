package show

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCues is returned for a document that yields no cues.
	ErrNoCues = errors.New("show has no cues")

	// ErrDuplicatePriority is returned when priority() appears more than once in a document.
	ErrDuplicatePriority = errors.New("priority declared more than once")

	// ErrInvalidPriority is returned when a show's priority, declared or derived from its length, is not positive.
	ErrInvalidPriority = errors.New("priority must be greater than zero")

	// ErrNegativeTime is returned when a cue would fire before the start of the show.
	ErrNegativeTime = errors.New("cue time is negative")

	// ErrInvalidJitter is returned for a jitter() line whose step is not positive.
	ErrInvalidJitter = errors.New("jitter step must be greater than zero")

	// ErrTooManyCues is returned when a jitter() or fade() line would expand to more than MaxExpandedCues cues.
	ErrTooManyCues = errors.New("line expands to too many cues")

	// ErrNegativeDuration is returned for a fade() line with a negative duration.
	ErrNegativeDuration = errors.New("fade duration is negative")

	// ErrInvalidNumber is returned for a number too large to represent.
	ErrInvalidNumber = errors.New("number out of range")
)

// UnresolvedActuatorError is returned when a cue references a motor alias that was not declared earlier in the
// same document.
type UnresolvedActuatorError struct {
	Alias string
}

func (err *UnresolvedActuatorError) Error() string {
	return fmt.Sprintf("motor %q is not declared", err.Alias)
}

// LoadError is returned when a show document cannot be loaded. Line is 0 for problems with the whole document.
type LoadError struct {
	Source string
	Line   int
	Err    error
}

func (err *LoadError) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", err.Source, err.Line, err.Err)
	}
	return fmt.Sprintf("%s: %v", err.Source, err.Err)
}

func (err *LoadError) Unwrap() error {
	return err.Err
}
