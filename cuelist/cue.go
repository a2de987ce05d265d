package cuelist

import (
	"fmt"
	"time"

	"github.com/robmorgan/pifish/audio"
	"github.com/robmorgan/pifish/fixture"
)

// Kind identifies which variant a Cue is.
type Kind int

const (
	KindMotor Kind = iota + 1
	KindSound
	KindVolume
)

func (k Kind) String() string {
	switch k {
	case KindMotor:
		return "MotorCue"
	case KindSound:
		return "SoundCue"
	case KindVolume:
		return "VolumeCue"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Cue is one timed instruction in a show. Only the fields of its Kind are set.
type Cue struct {
	Kind Kind

	// Time is the offset in seconds from the start of the show at which the cue fires.
	Time float64

	// The name or label associated with the cue. Defaults to the Kind's name.
	Label string

	// KindMotor
	Motor    *fixture.Motor
	Position fixture.Position

	// KindSound
	Clip *audio.Clip

	// KindVolume, from 0.0 to 1.0
	Level float64
}

// NewMotorCue moves motor to pos at t seconds.
func NewMotorCue(motor *fixture.Motor, pos fixture.Position, t float64) Cue {
	return Cue{Kind: KindMotor, Time: t, Label: KindMotor.String(), Motor: motor, Position: pos}
}

// NewSoundCue starts clip at t seconds.
func NewSoundCue(clip *audio.Clip, t float64) Cue {
	return Cue{Kind: KindSound, Time: t, Label: KindSound.String(), Clip: clip}
}

// NewVolumeCue sets the master volume to level at t seconds.
func NewVolumeCue(level float64, t float64) Cue {
	return Cue{Kind: KindVolume, Time: t, Label: KindVolume.String(), Level: level}
}

// At returns the cue's offset as a duration.
func (c Cue) At() time.Duration {
	return time.Duration(c.Time * float64(time.Second))
}

// Description is a short human readable summary of what the cue does.
func (c Cue) Description() string {
	switch c.Kind {
	case KindMotor:
		return fmt.Sprintf("Motor [%s] to [%s]", c.Motor.Name, c.Position)
	case KindSound:
		return fmt.Sprintf("Play sound [%s]", c.Clip.Name())
	case KindVolume:
		return fmt.Sprintf("Volume [%.2f]", c.Level)
	}
	return c.Label
}

// Check type checks cues before a run. A cue of an unknown kind, or one missing its payload, is a configuration
// error and nothing is executed.
func Check(cues []Cue) error {
	for i, c := range cues {
		var ok bool
		switch c.Kind {
		case KindMotor:
			ok = c.Motor != nil
		case KindSound:
			ok = c.Clip != nil
		case KindVolume:
			ok = true
		}
		if !ok {
			return fmt.Errorf("%w: cue %d is %s", ErrUnknownCue, i, c.Kind)
		}
	}
	return nil
}
