package effect

import (
	"github.com/fogleman/ease"
	"github.com/robmorgan/pifish/utils"
)

// StepsPerSecond is how many discrete levels a fade is broken into per second.
const StepsPerSecond = 10

// Fade moves a value from one level to another over a duration, following an easing curve.
type Fade struct {
	// The easing function to use
	EasingFunc ease.Function

	From     float64
	To       float64
	Duration float64
}

// Step is one point of a fade: the value to apply at a time offset in seconds from the start of the fade.
type Step struct {
	Time  float64
	Value float64
}

// NewFade creates a Fade with an in-out quad curve.
func NewFade(from, to, duration float64) *Fade {
	return &Fade{
		EasingFunc: ease.InOutQuad,
		From:       from,
		To:         to,
		Duration:   duration,
	}
}

// ValueAt returns the value of the fade t seconds after it starts.
func (f *Fade) ValueAt(t float64) float64 {
	if f.Duration <= 0 {
		return f.To
	}
	progress := utils.Clamp(t/f.Duration, 0, 1)
	return f.From + (f.To-f.From)*f.EasingFunc(progress)
}

// Steps samples the fade evenly, StepsPerSecond times a second. The first step is the start level and the last is
// the end level, so there are always at least two.
func (f *Fade) Steps() []Step {
	n := int(f.Duration * StepsPerSecond)
	if n < 1 {
		n = 1
	}

	steps := make([]Step, 0, n+1)
	for i := 0; i <= n; i++ {
		t := f.Duration * float64(i) / float64(n)
		steps = append(steps, Step{Time: t, Value: f.ValueAt(t)})
	}
	return steps
}
