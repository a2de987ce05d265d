package cuelist

import (
	"context"
	"time"

	"github.com/robmorgan/pifish/audio"
	"github.com/robmorgan/pifish/fixture"
	"github.com/robmorgan/pifish/logger"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// Executor replays a cue list against the clock.
//
// The executor polls the clock without sleeping unless a poll interval is set, trading CPU for the lowest possible
// latency between a cue's time and when it fires. Time spent starting a sound is added to the schedule of every
// later cue, so motors stay in step with the audio rather than the wall clock.
type Executor struct {
	clock    clock.PassiveClock
	fixtures *fixture.Manager
	audio    audio.Output
	poll     time.Duration
}

// NewExecutor creates an Executor driving the given motors and audio output.
func NewExecutor(cl clock.PassiveClock, fm *fixture.Manager, out audio.Output) *Executor {
	return &Executor{
		clock:    cl,
		fixtures: fm,
		audio:    out,
	}
}

// SetPollInterval makes the executor sleep d between clock checks. Zero busy-polls.
func (e *Executor) SetPollInterval(d time.Duration) {
	e.poll = d
}

// Execute runs cues in time order and returns when the last one has fired. Every motor is driven LOW before it
// returns, including when a cue fails or ctx is cancelled.
func (e *Executor) Execute(ctx context.Context, cues []Cue) (err error) {
	if err := Check(cues); err != nil {
		return err
	}

	logger := logger.GetProjectLogger()
	cl := NewCueList(cues)

	defer func() {
		if resetErr := e.fixtures.AllLow(); resetErr != nil {
			logger.WithError(resetErr).Error("Failed to reset motors after run")
			if err == nil {
				err = resetErr
			}
		}
	}()

	start := e.clock.Now()
	var drift time.Duration

	for cl.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		next, _ := cl.Peek()
		elapsed := e.clock.Since(start)
		if elapsed < next.At()+drift {
			if e.poll > 0 {
				time.Sleep(e.poll)
			}
			continue
		}

		cl.deQueueNextCue()
		logger.WithFields(logrus.Fields{"elapsed": elapsed.Seconds(), "drift": drift.Seconds()}).
			Infof("Running cmd [%s]", next.Description())

		cost, err := e.run(next)
		if err != nil {
			return &DriverError{Cue: next, Err: err}
		}
		drift += cost
	}

	return nil
}

// run is the single dispatch point for cue kinds. It returns the latency to add to later cues.
func (e *Executor) run(c Cue) (time.Duration, error) {
	switch c.Kind {
	case KindMotor:
		return 0, e.fixtures.Set(c.Motor, c.Position)
	case KindSound:
		before := e.clock.Now()
		err := e.audio.Play(c.Clip)
		return e.clock.Since(before), err
	case KindVolume:
		return 0, e.audio.SetMasterVolume(c.Level)
	}
	return 0, ErrUnknownCue
}
