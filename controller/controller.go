package controller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/pifish/logger"
	"github.com/robmorgan/pifish/metrics"
	"github.com/robmorgan/pifish/show"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// State is what the controller is doing.
type State int

const (
	// Idle means the next trigger will start a show.
	Idle State = iota
	// Running means a show or its cooldown is in progress and triggers are dropped.
	Running
)

func (s State) String() string {
	if s == Running {
		return "Running"
	}
	return "Idle"
}

// Picker chooses the next show to play.
type Picker interface {
	Pick() *show.Show
}

// Snapshot is a point in time view of the controller.
type Snapshot struct {
	State     State
	Current   string
	SleepTime float64
	Accepted  int64
	Dropped   int64
}

// Controller turns triggers into shows. At most one show plays at a time, and the show is followed by its cooldown
// before another trigger is accepted. Triggers that arrive in the meantime are dropped, not queued.
type Controller struct {
	picker        Picker
	runner        show.Runner
	clock         clock.Clock
	cooldown      *Cooldown
	relaxInterval time.Duration
	metrics       *metrics.Manager

	// Held from an accepted trigger until the end of the cooldown.
	lock sync.Mutex
	wg   sync.WaitGroup

	running  atomic.Bool
	current  atomic.Pointer[show.Show]
	accepted atomic.Int64
	dropped  atomic.Int64
}

// Option configures a Controller.
type Option func(*Controller)

// WithMetrics records trigger and show metrics on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// New creates a controller. relaxInterval is how often Run shortens the cooldown.
func New(picker Picker, runner show.Runner, clock clock.Clock, cooldown *Cooldown, relaxInterval time.Duration, opts ...Option) *Controller {
	c := &Controller{
		picker:        picker,
		runner:        runner,
		clock:         clock,
		cooldown:      cooldown,
		relaxInterval: relaxInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.metrics.SetCooldown(cooldown.Value())
	return c
}

// Trigger starts the next show in the background if the controller is idle and ctx is not done. It reports whether
// the trigger was accepted.
func (c *Controller) Trigger(ctx context.Context) bool {
	if ctx.Err() != nil {
		c.dropped.Add(1)
		c.metrics.TriggerDropped()
		logger.GetProjectLogger().Info("Shutting down, ignoring trigger")
		return false
	}
	if !c.lock.TryLock() {
		c.dropped.Add(1)
		c.metrics.TriggerDropped()
		logger.GetProjectLogger().Info("Unable to acquire lock")
		return false
	}

	c.running.Store(true)
	c.accepted.Add(1)
	c.metrics.TriggerAccepted()

	c.wg.Add(1)
	go c.runNext(ctx)
	return true
}

func (c *Controller) runNext(ctx context.Context) {
	defer c.wg.Done()
	defer c.lock.Unlock()
	defer c.running.Store(false)
	defer errors.Recover(func(cause error) {
		logger.GetProjectLogger().WithError(cause).Error("Show panicked")
	})

	s := c.picker.Pick()
	logger := logger.GetProjectLogger().WithFields(logrus.Fields{
		"show":   s.Name(),
		"run_id": uuid.NewString(),
	})

	logger.Infof("Running [%s]", s.Source)
	start := c.clock.Now()
	if err := c.play(ctx, s); err != nil {
		logger.WithError(err).Error("Show failed")
		c.metrics.ShowFailed(s.Name())
		return
	}
	c.metrics.ShowCompleted(s.Name(), c.clock.Since(start))

	sleep := c.cooldown.Duration()
	logger.Infof("Sleeping [%f]", sleep.Seconds())
	select {
	case <-ctx.Done():
		return
	case <-c.clock.After(sleep):
	}
	logger.Info("Done sleeping")

	c.metrics.SetCooldown(c.cooldown.Increase())
}

func (c *Controller) play(ctx context.Context, s *show.Show) error {
	c.current.Store(s)
	defer c.current.Store(nil)
	return s.Run(ctx, c.runner)
}

// Run shortens the cooldown every relax interval until ctx is done. A relax tick waits for any show and cooldown in
// progress to finish first.
func (c *Controller) Run(ctx context.Context) error {
	for {
		c.relax()

		select {
		case <-ctx.Done():
			return nil
		case <-c.clock.After(c.relaxInterval):
		}
	}
}

func (c *Controller) relax() {
	c.lock.Lock()
	c.lock.Unlock() //nolint:staticcheck // only waits for the run path

	value := c.cooldown.Decrease()
	c.metrics.SetCooldown(value)
	logger.GetProjectLogger().Debugf("Sleep time decreased to [%f]", value)
}

// Wait blocks until every accepted trigger has finished its show and cooldown.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Snapshot returns the controller's current state.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		State:     Idle,
		SleepTime: c.cooldown.Value(),
		Accepted:  c.accepted.Load(),
		Dropped:   c.dropped.Load(),
	}
	if c.running.Load() {
		snap.State = Running
	}
	if s := c.current.Load(); s != nil {
		snap.Current = s.Name()
	}
	return snap
}
