package cuelist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/robmorgan/pifish/audio"
	"github.com/robmorgan/pifish/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppingClock moves forward by step every time it is read, so a polling loop always makes progress.
type steppingClock struct {
	now  time.Time
	step time.Duration
	lock sync.Mutex
}

func newSteppingClock(step time.Duration) *steppingClock {
	return &steppingClock{now: time.Unix(0, 0), step: step}
}

func (c *steppingClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

func (c *steppingClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

func (c *steppingClock) advance(d time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = c.now.Add(d)
}

// timedDriver records the clock reading of every level change.
type timedDriver struct {
	*fixture.MockDriver
	clock *steppingClock
	at    map[int][]time.Time
}

func (d *timedDriver) SetLevel(pin int, pos fixture.Position) error {
	d.at[pin] = append(d.at[pin], d.clock.Now())
	return d.MockDriver.SetLevel(pin, pos)
}

func newMotor(t *testing.T, fm *fixture.Manager, pin int, name string) *fixture.Motor {
	motor, err := fm.Motor(pin, name)
	require.NoError(t, err)
	return motor
}

func TestExecuteOrdersByTime(t *testing.T) {
	t.Parallel()

	driver := fixture.NewMockDriver()
	fm := fixture.NewManager(driver)
	mouth := newMotor(t, fm, 23, "Mouth")
	tail := newMotor(t, fm, 24, "Tail")

	cues := []Cue{
		NewMotorCue(mouth, fixture.Low, 0.5),
		NewMotorCue(tail, fixture.High, 0.05),
		NewMotorCue(mouth, fixture.High, 0.05),
		NewMotorCue(tail, fixture.Low, 3.0),
	}

	exec := NewExecutor(newSteppingClock(time.Millisecond), fm, audio.NewMockOutput())
	require.NoError(t, exec.Execute(context.Background(), cues))

	expected := []fixture.Command{
		{Pin: 24, Position: fixture.High},
		{Pin: 23, Position: fixture.High},
		{Pin: 23, Position: fixture.Low},
		{Pin: 24, Position: fixture.Low},
		// safety reset
		{Pin: 23, Position: fixture.Low},
		{Pin: 24, Position: fixture.Low},
	}
	assert.Equal(t, expected, driver.Commands())
}

func TestExecuteResetsMotorsLow(t *testing.T) {
	t.Parallel()

	driver := fixture.NewMockDriver()
	fm := fixture.NewManager(driver)
	body := newMotor(t, fm, 18, "Body")
	mouth := newMotor(t, fm, 23, "Mouth")

	cues := []Cue{
		NewMotorCue(body, fixture.High, 0.0),
		NewMotorCue(mouth, fixture.High, 0.2),
	}

	exec := NewExecutor(newSteppingClock(time.Millisecond), fm, audio.NewMockOutput())
	require.NoError(t, exec.Execute(context.Background(), cues))

	for _, motor := range fm.Motors() {
		pos, commanded := motor.Position()
		require.True(t, commanded)
		require.Equal(t, fixture.Low, pos, motor.Name)
	}
}

func TestExecuteCompensatesForSoundLatency(t *testing.T) {
	t.Parallel()

	cl := newSteppingClock(time.Millisecond)
	driver := &timedDriver{MockDriver: fixture.NewMockDriver(), clock: cl, at: map[int][]time.Time{}}
	fm := fixture.NewManager(driver)
	mouth := newMotor(t, fm, 23, "Mouth")

	out := audio.NewMockOutput()
	out.PlayHook = func(*audio.Clip) { cl.advance(2 * time.Second) }

	start := cl.Now()
	cues := []Cue{
		NewSoundCue(&audio.Clip{Path: "/sounds/song.wav"}, 1.0),
		NewMotorCue(mouth, fixture.High, 1.5),
	}

	exec := NewExecutor(cl, fm, out)
	require.NoError(t, exec.Execute(context.Background(), cues))

	require.Equal(t, []string{"/sounds/song.wav"}, out.Played())
	require.NotEmpty(t, driver.at[23])

	// 1.0s until the sound, 2.0s spent starting it, then 0.5s more for the motor
	fired := driver.at[23][0].Sub(start)
	assert.GreaterOrEqual(t, fired, 3500*time.Millisecond)
	assert.Less(t, fired, 3600*time.Millisecond)
}

func TestExecuteSetsVolume(t *testing.T) {
	t.Parallel()

	fm := fixture.NewManager(fixture.NewMockDriver())
	out := audio.NewMockOutput()

	cues := []Cue{
		NewVolumeCue(0.25, 0.3),
		NewVolumeCue(1.0, 0.1),
	}

	exec := NewExecutor(newSteppingClock(time.Millisecond), fm, out)
	require.NoError(t, exec.Execute(context.Background(), cues))
	assert.Equal(t, []float64{1.0, 0.25}, out.Volumes())
}

func TestExecuteRejectsUnknownCue(t *testing.T) {
	t.Parallel()

	driver := fixture.NewMockDriver()
	fm := fixture.NewManager(driver)
	mouth := newMotor(t, fm, 23, "Mouth")

	testCases := [][]Cue{
		{NewMotorCue(mouth, fixture.High, 0), {Kind: Kind(42), Time: 1}},
		{{Kind: KindMotor, Time: 0}},
		{{Kind: KindSound, Time: 0}},
	}

	exec := NewExecutor(newSteppingClock(time.Millisecond), fm, audio.NewMockOutput())
	for _, cues := range testCases {
		err := exec.Execute(context.Background(), cues)
		require.ErrorIs(t, err, ErrUnknownCue)
	}

	// nothing ran
	assert.Empty(t, driver.Commands())
}

func TestExecuteStopsOnDriverError(t *testing.T) {
	t.Parallel()

	driver := fixture.NewMockDriver()
	fm := fixture.NewManager(driver)
	body := newMotor(t, fm, 18, "Body")
	mouth := newMotor(t, fm, 23, "Mouth")

	boom := errors.New("pin stuck")
	driver.Fail[23] = boom

	cues := []Cue{
		NewMotorCue(body, fixture.High, 0.0),
		NewMotorCue(mouth, fixture.High, 0.1),
		NewMotorCue(body, fixture.Low, 0.2),
	}

	exec := NewExecutor(newSteppingClock(time.Millisecond), fm, audio.NewMockOutput())
	err := exec.Execute(context.Background(), cues)

	var driverErr *DriverError
	require.ErrorAs(t, err, &driverErr)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, mouth, driverErr.Cue.Motor)

	// the body was still reset
	last, _ := driver.Last(18)
	assert.Equal(t, fixture.Low, last)
}

func TestExecuteHonoursCancellation(t *testing.T) {
	t.Parallel()

	driver := fixture.NewMockDriver()
	fm := fixture.NewManager(driver)
	body := newMotor(t, fm, 18, "Body")
	require.NoError(t, fm.Set(body, fixture.High))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := NewExecutor(newSteppingClock(time.Millisecond), fm, audio.NewMockOutput())
	err := exec.Execute(ctx, []Cue{NewMotorCue(body, fixture.High, 10)})
	require.ErrorIs(t, err, context.Canceled)

	pos, _ := body.Position()
	assert.Equal(t, fixture.Low, pos)
}

func TestPollInterval(t *testing.T) {
	t.Parallel()

	fm := fixture.NewManager(fixture.NewMockDriver())
	out := audio.NewMockOutput()

	exec := NewExecutor(newSteppingClock(10*time.Millisecond), fm, out)
	exec.SetPollInterval(time.Microsecond)
	require.NoError(t, exec.Execute(context.Background(), []Cue{NewVolumeCue(0.5, 0.05)}))
	assert.Equal(t, []float64{0.5}, out.Volumes())
}
