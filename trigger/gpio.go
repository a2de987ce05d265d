package trigger

import (
	"context"
	"time"

	"github.com/robmorgan/pifish/logger"
	"github.com/stianeikeland/go-rpio/v4"
	"k8s.io/utils/clock"
)

// DefaultPollInterval is how often GPIOSource checks for a detected edge.
const DefaultPollInterval = 20 * time.Millisecond

// GPIOSource fires on every rising edge of a motion sensor wired to an input pin with a pull-up. The GPIO memory
// must already be mapped, see fixture.OpenGPIO.
type GPIOSource struct {
	Pin          int
	PollInterval time.Duration
	Clock        clock.WithTicker
}

// NewGPIOSource creates a source for the sensor on pin.
func NewGPIOSource(pin int) *GPIOSource {
	return &GPIOSource{
		Pin:          pin,
		PollInterval: DefaultPollInterval,
		Clock:        clock.RealClock{},
	}
}

func (s *GPIOSource) Listen(ctx context.Context, fire func()) error {
	pin := rpio.Pin(s.Pin)
	pin.Input()
	pin.PullUp()
	pin.Detect(rpio.RiseEdge)
	defer pin.Detect(rpio.NoEdge)

	logger.GetProjectLogger().Infof("Listening for motion on pin %d", s.Pin)

	ticker := s.Clock.NewTicker(s.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
			if pin.EdgeDetected() {
				logger.GetProjectLogger().Debug("Motion detected")
				fire()
			}
		}
	}
}
