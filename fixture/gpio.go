package fixture

import (
	"fmt"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/stianeikeland/go-rpio/v4"
)

// GPIODriver drives Raspberry Pi GPIO pins through /dev/gpiomem.
type GPIODriver struct {
	pins map[int]rpio.Pin
}

// OpenGPIO maps the GPIO registers. It must succeed before any GPIO pin, input or output, is used.
func OpenGPIO() (*GPIODriver, error) {
	if err := rpio.Open(); err != nil {
		return nil, errors.WithStackTrace(err)
	}
	return &GPIODriver{pins: make(map[int]rpio.Pin)}, nil
}

func (d *GPIODriver) Configure(pin int) error {
	p := rpio.Pin(pin)
	p.Output()
	p.PullUp()
	d.pins[pin] = p
	return nil
}

func (d *GPIODriver) SetLevel(pin int, pos Position) error {
	p, ok := d.pins[pin]
	if !ok {
		return errors.WithStackTrace(&UnconfiguredPinError{Pin: pin})
	}
	if pos == High {
		p.High()
	} else {
		p.Low()
	}
	return nil
}

func (d *GPIODriver) Close() error {
	return rpio.Close()
}

// UnconfiguredPinError is returned when a level is set on a pin that was never configured as an output.
type UnconfiguredPinError struct {
	Pin int
}

func (err *UnconfiguredPinError) Error() string {
	return fmt.Sprintf("pin %d is not configured as an output", err.Pin)
}
