package fixture

import (
	"sync"
)

// Driver is the digital output layer the motors are wired to.
type Driver interface {
	// Configure prepares pin as an output.
	Configure(pin int) error

	// SetLevel drives pin to pos.
	SetLevel(pin int, pos Position) error

	// Close releases the driver.
	Close() error
}

// Command is a single level change recorded by MockDriver.
type Command struct {
	Pin      int
	Position Position
}

// MockDriver records pin commands in memory. It is used for dry runs and tests.
type MockDriver struct {
	// Fail makes SetLevel on the given pins return the mapped error.
	Fail map[int]error

	configured []int
	commands   []Command
	closed     bool
	lock       sync.Mutex
}

// NewMockDriver creates an empty MockDriver.
func NewMockDriver() *MockDriver {
	return &MockDriver{Fail: make(map[int]error)}
}

func (d *MockDriver) Configure(pin int) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.configured = append(d.configured, pin)
	return nil
}

func (d *MockDriver) SetLevel(pin int, pos Position) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	if err := d.Fail[pin]; err != nil {
		return err
	}
	d.commands = append(d.commands, Command{Pin: pin, Position: pos})
	return nil
}

func (d *MockDriver) Close() error {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.closed = true
	return nil
}

// Configured returns the pins configured so far, in order.
func (d *MockDriver) Configured() []int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]int(nil), d.configured...)
}

// Commands returns every level change so far, in order.
func (d *MockDriver) Commands() []Command {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]Command(nil), d.commands...)
}

// Last returns the last level commanded on pin.
func (d *MockDriver) Last(pin int) (Position, bool) {
	d.lock.Lock()
	defer d.lock.Unlock()
	for i := len(d.commands) - 1; i >= 0; i-- {
		if d.commands[i].Pin == pin {
			return d.commands[i].Position, true
		}
	}
	return Low, false
}

// Closed reports whether Close was called.
func (d *MockDriver) Closed() bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.closed
}
