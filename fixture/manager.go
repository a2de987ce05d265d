package fixture

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/robmorgan/pifish/logger"
	"github.com/sirupsen/logrus"
)

// Manager owns every motor in the process, keyed by pin.
type Manager struct {
	driver Driver
	motors map[int]*Motor
	lock   sync.Mutex
}

// NewManager creates a motor manager on top of the given driver.
func NewManager(driver Driver) *Manager {
	return &Manager{
		driver: driver,
		motors: make(map[int]*Motor),
	}
}

// Motor returns the motor on pin, configuring the pin the first time it is requested. Requesting a pin that is
// already known returns the existing motor and keeps its original name.
func (m *Manager) Motor(pin int, name string) (*Motor, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if motor, ok := m.motors[pin]; ok {
		return motor, nil
	}
	if pin < 0 {
		return nil, fmt.Errorf("invalid pin %d for motor %q", pin, name)
	}
	if err := m.driver.Configure(pin); err != nil {
		return nil, fmt.Errorf("configuring pin %d for motor %q: %w", pin, name, err)
	}

	motor := &Motor{Pin: pin, Name: name}
	m.motors[pin] = motor

	logger.GetProjectLogger().WithFields(logrus.Fields{"pin": pin, "motor": name}).Debug("Motor configured")
	return motor, nil
}

// Set drives the motor to pos.
func (m *Manager) Set(motor *Motor, pos Position) error {
	if err := m.driver.SetLevel(motor.Pin, pos); err != nil {
		return fmt.Errorf("setting motor %s to %s: %w", motor, pos, err)
	}
	motor.position = pos
	motor.commanded = true
	return nil
}

// Motors returns all known motors ordered by pin.
func (m *Manager) Motors() []*Motor {
	m.lock.Lock()
	defer m.lock.Unlock()

	out := make([]*Motor, 0, len(m.motors))
	for _, motor := range m.motors {
		out = append(out, motor)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pin < out[j].Pin })
	return out
}

// AllLow forces every known motor to its LOW position. Every motor is attempted even if some fail.
func (m *Manager) AllLow() error {
	var errs []error
	for _, motor := range m.Motors() {
		if err := m.Set(motor, Low); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close downs every motor and releases the driver.
func (m *Manager) Close() error {
	logger := logger.GetProjectLogger()
	for _, motor := range m.Motors() {
		logger.Infof("Downing motor [%s]", motor.Name)
	}
	lowErr := m.AllLow()
	return errors.Join(lowErr, m.driver.Close())
}
