package fixture

import (
	"fmt"
	"strings"
)

// Position is the logical level a motor is driven to.
type Position int

const (
	Low Position = iota
	High
)

func (p Position) String() string {
	if p == High {
		return "HIGH"
	}
	return "LOW"
}

// ParsePosition converts "HIGH" or "LOW" (any case) to a Position.
func ParsePosition(s string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return High, nil
	case "LOW":
		return Low, nil
	}
	return Low, fmt.Errorf("unknown position %q", s)
}

// Motor is a gimballed actuator driven by a single digital output pin.
type Motor struct {
	// The BCM pin number. A pin has exactly one Motor for the life of the process.
	Pin int

	// Human readable name, used in logs.
	Name string

	position  Position
	commanded bool
}

// Position returns the last position the motor was commanded to, and whether it was ever commanded.
func (m *Motor) Position() (Position, bool) {
	return m.position, m.commanded
}

func (m *Motor) String() string {
	return fmt.Sprintf("%s (pin %d)", m.Name, m.Pin)
}
