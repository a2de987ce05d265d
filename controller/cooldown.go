package controller

import (
	"sync"
	"time"

	"github.com/robmorgan/pifish/utils"
)

// Cooldown is the pause enforced after every show. It grows by a fixed step each time a show completes and shrinks
// by a smaller step on every relax tick, always staying within [min, max].
type Cooldown struct {
	min      float64
	max      float64
	increase float64
	decrease float64

	value float64
	lock  sync.Mutex
}

// NewCooldown creates a cooldown starting at its floor. All values are in seconds.
func NewCooldown(min, max, increase, decrease float64) *Cooldown {
	return &Cooldown{
		min:      min,
		max:      max,
		increase: increase,
		decrease: decrease,
		value:    min,
	}
}

// Value returns the current cooldown in seconds.
func (c *Cooldown) Value() float64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.value
}

// Duration returns the current cooldown.
func (c *Cooldown) Duration() time.Duration {
	return time.Duration(c.Value() * float64(time.Second))
}

// Increase lengthens the cooldown by one step, up to the ceiling, and returns the new value.
func (c *Cooldown) Increase() float64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.value = utils.Clamp(c.value+c.increase, c.min, c.max)
	return c.value
}

// Decrease shortens the cooldown by one step, down to the floor, and returns the new value.
func (c *Cooldown) Decrease() float64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.value = utils.Clamp(c.value-c.decrease, c.min, c.max)
	return c.value
}
