package catalog

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/robmorgan/pifish/logger"
	"github.com/robmorgan/pifish/show"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// DefaultMaxAttempts bounds how many times Pick redraws a recently played show before it allows a repeat.
const DefaultMaxAttempts = 100

var (
	// ErrNoShows is returned when a catalog is created without any shows.
	ErrNoShows = errors.New("no shows loaded")

	// ErrEmptyCatalog is returned when the shows' priorities add up to nothing.
	ErrEmptyCatalog = errors.New("total priority is zero")
)

// Catalog picks shows at random, weighted by priority, while avoiding the most recently picked ones.
type Catalog struct {
	shows       []*show.Show
	total       float64
	history     *History
	maxAttempts int
	rand        *rand.Rand
	lock        sync.Mutex
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithHistorySize sets how many recent picks are excluded. 0 disables the history.
func WithHistorySize(size int) Option {
	return func(c *Catalog) {
		c.history = NewHistory(size)
	}
}

// WithMaxAttempts sets how many draws Pick makes before allowing a recently played show.
func WithMaxAttempts(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithRand sets the random source used for picks.
func WithRand(r *rand.Rand) Option {
	return func(c *Catalog) {
		c.rand = r
	}
}

// New assigns each show its priority range and creates a catalog over them.
func New(shows []*show.Show, opts ...Option) (*Catalog, error) {
	if len(shows) == 0 {
		return nil, ErrNoShows
	}

	c := &Catalog{
		shows:       shows,
		history:     NewHistory(DefaultHistorySize),
		maxAttempts: DefaultMaxAttempts,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.total = AssignRanges(c.shows)
	if c.total <= 0 {
		return nil, ErrEmptyCatalog
	}
	c.logRanges()
	return c, nil
}

// AssignRanges sorts shows by descending priority and gives each a consecutive slice of [0, total) as wide as its
// priority. Shows with equal priority keep their order. It returns the total priority.
func AssignRanges(shows []*show.Show) float64 {
	slices.SortStableFunc(shows, func(a, b *show.Show) bool {
		return a.Priority > b.Priority
	})

	total := 0.0
	for _, s := range shows {
		s.SetPriorityRange(total, total+s.Priority)
		total += s.Priority
	}
	return total
}

// Pick draws a show. A show in the recent history is redrawn, up to the attempt limit, after which the last draw is
// returned even though it was played recently.
func (c *Catalog) Pick() *show.Show {
	c.lock.Lock()
	defer c.lock.Unlock()

	for attempt := 1; ; attempt++ {
		s := c.draw()
		if !c.history.Contains(s) {
			c.history.Push(s)
			return s
		}
		if attempt >= c.maxAttempts {
			logger.GetProjectLogger().WithField("attempts", attempt).Warnf("Every draw was played recently, repeating [%s]", s.Name())
			c.history.Push(s)
			return s
		}
	}
}

func (c *Catalog) draw() *show.Show {
	value := c.rand.Float64() * c.total
	for _, s := range c.shows {
		if s.InRange(value) {
			return s
		}
	}
	// Only reachable through floating point rounding at the top of the range.
	return c.shows[len(c.shows)-1]
}

// Shows returns the catalog's shows in range order.
func (c *Catalog) Shows() []*show.Show {
	return append([]*show.Show(nil), c.shows...)
}

// Total is the sum of every show's priority.
func (c *Catalog) Total() float64 {
	return c.total
}

// Recent returns the names of the recently picked shows, oldest first.
func (c *Catalog) Recent() []string {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.history.Names()
}

// Tally is how many times a show was picked in a simulation.
type Tally struct {
	Show  *show.Show
	Count int
}

// Simulate makes n picks and counts how often each show came up. Picks go through the history like real ones.
func (c *Catalog) Simulate(n int) []Tally {
	counts := make(map[*show.Show]int, len(c.shows))
	for i := 0; i < n; i++ {
		counts[c.Pick()]++
	}

	tallies := make([]Tally, 0, len(c.shows))
	for _, s := range c.shows {
		tallies = append(tallies, Tally{Show: s, Count: counts[s]})
	}
	return tallies
}

func (c *Catalog) logRanges() {
	logger := logger.GetProjectLogger()
	for _, s := range c.shows {
		logger.WithFields(logrus.Fields{
			"min": s.RangeMin,
			"max": s.RangeMax,
		}).Infof("Priority range for [%s]", s.Name())
	}
	logger.Infof("Total priority range: %f", c.total)
}
