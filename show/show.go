package show

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/robmorgan/pifish/cuelist"
)

// Runner plays a cue list to completion.
type Runner interface {
	Execute(ctx context.Context, cues []cuelist.Cue) error
}

// Show is one loaded show document: its cues in time order, how likely it is to be picked, and whether it is
// currently playing.
type Show struct {
	// Source is the path of the document the show was loaded from.
	Source string

	// Cues in ascending time order.
	Cues []cuelist.Cue

	// Priority is the show's selection weight. It defaults to Length.
	Priority float64

	// Length is the time between the first and last cue, in seconds.
	Length float64

	// The show's slice of the catalog's priority range, [RangeMin, RangeMax).
	RangeMin float64
	RangeMax float64

	lock    sync.Mutex
	running atomic.Bool
}

func newShow(source string, cues []cuelist.Cue, priority, length float64) *Show {
	return &Show{
		Source:   source,
		Cues:     cues,
		Priority: priority,
		Length:   length,
	}
}

// Load reads and parses the show document at path.
func Load(path string, rig *Rig) (*Show, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	return Parse(f, path, rig)
}

// Name is the document's file name without its extension.
func (s *Show) Name() string {
	base := filepath.Base(s.Source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Run plays the show. Runs of the same show never overlap; a second call waits for the first to finish.
func (s *Show) Run(ctx context.Context, runner Runner) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.running.Store(true)
	defer s.running.Store(false)

	return runner.Execute(ctx, s.Cues)
}

// IsRunning reports whether the show is playing.
func (s *Show) IsRunning() bool {
	return s.running.Load()
}

// SetPriorityRange assigns the show its slice of the catalog's priority range.
func (s *Show) SetPriorityRange(min, max float64) {
	s.RangeMin = min
	s.RangeMax = max
}

// InRange reports whether value falls in the show's priority range.
func (s *Show) InRange(value float64) bool {
	return value >= s.RangeMin && value < s.RangeMax
}
