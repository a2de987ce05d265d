package catalog

import "github.com/robmorgan/pifish/show"

// DefaultHistorySize is how many recent picks are excluded from the next pick.
const DefaultHistorySize = 10

// History is a bounded FIFO of recently picked shows. The oldest entry is evicted once the history is full. A
// History with a size of 0 or less remembers nothing.
type History struct {
	size    int
	entries []*show.Show
}

// NewHistory creates an empty history holding up to size shows.
func NewHistory(size int) *History {
	return &History{size: size}
}

// Push records s as the most recent pick.
func (h *History) Push(s *show.Show) {
	if h.size <= 0 {
		return
	}
	h.entries = append(h.entries, s)
	if len(h.entries) > h.size {
		h.entries = h.entries[len(h.entries)-h.size:]
	}
}

// Contains reports whether s is one of the recent picks.
func (h *History) Contains(s *show.Show) bool {
	for _, entry := range h.entries {
		if entry == s {
			return true
		}
	}
	return false
}

// Len returns the number of shows in the history.
func (h *History) Len() int {
	return len(h.entries)
}

// Names returns the names of the shows in the history, oldest first.
func (h *History) Names() []string {
	names := make([]string, 0, len(h.entries))
	for _, entry := range h.entries {
		names = append(names, entry.Name())
	}
	return names
}
