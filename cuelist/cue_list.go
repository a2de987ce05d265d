package cuelist

import "golang.org/x/exp/slices"

// CueList stores a time ordered queue of cues for one playback.
type CueList struct {
	cues []Cue
}

// NewCueList copies and sorts cues by time. Cues at the same time keep their original order.
func NewCueList(cues []Cue) *CueList {
	sorted := make([]Cue, len(cues))
	copy(sorted, cues)
	Sort(sorted)
	return &CueList{cues: sorted}
}

// Sort orders cues by time in place, keeping the original order of ties.
func Sort(cues []Cue) {
	slices.SortStableFunc(cues, func(a, b Cue) bool { return a.Time < b.Time })
}

// Len returns the number of cues left.
func (cl *CueList) Len() int {
	return len(cl.cues)
}

// Peek returns the next cue without removing it.
func (cl *CueList) Peek() (Cue, bool) {
	if len(cl.cues) == 0 {
		return Cue{}, false
	}
	return cl.cues[0], true
}

func (cl *CueList) deQueueNextCue() (Cue, bool) {
	next, ok := cl.Peek()
	if ok {
		cl.cues = cl.cues[1:]
	}
	return next, ok
}
