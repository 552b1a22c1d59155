package listview

import (
	"fmt"
	"slices"
)

// SortState is the active single-column sort. An empty Key means unsorted.
type SortState struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Active reports whether a column is selected.
func (s SortState) Active() bool { return s.Key != "" }

// Sorter owns the sort state of one view.
type Sorter struct {
	state      SortState
	comparator *Comparator
}

// NewSorter returns an unsorted controller using comparator c.
func NewSorter(c *Comparator) *Sorter {
	if c == nil {
		c = NewComparator(DefaultLocale)
	}
	return &Sorter{state: SortState{Direction: Asc}, comparator: c}
}

// State returns the current selection.
func (s *Sorter) State() SortState { return s.state }

// Restore replaces the selection, normalising unknown directions to asc.
func (s *Sorter) Restore(state SortState) {
	if !state.Direction.Valid() {
		state.Direction = Asc
	}
	s.state = state
}

// Toggle cycles key through asc, desc and unsorted. Selecting a different key
// always starts at asc.
func (s *Sorter) Toggle(key string) {
	switch {
	case s.state.Key != key:
		s.state = SortState{Key: key, Direction: Asc}
	case s.state.Direction == Asc:
		s.state.Direction = Desc
	default:
		s.Reset()
	}
}

// Reset clears the selection.
func (s *Sorter) Reset() {
	s.state = SortState{Direction: Asc}
}

// SortData returns a new, stably sorted slice. The input is never reordered.
func (s *Sorter) SortData(records []Record) []Record {
	out := slices.Clone(records)
	if out == nil {
		out = []Record{}
	}
	if !s.state.Active() {
		return out
	}
	key, dir := s.state.Key, s.state.Direction
	slices.SortStableFunc(out, func(a, b Record) int {
		return s.comparator.Compare(a, b, key, dir)
	})
	return out
}

// StatusText describes the active sort for a badge. It reports false when
// unsorted. Columns without a label are described by their key.
func (s *Sorter) StatusText(labels map[string]string) (string, bool) {
	if !s.state.Active() {
		return "", false
	}
	label := labels[s.state.Key]
	if label == "" {
		label = s.state.Key
	}
	return fmt.Sprintf("Sorted by %s %s", label, s.state.Direction.Label()), true
}
