package listview

import "time"

// Criteria maps filter field names to their current input value.
type Criteria map[string]string

// Clone returns an independent copy.
func (c Criteria) Clone() Criteria {
	out := make(Criteria, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// DefaultsFunc builds the default criteria for a screen. It is evaluated at
// creation and again on every reset, so date defaults track the current day.
type DefaultsFunc func(now time.Time) Criteria

// FilterState holds the draft criteria bound to the form and the applied
// criteria that actually filter the list. Only Search and Reset touch applied.
type FilterState struct {
	defaults DefaultsFunc
	clock    func() time.Time
	draft    Criteria
	applied  Criteria
}

// NewFilterState initialises draft and applied from defaults. A nil clock uses
// time.Now.
func NewFilterState(defaults DefaultsFunc, clock func() time.Time) *FilterState {
	if defaults == nil {
		defaults = func(time.Time) Criteria { return Criteria{} }
	}
	if clock == nil {
		clock = time.Now
	}
	f := &FilterState{defaults: defaults, clock: clock}
	f.Reset()
	return f
}

// Draft returns a copy of the draft criteria.
func (f *FilterState) Draft() Criteria { return f.draft.Clone() }

// Applied returns a copy of the applied criteria.
func (f *FilterState) Applied() Criteria { return f.applied.Clone() }

// SetDraft replaces one draft field. A fresh map is produced so earlier
// snapshots are never mutated.
func (f *FilterState) SetDraft(field, value string) {
	next := f.draft.Clone()
	next[field] = value
	f.draft = next
}

// SetDraftMany replaces several draft fields at once.
func (f *FilterState) SetDraftMany(values map[string]string) {
	next := f.draft.Clone()
	for field, value := range values {
		next[field] = value
	}
	f.draft = next
}

// Search copies draft into applied.
func (f *FilterState) Search() {
	f.applied = f.draft.Clone()
}

// Reset recomputes the defaults and assigns them to both copies.
func (f *FilterState) Reset() {
	defaults := f.defaults(f.clock())
	if defaults == nil {
		defaults = Criteria{}
	}
	f.draft = defaults.Clone()
	f.applied = defaults.Clone()
}

// Restore loads previously persisted criteria.
func (f *FilterState) Restore(draft, applied Criteria) {
	if draft != nil {
		f.draft = draft.Clone()
	}
	if applied != nil {
		f.applied = applied.Clone()
	}
}
