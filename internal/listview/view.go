package listview

import (
	"time"
)

// State is the persisted form of a view.
type State struct {
	Sort    SortState `json:"sort"`
	Draft   Criteria  `json:"draft"`
	Applied Criteria  `json:"applied"`
}

// Options tune a View.
type Options struct {
	Location   *time.Location
	Clock      func() time.Time
	Comparator *Comparator
}

// View composes the filter state, predicate composer and sorter of one screen.
// Results are derived on every call; nothing is cached.
type View struct {
	screen   Screen
	sorter   *Sorter
	filters  *FilterState
	composer *Composer
}

// NewView creates a fresh, unsorted view with default criteria.
func NewView(screen Screen, opts Options) (*View, error) {
	composer, err := NewComposer(screen.Filters, screen.KnownColumns())
	if err != nil {
		return nil, err
	}
	return &View{
		screen:   screen,
		sorter:   NewSorter(opts.Comparator),
		filters:  NewFilterState(screen.DefaultsFunc(opts.Location), opts.Clock),
		composer: composer,
	}, nil
}

// Screen returns the configuration the view was built from.
func (v *View) Screen() Screen { return v.screen }

// Sorter exposes the sort controller.
func (v *View) Sorter() *Sorter { return v.sorter }

// Filters exposes the filter-state controller.
func (v *View) Filters() *FilterState { return v.filters }

// Snapshot captures the mutable state.
func (v *View) Snapshot() State {
	return State{
		Sort:    v.sorter.State(),
		Draft:   v.filters.Draft(),
		Applied: v.filters.Applied(),
	}
}

// Restore loads a snapshot taken from a view of the same screen.
func (v *View) Restore(s State) {
	v.sorter.Restore(s.Sort)
	v.filters.Restore(s.Draft, s.Applied)
}

// Predicate builds the predicate for the applied criteria.
func (v *View) Predicate() Predicate {
	return v.composer.Build(v.filters.Applied())
}

// Filtered returns records accepted by the applied criteria in input order.
func (v *View) Filtered(records []Record) []Record {
	return Filter(records, v.Predicate())
}

// Rows returns the visible rows: filtered, then sorted.
func (v *View) Rows(records []Record) []Record {
	return v.sorter.SortData(v.Filtered(records))
}

// StatusText describes the active sort using the screen labels.
func (v *View) StatusText() (string, bool) {
	return v.sorter.StatusText(v.screen.Labels())
}

// Summary aggregates the filtered rows. Sorting never affects it.
func (v *View) Summary(records []Record) Summary {
	return Summarize(v.Filtered(records), v.screen.Summary)
}

// Summary holds per-category counts and numeric totals.
type Summary struct {
	Total  int                       `json:"total"`
	Counts map[string]map[string]int `json:"counts,omitempty"`
	Sums   map[string]float64        `json:"sums,omitempty"`
}

// Summarize counts rows per value of each CountBy column and sums each Sum
// column. Null cells are counted under "" and skipped in sums.
func Summarize(records []Record, spec SummarySpec) Summary {
	s := Summary{Total: len(records)}
	if len(spec.CountBy) > 0 {
		s.Counts = make(map[string]map[string]int, len(spec.CountBy))
		for _, key := range spec.CountBy {
			s.Counts[key] = map[string]int{}
		}
	}
	if len(spec.Sum) > 0 {
		s.Sums = make(map[string]float64, len(spec.Sum))
		for _, key := range spec.Sum {
			s.Sums[key] = 0
		}
	}
	for _, r := range records {
		for _, key := range spec.CountBy {
			s.Counts[key][r.Get(key).Text()]++
		}
		for _, key := range spec.Sum {
			if n, ok := r.Get(key).Float(); ok {
				s.Sums[key] += n
			}
		}
	}
	return s
}

// Page returns the 1-based page of rows. perPage <= 0 returns every row.
func Page(rows []Record, page, perPage int) []Record {
	if perPage <= 0 {
		return rows
	}
	if page < 1 {
		page = 1
	}
	pages := len(rows) / perPage
	if len(rows)%perPage != 0 {
		pages++
	}
	if page > pages {
		return []Record{}
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
