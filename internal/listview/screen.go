package listview

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Column describes one table column. Sortable marks headers that expose the
// sort toggle.
type Column struct {
	Key      string `yaml:"key" json:"key" validate:"required"`
	Label    string `yaml:"label" json:"label" validate:"required"`
	Sortable bool   `yaml:"sortable" json:"sortable"`
}

// SummarySpec lists the aggregates shown next to the table.
type SummarySpec struct {
	CountBy []string `yaml:"count_by,omitempty" json:"count_by,omitempty"`
	Sum     []string `yaml:"sum,omitempty" json:"sum,omitempty"`
}

// Screen is the declarative configuration of a list screen.
type Screen struct {
	Name     string            `yaml:"name" json:"name" validate:"required"`
	Title    string            `yaml:"title" json:"title"`
	Columns  []Column          `yaml:"columns" json:"columns" validate:"required,min=1,dive"`
	Filters  []Rule            `yaml:"filters" json:"filters" validate:"dive"`
	Defaults map[string]string `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Summary  SummarySpec       `yaml:"summary,omitempty" json:"summary,omitempty"`
}

// Labels maps column keys to their labels.
func (s Screen) Labels() map[string]string {
	out := make(map[string]string, len(s.Columns))
	for _, c := range s.Columns {
		out[c.Key] = c.Label
	}
	return out
}

// KnownColumns is the set of declared column keys.
func (s Screen) KnownColumns() map[string]bool {
	out := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		out[c.Key] = true
	}
	return out
}

// DefaultsFunc resolves the configured default tokens against loc.
func (s Screen) DefaultsFunc(loc *time.Location) DefaultsFunc {
	tokens := make(map[string]string, len(s.Defaults))
	for k, v := range s.Defaults {
		tokens[k] = v
	}
	return func(now time.Time) Criteria {
		out := make(Criteria, len(s.Filters)+1)
		for _, rule := range s.Filters {
			out[rule.Field] = ""
			if rule.Paired != "" {
				out[rule.Paired] = ""
			}
		}
		for field, token := range tokens {
			out[field] = ResolveDefault(token, now, loc)
		}
		return out
	}
}

// ResolveDefault expands a default token. Supported tokens are "today",
// "today-Nd", "today+Nd" and "month-start"; anything else is returned as is.
func ResolveDefault(token string, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	switch {
	case token == "today":
		return today.Format(DateLayout)
	case token == "month-start":
		return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc).Format(DateLayout)
	case strings.HasPrefix(token, "today") && strings.HasSuffix(token, "d") && len(token) > len("today")+1:
		days, err := strconv.Atoi(token[len("today") : len(token)-1])
		if err != nil {
			return token
		}
		return today.AddDate(0, 0, days).Format(DateLayout)
	default:
		return token
	}
}

// Check performs the structural checks validator tags cannot express.
func (s Screen) Check() error {
	seen := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		if seen[c.Key] {
			return fmt.Errorf("listview: screen %s: duplicate column %q", s.Name, c.Key)
		}
		seen[c.Key] = true
	}
	for _, rule := range s.Filters {
		if !rule.Mode.Valid() {
			return fmt.Errorf("listview: screen %s: field %q: unsupported match mode %q", s.Name, rule.Field, rule.Mode)
		}
		if rule.Mode == MatchDateRange && rule.Paired == "" {
			return fmt.Errorf("listview: screen %s: date range %q needs a paired end field", s.Name, rule.Field)
		}
	}
	return nil
}
