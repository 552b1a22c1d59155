package listview

import (
	"fmt"
	"strings"
)

// MatchMode selects how one filter field constrains records.
type MatchMode string

const (
	MatchSubstring MatchMode = "substring"
	MatchExact     MatchMode = "exact"
	MatchDateRange MatchMode = "dateRange"
)

// Valid reports whether m is a supported mode.
func (m MatchMode) Valid() bool {
	switch m {
	case MatchSubstring, MatchExact, MatchDateRange:
		return true
	default:
		return false
	}
}

// Rule configures one filterable field. Column names the record key and
// defaults to Field. For MatchDateRange, Field holds the start bound and Paired
// the end bound.
type Rule struct {
	Mode   MatchMode `yaml:"mode" json:"mode" validate:"required,oneof=substring exact dateRange"`
	Field  string    `yaml:"field" json:"field" validate:"required"`
	Paired string    `yaml:"paired,omitempty" json:"paired,omitempty" validate:"required_if=Mode dateRange"`
	Column string    `yaml:"column,omitempty" json:"column,omitempty"`
}

// RecordColumn is the record key the rule reads.
func (r Rule) RecordColumn() string {
	if r.Column != "" {
		return r.Column
	}
	return r.Field
}

// Predicate reports whether a record stays visible.
type Predicate func(Record) bool

// Composer turns applied criteria into a predicate according to a fixed set of
// rules.
type Composer struct {
	rules []Rule
}

// NewComposer keeps only the rules whose column is in known. A nil known set
// accepts every column. Unsupported modes are rejected.
func NewComposer(rules []Rule, known map[string]bool) (*Composer, error) {
	kept := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if !rule.Mode.Valid() {
			return nil, fmt.Errorf("listview: field %q: unsupported match mode %q", rule.Field, rule.Mode)
		}
		if known != nil && !known[rule.RecordColumn()] {
			continue
		}
		kept = append(kept, rule)
	}
	return &Composer{rules: kept}, nil
}

// Rules returns the active rules.
func (c *Composer) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

type constraint func(Record) bool

// Build returns the conjunction of every non-empty criterion. Empty fields and
// empty date bounds impose nothing.
func (c *Composer) Build(applied Criteria) Predicate {
	var checks []constraint
	for _, rule := range c.rules {
		column := rule.RecordColumn()
		switch rule.Mode {
		case MatchSubstring:
			needle := strings.ToLower(applied[rule.Field])
			if needle == "" {
				continue
			}
			checks = append(checks, func(r Record) bool {
				v := r.Get(column)
				return !v.IsNull() && strings.Contains(strings.ToLower(v.Text()), needle)
			})
		case MatchExact:
			want := applied[rule.Field]
			if want == "" {
				continue
			}
			checks = append(checks, func(r Record) bool {
				v := r.Get(column)
				return !v.IsNull() && v.Text() == want
			})
		case MatchDateRange:
			start, end := applied[rule.Field], applied[rule.Paired]
			if start == "" && end == "" {
				continue
			}
			checks = append(checks, func(r Record) bool {
				v := r.Get(column)
				if v.IsNull() {
					return false
				}
				day := datePart(v.Text())
				if start != "" && day < start {
					return false
				}
				if end != "" && day > end {
					return false
				}
				return true
			})
		}
	}
	return func(r Record) bool {
		for _, check := range checks {
			if !check(r) {
				return false
			}
		}
		return true
	}
}

// datePart trims timestamps to their YYYY-MM-DD prefix.
func datePart(s string) string {
	if len(s) > len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return s
}

// Filter returns the records accepted by p, in input order.
func Filter(records []Record, p Predicate) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if p == nil || p(r) {
			out = append(out, r)
		}
	}
	return out
}
