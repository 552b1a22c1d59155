package listview

import (
	"cmp"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is the order applied to non-null values.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == Asc || d == Desc
}

// Label renders the direction for status badges.
func (d Direction) Label() string {
	if d == Desc {
		return "descending"
	}
	return "ascending"
}

// DefaultLocale orders the mixed Hangul and Latin text found in freight data.
var DefaultLocale = language.Korean

// Comparator compares two records on one column. It owns a collator and is not
// safe for concurrent use.
type Comparator struct {
	collator *collate.Collator
}

// NewComparator builds a case-insensitive comparator for the given locale.
func NewComparator(tag language.Tag) *Comparator {
	return &Comparator{collator: collate.New(tag, collate.IgnoreCase)}
}

// Compare returns -1, 0 or 1. Nulls always sort after present values, whatever
// the direction; the direction only flips the order of present values.
func (c *Comparator) Compare(a, b Record, key string, dir Direction) int {
	av, bv := a.Get(key), b.Get(key)
	switch {
	case av.IsNull() && bv.IsNull():
		return 0
	case av.IsNull():
		return 1
	case bv.IsNull():
		return -1
	}

	var result int
	an, aNum := av.Float()
	bn, bNum := bv.Float()
	if aNum && bNum {
		result = cmp.Compare(an, bn)
	} else {
		result = c.collator.CompareString(av.Text(), bv.Text())
	}
	if dir == Desc {
		result = -result
	}
	return result
}
