// Package listview implements the sort, filter and search-state engine shared by
// every list screen.
package listview

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the dynamic type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
)

// Value is a single cell of a Record.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// Null returns the empty value.
func Null() Value { return Value{} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a float64.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Int wraps an integer as a number.
func Int(n int64) Value { return Value{kind: KindNumber, num: float64(n)} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// StringPtr returns Null for nil pointers.
func StringPtr(s *string) Value {
	if s == nil {
		return Null()
	}
	return String(*s)
}

// NumberPtr returns Null for nil pointers.
func NumberPtr(n *float64) Value {
	if n == nil {
		return Null()
	}
	return Number(*n)
}

// Date formats t as YYYY-MM-DD. The zero time maps to Null.
func Date(t time.Time) Value {
	if t.IsZero() {
		return Null()
	}
	return String(t.Format(DateLayout))
}

// DatePtr is Date for optional timestamps.
func DatePtr(t *time.Time) Value {
	if t == nil {
		return Null()
	}
	return Date(*t)
}

// DateLayout is the only date format records and criteria exchange.
const DateLayout = "2006-01-02"

// Kind reports the dynamic type.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is empty.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the numeric payload and whether the value is a number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Text coerces the value to its display string. Null renders as "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

func (v Value) String() string {
	if v.kind == KindNull {
		return "<null>"
	}
	return v.Text()
}

// MarshalJSON encodes the value as a bare JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts any JSON scalar.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = Null()
	case string:
		*v = String(x)
	case float64:
		*v = Number(x)
	case bool:
		*v = Bool(x)
	default:
		return fmt.Errorf("listview: unsupported value %s", string(data))
	}
	return nil
}

// Record is a flat row keyed by column.
type Record map[string]Value

// Get returns the value under key; missing keys read as Null.
func (r Record) Get(key string) Value {
	if r == nil {
		return Null()
	}
	return r[key]
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
