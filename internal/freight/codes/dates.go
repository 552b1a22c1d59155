package codes

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cargodesk/cargodesk/internal/listview"
	"github.com/cargodesk/cargodesk/internal/platform/httpx"
)

// ParseDate reads a YYYY-MM-DD value as a UTC calendar date.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(listview.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, Invalid(field, "must be a date in YYYY-MM-DD form")
	}
	return t, nil
}

// ParseOptionalDate is ParseDate for optional inputs. Nil or blank input
// yields nil.
func ParseOptionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DocNumber generates a document number PREFIX-YYYYMMDD-xxxxxx.
func DocNumber(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), strings.ToUpper(suffix))
}

// InsertNumbered runs insert with *no filled in. A blank number is generated,
// and a generated number that collides is drawn once more before the
// duplicate error is returned. Caller-supplied numbers are never replaced.
func InsertNumbered[T any](no *string, generate func() string, insert func() (T, error)) (T, error) {
	if *no != "" {
		return insert()
	}
	var (
		out T
		err error
	)
	for attempt := 0; attempt < 2; attempt++ {
		*no = generate()
		out, err = insert()
		if !errors.Is(err, httpx.ErrDuplicate) {
			return out, err
		}
	}
	return out, err
}

// StringPtr returns nil for blank strings.
func StringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
