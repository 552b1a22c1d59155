// Package exchangerate fetches currency rates for invoice conversion. When the
// upstream API is unreachable a fixed demo table is served instead.
package exchangerate

import (
	"fmt"
	"math"
	"time"

	"github.com/cargodesk/cargodesk/internal/platform/httpx"
)

// Source values reported on Rates.
const (
	SourceAPI  = "api"
	SourceDemo = "demo"
)

// Rates quotes every currency against Base: 1 Base = Rates[c] c.
type Rates struct {
	Base      string             `json:"base"`
	Date      string             `json:"date"`
	Rates     map[string]float64 `json:"rates"`
	Source    string             `json:"source"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// demoUSD is the fallback table, quoted against USD.
var demoUSD = map[string]float64{
	"USD": 1,
	"KRW": 1380,
	"EUR": 0.92,
	"JPY": 150,
	"CNY": 7.2,
}

// Demo returns the fallback table rebased onto base. Unknown bases fall back
// to USD.
func Demo(base string, now time.Time) Rates {
	pivot, ok := demoUSD[base]
	if !ok {
		base, pivot = "USD", 1
	}
	rates := make(map[string]float64, len(demoUSD))
	for code, v := range demoUSD {
		rates[code] = v / pivot
	}
	return Rates{
		Base:      base,
		Date:      now.Format("2006-01-02"),
		Rates:     rates,
		Source:    SourceDemo,
		FetchedAt: now,
	}
}

// Rate returns how many units of to one unit of from buys, crossing through
// the base currency.
func (r Rates) Rate(from, to string) (float64, error) {
	if from == to {
		return 1, nil
	}
	fromRate, err := r.quote(from)
	if err != nil {
		return 0, err
	}
	toRate, err := r.quote(to)
	if err != nil {
		return 0, err
	}
	return toRate / fromRate, nil
}

func (r Rates) quote(code string) (float64, error) {
	if code == r.Base {
		return 1, nil
	}
	v, ok := r.Rates[code]
	if !ok || v <= 0 {
		return 0, fmt.Errorf("%w: no rate for %s", httpx.ErrBadRequest, code)
	}
	return v, nil
}

// Round2 rounds to two decimals, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
