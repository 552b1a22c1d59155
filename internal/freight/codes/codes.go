// Package codes holds the reference codes shared by freight documents and the
// validator rules that check them.
package codes

import (
	"regexp"
	"strings"
)

// Mode is the transport mode of a booking, quote or shipment.
type Mode string

const (
	ModeSea Mode = "SEA"
	ModeAir Mode = "AIR"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeSea || m == ModeAir
}

var (
	// UN/LOCODE: two-letter country plus three-character location.
	portPattern = regexp.MustCompile(`^[A-Z]{2}[A-Z2-9]{3}$`)
	// SCAC (4 letters) for ocean carriers, IATA (2 characters) for airlines.
	carrierPattern = regexp.MustCompile(`^([A-Z]{4}|[A-Z0-9]{2})$`)
)

// ContainerTypes lists the ISO size/type shorthands accepted on bookings.
var ContainerTypes = []string{
	"20GP", "40GP", "40HC", "45HC",
	"20RF", "40RF", "40RH",
	"20OT", "40OT",
	"20FR", "40FR",
	"20TK",
}

// IsPort reports whether s looks like a UN/LOCODE such as KRPUS.
func IsPort(s string) bool {
	return portPattern.MatchString(s)
}

// IsCarrier reports whether s is a SCAC or IATA carrier code.
func IsCarrier(s string) bool {
	return carrierPattern.MatchString(s)
}

// IsContainerType reports whether s is a known container type.
func IsContainerType(s string) bool {
	for _, t := range ContainerTypes {
		if t == s {
			return true
		}
	}
	return false
}

// Normalize upper-cases and trims a code before validation.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizePtr is Normalize for optional codes. Blank values become nil.
func NormalizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	n := Normalize(*s)
	if n == "" {
		return nil
	}
	return &n
}
