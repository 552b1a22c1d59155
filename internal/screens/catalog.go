// Package screens holds the declarative configuration of every list screen.
package screens

import (
	_ "embed"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cargodesk/cargodesk/internal/listview"
)

//go:embed screens.yaml
var embedded []byte

// Screen names mounted by the router.
const (
	Bookings            = "bookings"
	Quotes              = "quotes"
	Schedules           = "schedules"
	BillsOfLading       = "bills-of-lading"
	CustomsDeclarations = "customs-declarations"
	Invoices            = "invoices"
	Shipments           = "shipments"
)

type document struct {
	Screens []listview.Screen `yaml:"screens" validate:"required,min=1,dive"`
}

// Catalog indexes screens by name.
type Catalog struct {
	order   []string
	screens map[string]listview.Screen
}

// Load parses the embedded configuration.
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// Parse decodes and validates a YAML screen document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("screens: decode: %w", err)
	}
	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("screens: validate: %w", err)
	}
	c := &Catalog{screens: make(map[string]listview.Screen, len(doc.Screens))}
	for _, s := range doc.Screens {
		if _, dup := c.screens[s.Name]; dup {
			return nil, fmt.Errorf("screens: duplicate screen %q", s.Name)
		}
		if err := s.Check(); err != nil {
			return nil, err
		}
		c.screens[s.Name] = s
		c.order = append(c.order, s.Name)
	}
	return c, nil
}

// Get looks up a screen by name.
func (c *Catalog) Get(name string) (listview.Screen, bool) {
	s, ok := c.screens[name]
	return s, ok
}

// MustGet panics when the screen is missing. Only used during wiring.
func (c *Catalog) MustGet(name string) listview.Screen {
	s, ok := c.Get(name)
	if !ok {
		panic(fmt.Sprintf("screens: unknown screen %q", name))
	}
	return s
}

// Names lists screens in file order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
