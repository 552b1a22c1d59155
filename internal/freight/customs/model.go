// Package customs tracks import and export declarations filed with customs.
package customs

import (
	"time"

	"github.com/cargodesk/cargodesk/internal/listview"
)

// Type is the direction of a declaration.
type Type string

const (
	TypeImport Type = "IMPORT"
	TypeExport Type = "EXPORT"
)

// Status is the clearance state.
type Status string

const (
	StatusFiled   Status = "FILED"
	StatusCleared Status = "CLEARED"
	StatusHeld    Status = "HELD"
)

// Declaration is a customs filing for the cargo of one B/L.
type Declaration struct {
	ID              int64     `json:"id"`
	DeclarationNo   string    `json:"declaration_no"`
	DeclarationType Type      `json:"declaration_type"`
	BLNo            string    `json:"bl_no"`
	Declarant       string    `json:"declarant"`
	HSCode          string    `json:"hs_code"`
	DeclaredValue   *float64  `json:"declared_value,omitempty"`
	Currency        string    `json:"currency"`
	Status          Status    `json:"status"`
	DeclarationDate time.Time `json:"declaration_date"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FormatHSCode renders a code as the dotted form used on forms, e.g.
// 8471.30-0000.
func FormatHSCode(code string) string {
	switch {
	case len(code) <= 4:
		return code
	case len(code) <= 6:
		return code[:4] + "." + code[4:]
	default:
		return code[:4] + "." + code[4:6] + "-" + code[6:]
	}
}

// Record flattens the declaration into a list row.
func (d Declaration) Record() listview.Record {
	return listview.Record{
		"id":               listview.Int(d.ID),
		"declaration_no":   listview.String(d.DeclarationNo),
		"declaration_type": listview.String(string(d.DeclarationType)),
		"bl_no":            listview.String(d.BLNo),
		"declarant":        listview.String(d.Declarant),
		"hs_code":          listview.String(FormatHSCode(d.HSCode)),
		"declared_value":   listview.NumberPtr(d.DeclaredValue),
		"currency":         listview.String(d.Currency),
		"status":           listview.String(string(d.Status)),
		"declaration_date": listview.Date(d.DeclarationDate),
	}
}
