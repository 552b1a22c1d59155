// Package quote manages freight rate quotations sent to customers.
package quote

import (
	"time"

	"github.com/cargodesk/cargodesk/internal/freight/codes"
	"github.com/cargodesk/cargodesk/internal/listview"
)

// Status tracks a quotation through the sales cycle.
type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusSent     Status = "SENT"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
	StatusExpired  Status = "EXPIRED"
)

// Quote is a priced offer for a lane. Amount stays nil until priced.
type Quote struct {
	ID         int64      `json:"id"`
	QuoteNo    string     `json:"quote_no"`
	Status     Status     `json:"status"`
	Customer   string     `json:"customer"`
	Mode       codes.Mode `json:"mode"`
	POL        string     `json:"pol"`
	POD        string     `json:"pod"`
	Currency   string     `json:"currency"`
	Amount     *float64   `json:"amount,omitempty"`
	QuoteDate  time.Time  `json:"quote_date"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// EffectiveStatus reports EXPIRED for sent quotes whose validity lapsed
// before today.
func (q Quote) EffectiveStatus(today time.Time) Status {
	if q.Status == StatusSent && q.ValidUntil != nil && q.ValidUntil.Format(listview.DateLayout) < today.Format(listview.DateLayout) {
		return StatusExpired
	}
	return q.Status
}

// Record flattens the quote into a list row.
func (q Quote) Record(today time.Time) listview.Record {
	return listview.Record{
		"id":          listview.Int(q.ID),
		"quote_no":    listview.String(q.QuoteNo),
		"status":      listview.String(string(q.EffectiveStatus(today))),
		"customer":    listview.String(q.Customer),
		"mode":        listview.String(string(q.Mode)),
		"pol":         listview.String(q.POL),
		"pod":         listview.String(q.POD),
		"currency":    listview.String(q.Currency),
		"amount":      listview.NumberPtr(q.Amount),
		"quote_date":  listview.Date(q.QuoteDate),
		"valid_until": listview.DatePtr(q.ValidUntil),
	}
}
