// Package billing issues receivable and payable freight invoices. Foreign
// currency amounts are converted to KRW when the invoice is saved.
package billing

import (
	"time"

	"github.com/cargodesk/cargodesk/internal/listview"
)

// Type separates customer invoices from vendor bills.
type Type string

const (
	TypeReceivable Type = "AR"
	TypePayable    Type = "AP"
)

// Status is the settlement state of an invoice.
type Status string

const (
	StatusUnpaid  Status = "UNPAID"
	StatusPaid    Status = "PAID"
	StatusOverdue Status = "OVERDUE"
)

// Invoice is a charge raised against a customer or owed to a vendor.
type Invoice struct {
	ID           int64      `json:"id"`
	InvoiceNo    string     `json:"invoice_no"`
	InvoiceType  Type       `json:"invoice_type"`
	Customer     string     `json:"customer"`
	BLNo         *string    `json:"bl_no,omitempty"`
	Currency     string     `json:"currency"`
	Amount       float64    `json:"amount"`
	ExchangeRate float64    `json:"exchange_rate"`
	AmountKRW    float64    `json:"amount_krw"`
	RateSource   string     `json:"rate_source"`
	Status       Status     `json:"status"`
	InvoiceDate  time.Time  `json:"invoice_date"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Remarks      *string    `json:"remarks,omitempty"`
	CreatedBy    string     `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// EffectiveStatus reports OVERDUE for unpaid invoices past their due date.
func (inv Invoice) EffectiveStatus(today time.Time) Status {
	if inv.Status == StatusUnpaid && inv.DueDate != nil && inv.DueDate.Format(listview.DateLayout) < today.Format(listview.DateLayout) {
		return StatusOverdue
	}
	return inv.Status
}

// Record flattens the invoice into a list row.
func (inv Invoice) Record(today time.Time) listview.Record {
	return listview.Record{
		"id":            listview.Int(inv.ID),
		"invoice_no":    listview.String(inv.InvoiceNo),
		"invoice_type":  listview.String(string(inv.InvoiceType)),
		"customer":      listview.String(inv.Customer),
		"bl_no":         listview.StringPtr(inv.BLNo),
		"currency":      listview.String(inv.Currency),
		"amount":        listview.Number(inv.Amount),
		"exchange_rate": listview.Number(inv.ExchangeRate),
		"amount_krw":    listview.Number(inv.AmountKRW),
		"status":        listview.String(string(inv.EffectiveStatus(today))),
		"invoice_date":  listview.Date(inv.InvoiceDate),
		"due_date":      listview.DatePtr(inv.DueDate),
	}
}
