package billing

// Request is the payload for creating or updating an invoice. ExchangeRate
// overrides the looked-up rate when set.
type Request struct {
	InvoiceNo    string   `json:"invoice_no" validate:"omitempty,max=40"`
	InvoiceType  string   `json:"invoice_type" validate:"required,oneof=AR AP"`
	Customer     string   `json:"customer" validate:"required,max=200"`
	BLNo         *string  `json:"bl_no" validate:"omitempty,max=40"`
	Currency     string   `json:"currency" validate:"required,iso4217"`
	Amount       float64  `json:"amount" validate:"gte=0"`
	ExchangeRate *float64 `json:"exchange_rate" validate:"omitempty,gt=0"`
	Status       string   `json:"status" validate:"omitempty,oneof=UNPAID PAID OVERDUE"`
	InvoiceDate  string   `json:"invoice_date" validate:"required,datetime=2006-01-02"`
	DueDate      *string  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Remarks      *string  `json:"remarks" validate:"omitempty,max=1000"`
}
