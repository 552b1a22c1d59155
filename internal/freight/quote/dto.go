package quote

// Request is the payload for creating or updating a quote.
type Request struct {
	QuoteNo    string   `json:"quote_no" validate:"omitempty,max=40"`
	Status     string   `json:"status" validate:"omitempty,oneof=DRAFT SENT ACCEPTED REJECTED EXPIRED"`
	Customer   string   `json:"customer" validate:"required,max=200"`
	Mode       string   `json:"mode" validate:"required,oneof=SEA AIR"`
	POL        string   `json:"pol" validate:"required,port"`
	POD        string   `json:"pod" validate:"required,port,nefield=POL"`
	Currency   string   `json:"currency" validate:"required,iso4217"`
	Amount     *float64 `json:"amount" validate:"omitempty,gte=0"`
	QuoteDate  string   `json:"quote_date" validate:"required,datetime=2006-01-02"`
	ValidUntil *string  `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
}
