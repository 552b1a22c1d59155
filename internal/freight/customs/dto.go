package customs

// Request is the payload for filing or amending a declaration. HSCode may be
// given with dots or dashes.
type Request struct {
	DeclarationNo   string   `json:"declaration_no" validate:"omitempty,max=40"`
	DeclarationType string   `json:"declaration_type" validate:"required,oneof=IMPORT EXPORT"`
	BLNo            string   `json:"bl_no" validate:"required,max=40"`
	Declarant       string   `json:"declarant" validate:"required,max=200"`
	HSCode          string   `json:"hs_code" validate:"required,numeric,min=6,max=10"`
	DeclaredValue   *float64 `json:"declared_value" validate:"omitempty,gte=0"`
	Currency        string   `json:"currency" validate:"required,iso4217"`
	Status          string   `json:"status" validate:"omitempty,oneof=FILED CLEARED HELD"`
	DeclarationDate string   `json:"declaration_date" validate:"required,datetime=2006-01-02"`
}
