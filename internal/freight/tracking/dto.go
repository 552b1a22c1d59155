package tracking

// Request is the payload for creating or updating a shipment.
type Request struct {
	ReferenceNo string  `json:"reference_no" validate:"omitempty,max=40"`
	BookingNo   *string `json:"booking_no" validate:"omitempty,max=40"`
	Mode        string  `json:"mode" validate:"required,oneof=SEA AIR"`
	POL         string  `json:"pol" validate:"required,port"`
	POD         string  `json:"pod" validate:"required,port,nefield=POL"`
	BookingDate string  `json:"booking_date" validate:"required,datetime=2006-01-02"`
	ETD         *string `json:"etd" validate:"omitempty,datetime=2006-01-02"`
	ATD         *string `json:"atd" validate:"omitempty,datetime=2006-01-02"`
	ETA         *string `json:"eta" validate:"omitempty,datetime=2006-01-02"`
	ATA         *string `json:"ata" validate:"omitempty,datetime=2006-01-02"`
	DeliveredAt *string `json:"delivered_at" validate:"omitempty,datetime=2006-01-02"`
	Remarks     *string `json:"remarks" validate:"omitempty,max=1000"`
}

// EventRequest reports the actual date of a milestone.
type EventRequest struct {
	Stage string `json:"stage" validate:"required,oneof=DEPARTED ARRIVED DELIVERED"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
}
