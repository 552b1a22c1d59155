package billoflading

// Request is the payload for creating or updating a bill of lading.
type Request struct {
	BLNo        string  `json:"bl_no" validate:"omitempty,max=40"`
	BLType      string  `json:"bl_type" validate:"required,oneof=MASTER HOUSE"`
	BookingNo   *string `json:"booking_no" validate:"omitempty,max=40"`
	Shipper     string  `json:"shipper" validate:"required,max=200"`
	Consignee   string  `json:"consignee" validate:"required,max=200"`
	NotifyParty *string `json:"notify_party" validate:"omitempty,max=200"`
	Vessel      string  `json:"vessel" validate:"required,max=100"`
	VoyageNo    string  `json:"voyage_no" validate:"required,max=20"`
	POL         string  `json:"pol" validate:"required,port"`
	POD         string  `json:"pod" validate:"required,port,nefield=POL"`
	IssueDate   *string `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	Status      string  `json:"status" validate:"omitempty,oneof=DRAFT ISSUED SURRENDERED"`
}
