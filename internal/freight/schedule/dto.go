package schedule

// Request is the payload for creating or updating a schedule. TransitDays is
// derived from ETD and ETA when omitted.
type Request struct {
	CarrierCode string  `json:"carrier_code" validate:"required,carrier"`
	Vessel      string  `json:"vessel" validate:"required,max=100"`
	VoyageNo    string  `json:"voyage_no" validate:"required,max=20"`
	POL         string  `json:"pol" validate:"required,port"`
	POD         string  `json:"pod" validate:"required,port,nefield=POL"`
	CutOff      *string `json:"cut_off" validate:"omitempty,datetime=2006-01-02"`
	ETD         string  `json:"etd" validate:"required,datetime=2006-01-02"`
	ETA         string  `json:"eta" validate:"required,datetime=2006-01-02"`
	TransitDays *int    `json:"transit_days" validate:"omitempty,gte=0,lte=120"`
}
