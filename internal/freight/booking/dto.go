package booking

// Request is the payload for creating or updating a booking. An empty
// BookingNo is generated on create; an empty Status defaults to DRAFT.
type Request struct {
	BookingNo     string  `json:"booking_no" validate:"omitempty,max=40"`
	Mode          string  `json:"mode" validate:"required,oneof=SEA AIR"`
	Status        string  `json:"status" validate:"omitempty,oneof=DRAFT REQUESTED CONFIRMED CANCELLED"`
	Shipper       string  `json:"shipper" validate:"required,max=200"`
	Consignee     string  `json:"consignee" validate:"required,max=200"`
	CarrierCode   string  `json:"carrier_code" validate:"required,carrier"`
	POL           string  `json:"pol" validate:"required,port"`
	POD           string  `json:"pod" validate:"required,port,nefield=POL"`
	ContainerType *string `json:"container_type" validate:"omitempty,container"`
	ContainerQty  *int    `json:"container_qty" validate:"omitempty,gte=1,lte=999"`
	BookingDate   string  `json:"booking_date" validate:"required,datetime=2006-01-02"`
	ETD           *string `json:"etd" validate:"omitempty,datetime=2006-01-02"`
	ETA           *string `json:"eta" validate:"omitempty,datetime=2006-01-02"`
	Remarks       *string `json:"remarks" validate:"omitempty,max=1000"`
}
