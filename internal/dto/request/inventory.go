package request

type CreateParkingLotRequest struct {
	Name       string  `json:"name" validate:"required,max=120"`
	Address    string  `json:"address" validate:"max=255"`
	Lat        float64 `json:"lat" validate:"latitude"`
	Lng        float64 `json:"lng" validate:"longitude"`
	TotalSlots int     `json:"total_slots" validate:"gt=0"`
	Price      int     `json:"price" validate:"gte=0"`
	Type       string  `json:"type" validate:"required,oneof=Covered Open Multi-level"`
}

// UpdateParkingLotRequest changes only the fields that are present.
type UpdateParkingLotRequest struct {
	Name           *string  `json:"name" validate:"omitempty,min=1,max=120"`
	Address        *string  `json:"address" validate:"omitempty,max=255"`
	Lat            *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng            *float64 `json:"lng" validate:"omitempty,longitude"`
	TotalSlots     *int     `json:"total_slots" validate:"omitempty,gt=0"`
	AvailableSlots *int     `json:"available_slots" validate:"omitempty,gte=0"`
	Price          *int     `json:"price" validate:"omitempty,gte=0"`
	Type           *string  `json:"type" validate:"omitempty,oneof=Covered Open Multi-level"`
}
