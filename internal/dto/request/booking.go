package request

type CreateBookingRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	ParkingID   string `json:"parking_id" validate:"required"`
	ParkingName string `json:"parking_name"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	Duration    int    `json:"duration" validate:"gt=0"`
	Price       int    `json:"price" validate:"gte=0"`
}
