package request

type PredictionRequest struct {
	ParkingID  string `json:"parking_id" validate:"required"`
	TotalSlots int    `json:"total_slots" validate:"gt=0"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Time       string `json:"time" validate:"required,datetime=15:04"`
}

type ForecastRequest struct {
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	TotalSlots int    `json:"total_slots" validate:"gt=0"`
}
