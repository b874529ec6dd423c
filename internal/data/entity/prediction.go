package entity

type CrowdLevel string

const (
	CrowdLow    CrowdLevel = "Low"
	CrowdMedium CrowdLevel = "Medium"
	CrowdHigh   CrowdLevel = "High"
)

type Prediction struct {
	Success            bool       `json:"success"`
	PredictedOccupancy int        `json:"predicted_occupancy"`
	PredictedFreeSlots int        `json:"predicted_free_slots"`
	CrowdLevel         CrowdLevel `json:"crowd_level,omitempty"`
	Suggestion         string     `json:"suggestion,omitempty"`
	Color              string     `json:"color,omitempty"`
	Message            string     `json:"message,omitempty"`
}

type ForecastPoint struct {
	Hour                string `json:"hour"`
	OccupancyPercentage int    `json:"occupancy_percentage"`
	FreeSlots           int    `json:"free_slots"`
}

type Forecast struct {
	Success bool            `json:"success"`
	Points  []ForecastPoint `json:"forecast"`
	Message string          `json:"message,omitempty"`
}

// PredictionInput is the point-in-time query sent to the forecasting service.
// DayOfWeek counts from Sunday = 0.
type PredictionInput struct {
	ParkingID  string `json:"parkingId"`
	TotalSlots int    `json:"totalSlots"`
	DayOfWeek  int    `json:"dayOfWeek"`
	Hour       int    `json:"hour"`
}

// ClassifyCrowd buckets an occupancy percentage into a crowd level with its display colour and hint.
func ClassifyCrowd(occupancy float64) (CrowdLevel, string, string) {
	switch {
	case occupancy > 80:
		return CrowdHigh, "red", "Very busy!"
	case occupancy > 50:
		return CrowdMedium, "yellow", "Moderate traffic."
	default:
		return CrowdLow, "green", "Plenty of space available!"
	}
}
