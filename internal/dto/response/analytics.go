package response

type DashboardStats struct {
	TotalParkings  int     `json:"total_parkings"`
	TotalBookings  int     `json:"total_bookings"`
	ActiveBookings int     `json:"active_bookings"`
	TotalRevenue   int     `json:"total_revenue"`
	AvgOccupancy   float64 `json:"avg_occupancy"`
}

type DailyBookings struct {
	Date    string `json:"date"`
	Count   int    `json:"count"`
	Revenue int    `json:"revenue"`
}

type LotUtilization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Utilization int    `json:"utilization"`
}

type HourBucket struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

type AnalyticsResponse struct {
	Stats       DashboardStats   `json:"stats"`
	Timeline    []DailyBookings  `json:"timeline"`
	Utilization []LotUtilization `json:"utilization"`
	PeakHours   []HourBucket     `json:"peak_hours"`
}
