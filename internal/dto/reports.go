package dto

// Report periods.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

type ReportQuery struct {
	Period string `json:"period" validate:"required,oneof=day week month year"`
}

type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is chart data for one report.
type Series struct {
	Period string        `json:"period"`
	Points []SeriesPoint `json:"points"`
	Total  float64       `json:"total"`
}

type DashboardStats struct {
	TotalUsers     int     `json:"totalUsers"`
	ActiveDrivers  int     `json:"activeDrivers"`
	PendingDrivers int     `json:"pendingDrivers"`
	OrdersToday    int     `json:"ordersToday"`
	RevenueToday   float64 `json:"revenueToday"`
	OpenTickets    int     `json:"openTickets"`
}

type UploadResult struct {
	URL  string `json:"url"`
	Key  string `json:"key,omitempty"`
	Size int64  `json:"size,omitempty"`
}
