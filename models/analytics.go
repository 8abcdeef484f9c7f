package models

type AnalyticsSummary struct {
	TotalBookings     int64   `json:"totalBookings"`
	CompletedBookings int64   `json:"completedBookings"`
	TotalServices     int64   `json:"totalServices"`
	TotalDecorators   int64   `json:"totalDecorators"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

type BookingTrendPoint struct {
	Date     string `bson:"_id" json:"date"`
	Bookings int64  `bson:"bookings" json:"bookings"`
}

type CategoryRevenue struct {
	Category string  `bson:"_id" json:"category"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
	Payments int64   `bson:"payments" json:"payments"`
}
