package entity

import (
	"time"

	"github.com/google/uuid"
)

// SearchLog records a non-empty free-text search term for analytics.
type SearchLog struct {
	ID        uuid.UUID `json:"id"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReportLog marks a daily report as sent for one salon on one date, keyed so
// a re-triggered run never double-sends.
type ReportLog struct {
	ID         uuid.UUID `json:"id"`
	SalonID    uuid.UUID `json:"salonId"`
	ReportDate string    `json:"reportDate"` // YYYY-MM-DD
	SentAt     time.Time `json:"sentAt"`
}

// SalonAnalytics is the owner dashboard aggregate.
type SalonAnalytics struct {
	SalonID          uuid.UUID            `json:"salonId"`
	TotalBookings    int                  `json:"totalBookings"`
	BookingsByStatus map[string]int       `json:"bookingsByStatus"`
	CompletedRevenue float64              `json:"completedRevenue"`
	AverageRating    float64              `json:"averageRating"`
	ReviewCount      int                  `json:"reviewCount"`
	TopServices      []ServiceBookingStat `json:"topServices"`
	GeneratedAt      time.Time            `json:"generatedAt"`
	PeriodStart      time.Time            `json:"periodStart"`
	PeriodEnd        time.Time            `json:"periodEnd"`
}

// ServiceBookingStat counts bookings and revenue per service.
type ServiceBookingStat struct {
	ServiceID uuid.UUID `json:"serviceId"`
	NameEn    string    `json:"nameEn"`
	NameAr    string    `json:"nameAr"`
	Bookings  int       `json:"bookings"`
	Revenue   float64   `json:"revenue"`
}

// DailyReport is the per-salon daily summary mailed to owners.
type DailyReport struct {
	SalonID          uuid.UUID `json:"salonId"`
	ReportDate       string    `json:"reportDate"`
	TotalBookings    int       `json:"totalBookings"`
	Completed        int       `json:"completed"`
	Cancelled        int       `json:"cancelled"`
	CompletedRevenue float64   `json:"completedRevenue"`
}
