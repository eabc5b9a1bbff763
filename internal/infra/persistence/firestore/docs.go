package firestore

import "time"

// Collection names of the document backend.
const (
	colUsers         = "users"
	colSalons        = "salons"
	colServices      = "services"
	colBookings      = "bookings"
	colReviews       = "reviews"
	colPromotions    = "promotions"
	colRefreshTokens = "refreshTokens"
	colSearchLogs    = "searchLogs"
	colReportLogs    = "reportLogs"
)

// Document shapes. IDs are the uuid string doubling as the document ID; it is
// stored in the document as well so queries can return it without the ref.

type userDoc struct {
	ID                string    `firestore:"id"`
	Username          string    `firestore:"username"`
	Email             string    `firestore:"email"`
	PasswordHash      string    `firestore:"passwordHash"`
	FullName          string    `firestore:"fullName"`
	Phone             string    `firestore:"phone"`
	Role              string    `firestore:"role"`
	LoyaltyPoints     int       `firestore:"loyaltyPoints"`
	PreferredLanguage string    `firestore:"preferredLanguage"`
	CreatedAt         time.Time `firestore:"createdAt"`
	UpdatedAt         time.Time `firestore:"updatedAt"`
}

type salonDoc struct {
	ID              string    `firestore:"id"`
	OwnerID         string    `firestore:"ownerId"`
	NameEn          string    `firestore:"nameEn"`
	NameAr          string    `firestore:"nameAr"`
	DescriptionEn   string    `firestore:"descriptionEn"`
	DescriptionAr   string    `firestore:"descriptionAr"`
	Address         string    `firestore:"address"`
	City            string    `firestore:"city"`
	Phone           string    `firestore:"phone"`
	Email           string    `firestore:"email"`
	Rating          float64   `firestore:"rating"`
	ImageURL        string    `firestore:"imageUrl"`
	IsVerified      bool      `firestore:"isVerified"`
	IsLadiesOnly    bool      `firestore:"isLadiesOnly"`
	HasPrivateRooms bool      `firestore:"hasPrivateRooms"`
	IsHijabFriendly bool      `firestore:"isHijabFriendly"`
	PriceRange      string    `firestore:"priceRange"`
	CreatedAt       time.Time `firestore:"createdAt"`
	UpdatedAt       time.Time `firestore:"updatedAt"`
}

type serviceDoc struct {
	ID              string    `firestore:"id"`
	SalonID         string    `firestore:"salonId"`
	NameEn          string    `firestore:"nameEn"`
	NameAr          string    `firestore:"nameAr"`
	DescriptionEn   string    `firestore:"descriptionEn"`
	DescriptionAr   string    `firestore:"descriptionAr"`
	DurationMinutes int       `firestore:"durationMinutes"`
	Price           float64   `firestore:"price"`
	Category        string    `firestore:"category"`
	ImageURL        string    `firestore:"imageUrl"`
	CreatedAt       time.Time `firestore:"createdAt"`
	UpdatedAt       time.Time `firestore:"updatedAt"`
}

type bookingDoc struct {
	ID           string    `firestore:"id"`
	UserID       string    `firestore:"userId"`
	SalonID      string    `firestore:"salonId"`
	ServiceID    string    `firestore:"serviceId"`
	Datetime     time.Time `firestore:"datetime"`
	Status       string    `firestore:"status"`
	Notes        string    `firestore:"notes"`
	PointsEarned int       `firestore:"pointsEarned"`
	CreatedAt    time.Time `firestore:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt"`
}

type reviewDoc struct {
	ID        string    `firestore:"id"`
	UserID    string    `firestore:"userId"`
	SalonID   string    `firestore:"salonId"`
	ServiceID string    `firestore:"serviceId"`
	BookingID string    `firestore:"bookingId"`
	Rating    int       `firestore:"rating"`
	Comment   string    `firestore:"comment"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type promotionDoc struct {
	ID                 string    `firestore:"id"`
	SalonID            string    `firestore:"salonId"`
	TitleEn            string    `firestore:"titleEn"`
	TitleAr            string    `firestore:"titleAr"`
	DescriptionEn      string    `firestore:"descriptionEn"`
	DescriptionAr      string    `firestore:"descriptionAr"`
	DiscountPercentage int       `firestore:"discountPercentage"`
	StartDate          time.Time `firestore:"startDate"`
	EndDate            time.Time `firestore:"endDate"`
	Scope              string    `firestore:"scope"`
	ServiceIDs         []string  `firestore:"serviceIds"`
	CreatedAt          time.Time `firestore:"createdAt"`
}

type refreshTokenDoc struct {
	ID        string     `firestore:"id"`
	UserID    string     `firestore:"userId"`
	TokenHash string     `firestore:"tokenHash"`
	ExpiresAt time.Time  `firestore:"expiresAt"`
	RevokedAt *time.Time `firestore:"revokedAt"`
	CreatedAt time.Time  `firestore:"createdAt"`
}

type searchLogDoc struct {
	ID        string    `firestore:"id"`
	Query     string    `firestore:"query"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type reportLogDoc struct {
	ID         string    `firestore:"id"`
	SalonID    string    `firestore:"salonId"`
	ReportDate string    `firestore:"reportDate"`
	SentAt     time.Time `firestore:"sentAt"`
}
