package memory

import (
	"time"

	"lamsa/internal/domain/entity"

	"github.com/google/uuid"
)

// Seed fills the store with the bilingual sample data served in mock-data
// mode. passwordHash is used for every seeded account so the demo credentials
// stay loggable.
func (s *Store) Seed(passwordHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	base := now.Add(-30 * 24 * time.Hour)

	owner := entity.User{
		ID:                uuid.New(),
		Username:          "layla",
		Email:             "layla@example.com",
		PasswordHash:      passwordHash,
		FullName:          "Layla Hassan",
		Phone:             "+966500000001",
		Role:              entity.RoleSalonOwner,
		PreferredLanguage: entity.LanguageArabic,
		CreatedAt:         base,
		UpdatedAt:         base,
	}
	customer := entity.User{
		ID:                uuid.New(),
		Username:          "sara",
		Email:             "sara@example.com",
		PasswordHash:      passwordHash,
		FullName:          "Sara Ahmed",
		Phone:             "+966500000002",
		Role:              entity.RoleCustomer,
		LoyaltyPoints:     150,
		PreferredLanguage: entity.LanguageEnglish,
		CreatedAt:         base.Add(time.Hour),
		UpdatedAt:         base.Add(time.Hour),
	}
	s.users[owner.ID] = owner
	s.users[customer.ID] = customer

	glow := entity.Salon{
		ID:              uuid.New(),
		OwnerID:         owner.ID,
		NameEn:          "Glow Beauty Lounge",
		NameAr:          "صالون جلو للتجميل",
		DescriptionEn:   "Full-service ladies salon in the heart of Riyadh.",
		DescriptionAr:   "صالون نسائي متكامل في قلب الرياض.",
		Address:         "King Fahd Road 12",
		City:            "Riyadh",
		Phone:           "+966112223344",
		Email:           "hello@glow.example.com",
		Rating:          4.5,
		IsVerified:      true,
		IsLadiesOnly:    true,
		HasPrivateRooms: true,
		IsHijabFriendly: true,
		PriceRange:      "$$",
		CreatedAt:       base.Add(2 * time.Hour),
		UpdatedAt:       base.Add(2 * time.Hour),
	}
	noor := entity.Salon{
		ID:              uuid.New(),
		OwnerID:         owner.ID,
		NameEn:          "Noor Spa",
		NameAr:          "نور سبا",
		DescriptionEn:   "Relaxing spa treatments and hair care.",
		DescriptionAr:   "جلسات استرخاء وعناية بالشعر.",
		Address:         "Corniche Street 5",
		City:            "Jeddah",
		Phone:           "+966126667788",
		Rating:          4,
		IsVerified:      true,
		IsHijabFriendly: true,
		PriceRange:      "$$$",
		CreatedAt:       base.Add(3 * time.Hour),
		UpdatedAt:       base.Add(3 * time.Hour),
	}
	s.salons[glow.ID] = glow
	s.salons[noor.ID] = noor

	haircut := entity.Service{
		ID:              uuid.New(),
		SalonID:         glow.ID,
		NameEn:          "Haircut & Styling",
		NameAr:          "قص وتصفيف الشعر",
		DurationMinutes: 60,
		Price:           150,
		Category:        "hair",
		CreatedAt:       base.Add(4 * time.Hour),
		UpdatedAt:       base.Add(4 * time.Hour),
	}
	manicure := entity.Service{
		ID:              uuid.New(),
		SalonID:         glow.ID,
		NameEn:          "Classic Manicure",
		NameAr:          "مانيكير كلاسيكي",
		DurationMinutes: 45,
		Price:           80,
		Category:        "nails",
		CreatedAt:       base.Add(5 * time.Hour),
		UpdatedAt:       base.Add(5 * time.Hour),
	}
	massage := entity.Service{
		ID:              uuid.New(),
		SalonID:         noor.ID,
		NameEn:          "Relaxation Massage",
		NameAr:          "مساج استرخاء",
		DurationMinutes: 90,
		Price:           250,
		Category:        "spa",
		CreatedAt:       base.Add(6 * time.Hour),
		UpdatedAt:       base.Add(6 * time.Hour),
	}
	s.services[haircut.ID] = haircut
	s.services[manicure.ID] = manicure
	s.services[massage.ID] = massage

	booking := entity.Booking{
		ID:           uuid.New(),
		UserID:       customer.ID,
		SalonID:      glow.ID,
		ServiceID:    haircut.ID,
		Datetime:     now.Add(48 * time.Hour),
		Status:       entity.BookingConfirmed,
		Notes:        "Please keep it shoulder length.",
		PointsEarned: 150,
		CreatedAt:    now.Add(-24 * time.Hour),
		UpdatedAt:    now.Add(-20 * time.Hour),
	}
	s.bookings[booking.ID] = booking

	review := entity.Review{
		ID:        uuid.New(),
		UserID:    customer.ID,
		SalonID:   glow.ID,
		ServiceID: &haircut.ID,
		Rating:    5,
		Comment:   "Wonderful experience, highly recommended!",
		CreatedAt: now.Add(-12 * time.Hour),
	}
	s.reviews[review.ID] = review

	promotion := entity.Promotion{
		ID:                 uuid.New(),
		SalonID:            glow.ID,
		TitleEn:            "Summer Special",
		TitleAr:            "عرض الصيف",
		DescriptionEn:      "20% off all nail services.",
		DescriptionAr:      "خصم ٢٠٪ على خدمات الأظافر.",
		DiscountPercentage: 20,
		StartDate:          now.Add(-7 * 24 * time.Hour),
		EndDate:            now.Add(21 * 24 * time.Hour),
		Scope:              entity.PromotionScopeSpecific,
		ServiceIDs:         []uuid.UUID{manicure.ID},
		CreatedAt:          now.Add(-7 * 24 * time.Hour),
	}
	s.promotions[promotion.ID] = promotion
}
