package entity

import (
	"time"

	"github.com/google/uuid"
)

// PromotionScope says which services a promotion applies to. The old
// "service id 0 means all" sentinel is replaced by this explicit tag.
type PromotionScope string

const (
	// PromotionScopeAll applies the discount to every service of the salon.
	PromotionScopeAll PromotionScope = "all"
	// PromotionScopeSpecific applies the discount only to ServiceIDs.
	PromotionScopeSpecific PromotionScope = "specific"
)

// Promotion is a time-bounded discount on a salon's services. Whether it is
// active is never persisted; it is computed at read time from the date range.
type Promotion struct {
	ID                 uuid.UUID      `json:"id"`
	SalonID            uuid.UUID      `json:"salonId"`
	TitleEn            string         `json:"titleEn"`
	TitleAr            string         `json:"titleAr"`
	DescriptionEn      string         `json:"descriptionEn,omitempty"`
	DescriptionAr      string         `json:"descriptionAr,omitempty"`
	DiscountPercentage int            `json:"discountPercentage"`
	StartDate          time.Time      `json:"startDate"`
	EndDate            time.Time      `json:"endDate"`
	Scope              PromotionScope `json:"scope"`
	ServiceIDs         []uuid.UUID    `json:"serviceIds,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`

	// IsActive is filled in by the read path, never stored.
	IsActive bool `json:"isActive"`
}

// ActiveAt reports whether now falls inside the promotion's date range.
func (p *Promotion) ActiveAt(now time.Time) bool {
	return !now.Before(p.StartDate) && !now.After(p.EndDate)
}

// AppliesTo reports whether the promotion covers the given service.
func (p *Promotion) AppliesTo(serviceID uuid.UUID) bool {
	if p.Scope == PromotionScopeAll {
		return true
	}

	for _, id := range p.ServiceIDs {
		if id == serviceID {
			return true
		}
	}

	return false
}
