package billing

import (
	"time"

	"jarvis-app/internal/domain/plans"
)

// Subscription binds a shop to a plan plus its usage state. One authoritative
// subscription per shop, enforced at the schema level.
type Subscription struct {
	ID         uint   `gorm:"primaryKey"`
	ShopDomain string `gorm:"not null;uniqueIndex:idx_subscriptions_shop_domain"`

	PlanID uint
	Plan   *plans.Plan

	// ChargeID is the billing provider's subscription id; nil for manually
	// created records (free tier, operator fixes).
	ChargeID *string `gorm:"column:charge_id;uniqueIndex:idx_subscriptions_charge_id"`

	Status string `gorm:"not null;default:'PENDING'"`

	MessagesUsed int `gorm:"not null;default:0"`
	// MessagesLimit is denormalized from the plan quota at assignment time and
	// can grow via one-time message packs.
	MessagesLimit int `gorm:"not null;default:0"`

	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Subscription) Unlimited() bool {
	return s.MessagesLimit == plans.UnlimitedQuota
}

func (s *Subscription) Remaining() int {
	if s.Unlimited() {
		return plans.UnlimitedQuota
	}
	r := s.MessagesLimit - s.MessagesUsed
	if r < 0 {
		return 0
	}
	return r
}
