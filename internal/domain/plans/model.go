package plans

import (
	"time"

	"gorm.io/datatypes"
)

// UnlimitedQuota is the sentinel meaning "no message ceiling".
const UnlimitedQuota = -1

const (
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

type Plan struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null;uniqueIndex:idx_plans_name"`
	Price        float64
	BillingCycle string `gorm:"not null;default:'monthly'"`

	// MessageQuota is the per-period allowance; UnlimitedQuota disables the cap.
	MessageQuota int            `gorm:"not null;default:0"`
	Features     datatypes.JSON `gorm:"type:jsonb"`

	Active bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Plan) Unlimited() bool {
	return p.MessageQuota == UnlimitedQuota
}
