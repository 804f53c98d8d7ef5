package usage

import (
	"jarvis-app/internal/domain/billing"
	"jarvis-app/internal/domain/plans"

	"gorm.io/gorm"
)

const (
	ReasonNoSubscription = "No active subscription"
	ReasonLimitReached   = "Message limit reached"
)

type Access struct {
	Allowed       bool   `json:"allowed"`
	Reason        string `json:"reason,omitempty"`
	PlanName      string `json:"plan_name,omitempty"`
	MessagesUsed  int    `json:"messages_used"`
	MessagesLimit int    `json:"messages_limit"`
	Remaining     int    `json:"remaining"`
}

// CheckAccess decides whether the shop may consume one more chatbot
// interaction. It never mutates anything.
func CheckAccess(db *gorm.DB, shopDomain string) (*Access, error) {
	var sub billing.Subscription
	err := db.Preload("Plan").Where("shop_domain = ?", shopDomain).First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &Access{Allowed: false, Reason: ReasonNoSubscription}, nil
		}
		return nil, err
	}

	planName := ""
	if sub.Plan != nil {
		planName = sub.Plan.Name
	}

	acc := &Access{
		PlanName:      planName,
		MessagesUsed:  sub.MessagesUsed,
		MessagesLimit: sub.MessagesLimit,
		Remaining:     sub.Remaining(),
	}

	if sub.Status != billing.StatusActive {
		acc.Reason = ReasonNoSubscription
		return acc, nil
	}
	if !sub.Unlimited() && sub.Remaining() <= 0 {
		acc.Reason = ReasonLimitReached
		return acc, nil
	}

	acc.Allowed = true
	return acc, nil
}

// IncrementUsage records one consumed interaction. The conditional UPDATE is
// the whole concurrency story: with remaining == 1, exactly one of two
// parallel calls gets a row.
func IncrementUsage(db *gorm.DB, shopDomain string) (bool, error) {
	res := db.Model(&billing.Subscription{}).
		Where("shop_domain = ? AND status = ?", shopDomain, billing.StatusActive).
		Where("messages_limit = ? OR messages_used < messages_limit", plans.UnlimitedQuota).
		UpdateColumn("messages_used", gorm.Expr("messages_used + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
