package shopifywebhook

import (
	"jarvis-app/database"
	"jarvis-app/internal/domain/billing"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// handleApproachingCappedAmount is informational: compute the usage
// percentage, warn from 80% upward, and touch the row timestamp so the event
// leaves a trace.
func handleApproachingCappedAmount(shopDomain string, payload *cappedAmountPayload) error {
	var sub billing.Subscription
	err := database.DB.Where("shop_domain = ?", shopDomain).First(&sub).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	pct := usagePercentage(sub.MessagesUsed, sub.MessagesLimit)
	evt := log.Info()
	if pct >= 80 {
		evt = log.Warn()
	}
	evt.Str("shop", shopDomain).
		Int("used", sub.MessagesUsed).
		Int("limit", sub.MessagesLimit).
		Float64("percent", pct).
		Msg("Subscription approaching usage cap")

	return database.DB.Model(&sub).Update("updated_at", gorm.Expr("NOW()")).Error
}

func usagePercentage(used, limit int) float64 {
	if limit <= 0 {
		return 0
	}
	return float64(used) / float64(limit) * 100
}
