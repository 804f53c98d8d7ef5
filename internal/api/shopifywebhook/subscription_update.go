package shopifywebhook

import (
	"fmt"
	"strings"
	"time"

	"jarvis-app/database"
	"jarvis-app/internal/domain/billing"
	"jarvis-app/internal/domain/plans"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const billingPeriodDays = 30

func handleSubscriptionUpdate(shopDomain string, payload *subscriptionUpdatePayload) error {
	chargeID := chargeIDFromGID(payload.AppSubscription.AdminGraphqlAPIID)
	newStatus := billing.NormalizeProviderStatus(payload.AppSubscription.Status)

	var sub billing.Subscription
	err := database.DB.
		Where("shop_domain = ? AND charge_id = ?", shopDomain, chargeID).
		First(&sub).Error

	if err == gorm.ErrRecordNotFound {
		// No local record for this charge: fall back to the shop's current
		// subscription, else create one against the cheapest paid plan.
		err = database.DB.Where("shop_domain = ?", shopDomain).First(&sub).Error
		if err == gorm.ErrRecordNotFound {
			created, cerr := createFallbackSubscription(shopDomain, chargeID)
			if cerr != nil {
				return cerr
			}
			sub = *created
			err = nil
		}
	}
	if err != nil {
		return fmt.Errorf("subscription lookup failed: %w", err)
	}

	updates := map[string]interface{}{
		"charge_id": chargeID,
		"status":    newStatus,
	}

	// Usage resets only on the transition into ACTIVE. A redelivered "active"
	// update must not wipe the counter again.
	if newStatus == billing.StatusActive && sub.Status != billing.StatusActive {
		now := time.Now()
		periodEnd := now.AddDate(0, 0, billingPeriodDays)
		updates["messages_used"] = 0
		updates["current_period_start"] = now
		updates["current_period_end"] = periodEnd

		log.Info().
			Str("shop", shopDomain).
			Str("charge_id", chargeID).
			Time("period_end", periodEnd).
			Msg("Subscription activated, usage reset")
	}

	return database.DB.Model(&billing.Subscription{}).
		Where("id = ?", sub.ID).
		Updates(updates).Error
}

// createFallbackSubscription inserts a PENDING row so the caller's status
// transition logic applies, setting the billing period on activation.
func createFallbackSubscription(shopDomain, chargeID string) (*billing.Subscription, error) {
	plan, err := plans.CheapestPaidPlan(database.DB)
	if err != nil {
		return nil, fmt.Errorf("no active paid plan for fallback subscription: %w", err)
	}

	sub := billing.Subscription{
		ShopDomain:    shopDomain,
		PlanID:        plan.ID,
		ChargeID:      &chargeID,
		Status:        billing.StatusPending,
		MessagesLimit: plan.MessageQuota,
	}
	if err := database.DB.Create(&sub).Error; err != nil {
		return nil, fmt.Errorf("failed to create fallback subscription: %w", err)
	}

	log.Warn().
		Str("shop", shopDomain).
		Str("plan", plan.Name).
		Msg("Created fallback subscription from webhook")
	return &sub, nil
}

// chargeIDFromGID extracts the numeric id from an admin_graphql_api_id like
// "gid://shopify/AppSubscription/1029266948".
func chargeIDFromGID(gid string) string {
	if i := strings.LastIndex(gid, "/"); i >= 0 {
		return gid[i+1:]
	}
	return gid
}
