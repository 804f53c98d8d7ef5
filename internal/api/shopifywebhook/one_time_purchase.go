package shopifywebhook

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"jarvis-app/database"
	"jarvis-app/internal/domain/billing"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var firstIntPattern = regexp.MustCompile(`\d+`)

func handleOneTimePurchase(shopDomain string, payload *oneTimePurchasePayload) error {
	purchase := payload.AppPurchaseOneTime
	status := billing.NormalizeProviderStatus(purchase.Status)
	if status != billing.StatusActive {
		log.Info().
			Str("shop", shopDomain).
			Str("status", status).
			Msg("Ignoring non-accepted one-time purchase")
		return nil
	}

	chargeID := chargeIDFromGID(purchase.AdminGraphqlAPIID)

	// The payment row doubles as the idempotency guard: a redelivered webhook
	// hits the existing charge id and credits nothing.
	var existing billing.Payment
	err := database.DB.Where("charge_id = ?", chargeID).First(&existing).Error
	if err == nil {
		log.Info().Str("charge_id", chargeID).Msg("One-time purchase already recorded")
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("payment lookup failed: %w", err)
	}

	payment := billing.Payment{
		ShopDomain: shopDomain,
		ChargeID:   chargeID,
		Name:       purchase.Name,
		Status:     status,
		Kind:       billing.PaymentKindOneTime,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	bonus, ok := messagePackSize(purchase.Name)
	if !ok {
		return nil
	}

	res := database.DB.Model(&billing.Subscription{}).
		Where("shop_domain = ? AND messages_limit <> -1", shopDomain).
		UpdateColumn("messages_limit", gorm.Expr("messages_limit + ?", bonus))
	if res.Error != nil {
		return fmt.Errorf("failed to credit message pack: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		log.Warn().
			Str("shop", shopDomain).
			Int("bonus", bonus).
			Msg("Message pack purchased but no cappable subscription found")
		return nil
	}

	log.Info().
		Str("shop", shopDomain).
		Int("bonus", bonus).
		Msg("Message pack credited")
	return nil
}

// messagePackSize parses names like "1000 Message Pack": the first integer in
// the string is the pack size.
func messagePackSize(name string) (int, bool) {
	if !strings.Contains(strings.ToLower(name), "message pack") {
		return 0, false
	}
	m := firstIntPattern.FindString(name)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
