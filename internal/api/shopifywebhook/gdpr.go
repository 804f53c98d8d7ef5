package shopifywebhook

import (
	"jarvis-app/database"
	"jarvis-app/internal/domain/billing"
	"jarvis-app/internal/domain/shops"
	"jarvis-app/internal/domain/widget"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// The app stores no customer PII beyond opaque session ids, so the data
// request is acknowledged with an audit log entry.
func handleCustomersDataRequest(shopDomain string, body []byte) {
	log.Info().
		Str("shop", shopDomain).
		Int("payload_bytes", len(body)).
		Msg("GDPR customer data request received, no stored customer data")
}

func handleCustomersRedact(shopDomain string, payload *customerRedactPayload) error {
	// Session-scoped discount logs are the only rows that could tie back to a
	// shopper.
	res := database.DB.Where("shop_domain = ?", shopDomain).
		Delete(&billing.CartAbandonmentLog{})
	if res.Error != nil {
		return res.Error
	}

	log.Info().
		Str("shop", shopDomain).
		Int64("purged_rows", res.RowsAffected).
		Msg("GDPR customer redact processed")
	return nil
}

func handleShopRedact(shopDomain string, payload *shopRedactPayload) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&billing.CartAbandonmentLog{},
			&billing.Payment{},
			&billing.Subscription{},
			&widget.WidgetSettings{},
		} {
			if err := tx.Where("shop_domain = ?", shopDomain).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Where("domain = ?", shopDomain).Delete(&shops.Shop{}).Error
	})
	if err != nil {
		return err
	}

	log.Info().Str("shop", shopDomain).Msg("GDPR shop redact processed")
	return nil
}
