package shopifywebhook

import (
	"time"

	"jarvis-app/database"
	"jarvis-app/internal/domain/billing"
	"jarvis-app/internal/domain/shops"
	"jarvis-app/internal/domain/widget"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// handleAppUninstalled deactivates the shop and removes its dependent rows in
// one transaction. The token version bump invalidates anything still holding
// the revoked token.
func handleAppUninstalled(shopDomain string) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&shops.Shop{}).
			Where("domain = ?", shopDomain).
			Updates(map[string]interface{}{
				"access_token":   nil,
				"active":         false,
				"uninstalled_at": now,
				"token_version":  gorm.Expr("token_version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			log.Warn().Str("shop", shopDomain).Msg("Uninstall webhook for unknown shop")
		}

		if err := tx.Where("shop_domain = ?", shopDomain).
			Delete(&billing.Subscription{}).Error; err != nil {
			return err
		}
		return tx.Where("shop_domain = ?", shopDomain).
			Delete(&widget.WidgetSettings{}).Error
	})
	if err != nil {
		return err
	}

	log.Info().Str("shop", shopDomain).Msg("Shop uninstalled and cleaned up")
	return nil
}
