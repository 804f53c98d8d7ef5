package admin

import (
	"net/http"
	"time"

	"jarvis-app/database"
	"jarvis-app/internal/domain/billing"
	"jarvis-app/internal/domain/plans"
	"jarvis-app/internal/domain/shops"
	"jarvis-app/internal/domain/widget"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ShopSummary struct {
	Domain        string     `json:"domain"`
	Active        bool       `json:"active"`
	TokenVersion  int        `json:"token_version"`
	InstalledAt   *time.Time `json:"installed_at,omitempty"`
	UninstalledAt *time.Time `json:"uninstalled_at,omitempty"`
	PlanName      *string    `json:"plan_name,omitempty"`
	Status        *string    `json:"subscription_status,omitempty"`
	MessagesUsed  *int       `json:"messages_used,omitempty"`
	MessagesLimit *int       `json:"messages_limit,omitempty"`
}

// GET /admin/shops
func ListShops(c *gin.Context) {
	var allShops []shops.Shop
	if err := database.DB.Order("domain ASC").Find(&allShops).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load shops"})
		return
	}

	summaries := make([]ShopSummary, 0, len(allShops))
	for _, s := range allShops {
		summary := ShopSummary{
			Domain:        s.Domain,
			Active:        s.Active,
			TokenVersion:  s.TokenVersion,
			InstalledAt:   s.InstalledAt,
			UninstalledAt: s.UninstalledAt,
		}

		var sub billing.Subscription
		if err := database.DB.Preload("Plan").
			Where("shop_domain = ?", s.Domain).First(&sub).Error; err == nil {
			summary.Status = &sub.Status
			summary.MessagesUsed = &sub.MessagesUsed
			summary.MessagesLimit = &sub.MessagesLimit
			if sub.Plan != nil {
				summary.PlanName = &sub.Plan.Name
			}
		}

		summaries = append(summaries, summary)
	}

	c.JSON(http.StatusOK, summaries)
}

// POST /admin/actions (form-encoded action + shop)
func HandleAction(c *gin.Context) {
	action := c.PostForm("action")
	shop := c.PostForm("shop")

	switch action {
	case "cleanup-shop":
		if shop == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "shop is required"})
			return
		}
		if err := cleanupShop(shop); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Cleanup failed", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "cleaned", "shop": shop})

	case "fix-subscription":
		if shop == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "shop is required"})
			return
		}
		planName := c.PostForm("plan")
		if planName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "plan is required"})
			return
		}
		if err := fixSubscription(shop, planName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Fix failed", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "fixed", "shop": shop, "plan": planName})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
	}
}

// cleanupShop is the forced uninstall path: revoke the token, bump the token
// version, and drop dependent rows, all inside one transaction.
func cleanupShop(shopDomain string) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&shops.Shop{}).
			Where("domain = ?", shopDomain).
			Updates(map[string]interface{}{
				"access_token":   nil,
				"active":         false,
				"uninstalled_at": now,
				"token_version":  gorm.Expr("token_version + 1"),
			}).Error; err != nil {
			return err
		}

		for _, model := range []interface{}{
			&billing.CartAbandonmentLog{},
			&billing.Subscription{},
			&widget.WidgetSettings{},
		} {
			if err := tx.Where("shop_domain = ?", shopDomain).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Str("shop", shopDomain).Msg("Forced shop cleanup completed")
	return nil
}

// fixSubscription re-points a shop at a named plan with a fresh period and
// zeroed usage. Operator remedy for ledger drift.
func fixSubscription(shopDomain, planName string) error {
	var plan plans.Plan
	if err := database.DB.Where("name = ? AND active = ?", planName, true).First(&plan).Error; err != nil {
		return err
	}

	now := time.Now()
	periodEnd := now.AddDate(0, 0, 30)

	var sub billing.Subscription
	err := database.DB.Where("shop_domain = ?", shopDomain).First(&sub).Error
	if err == gorm.ErrRecordNotFound {
		sub = billing.Subscription{
			ShopDomain:         shopDomain,
			PlanID:             plan.ID,
			Status:             billing.StatusActive,
			MessagesLimit:      plan.MessageQuota,
			CurrentPeriodStart: &now,
			CurrentPeriodEnd:   &periodEnd,
		}
		return database.DB.Create(&sub).Error
	}
	if err != nil {
		return err
	}

	return database.DB.Model(&sub).Updates(map[string]interface{}{
		"plan_id":              plan.ID,
		"status":               billing.StatusActive,
		"messages_used":        0,
		"messages_limit":       plan.MessageQuota,
		"current_period_start": now,
		"current_period_end":   periodEnd,
	}).Error
}
