package billing

import (
	"net/http"

	"jarvis-app/database"
	domain "jarvis-app/internal/domain/billing"
	"jarvis-app/internal/domain/plans"
	"jarvis-app/internal/domain/shops"
	"jarvis-app/internal/infra/shopifyapi"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Handler carries the injected billing-provider client.
type Handler struct {
	Provider *shopifyapi.Client
}

func NewHandler(provider *shopifyapi.Client) *Handler {
	return &Handler{Provider: provider}
}

type subscribeInput struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

// POST /api/subscribe
// Creates the recurring charge and a PENDING ledger row; the webhook flips it
// to ACTIVE once the merchant approves the charge.
func (h *Handler) Subscribe(c *gin.Context) {
	shopDomain := c.GetString("shop")
	if shopDomain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing shop"})
		return
	}

	var input subscribeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var plan plans.Plan
	if err := database.DB.Where("id = ? AND active = ?", input.PlanID, true).First(&plan).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Plan not found"})
		return
	}

	var shop shops.Shop
	if err := database.DB.Where("domain = ? AND active = ?", shopDomain, true).First(&shop).Error; err != nil || !shop.HasToken() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Shop not installed"})
		return
	}

	// Free tier needs no provider charge.
	if plan.Price == 0 {
		if err := assignSubscription(shopDomain, &plan, nil, domain.StatusActive); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate plan"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "active", "plan": plan.Name})
		return
	}

	chargeID, confirmationURL, err := h.Provider.CreateRecurringCharge(
		c.Request.Context(), shopDomain, *shop.AccessToken, &plan)
	if err != nil {
		log.Error().Err(err).Str("shop", shopDomain).Msg("Failed to create recurring charge")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Billing provider rejected the charge"})
		return
	}

	if err := assignSubscription(shopDomain, &plan, &chargeID, domain.StatusPending); err != nil {
		log.Error().Err(err).Str("shop", shopDomain).Msg("Failed to persist pending subscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "pending",
		"confirmation_url": confirmationURL,
	})
}

// assignSubscription upserts the shop's single ledger row, denormalizing the
// plan quota at assignment time.
func assignSubscription(shopDomain string, plan *plans.Plan, chargeID *string, status string) error {
	var sub domain.Subscription
	err := database.DB.Where("shop_domain = ?", shopDomain).First(&sub).Error
	if err == gorm.ErrRecordNotFound {
		sub = domain.Subscription{
			ShopDomain:    shopDomain,
			PlanID:        plan.ID,
			ChargeID:      chargeID,
			Status:        status,
			MessagesLimit: plan.MessageQuota,
		}
		return database.DB.Create(&sub).Error
	}
	if err != nil {
		return err
	}

	return database.DB.Model(&sub).Updates(map[string]interface{}{
		"plan_id":        plan.ID,
		"charge_id":      chargeID,
		"status":         status,
		"messages_limit": plan.MessageQuota,
	}).Error
}
