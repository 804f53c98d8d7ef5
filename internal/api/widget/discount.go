package widget

import (
	"net/http"
	"time"

	"jarvis-app/database"
	"jarvis-app/internal/api/auth"
	"jarvis-app/internal/domain/billing"
	"jarvis-app/internal/domain/widget"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const discountWindow = 60 * time.Minute

type discountInput struct {
	SessionID string `json:"session_id" binding:"required"`
	Shop      string `json:"shop" binding:"required"`
}

// POST /apps/widget/discount
// Brokers a merchant-configured discount code, at most one per session per
// hour.
func (h *Handler) IssueDiscount(c *gin.Context) {
	var input discountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id and shop are required"})
		return
	}
	if !auth.ValidShopDomain(input.Shop) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop parameter"})
		return
	}

	settings, err := widget.GetOrCreate(database.DB, input.Shop)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	if !settings.CartAbandonmentEnabled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart abandonment discounts are not enabled for this shop"})
		return
	}

	prior, err := billing.RecentDiscount(database.DB, input.Shop, input.SessionID, discountWindow)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check discount history"})
		return
	}
	if prior != nil {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":         "A discount was already issued for this session",
			"discount_code": prior.DiscountCode,
			"issued_at":     prior.IssuedAt,
		})
		return
	}

	code, err := h.Chatbot.CreateDiscount(c.Request.Context(), input.Shop, input.SessionID, settings.CartAbandonmentDiscount)
	if err != nil {
		log.Error().Err(err).Str("shop", input.Shop).Msg("Discount service failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create discount", "details": err.Error()})
		return
	}

	entry := billing.CartAbandonmentLog{
		ID:                 uuid.NewString(),
		ShopDomain:         input.Shop,
		SessionID:          input.SessionID,
		DiscountCode:       code,
		DiscountPercentage: settings.CartAbandonmentDiscount,
		IssuedAt:           time.Now(),
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Error().Err(err).Str("shop", input.Shop).Msg("Failed to log discount")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record discount"})
		return
	}

	message := RenderDiscountMessage(settings.DiscountMessageTemplate, code, settings.CartAbandonmentDiscount, input.Shop)

	c.JSON(http.StatusOK, gin.H{
		"discount_code":       code,
		"discount_percentage": settings.CartAbandonmentDiscount,
		"message":             message,
	})
}
