package billing

import (
	"net/http"

	"jarvis-app/database"
	domain "jarvis-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

// GET /api/payments
func GetPaymentHistory(c *gin.Context) {
	shop := c.GetString("shop")
	if shop == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing shop"})
		return
	}

	var payments []domain.Payment
	if err := database.DB.
		Where("shop_domain = ?", shop).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
