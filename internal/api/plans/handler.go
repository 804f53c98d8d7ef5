package plans

import (
	"net/http"

	"jarvis-app/database"
	"jarvis-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

// GET /api/plans
func ListPlans(c *gin.Context) {
	var plansList []plans.Plan
	if err := database.DB.
		Where("active = ?", true).
		Order("price ASC").
		Find(&plansList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	c.JSON(http.StatusOK, plansList)
}

// POST /admin/seed-plans
func SeedPlans(c *gin.Context) {
	created, err := plans.SeedDefaultPlans(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed plans", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"created": created})
}
