package billing

import (
	"net/http"
	"time"

	"jarvis-app/database"
	domain "jarvis-app/internal/domain/billing"
	"jarvis-app/internal/domain/usage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type subscriptionView struct {
	PlanName           string     `json:"plan_name"`
	Status             string     `json:"status"`
	MessagesUsed       int        `json:"messages_used"`
	MessagesLimit      int        `json:"messages_limit"`
	Remaining          int        `json:"remaining"`
	Unlimited          bool       `json:"unlimited"`
	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
}

// GET /api/subscription
func GetSubscription(c *gin.Context) {
	shop := c.GetString("shop")
	if shop == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing shop"})
		return
	}

	var sub domain.Subscription
	err := database.DB.Preload("Plan").Where("shop_domain = ?", shop).First(&sub).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusOK, gin.H{"subscription": nil})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}

	view := subscriptionView{
		Status:             sub.Status,
		MessagesUsed:       sub.MessagesUsed,
		MessagesLimit:      sub.MessagesLimit,
		Remaining:          sub.Remaining(),
		Unlimited:          sub.Unlimited(),
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
	}
	if sub.Plan != nil {
		view.PlanName = sub.Plan.Name
	}

	c.JSON(http.StatusOK, gin.H{"subscription": view})
}

// GET /api/access
func GetAccess(c *gin.Context) {
	shop := c.GetString("shop")
	if shop == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing shop"})
		return
	}

	acc, err := usage.CheckAccess(database.DB, shop)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}

	c.JSON(http.StatusOK, acc)
}
