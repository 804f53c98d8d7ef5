package widget

import (
	"fmt"
	"net/http"

	"jarvis-app/database"
	"jarvis-app/internal/api/auth"
	"jarvis-app/internal/domain/widget"

	"github.com/gin-gonic/gin"
)

// GET /apps/widget/config?shop=...
// Returns the widget's presentation settings plus fully-qualified endpoint
// URLs derived from the current host, so the injected script needs no
// hardcoded backend address.
func (h *Handler) GetConfig(c *gin.Context) {
	shop := c.Query("shop")
	if !auth.ValidShopDomain(shop) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid shop parameter"})
		return
	}

	settings, err := widget.GetOrCreate(database.DB, shop)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load widget config"})
		return
	}

	base := requestBaseURL(c)

	c.Header("Cache-Control", "public, max-age=300")
	c.JSON(http.StatusOK, gin.H{
		"enabled":         settings.Enabled,
		"position":        settings.Position,
		"primary_color":   settings.PrimaryColor,
		"bot_name":        settings.BotName,
		"welcome_message": settings.WelcomeMessage,
		"endpoints": gin.H{
			"chat":            base + "/apps/widget/chat",
			"session":         base + "/apps/widget/session",
			"recommendations": base + "/apps/widget/recommendations",
			"discount":        base + "/apps/widget/discount",
		},
	})
}

func requestBaseURL(c *gin.Context) string {
	scheme := c.GetHeader("X-Forwarded-Proto")
	if scheme == "" {
		scheme = "https"
		if c.Request.TLS == nil {
			scheme = "http"
		}
	}
	return fmt.Sprintf("%s://%s", scheme, c.Request.Host)
}
