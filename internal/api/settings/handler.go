package settings

import (
	"net/http"

	"jarvis-app/database"
	"jarvis-app/internal/domain/widget"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type settingsInput struct {
	Enabled        *bool   `json:"enabled"`
	Position       *string `json:"position"`
	PrimaryColor   *string `json:"primary_color"`
	BotName        *string `json:"bot_name"`
	WelcomeMessage *string `json:"welcome_message"`

	CartAbandonmentEnabled  *bool    `json:"cart_abandonment_enabled"`
	CartAbandonmentDiscount *float64 `json:"cart_abandonment_discount"`
	CartAbandonmentDelay    *int     `json:"cart_abandonment_delay"`
	DiscountMessageTemplate *string  `json:"discount_message_template"`
}

// GET /api/settings
func GetSettings(c *gin.Context) {
	shop := c.GetString("shop")
	if shop == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing shop"})
		return
	}

	s, err := widget.GetOrCreate(database.DB, shop)
	if err != nil {
		log.Error().Err(err).Str("shop", shop).Msg("Failed to load widget settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// POST /api/settings
func SaveSettings(c *gin.Context) {
	shop := c.GetString("shop")
	if shop == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing shop"})
		return
	}

	var input settingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if input.CartAbandonmentDiscount != nil &&
		(*input.CartAbandonmentDiscount <= 0 || *input.CartAbandonmentDiscount > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discount percentage must be between 1 and 100"})
		return
	}

	s, err := widget.GetOrCreate(database.DB, shop)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	applyInput(s, &input)

	if err := database.DB.Save(s).Error; err != nil {
		log.Error().Err(err).Str("shop", shop).Msg("Failed to save widget settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, s)
}

func applyInput(s *widget.WidgetSettings, in *settingsInput) {
	if in.Enabled != nil {
		s.Enabled = *in.Enabled
	}
	if in.Position != nil {
		s.Position = *in.Position
	}
	if in.PrimaryColor != nil {
		s.PrimaryColor = *in.PrimaryColor
	}
	if in.BotName != nil {
		s.BotName = *in.BotName
	}
	if in.WelcomeMessage != nil {
		s.WelcomeMessage = *in.WelcomeMessage
	}
	if in.CartAbandonmentEnabled != nil {
		s.CartAbandonmentEnabled = *in.CartAbandonmentEnabled
	}
	if in.CartAbandonmentDiscount != nil {
		s.CartAbandonmentDiscount = *in.CartAbandonmentDiscount
	}
	if in.CartAbandonmentDelay != nil {
		s.CartAbandonmentDelay = *in.CartAbandonmentDelay
	}
	if in.DiscountMessageTemplate != nil {
		s.DiscountMessageTemplate = *in.DiscountMessageTemplate
	}
}
