package auth

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"jarvis-app/config"
	"jarvis-app/database"
	"jarvis-app/internal/domain/shops"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*\.myshopify\.com$`)

func ValidShopDomain(shop string) bool {
	return shopDomainPattern.MatchString(shop)
}

// oauthConfig builds the per-shop OAuth endpoints. The provider uses the same
// code-exchange shape as any OAuth2 server, just hosted on the shop's domain.
func oauthConfig(shop string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.SHOPIFY_API_KEY,
		ClientSecret: config.SHOPIFY_API_SECRET,
		RedirectURL:  strings.TrimRight(config.APP_URL, "/") + "/auth/callback",
		Scopes:       strings.Split(config.SHOPIFY_SCOPES, ","),
		Endpoint: oauth2.Endpoint{
			AuthURL:   fmt.Sprintf("https://%s/admin/oauth/authorize", shop),
			TokenURL:  fmt.Sprintf("https://%s/admin/oauth/access_token", shop),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// GET /auth?shop=example.myshopify.com
func Install(c *gin.Context) {
	shop := c.Query("shop")
	if !ValidShopDomain(shop) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop parameter"})
		return
	}

	state := uuid.NewString()
	c.SetCookie(
		"oauth_state",
		state,
		300, // 5 minutes
		"/",
		"",
		true,
		true,
	)

	url := oauthConfig(shop).AuthCodeURL(state)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/callback?shop=...&code=...&state=...&hmac=...
func Callback(c *gin.Context) {
	shop := c.Query("shop")
	code := c.Query("code")
	state := c.Query("state")
	if !ValidShopDomain(shop) || code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing shop/code/state"})
		return
	}

	cookieState, err := c.Cookie("oauth_state")
	if err != nil || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}

	if !VerifyOAuthHMAC(config.SHOPIFY_API_SECRET, c.Request.URL.Query()) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "hmac verification failed"})
		return
	}

	tok, err := oauthConfig(shop).Exchange(c.Request.Context(), code)
	if err != nil {
		log.Error().Err(err).Str("shop", shop).Msg("OAuth code exchange failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to exchange code"})
		return
	}

	if err := upsertShop(shop, tok.AccessToken); err != nil {
		log.Error().Err(err).Str("shop", shop).Msg("Failed to persist shop install")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save installation"})
		return
	}

	log.Info().Str("shop", shop).Msg("Shop installed")

	// Back into the embedded admin.
	c.Redirect(http.StatusFound, fmt.Sprintf("https://%s/admin/apps/%s", shop, config.SHOPIFY_API_KEY))
}

func upsertShop(domain, accessToken string) error {
	now := time.Now()

	var shop shops.Shop
	err := database.DB.Where("domain = ?", domain).First(&shop).Error
	if err == gorm.ErrRecordNotFound {
		shop = shops.Shop{
			Domain:       domain,
			AccessToken:  &accessToken,
			Scope:        config.SHOPIFY_SCOPES,
			Active:       true,
			TokenVersion: 1,
			InstalledAt:  &now,
		}
		return database.DB.Create(&shop).Error
	}
	if err != nil {
		return err
	}

	// Reinstall: fresh token, active again, uninstall marker cleared. The
	// token version stays, still counting past invalidations.
	return database.DB.Model(&shop).Updates(map[string]interface{}{
		"access_token":   accessToken,
		"scope":          config.SHOPIFY_SCOPES,
		"active":         true,
		"installed_at":   now,
		"uninstalled_at": nil,
	}).Error
}
