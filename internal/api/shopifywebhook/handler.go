package shopifywebhook

import (
	"encoding/json"
	"io"
	"net/http"

	"jarvis-app/config"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 65536

// HandleWebhook verifies the provider signature and applies the payload to
// the subscription ledger. Non-2xx responses make the provider redeliver, so
// processing failures return 500 and schema failures return 400.
func HandleWebhook(c *gin.Context) {
	body, err := readBody(c, maxBodyBytes)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	signature := c.GetHeader("X-Shopify-Hmac-Sha256")
	if !VerifySignature(config.SHOPIFY_API_SECRET, body, signature) {
		if config.SHOPIFY_API_SECRET == "" {
			log.Error().Msg("Webhook secret not configured, rejecting all webhooks")
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Signature verification failed"})
		return
	}

	topic := c.GetHeader("X-Shopify-Topic")
	shopDomain := c.GetHeader("X-Shopify-Shop-Domain")
	if topic == "" || shopDomain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing topic or shop domain header"})
		return
	}

	log.Info().Str("topic", topic).Str("shop", shopDomain).Msg("Webhook received")

	switch topic {
	case TopicSubscriptionUpdate:
		var payload subscriptionUpdatePayload
		if err := json.Unmarshal(body, &payload); err != nil || payload.AppSubscription.AdminGraphqlAPIID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse subscription payload"})
			return
		}
		if err := handleSubscriptionUpdate(shopDomain, &payload); err != nil {
			log.Error().Err(err).Str("shop", shopDomain).Msg("Subscription update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process subscription update"})
			return
		}

	case TopicApproachingCappedUsage:
		var payload cappedAmountPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse capped amount payload"})
			return
		}
		if err := handleApproachingCappedAmount(shopDomain, &payload); err != nil {
			log.Error().Err(err).Str("shop", shopDomain).Msg("Capped amount check failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process capped amount"})
			return
		}

	case TopicOneTimePurchaseUpdate:
		var payload oneTimePurchasePayload
		if err := json.Unmarshal(body, &payload); err != nil || payload.AppPurchaseOneTime.AdminGraphqlAPIID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse purchase payload"})
			return
		}
		if err := handleOneTimePurchase(shopDomain, &payload); err != nil {
			log.Error().Err(err).Str("shop", shopDomain).Msg("One-time purchase failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process purchase"})
			return
		}

	case TopicAppUninstalled:
		var payload uninstalledPayload
		_ = json.Unmarshal(body, &payload)
		if err := handleAppUninstalled(shopDomain); err != nil {
			log.Error().Err(err).Str("shop", shopDomain).Msg("Uninstall cleanup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process uninstall"})
			return
		}

	case TopicCustomersDataRequest:
		handleCustomersDataRequest(shopDomain, body)

	case TopicCustomersRedact:
		var payload customerRedactPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse redact payload"})
			return
		}
		if err := handleCustomersRedact(shopDomain, &payload); err != nil {
			log.Error().Err(err).Str("shop", shopDomain).Msg("Customer redact failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process redact"})
			return
		}

	case TopicShopRedact:
		var payload shopRedactPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse redact payload"})
			return
		}
		if err := handleShopRedact(shopDomain, &payload); err != nil {
			log.Error().Err(err).Str("shop", shopDomain).Msg("Shop redact failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process redact"})
			return
		}

	default:
		// Acknowledge topics we never subscribe to so the provider stops
		// redelivering them.
		log.Warn().Str("topic", topic).Msg("Ignoring unrecognized webhook topic")
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func readBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
