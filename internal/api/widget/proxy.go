package widget

import (
	"encoding/json"
	"io"
	"net/http"

	"jarvis-app/database"
	"jarvis-app/internal/domain/usage"
	"jarvis-app/internal/infra/proxycache"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const maxProxyBodyBytes = 1 << 20

// shopField is the one piece of the payload the proxy itself needs; the rest
// passes through verbatim.
type shopField struct {
	Shop string `json:"shop"`
}

// POST /apps/widget/chat
// The only proxy route that meters usage: gate, forward, then count the
// interaction on upstream success.
func (h *Handler) Chat(c *gin.Context) {
	body, shop, ok := h.readProxyBody(c)
	if !ok {
		return
	}

	acc, err := usage.CheckAccess(database.DB, shop)
	if err != nil {
		log.Error().Err(err).Str("shop", shop).Msg("Usage check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check usage"})
		return
	}
	if !acc.Allowed {
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":  acc.Reason,
			"access": acc,
		})
		return
	}

	h.forward(c, "/chat", body, true, func(status int) {
		if status >= 200 && status < 300 {
			if counted, err := usage.IncrementUsage(database.DB, shop); err != nil {
				log.Error().Err(err).Str("shop", shop).Msg("Failed to increment usage")
			} else if !counted {
				log.Warn().Str("shop", shop).Msg("Usage increment lost the race to the limit")
			}
		}
	})
}

// POST /apps/widget/session
func (h *Handler) Session(c *gin.Context) {
	body, _, ok := h.readProxyBody(c)
	if !ok {
		return
	}
	h.forward(c, "/session", body, false, nil)
}

// POST /apps/widget/recommendations
func (h *Handler) Recommendations(c *gin.Context) {
	body, _, ok := h.readProxyBody(c)
	if !ok {
		return
	}
	h.forward(c, "/recommendations", body, false, nil)
}

func (h *Handler) readProxyBody(c *gin.Context) ([]byte, string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxProxyBodyBytes)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading request body"})
		return nil, "", false
	}

	var sf shopField
	_ = json.Unmarshal(body, &sf)
	shop := sf.Shop
	if shop == "" {
		shop = c.Query("shop")
	}
	if shop == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing shop"})
		return nil, "", false
	}

	return body, shop, true
}

// forward relays the payload upstream, serving identical bodies from the
// short-lived cache. onSuccess runs after a fresh upstream response only;
// cache hits never double-count.
func (h *Handler) forward(c *gin.Context, path string, body []byte, useCache bool, onStatus func(int)) {
	contentType := c.GetHeader("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}

	var key string
	if useCache {
		key = proxycache.Key(body)
		if cached, ok := h.Cache.Get(key); ok {
			c.Data(cached.Status, cached.ContentType, cached.Body)
			return
		}
	}

	resp, err := h.Chatbot.Forward(c.Request.Context(), path, contentType, body)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Chatbot forward failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Chat service unavailable"})
		return
	}

	if onStatus != nil {
		onStatus(resp.Status)
	}

	if useCache && resp.Status >= 200 && resp.Status < 300 {
		h.Cache.Set(key, proxycache.Response{
			Status:      resp.Status,
			ContentType: resp.ContentType,
			Body:        resp.Body,
		})
	}

	c.Data(resp.Status, resp.ContentType, resp.Body)
}
