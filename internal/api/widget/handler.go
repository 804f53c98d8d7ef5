package widget

import (
	"jarvis-app/internal/infra/chatbot"
	"jarvis-app/internal/infra/proxycache"
)

// Handler owns the injected upstream client and response cache shared by all
// widget routes.
type Handler struct {
	Chatbot *chatbot.Client
	Cache   *proxycache.Cache
}

func NewHandler(client *chatbot.Client, cache *proxycache.Cache) *Handler {
	return &Handler{Chatbot: client, Cache: cache}
}
