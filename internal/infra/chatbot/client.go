package chatbot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	maxRetries           = 2
	defaultRetryBackoff  = 2 * time.Second
	maxRetryBackoff      = 10 * time.Second
	defaultClientTimeout = 60 * time.Second
)

// Client talks to the external AI chatbot service. Construct one at startup
// and share it; it carries no per-request state.
type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Forward relays the raw payload to the upstream path and returns whatever
// comes back. Upstream 429s are retried up to twice, honoring Retry-After
// with a capped backoff.
func (c *Client) Forward(ctx context.Context, path, contentType string, body []byte) (*Response, error) {
	url := c.baseURL + path

	var lastResp *Response
	for attempt := 0; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("chatbot request failed: %w", err)
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read chatbot response: %w", err)
		}

		lastResp = &Response{
			Status:      resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        respBody,
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt == maxRetries {
			return lastResp, nil
		}

		backoff := retryDelay(resp.Header.Get("Retry-After"))
		log.Warn().
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Str("url", url).
			Msg("Chatbot service rate limited, retrying")

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return lastResp, nil
}

// retryDelay derives the backoff from an upstream Retry-After header (seconds
// form), falling back to a fixed delay and capping the result.
func retryDelay(retryAfter string) time.Duration {
	d := defaultRetryBackoff
	if retryAfter != "" {
		if secs, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && secs >= 0 {
			d = time.Duration(secs) * time.Second
		}
	}
	if d > maxRetryBackoff {
		d = maxRetryBackoff
	}
	return d
}
