package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type discountRequest struct {
	SessionID          string  `json:"session_id"`
	ShopDomain         string  `json:"shop_domain"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

type discountResponse struct {
	DiscountCode string `json:"discount_code"`
	Error        string `json:"error"`
}

// CreateDiscount asks the discount service for a fresh code. Any non-2xx or
// code-less response is an error; the caller surfaces the details.
func (c *Client) CreateDiscount(ctx context.Context, shopDomain, sessionID string, percentage float64) (string, error) {
	payload, err := json.Marshal(discountRequest{
		SessionID:          sessionID,
		ShopDomain:         shopDomain,
		DiscountPercentage: percentage,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/discounts", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("discount service unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read discount response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("discount service returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed discountResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("invalid discount response: %w", err)
	}
	if parsed.DiscountCode == "" {
		return "", fmt.Errorf("discount service returned no code: %s", string(body))
	}

	return parsed.DiscountCode, nil
}
