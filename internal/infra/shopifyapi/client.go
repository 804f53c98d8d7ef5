package shopifyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"jarvis-app/internal/domain/plans"

	"github.com/rs/zerolog/log"
)

const apiVersion = "2024-01"

// Client wraps the per-shop Admin REST API. One instance serves all shops;
// the access token travels per call.
type Client struct {
	returnURL string
	testMode  bool
	client    *http.Client
}

func New(returnURL string, testMode bool) *Client {
	return &Client{
		returnURL: returnURL,
		testMode:  testMode,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type recurringChargeRequest struct {
	RecurringApplicationCharge recurringCharge `json:"recurring_application_charge"`
}

type recurringChargeResponse struct {
	RecurringApplicationCharge recurringCharge `json:"recurring_application_charge"`
}

type recurringCharge struct {
	ID              int64   `json:"id,omitempty"`
	Name            string  `json:"name"`
	Price           string  `json:"price"`
	ReturnURL       string  `json:"return_url"`
	Test            bool    `json:"test,omitempty"`
	ConfirmationURL string  `json:"confirmation_url,omitempty"`
	Status          string  `json:"status,omitempty"`
	TrialDays       int     `json:"trial_days,omitempty"`
	CappedAmount    string  `json:"capped_amount,omitempty"`
	Terms           *string `json:"terms,omitempty"`
}

// CreateRecurringCharge opens a recurring charge for the plan and returns the
// provider charge id plus the confirmation URL the merchant must approve.
// Activation arrives later through the billing webhook.
func (c *Client) CreateRecurringCharge(ctx context.Context, shopDomain, accessToken string, plan *plans.Plan) (string, string, error) {
	payload, err := json.Marshal(recurringChargeRequest{
		RecurringApplicationCharge: recurringCharge{
			Name:      plan.Name,
			Price:     fmt.Sprintf("%.2f", plan.Price),
			ReturnURL: c.returnURL,
			Test:      c.testMode,
		},
	})
	if err != nil {
		return "", "", err
	}

	url := fmt.Sprintf("https://%s/admin/api/%s/recurring_application_charges.json", shopDomain, apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("charge create failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		log.Error().
			Str("shop", shopDomain).
			Int("status", resp.StatusCode).
			Msg("Recurring charge rejected by provider")
		return "", "", fmt.Errorf("provider returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed recurringChargeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", "", fmt.Errorf("invalid charge response: %w", err)
	}
	charge := parsed.RecurringApplicationCharge
	if charge.ID == 0 || charge.ConfirmationURL == "" {
		return "", "", fmt.Errorf("charge response missing id or confirmation url")
	}

	return fmt.Sprintf("%d", charge.ID), charge.ConfirmationURL, nil
}
