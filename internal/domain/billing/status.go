package billing

import "strings"

const (
	StatusActive    = "ACTIVE"
	StatusPending   = "PENDING"
	StatusCancelled = "CANCELLED"
	StatusExpired   = "EXPIRED"
)

// NormalizeProviderStatus maps the billing provider's free-form status strings
// onto our ledger statuses. Unknown values pass through uppercased.
func NormalizeProviderStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "accepted":
		return StatusActive
	case "pending":
		return StatusPending
	case "cancelled", "canceled", "declined":
		return StatusCancelled
	case "expired", "frozen":
		return StatusExpired
	default:
		return strings.ToUpper(strings.TrimSpace(s))
	}
}
