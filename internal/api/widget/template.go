package widget

import (
	"strconv"
	"strings"
)

// RenderDiscountMessage substitutes the merchant template's placeholders.
// Unknown placeholders pass through untouched.
func RenderDiscountMessage(template, code string, percentage float64, shopDomain string) string {
	shopName := strings.TrimSuffix(shopDomain, ".myshopify.com")

	r := strings.NewReplacer(
		"{discount_code}", code,
		"{discount_percentage}", strconv.FormatFloat(percentage, 'f', -1, 64),
		"{shop_name}", shopName,
	)
	return r.Replace(template)
}
