package shopifywebhook

// Each webhook topic gets its own payload type, decoded strictly at the
// boundary. Anything that does not match its schema is rejected before any
// ledger mutation happens.

const (
	TopicSubscriptionUpdate     = "app_subscriptions/update"
	TopicApproachingCappedUsage = "app_subscriptions/approaching_capped_amount"
	TopicOneTimePurchaseUpdate  = "app_purchases_one_time/update"
	TopicAppUninstalled         = "app/uninstalled"
	TopicCustomersDataRequest   = "customers/data_request"
	TopicCustomersRedact        = "customers/redact"
	TopicShopRedact             = "shop/redact"
)

type subscriptionUpdatePayload struct {
	AppSubscription struct {
		AdminGraphqlAPIID string `json:"admin_graphql_api_id"`
		Name              string `json:"name"`
		Status            string `json:"status"`
	} `json:"app_subscription"`
}

type oneTimePurchasePayload struct {
	AppPurchaseOneTime struct {
		AdminGraphqlAPIID string `json:"admin_graphql_api_id"`
		Name              string `json:"name"`
		Status            string `json:"status"`
	} `json:"app_purchase_one_time"`
}

type cappedAmountPayload struct {
	AppSubscription struct {
		AdminGraphqlAPIID string `json:"admin_graphql_api_id"`
		Name              string `json:"name"`
		Status            string `json:"status"`
		CappedAmount      string `json:"capped_amount"`
	} `json:"app_subscription"`
}

type uninstalledPayload struct {
	Domain string `json:"domain"`
	Name   string `json:"name"`
}

type customerRedactPayload struct {
	ShopDomain string `json:"shop_domain"`
	Customer   struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	} `json:"customer"`
}

type shopRedactPayload struct {
	ShopDomain string `json:"shop_domain"`
	ShopID     int64  `json:"shop_id"`
}
