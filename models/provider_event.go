package models

// ProviderEvent is the payment provider's webhook payload.
type ProviderEvent struct {
	EventType string            `json:"event_type"`
	Data      ProviderEventData `json:"data"`
}

// ProviderEventData carries the provider-side identifiers and amounts.
// ExternalID must match a previously stored payment-link id.
type ProviderEventData struct {
	ID         string                 `json:"id"`
	ExternalID string                 `json:"external_id"`
	Status     string                 `json:"status"`
	Amount     string                 `json:"amount"`
	Currency   string                 `json:"amount_currency"`
	Customer   map[string]interface{} `json:"customer,omitempty"`
}
