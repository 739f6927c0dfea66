package request

import "encoding/json"

// CreatePaymentIntentRequest is the body of POST /api/create-payment-intent.
// Amount is the browser's own total and only cross-checked.
type CreatePaymentIntentRequest struct {
	Amount        *int64          `json:"amount,omitempty"`
	Service       string          `json:"service"`
	ServiceLabel  string          `json:"serviceLabel,omitempty"`
	Quantity      json.RawMessage `json:"quantity,omitempty"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone"`
	PreferredDate string          `json:"preferredDate,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}
