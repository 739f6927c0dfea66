package request

import "encoding/json"

// FinalizeBookingRequest is the body of POST /api/payment. It never carries
// card data; the card was confirmed directly with the processor.
type FinalizeBookingRequest struct {
	PaymentIntentID string          `json:"paymentIntentId" validate:"required,startswith=pi_"`
	Amount          *int64          `json:"amount"`
	Service         string          `json:"service"`
	ServiceLabel    string          `json:"serviceLabel,omitempty"`
	Quantity        json.RawMessage `json:"quantity"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Date            string          `json:"date,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Message         string          `json:"message,omitempty"`
}
