package response

type PaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

// PaymentConfigResponse is what the browser needs to talk to the processor.
type PaymentConfigResponse struct {
	PublishableKey string `json:"publishableKey"`
	Currency       string `json:"currency"`
}
