// Package stripeapi holds the Stripe plumbing shared by the server-side
// processor adapter and the customer-side confirmation client.
package stripeapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v76"
)

// Kind is the coarse category of a failed Stripe call.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthentication
	KindInvalidRequest
	KindNotFound
	KindCard
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindInvalidRequest:
		return "invalid_request"
	case KindNotFound:
		return "not_found"
	case KindCard:
		return "card"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// NewBackend returns a Stripe API backend that makes exactly one attempt per
// call. An empty url keeps the Stripe default.
func NewBackend(url string, httpClient *http.Client) stripe.Backend {
	cfg := &stripe.BackendConfig{
		HTTPClient:        httpClient,
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
		MaxNetworkRetries: stripe.Int64(0),
	}
	if url != "" {
		cfg.URL = stripe.String(url)
	}
	return stripe.GetBackendWithConfig(stripe.APIBackend, cfg)
}

// Classify sorts err into a Kind and returns the Stripe message when there
// is one. Errors that never reached Stripe are KindUnavailable.
func Classify(err error) (Kind, string) {
	if err == nil {
		return KindUnknown, ""
	}

	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return KindUnavailable, err.Error()
	}

	msg := stripeErr.Msg
	if msg == "" {
		msg = string(stripeErr.Code)
	}

	switch {
	case stripeErr.HTTPStatusCode == http.StatusUnauthorized,
		stripeErr.HTTPStatusCode == http.StatusForbidden:
		return KindAuthentication, msg
	case stripeErr.Type == stripe.ErrorTypeCard:
		return KindCard, msg
	case stripeErr.Code == stripe.ErrorCodeResourceMissing,
		stripeErr.HTTPStatusCode == http.StatusNotFound:
		return KindNotFound, msg
	case stripeErr.Type == stripe.ErrorTypeInvalidRequest,
		stripeErr.Type == stripe.ErrorTypeIdempotency:
		return KindInvalidRequest, msg
	case stripeErr.HTTPStatusCode >= http.StatusInternalServerError,
		stripeErr.Type == stripe.ErrorTypeAPI:
		return KindUnavailable, msg
	default:
		return KindUnknown, msg
	}
}

// IntentIDFromClientSecret extracts "pi_123" from "pi_123_secret_abc".
func IntentIDFromClientSecret(secret string) (string, bool) {
	id, rest, found := strings.Cut(secret, "_secret_")
	if !found || id == "" || rest == "" {
		return "", false
	}
	return id, true
}
