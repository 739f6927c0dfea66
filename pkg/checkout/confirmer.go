// Package checkout is the customer side of the book-and-pay flow. Card
// details go from here straight to the payment processor with the
// publishable key; the booking server only ever sees the client secret.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"homecare-booking/pkg/stripeapi"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/paymentmethod"
)

var (
	ErrNotConfigured       = errors.New("publishable key not configured")
	ErrInvalidClientSecret = errors.New("invalid client secret")
	ErrAuthentication      = errors.New("payment processor rejected the publishable key")
	ErrUnavailable         = errors.New("payment processor unavailable")
)

type ConfirmStatus string

const (
	ConfirmSucceeded ConfirmStatus = "succeeded"
	ConfirmFailed    ConfirmStatus = "failed"
)

// Card is only ever sent to the processor.
type Card struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

// String keeps card data out of logs and error messages.
func (c Card) String() string {
	if len(c.Number) < 4 {
		return "card"
	}
	return "card ending " + c.Number[len(c.Number)-4:]
}

func (c Card) GoString() string { return c.String() }

type Billing struct {
	Name       string
	Email      string
	Phone      string
	PostalCode string
	Country    string
}

type ConfirmResult struct {
	IntentID      string
	Status        ConfirmStatus
	FailureReason string
}

// Confirmer drives the processor's client-side confirmation of one intent.
type Confirmer struct {
	intents        *paymentintent.Client
	methods        *paymentmethod.Client
	publishableKey string
}

// NewConfirmer uses only the publishable key. An empty apiURL keeps the
// processor default.
func NewConfirmer(publishableKey, apiURL string, httpClient *http.Client) *Confirmer {
	backend := stripeapi.NewBackend(apiURL, httpClient)
	return &Confirmer{
		intents:        &paymentintent.Client{B: backend, Key: publishableKey},
		methods:        &paymentmethod.Client{B: backend, Key: publishableKey},
		publishableKey: publishableKey,
	}
}

// IntentStatus reports the processor's current status for the intent the
// secret belongs to.
func (c *Confirmer) IntentStatus(ctx context.Context, clientSecret string) (stripe.PaymentIntentStatus, error) {
	pi, err := c.fetch(ctx, clientSecret)
	if err != nil {
		return "", err
	}
	return pi.Status, nil
}

// Confirm charges card against the intent behind clientSecret. Declines and
// card validation problems come back as a failed result, not an error, so the
// caller can retry with the same secret. An intent that already succeeded is
// never charged again.
func (c *Confirmer) Confirm(ctx context.Context, clientSecret string, card Card, billing Billing) (*ConfirmResult, error) {
	pi, err := c.fetch(ctx, clientSecret)
	if err != nil {
		return nil, err
	}

	result := &ConfirmResult{IntentID: pi.ID}
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		result.Status = ConfirmSucceeded
		return result, nil
	case stripe.PaymentIntentStatusCanceled:
		return failed(result, "This payment was canceled. Please start a new booking."), nil
	case stripe.PaymentIntentStatusProcessing:
		return failed(result, "Your payment is still processing. Please wait before trying again."), nil
	}

	methodParams := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.Int64(int64(card.ExpMonth)),
			ExpYear:  stripe.Int64(int64(card.ExpYear)),
			CVC:      stripe.String(card.CVC),
		},
		BillingDetails: billingParams(billing),
	}
	methodParams.Context = ctx

	pm, err := c.methods.New(methodParams)
	if err != nil {
		return declinedOr(result, err)
	}

	confirmParams := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(pm.ID),
	}
	confirmParams.AddExtra("client_secret", clientSecret)
	confirmParams.Context = ctx

	pi, err = c.intents.Confirm(pi.ID, confirmParams)
	if err != nil {
		return declinedOr(result, err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		result.Status = ConfirmSucceeded
		return result, nil
	case stripe.PaymentIntentStatusRequiresAction:
		return failed(result, "Your bank requires additional authentication. Please use a different card."), nil
	case stripe.PaymentIntentStatusProcessing:
		return failed(result, "Your payment is still processing. Please wait before trying again."), nil
	default:
		reason := "Your payment could not be completed. Please try a different card."
		if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
			reason = pi.LastPaymentError.Msg
		}
		return failed(result, reason), nil
	}
}

func (c *Confirmer) fetch(ctx context.Context, clientSecret string) (*stripe.PaymentIntent, error) {
	if c.publishableKey == "" {
		return nil, ErrNotConfigured
	}

	id, ok := stripeapi.IntentIDFromClientSecret(clientSecret)
	if !ok {
		return nil, ErrInvalidClientSecret
	}

	params := &stripe.PaymentIntentParams{}
	params.AddExtra("client_secret", clientSecret)
	params.Context = ctx

	pi, err := c.intents.Get(id, params)
	if err != nil {
		kind, msg := stripeapi.Classify(err)
		switch kind {
		case stripeapi.KindAuthentication:
			return nil, fmt.Errorf("%w: %s", ErrAuthentication, msg)
		case stripeapi.KindNotFound, stripeapi.KindInvalidRequest:
			return nil, fmt.Errorf("%w: %s", ErrInvalidClientSecret, msg)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, msg)
		}
	}
	return pi, nil
}

func declinedOr(result *ConfirmResult, err error) (*ConfirmResult, error) {
	kind, msg := stripeapi.Classify(err)
	switch kind {
	case stripeapi.KindCard, stripeapi.KindInvalidRequest:
		if msg == "" {
			msg = "Your card was declined."
		}
		return failed(result, msg), nil
	case stripeapi.KindAuthentication:
		return nil, fmt.Errorf("%w: %s", ErrAuthentication, msg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, msg)
	}
}

func failed(result *ConfirmResult, reason string) *ConfirmResult {
	result.Status = ConfirmFailed
	result.FailureReason = reason
	return result
}

func billingParams(b Billing) *stripe.PaymentMethodBillingDetailsParams {
	params := &stripe.PaymentMethodBillingDetailsParams{}
	if b.Name != "" {
		params.Name = stripe.String(b.Name)
	}
	if b.Email != "" {
		params.Email = stripe.String(b.Email)
	}
	if b.Phone != "" {
		params.Phone = stripe.String(b.Phone)
	}
	if b.PostalCode != "" || b.Country != "" {
		params.Address = &stripe.AddressParams{}
		if b.PostalCode != "" {
			params.Address.PostalCode = stripe.String(b.PostalCode)
		}
		if b.Country != "" {
			params.Address.Country = stripe.String(b.Country)
		}
	}
	return params
}
