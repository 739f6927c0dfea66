package processor

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"homecare-booking/internal/data/entity"
	"homecare-booking/pkg/stripeapi"
	"homecare-booking/pkg/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

var (
	ErrNotConfigured  = errors.New("payment processor secret key not configured")
	ErrAuthentication = errors.New("payment processor authentication failed")
	ErrInvalidRequest = errors.New("payment processor rejected the request")
	ErrNotFound       = errors.New("payment intent not found")
	ErrUnavailable    = errors.New("payment processor unavailable")
)

// Error carries the processor's message alongside one of the sentinels above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

func (e *Error) Unwrap() error { return e.Kind }

type CreateIntentParams struct {
	Amount                    int64
	Currency                  string
	Description               string
	ReceiptEmail              string
	StatementDescriptorSuffix string
	Metadata                  map[string]string
	IdempotencyKey            string
}

type StripeProcessor struct {
	intents   *paymentintent.Client
	secretKey string
	log       *zap.Logger
}

func NewStripeProcessor(config utils.StripeConfig, httpClient *http.Client, log *zap.Logger) *StripeProcessor {
	backend := stripeapi.NewBackend(config.APIURL, httpClient)
	return &StripeProcessor{
		intents:   &paymentintent.Client{B: backend, Key: config.SecretKey},
		secretKey: config.SecretKey,
		log:       log.With(zap.String("processor", "stripe")),
	}
}

func (p *StripeProcessor) CreateIntent(ctx context.Context, in CreateIntentParams) (*entity.PaymentIntent, error) {
	if p.secretKey == "" {
		return nil, ErrNotConfigured
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(in.Amount),
		Currency:           stripe.String(in.Currency),
		Description:        stripe.String(in.Description),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	if in.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(in.ReceiptEmail)
	}
	if in.StatementDescriptorSuffix != "" {
		params.StatementDescriptorSuffix = stripe.String(in.StatementDescriptorSuffix)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey(in.IdempotencyKey)
	}
	params.Context = ctx

	pi, err := p.intents.New(params)
	if err != nil {
		return nil, p.translate("create", "", err)
	}

	p.log.Info("Payment intent created",
		zap.String("payment_intent_id", pi.ID),
		zap.Int64("amount", pi.Amount),
		zap.String("currency", string(pi.Currency)),
	)
	return toEntity(pi), nil
}

func (p *StripeProcessor) GetIntent(ctx context.Context, id string) (*entity.PaymentIntent, error) {
	if p.secretKey == "" {
		return nil, ErrNotConfigured
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := p.intents.Get(id, params)
	if err != nil {
		return nil, p.translate("retrieve", id, err)
	}
	return toEntity(pi), nil
}

func (p *StripeProcessor) translate(op, id string, err error) error {
	kind, msg := stripeapi.Classify(err)

	var sentinel error
	switch kind {
	case stripeapi.KindAuthentication:
		sentinel = ErrAuthentication
	case stripeapi.KindNotFound:
		sentinel = ErrNotFound
	case stripeapi.KindInvalidRequest, stripeapi.KindCard:
		sentinel = ErrInvalidRequest
	default:
		sentinel = ErrUnavailable
	}

	p.log.Error("Payment processor call failed",
		zap.Error(err),
		zap.String("operation", op),
		zap.String("payment_intent_id", id),
		zap.String("kind", kind.String()),
	)
	return &Error{Kind: sentinel, Message: msg}
}

func toEntity(pi *stripe.PaymentIntent) *entity.PaymentIntent {
	metadata := make(map[string]string, len(pi.Metadata))
	for k, v := range pi.Metadata {
		metadata[k] = v
	}
	return &entity.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       entity.PaymentIntentStatus(pi.Status),
		Metadata:     metadata,
	}
}
