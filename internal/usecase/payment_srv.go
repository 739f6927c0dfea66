package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/processor"
	"homecare-booking/internal/dto/request"
	"homecare-booking/internal/dto/response"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

// MaxChargeAmount is the processor's ceiling for a single charge, in cents.
const MaxChargeAmount int64 = 99_999_900

const dateNotSpecified = "Not specified"

// Metadata keys attached to every intent and checked again when finalizing.
const (
	metaService       = "service"
	metaServiceLabel  = "serviceLabel"
	metaQuantity      = "quantity"
	metaCustomerName  = "customerName"
	metaCustomerPhone = "customerPhone"
	metaPreferredDate = "preferredDate"
)

type PaymentProcessor interface {
	CreateIntent(ctx context.Context, params processor.CreateIntentParams) (*entity.PaymentIntent, error)
	GetIntent(ctx context.Context, id string) (*entity.PaymentIntent, error)
}

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, req *request.CreatePaymentIntentRequest, idempotencyToken string) (*response.PaymentIntentResponse, error)
	PaymentConfig(ctx context.Context) (*response.PaymentConfigResponse, error)
}

type paymentService struct {
	intake    IntakeService
	processor PaymentProcessor
	config    *utils.Config
	log       *zap.Logger
}

func NewPaymentService(intake IntakeService, processor PaymentProcessor, config *utils.Config, log *zap.Logger) PaymentService {
	return &paymentService{
		intake:    intake,
		processor: processor,
		config:    config,
		log:       log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreatePaymentIntent(ctx context.Context, req *request.CreatePaymentIntentRequest, idempotencyToken string) (*response.PaymentIntentResponse, error) {
	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CustomerEmail) == "" {
		return nil, ErrMissingCustomerInfo
	}

	booking, err := s.intake.Validate(ctx, BookingInput{
		Name:          req.CustomerName,
		Email:         req.CustomerEmail,
		Phone:         req.CustomerPhone,
		Service:       req.Service,
		Quantity:      req.Quantity,
		PreferredDate: req.PreferredDate,
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, err
	}

	currency := s.config.Stripe.Currency
	amount := booking.DeclaredAmount

	if req.Amount != nil && *req.Amount != amount {
		s.log.Warn("Client amount differs from catalog amount",
			zap.String("service_id", booking.Service.ID),
			zap.Int("quantity", booking.Quantity),
			zap.Int64("declared_amount", amount),
			zap.Int64("client_amount", *req.Amount),
		)
		return nil, &AmountMismatchError{Expected: amount, Actual: *req.Amount, Currency: currency, Source: "request"}
	}

	if amount <= 0 || amount > MaxChargeAmount {
		return nil, fmt.Errorf("%w: %d exceeds the allowed range", ErrInvalidAmount, amount)
	}

	if s.config.Stripe.SecretKey == "" {
		s.log.Error("Stripe secret key is not configured")
		return nil, ErrNotConfigured
	}

	preferredDate := booking.PreferredDateString()
	if preferredDate == "" {
		preferredDate = dateNotSpecified
	}

	params := processor.CreateIntentParams{
		Amount:                    amount,
		Currency:                  currency,
		Description:               fmt.Sprintf("%s (Qty: %d) - %s", booking.Service.Label, booking.Quantity, s.config.App.BusinessName),
		ReceiptEmail:              booking.CustomerEmail,
		StatementDescriptorSuffix: s.config.Stripe.StatementDescriptorSuffix,
		Metadata: map[string]string{
			metaService:       booking.Service.ID,
			metaServiceLabel:  booking.Service.Label,
			metaQuantity:      strconv.Itoa(booking.Quantity),
			metaCustomerName:  booking.CustomerName,
			metaCustomerPhone: booking.CustomerPhone,
			metaPreferredDate: preferredDate,
		},
		IdempotencyKey: utils.DeriveIdempotencyKey(idempotencyToken,
			booking.Service.ID,
			strconv.Itoa(booking.Quantity),
			strconv.FormatInt(amount, 10),
			currency,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			preferredDate,
		),
	}

	intent, err := s.processor.CreateIntent(ctx, params)
	if err != nil {
		return nil, translateCreateError(err)
	}

	s.log.Info("Payment intent ready",
		zap.String("payment_intent_id", intent.ID),
		zap.String("service_id", booking.Service.ID),
		zap.Int("quantity", booking.Quantity),
		zap.Int64("amount", amount),
		zap.Bool("idempotent", params.IdempotencyKey != ""),
	)

	return &response.PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          amount,
		Currency:        currency,
	}, nil
}

func (s *paymentService) PaymentConfig(ctx context.Context) (*response.PaymentConfigResponse, error) {
	if s.config.Stripe.PublishableKey == "" {
		return nil, ErrNotConfigured
	}
	return &response.PaymentConfigResponse{
		PublishableKey: s.config.Stripe.PublishableKey,
		Currency:       s.config.Stripe.Currency,
	}, nil
}

func translateCreateError(err error) error {
	reason := processorReason(err)
	switch {
	case errors.Is(err, processor.ErrNotConfigured):
		return ErrNotConfigured
	case errors.Is(err, processor.ErrAuthentication):
		return &ProcessorError{Kind: ErrProcessorAuth}
	case errors.Is(err, processor.ErrInvalidRequest), errors.Is(err, processor.ErrNotFound):
		return &ProcessorError{Kind: ErrProcessorRejected, Reason: reason}
	default:
		return &ProcessorError{Kind: ErrProcessorUnavailable, Reason: reason}
	}
}

func processorReason(err error) string {
	var perr *processor.Error
	if errors.As(err, &perr) {
		return perr.Message
	}
	return ""
}
