package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/processor"
	"homecare-booking/internal/data/repository"
	"homecare-booking/internal/dto/request"
	"homecare-booking/internal/dto/response"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

const bookingConfirmedMessage = "Payment verified and booking confirmed"

type BookingService interface {
	FinalizeBooking(ctx context.Context, req *request.FinalizeBookingRequest) (*response.FinalizeBookingResponse, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	intake    IntakeService
	processor PaymentProcessor
	notifier  NotificationService
	config    *utils.Config
	now       func() time.Time
	log       *zap.Logger
}

func NewBookingService(repo repository.BookingRepository, intake IntakeService, processor PaymentProcessor, notifier NotificationService, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		intake:    intake,
		processor: processor,
		notifier:  notifier,
		config:    config,
		now:       time.Now,
		log:       log.With(zap.String("service", "booking")),
	}
}

// FinalizeBooking re-verifies the payment with the processor and records the
// booking. The client's claim that the payment succeeded is never trusted.
func (s *bookingService) FinalizeBooking(ctx context.Context, req *request.FinalizeBookingRequest) (*response.FinalizeBookingResponse, error) {
	req.PaymentIntentID = strings.TrimSpace(req.PaymentIntentID)
	if violations := utils.ValidateStruct(req); len(violations) > 0 {
		first := violations[0]
		if first.Tag == "required" {
			return nil, missingField(first.Field)
		}
		return nil, invalidField(first.Field, first.Message)
	}

	if req.Amount == nil || *req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	// The date floor was applied when the intent was created. The card may
	// have been charged since then, so it is not applied again.
	booking, err := s.intake.Validate(ctx, BookingInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Service:         req.Service,
		Quantity:        req.Quantity,
		PreferredDate:   req.Date,
		Notes:           joinNotes(req.Notes, req.Message),
		RequireQuantity: true,
		AllowPastDate:   true,
	})
	if err != nil {
		return nil, err
	}

	currency := s.config.Stripe.Currency
	log := s.log.With(
		zap.String("payment_intent_id", req.PaymentIntentID),
		zap.String("service_id", booking.Service.ID),
		zap.Int("quantity", booking.Quantity),
		zap.Int64("declared_amount", booking.DeclaredAmount),
	)

	if *req.Amount != booking.DeclaredAmount {
		log.Warn("Finalize rejected, request amount differs from catalog", zap.Int64("client_amount", *req.Amount))
		return nil, &AmountMismatchError{Expected: booking.DeclaredAmount, Actual: *req.Amount, Currency: currency, Source: "request"}
	}

	existing, err := s.repo.FindByPaymentIntentID(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("check existing booking: %w", err)
	}
	if existing != nil {
		log.Warn("Finalize rejected, payment already has a booking", zap.String("reference", existing.Reference))
		return nil, ErrAlreadyFinalized
	}

	intent, err := s.processor.GetIntent(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, translateVerifyError(err)
	}
	if intent == nil || intent.ID != req.PaymentIntentID {
		return nil, ErrPaymentNotVerified
	}

	if err := verifyIntent(intent, booking, currency); err != nil {
		log.Warn("Finalize rejected, payment does not verify",
			zap.Error(err),
			zap.String("status", string(intent.Status)),
			zap.Int64("processor_amount", intent.Amount),
			zap.String("processor_currency", intent.Currency),
		)
		return nil, err
	}

	now := s.now().UTC()
	record := &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
		},
		Reference:       utils.GenerateBookingReference(now),
		PaymentIntentID: intent.ID,
		ServiceID:       booking.Service.ID,
		ServiceLabel:    booking.Service.Label,
		Quantity:        booking.Quantity,
		Amount:          booking.DeclaredAmount,
		Currency:        strings.ToLower(intent.Currency),
		CustomerName:    booking.CustomerName,
		CustomerEmail:   booking.CustomerEmail,
		CustomerPhone:   booking.CustomerPhone,
		PreferredDate:   booking.PreferredDate,
		Notes:           booking.Notes,
		Status:          entity.BookingStatusConfirmed,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicatePaymentIntent) {
			return nil, ErrAlreadyFinalized
		}
		return nil, fmt.Errorf("save booking: %w", err)
	}

	log.Info("Booking confirmed",
		zap.String("booking_id", record.ID.String()),
		zap.String("reference", record.Reference),
	)

	s.notifier.BookingConfirmed(ctx, record)

	return &response.FinalizeBookingResponse{
		Success: true,
		Message: bookingConfirmedMessage,
		Booking: response.NewBookingResponse(record),
	}, nil
}

// verifyIntent checks the processor's record against the catalog-derived
// booking. Status first, then money, then what was bought.
func verifyIntent(intent *entity.PaymentIntent, booking *BookingRequest, currency string) error {
	if intent.Status != entity.PaymentIntentSucceeded {
		return &PaymentStatusError{Status: string(intent.Status)}
	}

	if intent.Amount != booking.DeclaredAmount || !strings.EqualFold(intent.Currency, currency) {
		return &AmountMismatchError{
			Expected:       booking.DeclaredAmount,
			Actual:         intent.Amount,
			Currency:       currency,
			ActualCurrency: strings.ToLower(intent.Currency),
			Source:         "processor",
		}
	}

	if intent.Metadata[metaService] != booking.Service.ID {
		return fmt.Errorf("%w: service %q was paid for, not %q", ErrIntentMismatch, intent.Metadata[metaService], booking.Service.ID)
	}
	if intent.Metadata[metaQuantity] != strconv.Itoa(booking.Quantity) {
		return fmt.Errorf("%w: quantity %q was paid for, not %d", ErrIntentMismatch, intent.Metadata[metaQuantity], booking.Quantity)
	}
	return nil
}

func translateVerifyError(err error) error {
	reason := processorReason(err)
	switch {
	case errors.Is(err, processor.ErrNotConfigured):
		return ErrNotConfigured
	case errors.Is(err, processor.ErrAuthentication):
		return &ProcessorError{Kind: ErrProcessorAuth}
	case errors.Is(err, processor.ErrNotFound), errors.Is(err, processor.ErrInvalidRequest):
		return &ProcessorError{Kind: ErrPaymentNotVerified, Reason: reason}
	default:
		// Unreachable or unknown: the payment may well be good, so the
		// caller must be able to finalize again.
		return &ProcessorError{Kind: ErrProcessorUnavailable, Reason: reason}
	}
}

func joinNotes(notes, message string) string {
	notes = strings.TrimSpace(notes)
	message = strings.TrimSpace(message)
	switch {
	case notes == "":
		return message
	case message == "":
		return notes
	default:
		return notes + "\n\n" + message
	}
}
