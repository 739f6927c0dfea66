package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homecare-booking/internal/dto/request"
	"homecare-booking/pkg/relay"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

type FormRelay interface {
	Submit(ctx context.Context, sub relay.FormSubmission) error
}

// ContactService handles quote requests. Nothing is charged.
type ContactService interface {
	SubmitQuote(ctx context.Context, req *request.ContactRequest) error
}

type contactService struct {
	intake IntakeService
	relay  FormRelay
	log    *zap.Logger
}

func NewContactService(intake IntakeService, relay FormRelay, log *zap.Logger) ContactService {
	return &contactService{
		intake: intake,
		relay:  relay,
		log:    log.With(zap.String("service", "contact")),
	}
}

func (s *contactService) SubmitQuote(ctx context.Context, req *request.ContactRequest) error {
	if violations := utils.ValidateStruct(req); len(violations) > 0 {
		return invalidField(violations[0].Field, violations[0].Message)
	}

	quote, err := s.intake.Validate(ctx, BookingInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Service:       req.Service,
		PreferredDate: req.Date,
		Notes:         req.Message,
	})
	if err != nil {
		return err
	}

	err = s.relay.Submit(ctx, relay.FormSubmission{
		Name:    quote.CustomerName,
		Phone:   quote.CustomerPhone,
		Email:   quote.CustomerEmail,
		Service: quote.Service.ID,
		Date:    quote.PreferredDateString(),
		Time:    strings.TrimSpace(req.Time),
		Message: quote.Notes,
	})

	var statusErr *relay.StatusError
	switch {
	case err == nil:
		s.log.Info("Quote request relayed", zap.String("service_id", quote.Service.ID))
		return nil
	case errors.Is(err, relay.ErrNotConfigured):
		s.log.Error("Form relay access key is not configured")
		return ErrNotConfigured
	case errors.As(err, &statusErr):
		s.log.Error("Form relay rejected quote request",
			zap.Int("status", statusErr.StatusCode),
			zap.String("body", statusErr.Body),
		)
		return &RelayError{StatusCode: statusErr.StatusCode}
	default:
		s.log.Error("Form relay unreachable", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRelayFailed, err)
	}
}
