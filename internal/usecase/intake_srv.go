package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"homecare-booking/internal/data/entity"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

const maxNotesLength = 2000

// BookingInput is the raw intake form, shared by quote requests, intent
// creation and finalizing. Field names in errors use the json tags.
type BookingInput struct {
	Name            string          `json:"name" validate:"required,max=200"`
	Email           string          `json:"email" validate:"required,email,max=254"`
	Phone           string          `json:"phone" validate:"required,max=50"`
	Service         string          `json:"service" validate:"required"`
	Quantity        json.RawMessage `json:"quantity"`
	PreferredDate   string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Notes           string          `json:"notes"`
	RequireQuantity bool            `json:"-"`
	AllowPastDate   bool            `json:"-"`
}

// BookingRequest is a validated intake with its catalog-derived amount.
type BookingRequest struct {
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	Service        entity.ServiceOption
	Quantity       int
	PreferredDate  *time.Time
	Notes          string
	DeclaredAmount int64
}

// PreferredDateString is the date as the customer entered it, or "".
func (r *BookingRequest) PreferredDateString() string {
	if r.PreferredDate == nil {
		return ""
	}
	return r.PreferredDate.Format(time.DateOnly)
}

type IntakeService interface {
	Validate(ctx context.Context, in BookingInput) (*BookingRequest, error)
}

type intakeService struct {
	catalog CatalogService
	now     func() time.Time
	log     *zap.Logger
}

func NewIntakeService(catalog CatalogService, log *zap.Logger) IntakeService {
	return &intakeService{
		catalog: catalog,
		now:     time.Now,
		log:     log.With(zap.String("service", "intake")),
	}
}

func (s *intakeService) Validate(ctx context.Context, in BookingInput) (*BookingRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Service = strings.TrimSpace(in.Service)
	in.PreferredDate = strings.TrimSpace(in.PreferredDate)

	if violations := utils.ValidateStruct(in); len(violations) > 0 {
		s.log.Debug("Intake validation failed", zap.String("violations", utils.FormatValidationErrors(violations)))
		first := violations[0]
		if first.Tag == "required" {
			return nil, missingField(first.Field)
		}
		return nil, invalidField(first.Field, first.Message)
	}

	if _, err := s.catalog.Lookup(ctx, in.Service); err != nil {
		return nil, err
	}

	quantity, absent, err := utils.ParsePositiveInt(in.Quantity)
	switch {
	case err != nil:
		return nil, &FieldError{Field: "quantity", Kind: ErrInvalidQuantity, Message: ErrInvalidQuantity.Error()}
	case absent && in.RequireQuantity:
		return nil, missingField("quantity")
	case absent:
		quantity = 1
	}

	amount, opt, err := s.catalog.Quote(ctx, in.Service, quantity)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			return nil, &FieldError{Field: "quantity", Kind: ErrInvalidAmount, Message: "total is too large"}
		}
		return nil, err
	}

	req := &BookingRequest{
		CustomerName:   in.Name,
		CustomerEmail:  in.Email,
		CustomerPhone:  in.Phone,
		Service:        *opt,
		Quantity:       quantity,
		Notes:          truncateRunes(strings.TrimSpace(in.Notes), maxNotesLength),
		DeclaredAmount: amount,
	}

	if in.PreferredDate != "" {
		date, err := time.Parse(time.DateOnly, in.PreferredDate)
		if err != nil {
			return nil, invalidField("date", "Must be a date formatted as YYYY-MM-DD")
		}
		// One day of slack covers customers whose local date is behind UTC.
		earliest := s.now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -1)
		if !in.AllowPastDate && date.Before(earliest) {
			return nil, invalidField("date", "Must not be in the past")
		}
		req.PreferredDate = &date
	}

	return req, nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
