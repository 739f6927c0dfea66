package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/dto/response"
	"homecare-booking/pkg/relay"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

const notificationTimeout = 10 * time.Second

type Mailer interface {
	Send(ctx context.Context, email relay.Email) error
}

// NotificationService sends booking e-mails in the background. Failures are
// logged and never returned; a booking is confirmed whether or not its
// e-mails go out.
type NotificationService interface {
	BookingConfirmed(ctx context.Context, booking *entity.Booking)
	// Wait blocks until every e-mail started so far has been sent or has
	// timed out.
	Wait()
}

type notificationService struct {
	mailer Mailer
	config *utils.Config
	wg     sync.WaitGroup
	log    *zap.Logger
}

func NewNotificationService(mailer Mailer, config *utils.Config, log *zap.Logger) NotificationService {
	return &notificationService{
		mailer: mailer,
		config: config,
		log:    log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) BookingConfirmed(ctx context.Context, booking *entity.Booking) {
	// Detached so a client hanging up after the booking is saved does not
	// cancel its e-mails.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		s.sendAll(ctx, booking)
	}()
}

func (s *notificationService) Wait() {
	s.wg.Wait()
}

func (s *notificationService) sendAll(ctx context.Context, booking *entity.Booking) {
	business := s.config.App.BusinessName
	data := map[string]any{
		"name":      booking.CustomerName,
		"reference": booking.Reference,
		"service":   booking.ServiceLabel,
		"amount":    response.FormatCents(booking.Amount),
		"currency":  booking.Currency,
		"quantity":  booking.Quantity,
		"date":      bookingDate(booking),
		"notes":     booking.Notes,
	}

	s.send(ctx, booking, "customer", relay.Email{
		To:       booking.CustomerEmail,
		Subject:  fmt.Sprintf("Booking Confirmation - %s", business),
		Template: "booking-confirmation",
		Data:     data,
	})

	if s.config.Notification.InternalEmail == "" {
		return
	}

	internal := make(map[string]any, len(data)+3)
	for k, v := range data {
		internal[k] = v
	}
	internal["email"] = booking.CustomerEmail
	internal["phone"] = booking.CustomerPhone
	internal["paymentIntentId"] = booking.PaymentIntentID

	s.send(ctx, booking, "internal", relay.Email{
		To:       s.config.Notification.InternalEmail,
		Subject:  fmt.Sprintf("New Booking %s - %s", booking.Reference, booking.ServiceLabel),
		Template: "booking-internal",
		Data:     internal,
	})
}

func (s *notificationService) send(ctx context.Context, booking *entity.Booking, audience string, email relay.Email) {
	err := s.mailer.Send(ctx, email)
	switch {
	case err == nil:
		s.log.Info("Booking notification sent",
			zap.String("audience", audience),
			zap.String("reference", booking.Reference),
		)
	case errors.Is(err, relay.ErrNotConfigured):
		s.log.Debug("Booking notification skipped, no e-mail endpoint",
			zap.String("audience", audience),
			zap.String("reference", booking.Reference),
		)
	default:
		s.log.Warn("Booking notification failed",
			zap.Error(err),
			zap.String("audience", audience),
			zap.String("reference", booking.Reference),
		)
	}
}

func bookingDate(b *entity.Booking) string {
	if b.PreferredDate == nil {
		return dateNotSpecified
	}
	return b.PreferredDate.Format(time.DateOnly)
}
