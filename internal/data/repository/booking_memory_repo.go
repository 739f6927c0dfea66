package repository

import (
	"context"
	"sync"

	"homecare-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memoryBookingRepository keeps bookings in process and writes every
// booking to the log, which is the durable trail when no database is
// configured.
type memoryBookingRepository struct {
	mu       sync.RWMutex
	byID     map[uuid.UUID]*entity.Booking
	byIntent map[string]uuid.UUID
	log      *zap.Logger
}

func NewMemoryBookingRepository(log *zap.Logger) BookingRepository {
	return &memoryBookingRepository{
		byID:     make(map[uuid.UUID]*entity.Booking),
		byIntent: make(map[string]uuid.UUID),
		log:      log.With(zap.String("repository", "booking_memory")),
	}
}

func (r *memoryBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byIntent[booking.PaymentIntentID]; exists {
		r.log.Warn("Duplicate booking for payment intent",
			zap.String("payment_intent_id", booking.PaymentIntentID),
		)
		return ErrDuplicatePaymentIntent
	}

	stored := *booking
	r.byID[booking.ID] = &stored
	r.byIntent[booking.PaymentIntentID] = booking.ID

	r.log.Info("Booking recorded",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("payment_intent_id", booking.PaymentIntentID),
		zap.String("service_id", booking.ServiceID),
		zap.Int("quantity", booking.Quantity),
		zap.Int64("amount", booking.Amount),
		zap.String("currency", booking.Currency),
		zap.String("customer_name", booking.CustomerName),
		zap.String("customer_email", booking.CustomerEmail),
		zap.String("customer_phone", booking.CustomerPhone),
		zap.Time("created_at", booking.CreatedAt),
	)
	return nil
}

func (r *memoryBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	found := *booking
	return &found, nil
}

func (r *memoryBookingRepository) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byIntent[paymentIntentID]
	if !ok {
		return nil, nil
	}
	found := *r.byID[id]
	return &found, nil
}
