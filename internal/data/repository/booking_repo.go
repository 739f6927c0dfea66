package repository

import (
	"context"
	"errors"
	"fmt"

	"homecare-booking/internal/data/entity"
	"homecare-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicatePaymentIntent is returned by Create when a booking already
// exists for the payment intent. At most one booking per intent.
var ErrDuplicatePaymentIntent = errors.New("booking already exists for payment intent")

// BookingRepository is append-only: bookings are never updated or deleted.
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, reference, payment_intent_id, service_id, service_label, quantity, amount, currency,
		customer_name, customer_email, customer_phone, preferred_date, notes, status, created_at`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.PaymentIntentID,
		booking.ServiceID,
		booking.ServiceLabel,
		booking.Quantity,
		booking.Amount,
		booking.Currency,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.PreferredDate,
		booking.Notes,
		booking.Status,
		booking.CreatedAt,
	)

	if isUniqueViolation(err) {
		r.log.Warn("Duplicate booking for payment intent",
			zap.String("payment_intent_id", booking.PaymentIntentID),
		)
		return ErrDuplicatePaymentIntent
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("payment_intent_id", booking.PaymentIntentID),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE payment_intent_id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, paymentIntentID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by payment intent",
			zap.Error(err),
			zap.String("payment_intent_id", paymentIntentID),
		)
		return nil, fmt.Errorf("find booking by payment intent %s: %w", paymentIntentID, err)
	}

	return booking, nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.PaymentIntentID,
		&booking.ServiceID,
		&booking.ServiceLabel,
		&booking.Quantity,
		&booking.Amount,
		&booking.Currency,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.PreferredDate,
		&booking.Notes,
		&booking.Status,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
