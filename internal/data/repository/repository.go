package repository

import (
	"homecare-booking/internal/data/entity"
	"homecare-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Booking       BookingRepository
	ServiceOption ServiceOptionRepository
}

// NewRepository wires the Postgres booking store, or the in-memory one when
// db is nil. A nil options slice uses the published price list.
func NewRepository(db database.PgxIface, options []entity.ServiceOption, log *zap.Logger) *Repository {
	var booking BookingRepository
	if db != nil {
		booking = NewBookingRepository(db, log)
	} else {
		booking = NewMemoryBookingRepository(log)
	}

	if options == nil {
		options = entity.DefaultServiceOptions
	}

	return &Repository{
		Booking:       booking,
		ServiceOption: NewServiceOptionRepository(options, log),
	}
}
