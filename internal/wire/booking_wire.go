package wire

import (
	"homecare-booking/internal/adaptor"
	"homecare-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, limiter *middleware.RateLimiter, log *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter, log))

		// POST /api/payment - verify a confirmed payment and record the booking
		r.Post("/api/payment", bookingHandler.FinalizeBooking)
	})
}
