package wire

import (
	"homecare-booking/internal/adaptor"
	"homecare-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler, limiter *middleware.RateLimiter, log *zap.Logger) {
	// GET /api/payment-config - publishable key for the browser
	r.Get("/api/payment-config", paymentHandler.PaymentConfig)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter, log))

		// POST /api/create-payment-intent - pending charge for a validated booking
		r.Post("/api/create-payment-intent", paymentHandler.CreatePaymentIntent)
	})
}
