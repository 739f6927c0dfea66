package wire

import (
	"homecare-booking/internal/adaptor"
	"homecare-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireContact(r chi.Router, contactHandler *adaptor.ContactHandler, limiter *middleware.RateLimiter, log *zap.Logger) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter, log))

		// POST /api/contact - quote request, relayed without payment
		r.Post("/api/contact", contactHandler.SubmitContact)
	})
}
