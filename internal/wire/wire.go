package wire

import (
	"net/http"

	"homecare-booking/internal/adaptor"
	"homecare-booking/internal/data/repository"
	"homecare-booking/internal/usecase"
	"homecare-booking/pkg/middleware"
	"homecare-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes. db may be nil when bookings
// are kept in memory.
func Wiring(repo *repository.Repository, gw usecase.Gateways, db adaptor.Pinger, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, gw, config, logger)
	handler := adaptor.NewHandler(service, db, config, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	// The rate limiter keys on RemoteAddr; forwarded headers are only
	// believed when a trusted proxy sets them.
	if config.App.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	limiter := middleware.NewRateLimiter(config.RateLimit.PerMinute, config.RateLimit.Burst)

	wireCatalog(r, handler.Catalog)
	wirePayment(r, handler.Payment, limiter, logger)
	wireBooking(r, handler.Booking, limiter, logger)
	wireContact(r, handler.Contact, limiter, logger)

	r.Get("/health", handler.Health.Health)

	return r
}
