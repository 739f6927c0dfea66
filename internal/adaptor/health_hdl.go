package adaptor

import (
	"context"
	"net/http"
	"time"

	"homecare-booking/internal/dto/response"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	config *utils.Config
	log    *zap.Logger
}

// NewHealthHandler takes a nil db when bookings are kept in memory.
func NewHealthHandler(db Pinger, config *utils.Config, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		config: config,
		log:    log.With(zap.String("handler", "health")),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		utils.ResponseSuccess(w, response.HealthResponse{Status: "ok", Store: utils.StoreDriverMemory})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("Health check failed", zap.Error(err))
		utils.ResponseJSON(w, http.StatusServiceUnavailable, response.HealthResponse{Status: "unavailable", Store: utils.StoreDriverPostgres})
		return
	}
	utils.ResponseSuccess(w, response.HealthResponse{Status: "ok", Store: utils.StoreDriverPostgres})
}
