package adaptor

import (
	"net/http"

	"homecare-booking/internal/dto/response"
	"homecare-booking/internal/usecase"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	config  *utils.Config
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, config *utils.Config, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		config:  config,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListServices handles GET /api/services
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, utils.LoggerFromContext(r.Context(), h.log), err, "list services", h.config.App.Debug)
		return
	}

	resp := response.ServiceListResponse{
		Currency: h.config.Stripe.Currency,
		Services: make([]response.ServiceOptionResponse, 0, len(options)),
	}
	for _, opt := range options {
		resp.Services = append(resp.Services, response.NewServiceOptionResponse(opt))
	}

	utils.ResponseSuccess(w, resp)
}
