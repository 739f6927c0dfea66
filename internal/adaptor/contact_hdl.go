package adaptor

import (
	"net/http"

	"homecare-booking/internal/dto/request"
	"homecare-booking/internal/dto/response"
	"homecare-booking/internal/usecase"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

type ContactHandler struct {
	service usecase.ContactService
	config  *utils.Config
	log     *zap.Logger
}

func NewContactHandler(service usecase.ContactService, config *utils.Config, log *zap.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		config:  config,
		log:     log.With(zap.String("handler", "contact")),
	}
}

// SubmitContact handles POST /api/contact
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req request.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.SubmitQuote(r.Context(), &req); err != nil {
		writeServiceError(w, utils.LoggerFromContext(r.Context(), h.log), err, "submit form", h.config.App.Debug)
		return
	}

	utils.ResponseSuccess(w, response.SuccessResponse{Success: true})
}
