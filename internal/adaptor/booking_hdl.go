package adaptor

import (
	"net/http"

	"homecare-booking/internal/dto/request"
	"homecare-booking/internal/usecase"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	config  *utils.Config
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, config *utils.Config, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		config:  config,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// FinalizeBooking handles POST /api/payment
func (h *BookingHandler) FinalizeBooking(w http.ResponseWriter, r *http.Request) {
	var req request.FinalizeBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.service.FinalizeBooking(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "process booking")
		return
	}

	utils.ResponseSuccess(w, resp)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	writeServiceError(w, utils.LoggerFromContext(r.Context(), h.log), err, operation, h.config.App.Debug)
}
