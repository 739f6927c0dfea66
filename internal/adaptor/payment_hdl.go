package adaptor

import (
	"net/http"
	"strings"

	"homecare-booking/internal/dto/request"
	"homecare-booking/internal/usecase"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

const idempotencyHeader = "Idempotency-Key"

type PaymentHandler struct {
	service usecase.PaymentService
	config  *utils.Config
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, config *utils.Config, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		config:  config,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreatePaymentIntent handles POST /api/create-payment-intent
func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePaymentIntentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	token := strings.TrimSpace(r.Header.Get(idempotencyHeader))

	resp, err := h.service.CreatePaymentIntent(r.Context(), &req, token)
	if err != nil {
		h.handleServiceError(w, r, err, "create payment intent")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// PaymentConfig handles GET /api/payment-config
func (h *PaymentHandler) PaymentConfig(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.PaymentConfig(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "load payment config")
		return
	}

	utils.ResponseSuccess(w, resp)
}

func (h *PaymentHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	writeServiceError(w, utils.LoggerFromContext(r.Context(), h.log), err, operation, h.config.App.Debug)
}
