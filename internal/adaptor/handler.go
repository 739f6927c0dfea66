package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"homecare-booking/internal/usecase"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

type Handler struct {
	Catalog *CatalogHandler
	Payment *PaymentHandler
	Booking *BookingHandler
	Contact *ContactHandler
	Health  *HealthHandler
}

func NewHandler(service *usecase.Service, pinger Pinger, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Catalog: NewCatalogHandler(service.Catalog, config, log),
		Payment: NewPaymentHandler(service.Payment, config, log),
		Booking: NewBookingHandler(service.Booking, config, log),
		Contact: NewContactHandler(service.Contact, config, log),
		Health:  NewHealthHandler(pinger, config, log),
	}
}

// decodeJSON reads a single JSON object from a size-limited body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("decode body: unexpected trailing data")
	}
	return nil
}
