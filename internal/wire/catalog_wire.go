package wire

import (
	"homecare-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	// GET /api/services - price list for the site
	r.Get("/api/services", catalogHandler.ListServices)
}
