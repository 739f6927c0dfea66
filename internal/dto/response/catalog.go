package response

import (
	"fmt"

	"homecare-booking/internal/data/entity"
)

type ServiceOptionResponse struct {
	ID           string                 `json:"id"`
	Label        string                 `json:"label"`
	Category     entity.ServiceCategory `json:"category"`
	Unit         entity.PriceUnit       `json:"unit"`
	UnitPrice    int64                  `json:"unitPrice"`
	DisplayPrice string                 `json:"displayPrice"`
}

type ServiceListResponse struct {
	Currency string                  `json:"currency"`
	Services []ServiceOptionResponse `json:"services"`
}

func NewServiceOptionResponse(opt entity.ServiceOption) ServiceOptionResponse {
	return ServiceOptionResponse{
		ID:           opt.ID,
		Label:        opt.Label,
		Category:     opt.Category,
		Unit:         opt.Unit,
		UnitPrice:    opt.UnitPrice,
		DisplayPrice: FormatPrice(opt),
	}
}

// FormatPrice renders "$85" or "$60/hr" the way the site lists prices.
func FormatPrice(opt entity.ServiceOption) string {
	price := FormatCents(opt.UnitPrice)
	if opt.Unit == entity.PriceUnitHour {
		return price + "/hr"
	}
	return price
}

// FormatCents renders whole dollars without decimals.
func FormatCents(cents int64) string {
	if cents%100 == 0 {
		return fmt.Sprintf("$%d", cents/100)
	}
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
