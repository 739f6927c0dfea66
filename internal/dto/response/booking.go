package response

import (
	"time"

	"homecare-booking/internal/data/entity"
)

type BookingResponse struct {
	ID           string               `json:"id"`
	Reference    string               `json:"reference"`
	Service      string               `json:"service"`
	ServiceLabel string               `json:"serviceLabel"`
	Amount       int64                `json:"amount"`
	Currency     string               `json:"currency"`
	Quantity     int                  `json:"quantity"`
	Date         string               `json:"date,omitempty"`
	Status       entity.BookingStatus `json:"status"`
	BookedAt     time.Time            `json:"bookedAt"`
}

type FinalizeBookingResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

func NewBookingResponse(b *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:           b.ID.String(),
		Reference:    b.Reference,
		Service:      b.ServiceID,
		ServiceLabel: b.ServiceLabel,
		Amount:       b.Amount,
		Currency:     b.Currency,
		Quantity:     b.Quantity,
		Status:       b.Status,
		BookedAt:     b.CreatedAt,
	}
	if b.PreferredDate != nil {
		resp.Date = b.PreferredDate.Format(time.DateOnly)
	}
	return resp
}
