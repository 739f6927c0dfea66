package entity

import (
	"time"
)

type BookingStatus string

// Bookings only exist once payment has been verified, so there is one state.
const (
	BookingStatusConfirmed BookingStatus = "confirmed"
)

type Booking struct {
	BaseSimple
	Reference       string        `db:"reference"`
	PaymentIntentID string        `db:"payment_intent_id"`
	ServiceID       string        `db:"service_id"`
	ServiceLabel    string        `db:"service_label"`
	Quantity        int           `db:"quantity"`
	Amount          int64         `db:"amount"`
	Currency        string        `db:"currency"`
	CustomerName    string        `db:"customer_name"`
	CustomerEmail   string        `db:"customer_email"`
	CustomerPhone   string        `db:"customer_phone"`
	PreferredDate   *time.Time    `db:"preferred_date"`
	Notes           string        `db:"notes"`
	Status          BookingStatus `db:"status"`
}
