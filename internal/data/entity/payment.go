package entity

type PaymentIntentStatus string

const (
	PaymentIntentRequiresPaymentMethod PaymentIntentStatus = "requires_payment_method"
	PaymentIntentRequiresConfirmation  PaymentIntentStatus = "requires_confirmation"
	PaymentIntentRequiresAction        PaymentIntentStatus = "requires_action"
	PaymentIntentProcessing            PaymentIntentStatus = "processing"
	PaymentIntentRequiresCapture       PaymentIntentStatus = "requires_capture"
	PaymentIntentCanceled              PaymentIntentStatus = "canceled"
	PaymentIntentSucceeded             PaymentIntentStatus = "succeeded"
)

// PaymentIntent is a point-in-time snapshot of the processor's record.
// The processor owns the lifecycle; we only keep the id on a Booking.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       PaymentIntentStatus
	Metadata     map[string]string
}
