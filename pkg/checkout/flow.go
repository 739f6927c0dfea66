package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
)

type State string

const (
	StateIntake             State = "intake"
	StateIntentCreated      State = "intent_created"
	StateProcessorSucceeded State = "processor_succeeded"
	StateIntakeRetry        State = "intake_retry"
	StateConfirmed          State = "confirmed"
	StateRejected           State = "rejected"
)

// Terminal reports whether no further action is possible.
func (s State) Terminal() bool {
	return s == StateConfirmed || s == StateRejected
}

var (
	// ErrPriorPaymentSucceeded means the intent from an earlier attempt was
	// paid, so the edited details were discarded and the flow moved on to
	// finalizing the paid booking.
	ErrPriorPaymentSucceeded = errors.New("previous payment already succeeded")
	ErrAlreadyConfirmed      = errors.New("booking was already confirmed")
)

// TransitionError is returned when an action is not allowed in the current state.
type TransitionError struct {
	From   State
	Action string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s from state %s", e.Action, e.From)
}

// Details is what the customer typed on the contact side of the card.
type Details struct {
	Name          string
	Email         string
	Phone         string
	Service       string
	Quantity      int
	PreferredDate string
	Notes         string
}

// Backend is the booking server as the flow uses it.
type Backend interface {
	CreatePaymentIntent(ctx context.Context, req IntentRequest, token string) (*IntentResponse, error)
	FinalizeBooking(ctx context.Context, req FinalizeRequest) (*FinalizeResponse, error)
}

// PaymentConfirmer is the processor-side confirmation step.
type PaymentConfirmer interface {
	Confirm(ctx context.Context, clientSecret string, card Card, billing Billing) (*ConfirmResult, error)
	IntentStatus(ctx context.Context, clientSecret string) (stripe.PaymentIntentStatus, error)
}

// Flow is one booking attempt, from intake to a confirmed or rejected
// booking. It holds the client secret between steps. Safe for concurrent
// use, though steps are meant to run one at a time.
type Flow struct {
	mu        sync.Mutex
	backend   Backend
	confirmer PaymentConfirmer
	newToken  func() string

	state        State
	details      Details
	token        string
	intent       *IntentResponse
	lastFailure  string
	booking      *Booking
	rejectReason string
}

func NewFlow(backend Backend, confirmer PaymentConfirmer) *Flow {
	return &Flow{
		backend:   backend,
		confirmer: confirmer,
		newToken:  uuid.NewString,
		state:     StateIntake,
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastFailure is the reason the last card attempt failed.
func (f *Flow) LastFailure() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastFailure
}

// RejectReason is the server's message when finalizing was refused.
func (f *Flow) RejectReason() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rejectReason
}

func (f *Flow) Booking() *Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.booking
}

// PaymentIntentID is empty until Submit has created an intent.
func (f *Flow) PaymentIntentID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.intent == nil {
		return ""
	}
	return f.intent.PaymentIntentID
}

// Submit validates the details server-side and creates the payment intent.
// From IntakeRetry the prior intent is reused when the details did not
// change, and is checked with the processor before a new one is created.
func (f *Flow) Submit(ctx context.Context, details Details) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if details.Quantity == 0 {
		details.Quantity = 1
	}

	switch f.state {
	case StateIntake:
	case StateIntakeRetry:
		status, err := f.confirmer.IntentStatus(ctx, f.intent.ClientSecret)
		if err != nil {
			return fmt.Errorf("check previous payment: %w", err)
		}
		switch status {
		case stripe.PaymentIntentStatusSucceeded:
			f.state = StateProcessorSucceeded
			return ErrPriorPaymentSucceeded
		case stripe.PaymentIntentStatusProcessing:
			return fmt.Errorf("previous payment is still processing")
		}
		if details == f.details {
			f.state = StateIntentCreated
			return nil
		}
	default:
		return &TransitionError{From: f.state, Action: "submit details"}
	}

	token := f.newToken()
	intent, err := f.backend.CreatePaymentIntent(ctx, IntentRequest{
		Service:       details.Service,
		Quantity:      details.Quantity,
		CustomerName:  details.Name,
		CustomerEmail: details.Email,
		CustomerPhone: details.Phone,
		PreferredDate: details.PreferredDate,
		Notes:         details.Notes,
	}, token)
	if err != nil {
		return err
	}

	f.details = details
	f.token = token
	f.intent = intent
	f.lastFailure = ""
	f.state = StateIntentCreated
	return nil
}

// Pay confirms the card against the current intent. A failed result moves
// the flow to IntakeRetry; paying again reuses the same client secret.
func (f *Flow) Pay(ctx context.Context, card Card, billing Billing) (*ConfirmResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateIntentCreated && f.state != StateIntakeRetry {
		return nil, &TransitionError{From: f.state, Action: "pay"}
	}

	result, err := f.confirmer.Confirm(ctx, f.intent.ClientSecret, card, billing)
	if err != nil {
		return nil, err
	}

	if result.Status == ConfirmSucceeded {
		f.lastFailure = ""
		f.state = StateProcessorSucceeded
	} else {
		f.lastFailure = result.FailureReason
		f.state = StateIntakeRetry
	}
	return result, nil
}

// Finalize asks the server to verify the payment and record the booking.
// Verification failures are terminal. Transport and server errors leave the
// flow in ProcessorSucceeded so Finalize can be called again.
func (f *Flow) Finalize(ctx context.Context) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateProcessorSucceeded {
		return nil, &TransitionError{From: f.state, Action: "finalize"}
	}

	resp, err := f.backend.FinalizeBooking(ctx, FinalizeRequest{
		PaymentIntentID: f.intent.PaymentIntentID,
		Amount:          f.intent.Amount,
		Service:         f.details.Service,
		Quantity:        f.details.Quantity,
		Name:            f.details.Name,
		Email:           f.details.Email,
		Phone:           f.details.Phone,
		Date:            f.details.PreferredDate,
		Notes:           f.details.Notes,
	})

	var apiErr *APIError
	switch {
	case err == nil:
		f.booking = &resp.Booking
		f.state = StateConfirmed
		return f.booking, nil
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict:
		f.state = StateConfirmed
		return nil, ErrAlreadyConfirmed
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest:
		f.rejectReason = apiErr.Message
		f.state = StateRejected
		return nil, err
	default:
		return nil, err
	}
}
