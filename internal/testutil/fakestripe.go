// Package testutil holds an in-process stand-in for the payment processor's
// REST API, enough of it for intents, payment methods and confirmation.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

const (
	SecretKey      = "sk_test_fake"
	PublishableKey = "pk_test_fake"

	CardSuccess = "4242424242424242"
	CardDecline = "4000000000000002"
)

// Intent is the fake's view of a payment intent.
type Intent struct {
	ID               string            `json:"id"`
	Object           string            `json:"object"`
	Amount           int64             `json:"amount"`
	Currency         string            `json:"currency"`
	Status           string            `json:"status"`
	ClientSecret     string            `json:"client_secret"`
	Description      string            `json:"description,omitempty"`
	ReceiptEmail     string            `json:"receipt_email,omitempty"`
	Metadata         map[string]string `json:"metadata"`
	PaymentMethod    string            `json:"payment_method,omitempty"`
	LastPaymentError *apiError         `json:"last_payment_error,omitempty"`
}

type apiError struct {
	Type        string `json:"type"`
	Code        string `json:"code,omitempty"`
	DeclineCode string `json:"decline_code,omitempty"`
	Message     string `json:"message"`
}

// FakeStripe records every call so tests can assert on what reached the
// processor.
type FakeStripe struct {
	*httptest.Server

	mu          sync.Mutex
	seq         int
	intents     map[string]*Intent
	idempotent  map[string]string
	methods     map[string]string
	creates     int
	confirms    int
	unavailable bool
}

// NewFakeStripe starts the fake and closes it with the test.
func NewFakeStripe(t testing.TB) *FakeStripe {
	t.Helper()

	f := &FakeStripe{
		intents:    map[string]*Intent{},
		idempotent: map[string]string{},
		methods:    map[string]string{},
	}

	r := chi.NewRouter()
	r.Use(f.available)
	r.Post("/v1/payment_intents", f.createIntent)
	r.Get("/v1/payment_intents/{id}", f.getIntent)
	r.Post("/v1/payment_intents/{id}/confirm", f.confirmIntent)
	r.Post("/v1/payment_methods", f.createMethod)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Close)
	return f
}

// SetUnavailable makes every call answer 500.
func (f *FakeStripe) SetUnavailable(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unavailable = v
}

// SetStatus overrides an intent's status, as if paid or canceled elsewhere.
func (f *FakeStripe) SetStatus(id, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if pi, ok := f.intents[id]; ok {
		pi.Status = status
	}
}

// SetAmount overrides an intent's amount.
func (f *FakeStripe) SetAmount(id string, amount int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if pi, ok := f.intents[id]; ok {
		pi.Amount = amount
	}
}

// AddIntent registers an intent directly and returns it.
func (f *FakeStripe) AddIntent(amount int64, currency, status string, metadata map[string]string) Intent {
	f.mu.Lock()
	defer f.mu.Unlock()
	pi := f.newIntentLocked(amount, currency, metadata)
	pi.Status = status
	return *pi
}

func (f *FakeStripe) Intent(id string) (Intent, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pi, ok := f.intents[id]
	if !ok {
		return Intent{}, false
	}
	return *pi, true
}

// Creates counts intents actually created, idempotent replays excluded.
func (f *FakeStripe) Creates() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates
}

func (f *FakeStripe) Confirms() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirms
}

func (f *FakeStripe) available(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		down := f.unavailable
		f.mu.Unlock()
		if down {
			writeError(w, http.StatusInternalServerError, apiError{Type: "api_error", Message: "Internal server error"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeStripe) newIntentLocked(amount int64, currency string, metadata map[string]string) *Intent {
	f.seq++
	id := fmt.Sprintf("pi_fake%04d", f.seq)
	pi := &Intent{
		ID:           id,
		Object:       "payment_intent",
		Amount:       amount,
		Currency:     currency,
		Status:       "requires_payment_method",
		ClientSecret: id + "_secret_" + strconv.Itoa(f.seq*7919),
		Metadata:     metadata,
	}
	if pi.Metadata == nil {
		pi.Metadata = map[string]string{}
	}
	f.intents[id] = pi
	return pi
}

func (f *FakeStripe) createIntent(w http.ResponseWriter, r *http.Request) {
	if bearer(r) != SecretKey {
		unauthorized(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, apiError{Type: "invalid_request_error", Message: err.Error()})
		return
	}

	amount, err := strconv.ParseInt(r.PostForm.Get("amount"), 10, 64)
	if err != nil || amount < 1 {
		writeError(w, http.StatusBadRequest, apiError{
			Type: "invalid_request_error", Code: "parameter_invalid_integer", Message: "Invalid amount",
		})
		return
	}

	metadata := map[string]string{}
	for k := range r.PostForm {
		if key, ok := strings.CutPrefix(k, "metadata["); ok {
			metadata[strings.TrimSuffix(key, "]")] = r.PostForm.Get(k)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	key := r.Header.Get("Idempotency-Key")
	if id, ok := f.idempotent[key]; ok && key != "" {
		writeJSON(w, http.StatusOK, f.intents[id])
		return
	}

	pi := f.newIntentLocked(amount, r.PostForm.Get("currency"), metadata)
	if key != "" {
		f.idempotent[key] = pi.ID
	}
	pi.Description = r.PostForm.Get("description")
	pi.ReceiptEmail = r.PostForm.Get("receipt_email")
	f.creates++
	writeJSON(w, http.StatusOK, pi)
}

func (f *FakeStripe) getIntent(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pi, ok := f.authorizeIntent(w, r, chi.URLParam(r, "id"), r.URL.Query().Get("client_secret"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, pi)
}

func (f *FakeStripe) createMethod(w http.ResponseWriter, r *http.Request) {
	if key := bearer(r); key != PublishableKey && key != SecretKey {
		unauthorized(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, apiError{Type: "invalid_request_error", Message: err.Error()})
		return
	}

	number := r.PostForm.Get("card[number]")
	if len(number) < 12 {
		writeError(w, http.StatusPaymentRequired, apiError{
			Type: "card_error", Code: "incorrect_number", Message: "Your card number is incorrect.",
		})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("pm_fake%04d", f.seq)
	f.methods[id] = number
	writeJSON(w, http.StatusOK, map[string]any{
		"id":     id,
		"object": "payment_method",
		"type":   "card",
		"card":   map[string]any{"last4": number[len(number)-4:]},
	})
}

func (f *FakeStripe) confirmIntent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, apiError{Type: "invalid_request_error", Message: err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	pi, ok := f.authorizeIntent(w, r, chi.URLParam(r, "id"), r.PostForm.Get("client_secret"))
	if !ok {
		return
	}
	if pi.Status != "requires_payment_method" && pi.Status != "requires_confirmation" {
		writeError(w, http.StatusBadRequest, apiError{
			Type:    "invalid_request_error",
			Code:    "payment_intent_unexpected_state",
			Message: "This PaymentIntent's status is " + pi.Status + " and cannot be confirmed.",
		})
		return
	}

	number, ok := f.methods[r.PostForm.Get("payment_method")]
	if !ok {
		writeError(w, http.StatusBadRequest, apiError{
			Type: "invalid_request_error", Code: "resource_missing", Message: "No such PaymentMethod",
		})
		return
	}

	f.confirms++
	pi.PaymentMethod = r.PostForm.Get("payment_method")
	if number == CardDecline {
		decline := apiError{
			Type: "card_error", Code: "card_declined", DeclineCode: "generic_decline",
			Message: "Your card was declined.",
		}
		pi.Status = "requires_payment_method"
		pi.LastPaymentError = &decline
		writeError(w, http.StatusPaymentRequired, decline)
		return
	}

	pi.Status = "succeeded"
	pi.LastPaymentError = nil
	writeJSON(w, http.StatusOK, pi)
}

// authorizeIntent lets the secret key see any intent and the publishable
// key only the one its client secret belongs to. Callers hold f.mu.
func (f *FakeStripe) authorizeIntent(w http.ResponseWriter, r *http.Request, id, clientSecret string) (*Intent, bool) {
	key := bearer(r)
	if key != SecretKey && key != PublishableKey {
		unauthorized(w)
		return nil, false
	}

	pi, ok := f.intents[id]
	if !ok || (key == PublishableKey && clientSecret != pi.ClientSecret) {
		writeError(w, http.StatusNotFound, apiError{
			Type: "invalid_request_error", Code: "resource_missing", Message: "No such payment_intent: '" + id + "'",
		})
		return nil, false
	}
	return pi, true
}

func bearer(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, apiError{Type: "invalid_request_error", Message: "Invalid API Key provided"})
}

func writeError(w http.ResponseWriter, status int, e apiError) {
	writeJSON(w, status, map[string]apiError{"error": e})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
