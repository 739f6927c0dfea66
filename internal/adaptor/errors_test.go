package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"homecare-booking/internal/usecase"
	"homecare-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		debug      bool
		wantStatus int
		wantError  string
		wantDetail string
	}{
		{
			name:       "missing customer info",
			err:        fmt.Errorf("wrap: %w", usecase.ErrMissingCustomerInfo),
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing customer information. Please fill in all required fields.",
		},
		{
			name:       "field error",
			err:        &usecase.FieldError{Field: "email", Kind: usecase.ErrInvalidField, Message: "Invalid email format"},
			wantStatus: http.StatusBadRequest,
			wantError:  "email: Invalid email format",
		},
		{
			name:       "unknown service",
			err:        usecase.ErrUnknownService,
			wantStatus: http.StatusBadRequest,
			wantError:  "unknown service",
		},
		{
			name:       "amount mismatch",
			err:        &usecase.AmountMismatchError{Expected: 16000, Actual: 100, Currency: "cad", Source: "request"},
			wantStatus: http.StatusBadRequest,
			wantError:  "amount mismatch: expected 16000 cad, request has 100 cad",
		},
		{
			name:       "not succeeded",
			err:        &usecase.PaymentStatusError{Status: "requires_payment_method"},
			wantStatus: http.StatusBadRequest,
			wantError:  "payment has not succeeded (status: requires_payment_method)",
		},
		{
			name:       "not verified",
			err:        usecase.ErrPaymentNotVerified,
			wantStatus: http.StatusBadRequest,
			wantError:  "Payment could not be verified with the payment processor",
		},
		{
			name:       "duplicate",
			err:        usecase.ErrAlreadyFinalized,
			wantStatus: http.StatusConflict,
			wantError:  "booking already confirmed for this payment",
		},
		{
			name:       "processor auth",
			err:        &usecase.ProcessorError{Kind: usecase.ErrProcessorAuth, Reason: "Invalid API Key"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Authentication failed. Please try again later.",
		},
		{
			name:       "processor rejected",
			err:        &usecase.ProcessorError{Kind: usecase.ErrProcessorRejected, Reason: "Amount must be at least 50 cents"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request: Amount must be at least 50 cents",
		},
		{
			name:       "not configured",
			err:        usecase.ErrNotConfigured,
			debug:      true,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Server configuration error",
		},
		{
			name:       "relay status mirrored",
			err:        &usecase.RelayError{StatusCode: http.StatusUnprocessableEntity},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "Failed to submit form",
		},
		{
			name:       "relay non-error status",
			err:        &usecase.RelayError{StatusCode: http.StatusFound},
			wantStatus: http.StatusBadGateway,
			wantError:  "Failed to submit form",
		},
		{
			name:       "relay transport failure",
			err:        fmt.Errorf("%w: dial tcp", usecase.ErrRelayFailed),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to submit form",
		},
		{
			name:       "unexpected hides details",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to process booking",
		},
		{
			name:       "unexpected shows details in debug",
			err:        errors.New("boom"),
			debug:      true,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to process booking",
			wantDetail: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, zap.NewNop(), tt.err, "process booking", tt.debug)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body utils.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, tt.wantDetail, body.Details)
		})
	}
}
