package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"homecare-booking/internal/dto/request"
	"homecare-booking/pkg/relay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validContactRequest() *request.ContactRequest {
	return &request.ContactRequest{
		Name:    "Jane Doe",
		Phone:   "403-555-0100",
		Email:   "jane@example.com",
		Service: "drywall",
		Date:    "2026-03-20",
		Time:    "Morning",
		Message: "Two rooms",
	}
}

func TestSubmitQuote_Relays(t *testing.T) {
	r := new(MockRelay)
	r.On("Submit", mock.Anything, relay.FormSubmission{
		Name:    "Jane Doe",
		Phone:   "403-555-0100",
		Email:   "jane@example.com",
		Service: "drywall",
		Date:    "2026-03-20",
		Time:    "Morning",
		Message: "Two rooms",
	}).Return(nil).Once()

	err := NewContactService(newTestIntake(), r, zap.NewNop()).SubmitQuote(context.Background(), validContactRequest())
	require.NoError(t, err)
	r.AssertExpectations(t)
}

func TestSubmitQuote_ValidationStopsRelay(t *testing.T) {
	r := new(MockRelay)
	req := validContactRequest()
	req.Phone = ""

	err := NewContactService(newTestIntake(), r, zap.NewNop()).SubmitQuote(context.Background(), req)
	assert.ErrorIs(t, err, ErrMissingField)
	r.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestSubmitQuote_RelayErrors(t *testing.T) {
	tests := []struct {
		name       string
		relayErr   error
		wantErr    error
		wantStatus int
	}{
		{"not configured", relay.ErrNotConfigured, ErrNotConfigured, 0},
		{"non-2xx", &relay.StatusError{StatusCode: http.StatusUnprocessableEntity}, ErrRelayFailed, http.StatusUnprocessableEntity},
		{"network", errors.New("dial tcp: refused"), ErrRelayFailed, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := new(MockRelay)
			r.On("Submit", mock.Anything, mock.Anything).Return(tt.relayErr).Once()

			err := NewContactService(newTestIntake(), r, zap.NewNop()).SubmitQuote(context.Background(), validContactRequest())
			assert.ErrorIs(t, err, tt.wantErr)

			var relayErr *RelayError
			if tt.wantStatus != 0 {
				require.True(t, errors.As(err, &relayErr))
				assert.Equal(t, tt.wantStatus, relayErr.StatusCode)
			} else {
				assert.False(t, errors.As(err, &relayErr))
			}
		})
	}
}
