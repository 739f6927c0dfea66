package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/processor"
	"homecare-booking/internal/data/repository"
	"homecare-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingFixture struct {
	svc       BookingService
	repo      repository.BookingRepository
	processor *MockProcessor
	notifier  *MockNotifier
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	repo := repository.NewMemoryBookingRepository(zap.NewNop())
	p := new(MockProcessor)
	n := new(MockNotifier)

	svc := NewBookingService(repo, newTestIntake(), p, n, testConfig(), zap.NewNop()).(*bookingService)
	svc.now = func() time.Time { return fixedNow }

	return &bookingFixture{svc: svc, repo: repo, processor: p, notifier: n}
}

func validFinalizeRequest() *request.FinalizeBookingRequest {
	return &request.FinalizeBookingRequest{
		PaymentIntentID: "pi_123",
		Amount:          int64Ptr(17000),
		Service:         "basic",
		ServiceLabel:    "Basic Shine Package",
		Quantity:        json.RawMessage(`2`),
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "403-555-0100",
		Date:            "2026-03-20",
		Notes:           "Key under the mat",
	}
}

func succeededIntent() *entity.PaymentIntent {
	return &entity.PaymentIntent{
		ID:       "pi_123",
		Amount:   17000,
		Currency: "cad",
		Status:   entity.PaymentIntentSucceeded,
		Metadata: map[string]string{"service": "basic", "quantity": "2"},
	}
}

func TestFinalizeBooking_RecordsVerifiedPayment(t *testing.T) {
	f := newBookingFixture(t)
	f.processor.On("GetIntent", mock.Anything, "pi_123").Return(succeededIntent(), nil).Once()
	f.notifier.On("BookingConfirmed", mock.Anything, mock.AnythingOfType("*entity.Booking")).Once()

	resp, err := f.svc.FinalizeBooking(context.Background(), validFinalizeRequest())
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, entity.BookingStatusConfirmed, resp.Booking.Status)
	assert.Equal(t, int64(17000), resp.Booking.Amount)
	assert.Equal(t, 2, resp.Booking.Quantity)
	assert.Equal(t, "basic", resp.Booking.Service)
	assert.Equal(t, "2026-03-20", resp.Booking.Date)
	assert.Equal(t, fixedNow, resp.Booking.BookedAt)
	assert.NotEqual(t, "pi_123", resp.Booking.ID)

	stored, err := f.repo.FindByPaymentIntentID(context.Background(), "pi_123")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, resp.Booking.ID, stored.ID.String())
	assert.Equal(t, "Jane Doe", stored.CustomerName)
	assert.Equal(t, "jane@example.com", stored.CustomerEmail)
	assert.Equal(t, "403-555-0100", stored.CustomerPhone)
	assert.Equal(t, "Key under the mat", stored.Notes)

	f.processor.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestFinalizeBooking_SecondCallRejected(t *testing.T) {
	f := newBookingFixture(t)
	f.processor.On("GetIntent", mock.Anything, "pi_123").Return(succeededIntent(), nil).Once()
	f.notifier.On("BookingConfirmed", mock.Anything, mock.Anything).Once()

	_, err := f.svc.FinalizeBooking(context.Background(), validFinalizeRequest())
	require.NoError(t, err)

	_, err = f.svc.FinalizeBooking(context.Background(), validFinalizeRequest())
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
	f.processor.AssertNumberOfCalls(t, "GetIntent", 1)
}

func TestFinalizeBooking_TamperedAmount(t *testing.T) {
	f := newBookingFixture(t)
	req := validFinalizeRequest()
	req.Quantity = json.RawMessage(`1`)
	req.Amount = int64Ptr(5000)

	_, err := f.svc.FinalizeBooking(context.Background(), req)

	var mismatch *AmountMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, int64(8500), mismatch.Expected)
	assert.Equal(t, int64(5000), mismatch.Actual)
	assertNoBooking(t, f.repo, "pi_123")
}

func TestFinalizeBooking_ProcessorAmountMismatch(t *testing.T) {
	f := newBookingFixture(t)
	intent := succeededIntent()
	intent.Amount = 8500
	f.processor.On("GetIntent", mock.Anything, "pi_123").Return(intent, nil).Once()

	_, err := f.svc.FinalizeBooking(context.Background(), validFinalizeRequest())

	var mismatch *AmountMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, int64(17000), mismatch.Expected)
	assert.Equal(t, int64(8500), mismatch.Actual)
	assert.Equal(t, "processor", mismatch.Source)
	assertNoBooking(t, f.repo, "pi_123")
}

func TestFinalizeBooking_CurrencyMismatch(t *testing.T) {
	f := newBookingFixture(t)
	intent := succeededIntent()
	intent.Currency = "usd"
	f.processor.On("GetIntent", mock.Anything, "pi_123").Return(intent, nil).Once()

	_, err := f.svc.FinalizeBooking(context.Background(), validFinalizeRequest())
	assert.ErrorIs(t, err, ErrAmountMismatch)
	assertNoBooking(t, f.repo, "pi_123")
}

func TestFinalizeBooking_NotSucceeded(t *testing.T) {
	statuses := []entity.PaymentIntentStatus{
		entity.PaymentIntentRequiresPaymentMethod,
		entity.PaymentIntentRequiresConfirmation,
		entity.PaymentIntentRequiresAction,
		entity.PaymentIntentProcessing,
		entity.PaymentIntentCanceled,
	}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			f := newBookingFixture(t)
			intent := succeededIntent()
			intent.Status = status
			f.processor.On("GetIntent", mock.Anything, "pi_123").Return(intent, nil).Once()

			_, err := f.svc.FinalizeBooking(context.Background(), validFinalizeRequest())

			var statusErr *PaymentStatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, string(status), statusErr.Status)
			assert.ErrorIs(t, err, ErrPaymentNotSucceeded)
			assertNoBooking(t, f.repo, "pi_123")
		})
	}
}

func TestFinalizeBooking_IntentMismatch(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]string
	}{
		{"different service", map[string]string{"service": "deluxe", "quantity": "2"}},
		{"different quantity", map[string]string{"service": "basic", "quantity": "1"}},
		{"no metadata", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			intent := succeededIntent()
			intent.Metadata = tt.metadata
			f.processor.On("GetIntent", mock.Anything, "pi_123").Return(intent, nil).Once()

			_, err := f.svc.FinalizeBooking(context.Background(), validFinalizeRequest())
			assert.ErrorIs(t, err, ErrIntentMismatch)
			assertNoBooking(t, f.repo, "pi_123")
		})
	}
}

func TestFinalizeBooking_ProcessorFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"not found", &processor.Error{Kind: processor.ErrNotFound, Message: "No such payment_intent"}, ErrPaymentNotVerified},
		{"rejected lookup", &processor.Error{Kind: processor.ErrInvalidRequest, Message: "Invalid client secret"}, ErrPaymentNotVerified},
		{"unreachable", &processor.Error{Kind: processor.ErrUnavailable, Message: "connection refused"}, ErrProcessorUnavailable},
		{"unknown", errors.New("unexpected EOF"), ErrProcessorUnavailable},
		{"auth", &processor.Error{Kind: processor.ErrAuthentication}, ErrProcessorAuth},
		{"not configured", processor.ErrNotConfigured, ErrNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			f.processor.On("GetIntent", mock.Anything, "pi_123").Return(nil, tt.err).Once()

			_, err := f.svc.FinalizeBooking(context.Background(), validFinalizeRequest())
			assert.ErrorIs(t, err, tt.wantErr)
			assertNoBooking(t, f.repo, "pi_123")
		})
	}
}

func TestFinalizeBooking_RetryAfterOutage(t *testing.T) {
	f := newBookingFixture(t)
	f.processor.On("GetIntent", mock.Anything, "pi_123").
		Return(nil, &processor.Error{Kind: processor.ErrUnavailable, Message: "connection refused"}).Once()
	f.processor.On("GetIntent", mock.Anything, "pi_123").Return(succeededIntent(), nil).Once()
	f.notifier.On("BookingConfirmed", mock.Anything, mock.AnythingOfType("*entity.Booking")).Once()

	_, err := f.svc.FinalizeBooking(context.Background(), validFinalizeRequest())
	require.ErrorIs(t, err, ErrProcessorUnavailable)
	assert.NotErrorIs(t, err, ErrPaymentNotVerified)
	assertNoBooking(t, f.repo, "pi_123")

	resp, err := f.svc.FinalizeBooking(context.Background(), validFinalizeRequest())
	require.NoError(t, err)
	assert.True(t, resp.Success)

	f.processor.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestFinalizeBooking_DateFloorNotReapplied(t *testing.T) {
	clock := time.Date(2026, 3, 20, 23, 50, 0, 0, time.UTC)
	intake := NewIntakeService(newTestCatalog(), zap.NewNop()).(*intakeService)
	intake.now = func() time.Time { return clock }

	in := validInput()
	in.PreferredDate = "2026-03-19"
	_, err := intake.Validate(context.Background(), in)
	require.NoError(t, err, "yesterday is accepted when the intent is created")

	// Finalize lands after UTC midnight, when the same date is two days old.
	clock = time.Date(2026, 3, 21, 0, 5, 0, 0, time.UTC)
	_, err = intake.Validate(context.Background(), in)
	require.ErrorIs(t, err, ErrInvalidField)

	repo := repository.NewMemoryBookingRepository(zap.NewNop())
	p := new(MockProcessor)
	n := new(MockNotifier)
	p.On("GetIntent", mock.Anything, "pi_123").Return(succeededIntent(), nil).Once()
	n.On("BookingConfirmed", mock.Anything, mock.AnythingOfType("*entity.Booking")).Once()
	svc := NewBookingService(repo, intake, p, n, testConfig(), zap.NewNop())

	req := validFinalizeRequest()
	req.Date = "2026-03-19"
	resp, err := svc.FinalizeBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-19", resp.Booking.Date)

	stored, err := repo.FindByPaymentIntentID(context.Background(), "pi_123")
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestFinalizeBooking_InputRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*request.FinalizeBookingRequest)
		wantErr error
	}{
		{"missing intent id", func(r *request.FinalizeBookingRequest) { r.PaymentIntentID = "" }, ErrMissingField},
		{"malformed intent id", func(r *request.FinalizeBookingRequest) { r.PaymentIntentID = "ch_123" }, ErrInvalidField},
		{"missing amount", func(r *request.FinalizeBookingRequest) { r.Amount = nil }, ErrInvalidAmount},
		{"zero amount", func(r *request.FinalizeBookingRequest) { r.Amount = int64Ptr(0) }, ErrInvalidAmount},
		{"negative amount", func(r *request.FinalizeBookingRequest) { r.Amount = int64Ptr(-100) }, ErrInvalidAmount},
		{"missing email", func(r *request.FinalizeBookingRequest) { r.Email = "" }, ErrMissingField},
		{"missing quantity", func(r *request.FinalizeBookingRequest) { r.Quantity = nil }, ErrMissingField},
		{"unknown service", func(r *request.FinalizeBookingRequest) { r.Service = "roofing" }, ErrUnknownService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			req := validFinalizeRequest()
			tt.mutate(req)

			_, err := f.svc.FinalizeBooking(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			f.processor.AssertNotCalled(t, "GetIntent", mock.Anything, mock.Anything)
		})
	}
}

func TestFinalizeBooking_ConcurrentDuplicateOnInsert(t *testing.T) {
	f := newBookingFixture(t)
	f.processor.On("GetIntent", mock.Anything, "pi_123").Return(succeededIntent(), nil).Once().Run(func(args mock.Arguments) {
		// Another request wins the race between the pre-check and the insert.
		require.NoError(t, f.repo.Create(context.Background(), &entity.Booking{
			BaseSimple:      entity.BaseSimple{ID: uuid.New(), CreatedAt: fixedNow},
			PaymentIntentID: "pi_123",
		}))
	})

	_, err := f.svc.FinalizeBooking(context.Background(), validFinalizeRequest())
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
	f.notifier.AssertNotCalled(t, "BookingConfirmed", mock.Anything, mock.Anything)
}

func TestJoinNotes(t *testing.T) {
	assert.Equal(t, "", joinNotes(" ", ""))
	assert.Equal(t, "a", joinNotes("a", ""))
	assert.Equal(t, "b", joinNotes("", "b"))
	assert.Equal(t, "a\n\nb", joinNotes("a", "b"))
}

func assertNoBooking(t *testing.T, repo repository.BookingRepository, intentID string) {
	t.Helper()
	booking, err := repo.FindByPaymentIntentID(context.Background(), intentID)
	require.NoError(t, err)
	assert.Nil(t, booking)
}
