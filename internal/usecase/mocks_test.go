package usecase

import (
	"context"
	"time"

	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/data/processor"
	"homecare-booking/internal/data/repository"
	"homecare-booking/pkg/relay"
	"homecare-booking/pkg/utils"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

/* ==================== MOCKS ==================== */

type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) CreateIntent(ctx context.Context, params processor.CreateIntentParams) (*entity.PaymentIntent, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentIntent), args.Error(1)
}

func (m *MockProcessor) GetIntent(ctx context.Context, id string) (*entity.PaymentIntent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentIntent), args.Error(1)
}

type MockRelay struct {
	mock.Mock
}

func (m *MockRelay) Submit(ctx context.Context, sub relay.FormSubmission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, email relay.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingConfirmed(ctx context.Context, booking *entity.Booking) {
	m.Called(ctx, booking)
}

func (m *MockNotifier) Wait() {}

/* ==================== FIXTURES ==================== */

var fixedNow = time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC)

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{BusinessName: "All Care Home Services"},
		Stripe: utils.StripeConfig{
			SecretKey:                 "sk_test_123",
			PublishableKey:            "pk_test_123",
			Currency:                  "cad",
			StatementDescriptorSuffix: "ALL CARE HOME",
		},
		Notification: utils.NotificationConfig{InternalEmail: "owner@example.com"},
	}
}

func newTestCatalog() CatalogService {
	log := zap.NewNop()
	return NewCatalogService(repository.NewServiceOptionRepository(entity.DefaultServiceOptions, log), log)
}

func newTestIntake() IntakeService {
	s := NewIntakeService(newTestCatalog(), zap.NewNop()).(*intakeService)
	s.now = func() time.Time { return fixedNow }
	return s
}

func int64Ptr(v int64) *int64 { return &v }
