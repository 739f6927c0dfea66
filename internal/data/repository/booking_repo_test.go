package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"homecare-booking/internal/data/entity"
	"homecare-booking/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBooking(intentID string) *entity.Booking {
	date := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	return &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		},
		Reference:       "BOOK-20261016-101500-0042",
		PaymentIntentID: intentID,
		ServiceID:       "deluxe",
		ServiceLabel:    "Deep Clean Deluxe",
		Quantity:        1,
		Amount:          16000,
		Currency:        "cad",
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		CustomerPhone:   "416-555-0100",
		PreferredDate:   &date,
		Notes:           "Side door",
		Status:          entity.BookingStatusConfirmed,
	}
}

// testBookingStore holds the behaviour both stores must share.
func testBookingStore(t *testing.T, newRepo func(t *testing.T) BookingRepository) {
	ctx := context.Background()

	t.Run("create then find", func(t *testing.T) {
		repo := newRepo(t)
		b := newBooking("pi_create")
		require.NoError(t, repo.Create(ctx, b))

		byID, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, b.PaymentIntentID, byID.PaymentIntentID)
		assert.Equal(t, b.Amount, byID.Amount)
		assert.Equal(t, b.Notes, byID.Notes)
		require.NotNil(t, byID.PreferredDate)
		assert.Equal(t, "2026-12-01", byID.PreferredDate.Format(time.DateOnly))
		assert.WithinDuration(t, b.CreatedAt, byID.CreatedAt, time.Millisecond)

		byIntent, err := repo.FindByPaymentIntentID(ctx, "pi_create")
		require.NoError(t, err)
		require.NotNil(t, byIntent)
		assert.Equal(t, b.ID, byIntent.ID)
	})

	t.Run("missing returns nil", func(t *testing.T) {
		repo := newRepo(t)
		got, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = repo.FindByPaymentIntentID(ctx, "pi_missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("no preferred date", func(t *testing.T) {
		repo := newRepo(t)
		b := newBooking("pi_nodate")
		b.PreferredDate = nil
		require.NoError(t, repo.Create(ctx, b))

		got, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Nil(t, got.PreferredDate)
	})

	t.Run("one booking per intent", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, newBooking("pi_dup")))
		assert.ErrorIs(t, repo.Create(ctx, newBooking("pi_dup")), ErrDuplicatePaymentIntent)
	})

	t.Run("concurrent creates for one intent", func(t *testing.T) {
		repo := newRepo(t)

		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.Create(ctx, newBooking("pi_race"))
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, ErrDuplicatePaymentIntent)
		}
		assert.Equal(t, 1, succeeded)
	})
}

func TestMemoryBookingRepository(t *testing.T) {
	testBookingStore(t, func(t *testing.T) BookingRepository {
		return NewMemoryBookingRepository(zap.NewNop())
	})
}

func TestMemoryBookingRepository_StoresCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepository(zap.NewNop())

	b := newBooking("pi_copy")
	require.NoError(t, repo.Create(ctx, b))
	b.Amount = 1

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(16000), got.Amount)
}

func TestBookingRepository_Postgres(t *testing.T) {
	pool := testutil.NewTestPool(t)

	testBookingStore(t, func(t *testing.T) BookingRepository {
		testutil.TruncateBookings(t, context.Background(), pool)
		return NewBookingRepository(pool, zap.NewNop())
	})
}

func TestNewRepository_PicksStore(t *testing.T) {
	repo := NewRepository(nil, nil, zap.NewNop())
	_, isMemory := repo.Booking.(*memoryBookingRepository)
	assert.True(t, isMemory)

	all, err := repo.ServiceOption.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, len(entity.DefaultServiceOptions))
}
