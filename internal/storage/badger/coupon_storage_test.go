package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincatch/fincatch/internal/common"
	"github.com/fincatch/fincatch/internal/models"
)

func validPayment(entryID string, date time.Time) *models.BondCouponPayment {
	return &models.BondCouponPayment{
		EntryID:     entryID,
		PaymentDate: date.Unix(),
		Amount:      40_000,
		Currency:    "VND",
	}
}

func TestCouponStorage_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	s := NewCouponStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	payment := validPayment("b1", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.SavePayment(ctx, payment))
	assert.NotEmpty(t, payment.ID)

	got, err := s.GetPayment(ctx, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, "b1", got.EntryID)
	assert.Equal(t, 40_000.0, got.Amount)
}

func TestCouponStorage_SaveRejectsInvalid(t *testing.T) {
	store := newTestStore(t)
	s := NewCouponStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	payment := validPayment("", time.Now())
	assert.Error(t, s.SavePayment(ctx, payment))

	payment = validPayment("b1", time.Now())
	payment.Amount = -1
	assert.Error(t, s.SavePayment(ctx, payment))
}

func TestCouponStorage_ListScopedToEntry(t *testing.T) {
	store := newTestStore(t)
	s := NewCouponStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SavePayment(ctx, validPayment("b1", base.AddDate(0, 6, 0))))
	require.NoError(t, s.SavePayment(ctx, validPayment("b1", base)))
	require.NoError(t, s.SavePayment(ctx, validPayment("b2", base)))

	payments, err := s.ListPayments(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, payments, 2)

	// Ordered by payment date.
	assert.Equal(t, base.Unix(), payments[0].PaymentDate)
	assert.Equal(t, base.AddDate(0, 6, 0).Unix(), payments[1].PaymentDate)
}

func TestCouponStorage_Delete(t *testing.T) {
	store := newTestStore(t)
	s := NewCouponStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	payment := validPayment("b1", time.Now())
	require.NoError(t, s.SavePayment(ctx, payment))
	require.NoError(t, s.DeletePayment(ctx, payment.ID))

	_, err := s.GetPayment(ctx, payment.ID)
	assert.Error(t, err)

	assert.NoError(t, s.DeletePayment(ctx, "already-gone"))
}

func TestCouponStorage_DuplicateDatesBothKept(t *testing.T) {
	// Two payments on the same date are distinct records; income sums both.
	store := newTestStore(t)
	s := NewCouponStorage(store, common.NewSilentLogger())
	ctx := context.Background()

	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SavePayment(ctx, validPayment("b1", date)))
	require.NoError(t, s.SavePayment(ctx, validPayment("b1", date)))

	payments, err := s.ListPayments(ctx, "b1")
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}
