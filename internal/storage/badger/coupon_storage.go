package badger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/fincatch/fincatch/internal/common"
	"github.com/fincatch/fincatch/internal/models"
)

type couponStorage struct {
	store  *Store
	logger *common.Logger
}

// NewCouponStorage creates a CouponStorage backed by BadgerHold.
func NewCouponStorage(store *Store, logger *common.Logger) *couponStorage {
	return &couponStorage{store: store, logger: logger}
}

func (s *couponStorage) GetPayment(_ context.Context, id string) (*models.BondCouponPayment, error) {
	var payment models.BondCouponPayment
	err := s.store.db.Get(id, &payment)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("coupon payment '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get coupon payment '%s': %w", id, err)
	}
	return &payment, nil
}

func (s *couponStorage) SavePayment(_ context.Context, payment *models.BondCouponPayment) error {
	if err := payment.Validate(); err != nil {
		return fmt.Errorf("invalid coupon payment: %w", err)
	}

	payment.UpdatedAt = time.Now()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}

	if err := s.store.db.Upsert(payment.ID, payment); err != nil {
		return fmt.Errorf("failed to save coupon payment: %w", err)
	}
	s.logger.Debug().Str("id", payment.ID).Str("entry", payment.EntryID).Msg("Coupon payment saved")
	return nil
}

func (s *couponStorage) DeletePayment(_ context.Context, id string) error {
	err := s.store.db.Delete(id, models.BondCouponPayment{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete coupon payment '%s': %w", id, err)
	}
	s.logger.Debug().Str("id", id).Msg("Coupon payment deleted")
	return nil
}

func (s *couponStorage) ListPayments(_ context.Context, entryID string) ([]*models.BondCouponPayment, error) {
	var payments []models.BondCouponPayment
	query := badgerhold.Where("EntryID").Eq(entryID).Index("EntryID")
	if err := s.store.db.Find(&payments, query); err != nil {
		return nil, fmt.Errorf("failed to list coupon payments for entry '%s': %w", entryID, err)
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].PaymentDate < payments[j].PaymentDate
	})

	result := make([]*models.BondCouponPayment, len(payments))
	for i := range payments {
		result[i] = &payments[i]
	}
	return result, nil
}
