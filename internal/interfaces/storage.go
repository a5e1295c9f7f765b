// Package interfaces defines service contracts for fincatch
package interfaces

import (
	"context"

	"github.com/fincatch/fincatch/internal/models"
)

// StorageManager coordinates the storage backends
type StorageManager interface {
	EntryStorage() EntryStorage
	CouponStorage() CouponStorage

	// Lifecycle
	Close() error
}

// EntryStorage persists portfolio entries.
type EntryStorage interface {
	GetEntry(ctx context.Context, id string) (*models.PortfolioEntry, error)
	SaveEntry(ctx context.Context, entry *models.PortfolioEntry) error
	DeleteEntry(ctx context.Context, id string) error

	// ListEntries returns entries for a portfolio, or all entries when
	// portfolioID is empty, ordered by creation time.
	ListEntries(ctx context.Context, portfolioID string) ([]*models.PortfolioEntry, error)
}

// CouponStorage persists bond coupon payments.
type CouponStorage interface {
	GetPayment(ctx context.Context, id string) (*models.BondCouponPayment, error)
	SavePayment(ctx context.Context, payment *models.BondCouponPayment) error
	DeletePayment(ctx context.Context, id string) error

	// ListPayments returns all payments recorded against one bond entry.
	ListPayments(ctx context.Context, entryID string) ([]*models.BondCouponPayment, error)
}
