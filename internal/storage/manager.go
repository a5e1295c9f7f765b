// Package storage wires the storage backends into a single manager.
package storage

import (
	"fmt"

	"github.com/fincatch/fincatch/internal/common"
	"github.com/fincatch/fincatch/internal/interfaces"
	"github.com/fincatch/fincatch/internal/storage/badger"
)

// Manager implements interfaces.StorageManager over one embedded BadgerHold
// store shared by entries and coupon payments.
type Manager struct {
	store   *badger.Store
	entries interfaces.EntryStorage
	coupons interfaces.CouponStorage
	logger  *common.Logger
}

// NewManager opens the embedded store at the configured path.
func NewManager(config *common.Config, logger *common.Logger) (*Manager, error) {
	store, err := badger.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage at %s: %w", config.Storage.Path, err)
	}

	return &Manager{
		store:   store,
		entries: badger.NewEntryStorage(store, logger),
		coupons: badger.NewCouponStorage(store, logger),
		logger:  logger,
	}, nil
}

// EntryStorage returns the portfolio entry store.
func (m *Manager) EntryStorage() interfaces.EntryStorage {
	return m.entries
}

// CouponStorage returns the coupon payment store.
func (m *Manager) CouponStorage() interfaces.CouponStorage {
	return m.coupons
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}
