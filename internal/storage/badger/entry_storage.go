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

type entryStorage struct {
	store  *Store
	logger *common.Logger
}

// NewEntryStorage creates an EntryStorage backed by BadgerHold.
func NewEntryStorage(store *Store, logger *common.Logger) *entryStorage {
	return &entryStorage{store: store, logger: logger}
}

func (s *entryStorage) GetEntry(_ context.Context, id string) (*models.PortfolioEntry, error) {
	var entry models.PortfolioEntry
	err := s.store.db.Get(id, &entry)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("entry '%s' not found", id)
		}
		return nil, fmt.Errorf("failed to get entry '%s': %w", id, err)
	}
	return &entry, nil
}

func (s *entryStorage) SaveEntry(_ context.Context, entry *models.PortfolioEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}

	entry.UpdatedAt = time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	if err := s.store.db.Upsert(entry.ID, entry); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	s.logger.Debug().Str("id", entry.ID).Str("symbol", entry.Symbol).Msg("Entry saved")
	return nil
}

func (s *entryStorage) DeleteEntry(_ context.Context, id string) error {
	err := s.store.db.Delete(id, models.PortfolioEntry{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete entry '%s': %w", id, err)
	}
	s.logger.Debug().Str("id", id).Msg("Entry deleted")
	return nil
}

func (s *entryStorage) ListEntries(_ context.Context, portfolioID string) ([]*models.PortfolioEntry, error) {
	var query *badgerhold.Query
	if portfolioID != "" {
		query = badgerhold.Where("PortfolioID").Eq(portfolioID).Index("PortfolioID")
	}

	var entries []models.PortfolioEntry
	if err := s.store.db.Find(&entries, query); err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	result := make([]*models.PortfolioEntry, len(entries))
	for i := range entries {
		result[i] = &entries[i]
	}
	return result, nil
}
