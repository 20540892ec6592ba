package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/foliolabs/folio-portal/internal/common"
	"github.com/foliolabs/folio-portal/internal/interfaces"
	"github.com/foliolabs/folio-portal/internal/models"
)

// KV keys for persisted portfolio state.
const (
	keyRows       = "portfolio:rows"
	keyFileName   = "portfolio:filename"
	keyCategories = "portfolio:categories"
)

// Store persists the uploaded rows, the upload's display name, and the
// user-assigned category labels in local key-value storage.
//
// Reads degrade: a missing key or corrupted JSON is logged and treated as
// "no persisted state", never propagated to crash a request.
type Store struct {
	kv     interfaces.KeyValueStorage
	logger *common.Logger
}

// NewStore creates a portfolio store over the given key-value storage.
func NewStore(kv interfaces.KeyValueStorage, logger *common.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// LoadRows returns the persisted position rows, or nil when none exist or
// the stored JSON is unreadable.
func (s *Store) LoadRows(ctx context.Context) []models.PositionRow {
	raw, err := s.kv.Get(ctx, keyRows)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			s.logger.Warn().Str("error", err.Error()).Msg("failed to load persisted rows")
		}
		return nil
	}

	var rows []models.PositionRow
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("persisted rows are corrupted, ignoring")
		return nil
	}
	return rows
}

// SaveRows persists the position rows.
func (s *Store) SaveRows(ctx context.Context, rows []models.PositionRow) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}
	if err := s.kv.Set(ctx, keyRows, string(data)); err != nil {
		return fmt.Errorf("failed to persist rows: %w", err)
	}
	return nil
}

// LoadFileName returns the persisted upload file name, or "".
func (s *Store) LoadFileName(ctx context.Context) string {
	name, err := s.kv.Get(ctx, keyFileName)
	if err != nil {
		return ""
	}
	return name
}

// SaveFileName persists the upload's display name.
func (s *Store) SaveFileName(ctx context.Context, name string) error {
	if err := s.kv.Set(ctx, keyFileName, name); err != nil {
		return fmt.Errorf("failed to persist file name: %w", err)
	}
	return nil
}

// Clear removes the persisted rows and file name.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, keyRows); err != nil {
		return err
	}
	return s.kv.Delete(ctx, keyFileName)
}

// LoadCategories returns the persisted symbol-to-category labels. Missing or
// corrupted state yields an empty map.
func (s *Store) LoadCategories(ctx context.Context) map[string]string {
	raw, err := s.kv.Get(ctx, keyCategories)
	if err != nil {
		return map[string]string{}
	}

	var categories map[string]string
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("persisted categories are corrupted, ignoring")
		return map[string]string{}
	}
	if categories == nil {
		categories = map[string]string{}
	}
	return categories
}

// SaveCategories persists the symbol-to-category labels.
func (s *Store) SaveCategories(ctx context.Context, categories map[string]string) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}
	if err := s.kv.Set(ctx, keyCategories, string(data)); err != nil {
		return fmt.Errorf("failed to persist categories: %w", err)
	}
	return nil
}
