package portfolio

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/foliolabs/folio-portal/internal/common"
	"github.com/foliolabs/folio-portal/internal/models"
)

// QuoteFetcher fetches current quotes for a set of symbols. Symbols that
// fail are simply absent from the result.
type QuoteFetcher interface {
	Fetch(ctx context.Context, symbols []string) map[string]models.StockData
}

// BrandFetcher fetches brand metadata for a set of symbols. Symbols that
// fail or are unknown upstream are absent from the result.
type BrandFetcher interface {
	Fetch(ctx context.Context, symbols []string) map[string]models.BrandInfo
}

// Snapshot is the current displayable portfolio state.
type Snapshot struct {
	Groups        []models.GroupedPosition `json:"groups"`
	FileName      string                   `json:"fileName,omitempty"`
	PositionCount int                      `json:"positionCount"`
	TotalValue    float64                  `json:"totalValue"`
	Refreshing    bool                     `json:"refreshing"`
	LastRefreshed *time.Time               `json:"lastRefreshed,omitempty"`
}

// Service owns the portfolio state: the persisted row set, the in-memory
// enriched snapshot, and the enrichment generation counter.
//
// Enrichment batches are never cancelled. Every mutation of the row set
// bumps the generation; a batch commits its result only if its generation is
// still the latest when it settles, so a slow stale batch can never
// overwrite a fresher snapshot.
type Service struct {
	logger *common.Logger
	store  *Store
	quotes QuoteFetcher
	brands BrandFetcher

	mu            sync.Mutex
	rows          []models.PositionRow
	fileName      string
	snapshot      []models.GroupedPosition
	gen           uint64
	refreshing    int
	lastRefreshed time.Time
}

// NewService creates the portfolio service and restores persisted state.
func NewService(logger *common.Logger, store *Store, quotes QuoteFetcher, brands BrandFetcher) *Service {
	s := &Service{
		logger: logger,
		store:  store,
		quotes: quotes,
		brands: brands,
	}

	ctx := context.Background()
	s.rows = store.LoadRows(ctx)
	s.fileName = store.LoadFileName(ctx)
	if len(s.rows) > 0 {
		logger.Info().Int("rows", len(s.rows)).Str("file", s.fileName).Msg("restored persisted portfolio")
	}

	return s
}

// SetRows replaces the entire row set (a new upload), persists it, and
// re-triggers enrichment.
func (s *Service) SetRows(ctx context.Context, rows []models.PositionRow, fileName string) {
	if err := s.store.SaveRows(ctx, rows); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to persist uploaded rows")
	}
	if err := s.store.SaveFileName(ctx, fileName); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to persist file name")
	}

	s.mu.Lock()
	s.rows = rows
	s.fileName = fileName
	s.snapshot = nil
	s.mu.Unlock()

	s.TriggerRefresh()
}

// AddPosition appends one manually-entered position and re-triggers
// enrichment.
func (s *Service) AddPosition(ctx context.Context, row models.PositionRow) error {
	if strings.TrimSpace(row.Symbol) == "" {
		return fmt.Errorf("symbol is required")
	}

	s.mu.Lock()
	rows := append(append([]models.PositionRow{}, s.rows...), row)
	s.rows = rows
	s.mu.Unlock()

	if err := s.store.SaveRows(ctx, rows); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to persist rows after add")
	}

	s.TriggerRefresh()
	return nil
}

// DeleteSymbol removes every position for the given symbol and re-triggers
// enrichment. Returns the number of rows removed.
func (s *Service) DeleteSymbol(ctx context.Context, symbol string) int {
	s.mu.Lock()
	var kept []models.PositionRow
	removed := 0
	for _, row := range s.rows {
		if row.Symbol == symbol {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	s.rows = kept
	s.mu.Unlock()

	if removed == 0 {
		return 0
	}

	if err := s.store.SaveRows(ctx, kept); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to persist rows after delete")
	}

	s.TriggerRefresh()
	return removed
}

// Clear drops all portfolio state, persisted and in-memory.
func (s *Service) Clear(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn().Str("error", err.Error()).Msg("failed to clear persisted state")
	}

	s.mu.Lock()
	s.rows = nil
	s.fileName = ""
	s.snapshot = nil
	s.gen++ // invalidate any in-flight enrichment batch
	s.mu.Unlock()
}

// Rows returns a copy of the current row set.
func (s *Service) Rows() []models.PositionRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PositionRow{}, s.rows...)
}

// Snapshot returns the current displayable state. Before the first
// enrichment settles this is the plain aggregation of the stored rows.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := s.snapshot
	if groups == nil {
		groups = Reconcile(Group(s.rows), nil, nil)
	}

	var total float64
	for _, g := range groups {
		total += g.TotalValue
	}

	snap := Snapshot{
		Groups:        groups,
		FileName:      s.fileName,
		PositionCount: len(s.rows),
		TotalValue:    total,
		Refreshing:    s.refreshing > 0,
	}
	if !s.lastRefreshed.IsZero() {
		t := s.lastRefreshed
		snap.LastRefreshed = &t
	}
	return snap
}

// TriggerRefresh starts an enrichment batch in the background. In-flight
// batches keep running; the generation check decides which one wins.
func (s *Service) TriggerRefresh() {
	go s.Refresh(context.Background())
}

// Refresh runs one enrichment batch: group the rows, fetch quotes and brand
// data as sibling tasks, reconcile, and commit the result if this batch is
// still the latest generation.
func (s *Service) Refresh(ctx context.Context) {
	s.mu.Lock()
	rows := append([]models.PositionRow{}, s.rows...)
	s.gen++
	gen := s.gen
	s.refreshing++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.refreshing--
		s.mu.Unlock()
	}()

	grouped := Group(rows)
	if len(grouped) == 0 {
		s.commit(gen, nil)
		return
	}

	symbols := make([]string, len(grouped))
	for i, g := range grouped {
		symbols[i] = g.Symbol
	}

	var (
		wg       sync.WaitGroup
		quoteMap map[string]models.StockData
		brandMap map[string]models.BrandInfo
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		quoteMap = s.quotes.Fetch(ctx, symbols)
	}()
	go func() {
		defer wg.Done()
		brandMap = s.brands.Fetch(ctx, symbols)
	}()
	wg.Wait()

	enriched := Reconcile(grouped, quoteMap, brandMap)

	s.logger.Info().
		Int("groups", len(grouped)).
		Int("quotes", len(quoteMap)).
		Int("brands", len(brandMap)).
		Msg("enrichment batch settled")

	s.commit(gen, enriched)
}

// commit installs a batch result unless a newer generation has been
// triggered since the batch started.
func (s *Service) commit(gen uint64, groups []models.GroupedPosition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.logger.Debug().Msg("discarding stale enrichment batch")
		return
	}
	s.snapshot = groups
	s.lastRefreshed = time.Now()
}
