// Package quote fans out current-price lookups across symbols.
package quote

import (
	"context"
	"sync"

	"github.com/foliolabs/folio-portal/internal/common"
	"github.com/foliolabs/folio-portal/internal/models"
)

// Client fetches one quote from the upstream market data provider.
type Client interface {
	Quote(ctx context.Context, symbol string) (models.FinnhubQuote, error)
}

// Service fetches quotes for whole symbol batches concurrently. A failed
// symbol is logged and omitted from the result; one bad ticker never sinks
// the batch.
type Service struct {
	logger *common.Logger
	client Client
}

func NewService(logger *common.Logger, client Client) *Service {
	return &Service{logger: logger, client: client}
}

// Fetch retrieves quotes for all symbols concurrently and returns the ones
// that succeeded, keyed by symbol.
func (s *Service) Fetch(ctx context.Context, symbols []string) map[string]models.StockData {
	results := make(map[string]models.StockData, len(symbols))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()

			q, err := s.client.Quote(ctx, symbol)
			if err != nil {
				s.logger.Warn().Str("symbol", symbol).Str("error", err.Error()).Msg("quote fetch failed")
				return
			}

			mu.Lock()
			results[symbol] = models.StockDataFromQuote(symbol, q)
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()

	s.logger.Debug().Int("requested", len(symbols)).Int("resolved", len(results)).Msg("quote batch complete")
	return results
}
