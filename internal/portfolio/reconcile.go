package portfolio

import (
	"math"

	"github.com/foliolabs/folio-portal/internal/models"
)

// Reconcile merges aggregated groups with the quote and brand mappings into
// a new enriched snapshot, preserving group order.
//
// Either mapping may be a strict subset of the groups' symbols, or empty:
// groups without a quote keep their enrichment fields unset, which is a
// displayable state, not an error. Reconcile is safe to call again with
// fresher mappings; it always starts from the aggregated values, so nothing
// accumulates across calls.
func Reconcile(groups []models.GroupedPosition, quotes map[string]models.StockData, brands map[string]models.BrandInfo) []models.GroupedPosition {
	enriched := make([]models.GroupedPosition, len(groups))
	for i, g := range groups {
		g.CurrentPrice = nil
		g.CurrentValue = nil
		g.ProfitLoss = nil
		g.ProfitLossPercent = nil
		g.BrandInfo = nil

		if brand, ok := brands[g.Symbol]; ok {
			b := brand
			g.BrandInfo = &b
		}

		if quote, ok := quotes[g.Symbol]; ok {
			price := quote.CurrentPrice
			currentValue := g.TotalVolume * price
			profitLoss := currentValue - g.TotalValue

			g.CurrentPrice = &price
			g.CurrentValue = &currentValue
			g.ProfitLoss = &profitLoss

			// A zero cost basis makes the percentage non-finite.
			// JSON cannot carry Inf/NaN, so "no data" is the nil pointer.
			pct := profitLoss / g.TotalValue * 100
			if !math.IsInf(pct, 0) && !math.IsNaN(pct) {
				g.ProfitLossPercent = &pct
			}
		}

		g.Color = DisplayColor(g.BrandInfo, i)
		enriched[i] = g
	}
	return enriched
}
