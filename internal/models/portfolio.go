// Package models defines the shared domain types for folio-portal.
package models

// PositionRow is one row from an uploaded position spreadsheet. Volume and
// open price are kept as the raw cell text: parsing is deferred to
// aggregation so a malformed cell never fails an upload.
type PositionRow struct {
	Symbol    string `json:"symbol"`
	Volume    string `json:"volume"`
	OpenPrice string `json:"openPrice"`
}

// GroupedPosition aggregates all positions for one ticker symbol.
//
// The enrichment fields (CurrentPrice onward) are pointers: nil means the
// group has not been enriched, which is a steady, displayable state rather
// than an error. ProfitLossPercent can be non-finite when TotalValue is 0;
// consumers must render that as "no data".
type GroupedPosition struct {
	Symbol           string        `json:"symbol"`
	Positions        []PositionRow `json:"positions"`
	TotalVolume      float64       `json:"totalVolume"`
	AverageOpenPrice float64       `json:"averageOpenPrice"`
	TotalValue       float64       `json:"totalValue"`

	CurrentPrice      *float64   `json:"currentPrice,omitempty"`
	CurrentValue      *float64   `json:"currentValue,omitempty"`
	ProfitLoss        *float64   `json:"profitLoss,omitempty"`
	ProfitLossPercent *float64   `json:"profitLossPercent,omitempty"`
	BrandInfo         *BrandInfo `json:"brandInfo,omitempty"`

	// Color is the display color for charts: the brand accent color when
	// available, otherwise a deterministic palette fallback.
	Color string `json:"color,omitempty"`
}

// Enriched reports whether a live quote has been merged into the group.
func (g *GroupedPosition) Enriched() bool {
	return g.CurrentPrice != nil
}

// CategoryLabels are the user-assignable allocation categories.
var CategoryLabels = []string{"Staple", "Mature Growth", "High Growth", "High Risk"}
