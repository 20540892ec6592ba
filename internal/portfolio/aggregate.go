// Package portfolio implements the position aggregation and enrichment
// pipeline: grouping uploaded rows by symbol, merging in quote and brand
// data as it arrives, and exposing the current enriched snapshot.
package portfolio

import (
	"strconv"
	"strings"

	"github.com/foliolabs/folio-portal/internal/models"
)

// Group aggregates position rows by exact symbol into one GroupedPosition
// per distinct symbol, ordered by first occurrence in the input.
//
// Pure and deterministic: same input, same output, no side effects.
// Numeric parsing is lenient; a malformed volume or open price contributes 0
// rather than failing the group.
func Group(rows []models.PositionRow) []models.GroupedPosition {
	var groups []models.GroupedPosition
	index := make(map[string]int)

	for _, row := range rows {
		volume := parseFloat(row.Volume)
		if i, ok := index[row.Symbol]; ok {
			g := &groups[i]
			g.Positions = append(g.Positions, row)
			g.TotalVolume += volume
			continue
		}
		index[row.Symbol] = len(groups)
		groups = append(groups, models.GroupedPosition{
			Symbol:      row.Symbol,
			Positions:   []models.PositionRow{row},
			TotalVolume: volume,
		})
	}

	for i := range groups {
		g := &groups[i]
		var weighted float64
		for _, pos := range g.Positions {
			weighted += parseFloat(pos.Volume) * parseFloat(pos.OpenPrice)
		}
		g.TotalValue = weighted
		if g.TotalVolume > 0 {
			g.AverageOpenPrice = weighted / g.TotalVolume
		} else {
			g.AverageOpenPrice = 0
		}
	}

	return groups
}

// Flatten returns the position rows of all groups in group order. It is the
// inverse of Group up to grouping: re-grouping the result yields the same
// groups.
func Flatten(groups []models.GroupedPosition) []models.PositionRow {
	var rows []models.PositionRow
	for _, g := range groups {
		rows = append(rows, g.Positions...)
	}
	return rows
}

// parseFloat converts raw cell text to a float the way the source
// spreadsheets demand: the longest leading numeric prefix is parsed and
// anything unparsable is 0. "10 shares" is 10, "n/a" is 0:
// classic lenient parseFloat semantics.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	intDigits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		intDigits++
	}
	fracDigits := 0
	if end < len(s) && s[end] == '.' {
		j := end + 1
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			fracDigits++
		}
		if intDigits > 0 || fracDigits > 0 {
			end = j
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0
	}

	// Optional exponent, only consumed when complete.
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		j := end + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			expDigits++
		}
		if expDigits > 0 {
			end = j
		}
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}
