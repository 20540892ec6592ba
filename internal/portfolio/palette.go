package portfolio

import (
	"fmt"
	"strconv"

	"github.com/foliolabs/folio-portal/internal/models"
)

// palette is the fixed chart palette. Symbols beyond twenty reuse it with a
// brightness shift so arbitrarily large portfolios still get distinct,
// deterministic colors.
var palette = [20]string{
	"#A6CEE3",
	"#1F78B4",
	"#B2DF8A",
	"#33A02C",
	"#FB9A99",
	"#E31A1C",
	"#FDBF6F",
	"#FF7F00",
	"#CAB2D6",
	"#6A3D9A",
	"#FFFF99",
	"#B15928",
	"#8DD3C7",
	"#FFFFB3",
	"#BEBADA",
	"#FB8072",
	"#80B1D3",
	"#FDB462",
	"#B3DE69",
	"#FCCDE5",
}

// PaletteColor returns the deterministic chart color for a zero-based group
// index. Indices below twenty index the palette directly; beyond that the
// palette wraps, darkened on odd cycles (0.7x) and lightened on even ones
// (1.3x).
func PaletteColor(index int) string {
	if index < len(palette) {
		return palette[index]
	}

	base := palette[index%len(palette)]
	cycle := index / len(palette)

	factor := 0.7
	if cycle%2 == 0 {
		factor = 1.3
	}
	return adjustBrightness(base, factor)
}

// DisplayColor picks the chart color for a group: the brand accent color
// when present, otherwise the palette fallback for the group's index.
func DisplayColor(brand *models.BrandInfo, index int) string {
	if accent := brand.AccentColor(); accent != "" {
		return accent
	}
	return PaletteColor(index)
}

// adjustBrightness scales each RGB channel of a hex color, clamping to
// [0,255]. Factors above 1 lighten, below 1 darken.
func adjustBrightness(hex string, factor float64) string {
	r, g, b := hexToRGB(hex)
	return fmt.Sprintf("#%02X%02X%02X", scaleChannel(r, factor), scaleChannel(g, factor), scaleChannel(b, factor))
}

// hexToRGB parses "#RRGGBB" (leading # optional). Invalid input is black,
// matching the forgiving behavior expected of chart glue.
func hexToRGB(hex string) (int, int, int) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return 0, 0, 0
	}
	r, err1 := strconv.ParseInt(hex[0:2], 16, 0)
	g, err2 := strconv.ParseInt(hex[2:4], 16, 0)
	b, err3 := strconv.ParseInt(hex[4:6], 16, 0)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0
	}
	return int(r), int(g), int(b)
}

func scaleChannel(v int, factor float64) int {
	scaled := int(float64(v)*factor + 0.5)
	if scaled > 255 {
		return 255
	}
	if scaled < 0 {
		return 0
	}
	return scaled
}
