package models

// BrandInfo is the descriptive record returned by the Brandfetch API for a
// symbol. It is treated as opaque except for the colors list, from which the
// accent color is extracted for chart rendering.
type BrandInfo struct {
	Name            string       `json:"name"`
	Domain          string       `json:"domain,omitempty"`
	Description     string       `json:"description,omitempty"`
	LongDescription string       `json:"longDescription,omitempty"`
	Logos           []BrandLogo  `json:"logos,omitempty"`
	Colors          []BrandColor `json:"colors,omitempty"`
	Fonts           []BrandFont  `json:"fonts,omitempty"`
	Images          []BrandImage `json:"images,omitempty"`
}

// BrandColor is one named color in a brand's palette.
type BrandColor struct {
	Hex        string `json:"hex"`
	Type       string `json:"type"`
	Brightness int    `json:"brightness,omitempty"`
}

// BrandLogo is one logo asset with its renderable formats.
type BrandLogo struct {
	Type    string        `json:"type"`
	Theme   string        `json:"theme,omitempty"`
	Formats []BrandFormat `json:"formats,omitempty"`
}

// BrandImage is one non-logo image asset.
type BrandImage struct {
	Type    string        `json:"type"`
	Formats []BrandFormat `json:"formats,omitempty"`
}

// BrandFormat is a single downloadable rendition of a logo or image.
type BrandFormat struct {
	Src    string `json:"src"`
	Format string `json:"format"`
	Size   int    `json:"size,omitempty"`
}

// BrandFont is one typeface in a brand's identity.
type BrandFont struct {
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Origin string `json:"origin,omitempty"`
}

// AccentColor returns the hex value of the first color whose type is exactly
// "accent", or "" when the brand has none.
func (b *BrandInfo) AccentColor() string {
	if b == nil {
		return ""
	}
	for _, c := range b.Colors {
		if c.Type == "accent" {
			return c.Hex
		}
	}
	return ""
}
