// Package palette implements the combinatorics core: ColorLayer and
// ColorCombi, the recursive combination generator, slot grouping,
// factorization, white-layer optimization, and the JSON palette loader.
package palette

import (
	"sort"

	"github.com/kallisti-lab/lithophane/pkg/color"
	"github.com/kallisti-lab/lithophane/pkg/lerr"
)

// ColorLayer is a single filament's contribution at a specific printed
// layer count. Cmyk is fixed at construction and never mutates.
type ColorLayer struct {
	HexCode    string
	LayerCount int
	Cmyk       color.Cmyk
}

// NewColorLayer builds a ColorLayer from a measured RGB color, canonicalizing
// the hex code and pre-computing the CMYK contribution.
func NewColorLayer(hexCode string, layerCount int, measured color.Rgb) (ColorLayer, error) {
	canon, err := color.CanonicalHex(hexCode)
	if err != nil {
		return ColorLayer{}, err
	}
	if layerCount <= 0 {
		return ColorLayer{}, lerr.New(lerr.InvalidPalette, "palette: layer count must be positive, got %d", layerCount)
	}
	return ColorLayer{HexCode: canon, LayerCount: layerCount, Cmyk: measured.Cmyk()}, nil
}

// darkness is the k channel, used as the primary sort key (descending) so
// the canonical stacking order is bottom (darkest) to top (lightest).
func (l ColorLayer) darkness() float64 {
	return l.Cmyk.K
}

// SortByDarknessDescending sorts layers in place by k descending. This is
// the fixed input order the combination generator relies on for
// deterministic, reproducible enumeration.
func SortByDarknessDescending(layers []ColorLayer) {
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].darkness() > layers[j].darkness()
	})
}

const whiteHex = "#FFFFFF"

// IsWhite reports whether hexCode (already canonical) is the neutral
// all-white contributor.
func IsWhite(hexCode string) bool {
	return hexCode == whiteHex
}
