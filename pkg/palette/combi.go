package palette

import "github.com/kallisti-lab/lithophane/pkg/color"

// ColorCombi is a vertical stack of ColorLayers representing one physically
// realizable pixel column.
type ColorCombi struct {
	Layers []ColorLayer
}

// TotalHeight sums the layer counts of every layer in the combi.
func (c ColorCombi) TotalHeight() int {
	total := 0
	for _, l := range c.Layers {
		total += l.LayerCount
	}
	return total
}

// Projection computes the additive CMYK mix of every layer, clamps each
// channel to [0,1], and converts back to RGB. Two distinct combis can
// project to the same RGB; this is a deliberate equivalence (see
// DESIGN.md) and not treated as an error.
func (c ColorCombi) Projection() color.Rgb {
	var sum color.Cmyk
	for _, l := range c.Layers {
		sum = sum.Add(l.Cmyk)
	}
	return sum.Clamp().Rgb()
}

// Concat returns a new combi whose layers are c's layers followed by
// other's layers, in order. Used by cross-group combination.
func (c ColorCombi) Concat(other ColorCombi) ColorCombi {
	merged := make([]ColorLayer, 0, len(c.Layers)+len(other.Layers))
	merged = append(merged, c.Layers...)
	merged = append(merged, other.Layers...)
	return ColorCombi{Layers: merged}
}

// Factorize folds each run of adjacent equal-hex layers into a single
// ColorLayer with summed layer count. Non-adjacent duplicates (which may
// appear across group boundaries before factorization) are left alone.
func (c ColorCombi) Factorize() ColorCombi {
	if len(c.Layers) == 0 {
		return c
	}
	out := make([]ColorLayer, 0, len(c.Layers))
	cur := c.Layers[0]
	for _, l := range c.Layers[1:] {
		if l.HexCode == cur.HexCode {
			cur.LayerCount += l.LayerCount
			continue
		}
		out = append(out, cur)
		cur = l
	}
	out = append(out, cur)
	return ColorCombi{Layers: out}
}

// OptimizeWhiteLayers reorders the combi to: bottom-white layers (white
// layers whose cumulative height position, summed over the layers before
// them, is at most groupSize) followed by non-white layers in their
// current relative order, followed by top-white layers. This keeps the
// opaque white background on the bottom and top, bracketing the colored
// payload. Ordering within each bucket is stable.
func (c ColorCombi) OptimizeWhiteLayers(groupSize int) ColorCombi {
	var bottomWhite, body, topWhite []ColorLayer
	pos := 0
	for _, l := range c.Layers {
		switch {
		case !IsWhite(l.HexCode):
			body = append(body, l)
		case pos <= groupSize:
			bottomWhite = append(bottomWhite, l)
		default:
			topWhite = append(topWhite, l)
		}
		pos += l.LayerCount
	}

	out := make([]ColorLayer, 0, len(c.Layers))
	out = append(out, bottomWhite...)
	out = append(out, body...)
	out = append(out, topWhite...)
	return ColorCombi{Layers: out}
}
