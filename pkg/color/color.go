// Package color implements the sRGB, CIELab, HSL and CMYK representations
// used throughout the lithophane pipeline, plus the perceptual distance
// metrics the quantizer and palette packages need.
package color

import "math"

// Rgb is an 8-bit sRGB triple. Each channel is always in [0,255].
type Rgb struct {
	R, G, B uint8
}

// CieLab is the CIE 1976 L*a*b* representation of a color under the D65
// illuminant. L is in [0,100]; A and B are roughly in [-128,128].
type CieLab struct {
	L, A, B float64
}

// Cmyk is a subtractive four-channel representation, each component
// clamped to [0,1].
type Cmyk struct {
	C, M, Y, K float64
}

// Hsl is the cylindrical hue/saturation/lightness representation used only
// at palette-ingestion time. Hue is in [0,360); saturation and lightness
// are percentages in [0,100].
type Hsl struct {
	H, S, L float64
}

const (
	labEpsilon = 6.0 / 29.0 * 6.0 / 29.0 * 6.0 / 29.0
	labKappa   = 29.0 / 6.0 * 29.0 / 6.0 / 3.0
	labOffset  = 4.0 / 29.0
)

var d65Whitepoint = [3]float64{95.047, 100.000, 108.883}

// d65Matrix rows map linear sRGB to XYZ under the D65 illuminant.
var d65Matrix = [3][3]float64{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

func linearize(n float64) float64 {
	if n <= 0.04045 {
		return n / 12.92
	}
	return math.Pow((n+0.055)/1.055, 2.4)
}

func pivot(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return labKappa*t + labOffset
}

// Lab converts an sRGB color to CIELab, linearizing the channels, projecting
// through the D65 matrix into XYZ, and pivoting against the D65 whitepoint.
func (c Rgb) Lab() CieLab {
	r := linearize(float64(c.R) / 255.0)
	g := linearize(float64(c.G) / 255.0)
	b := linearize(float64(c.B) / 255.0)

	x := (d65Matrix[0][0]*r + d65Matrix[0][1]*g + d65Matrix[0][2]*b) * 100
	y := (d65Matrix[1][0]*r + d65Matrix[1][1]*g + d65Matrix[1][2]*b) * 100
	z := (d65Matrix[2][0]*r + d65Matrix[2][1]*g + d65Matrix[2][2]*b) * 100

	fx := pivot(x / d65Whitepoint[0])
	fy := pivot(y / d65Whitepoint[1])
	fz := pivot(z / d65Whitepoint[2])

	return CieLab{
		L: math.Max(0, 116*fy-16),
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// Cmyk converts an sRGB color to its subtractive representation. K is the
// darkness; C, M, Y are computed relative to the remaining headroom.
func (c Rgb) Cmyk() Cmyk {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0
	k := 1 - math.Max(r, math.Max(g, b))
	if k >= 1 {
		return Cmyk{C: 0, M: 0, Y: 0, K: 1}
	}
	return Cmyk{
		C: (1 - r - k) / (1 - k),
		M: (1 - g - k) / (1 - k),
		Y: (1 - b - k) / (1 - k),
		K: k,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampFloatToUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// Rgb converts CMYK back to sRGB, clamping each channel to [0,1] first.
func (c Cmyk) Rgb() Rgb {
	cc := clamp01(c.C)
	mm := clamp01(c.M)
	yy := clamp01(c.Y)
	kk := clamp01(c.K)
	r := 255 * (1 - cc) * (1 - kk)
	g := 255 * (1 - mm) * (1 - kk)
	b := 255 * (1 - yy) * (1 - kk)
	return Rgb{R: clampFloatToUint8(r), G: clampFloatToUint8(g), B: clampFloatToUint8(b)}
}

// Add sums two CMYK contributions channel-wise without clamping; callers
// clamp once after accumulating every layer in a stack.
func (c Cmyk) Add(other Cmyk) Cmyk {
	return Cmyk{C: c.C + other.C, M: c.M + other.M, Y: c.Y + other.Y, K: c.K + other.K}
}

// Clamp restricts every channel to [0,1].
func (c Cmyk) Clamp() Cmyk {
	return Cmyk{C: clamp01(c.C), M: clamp01(c.M), Y: clamp01(c.Y), K: clamp01(c.K)}
}

func rgbToHsl(r, g, b float64) (h, s, l float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2
	if max == min {
		return 0, 0, l
	}
	d := max - min
	if l > 0.5 {
		s = d / (2.0 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h /= 6
	return
}

func hueToRgb(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

// Hsl converts sRGB to the HSL representation, hue in [0,360), saturation
// and lightness as percentages in [0,100].
func (c Rgb) Hsl() Hsl {
	h, s, l := rgbToHsl(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0)
	return Hsl{H: h * 360, S: s * 100, L: l * 100}
}

// Rgb converts HSL back to sRGB.
func (c Hsl) Rgb() Rgb {
	h := math.Mod(c.H, 360) / 360
	if h < 0 {
		h += 1
	}
	s := clamp01(c.S / 100)
	l := clamp01(c.L / 100)
	if s == 0 {
		v := clampFloatToUint8(l * 255)
		return Rgb{R: v, G: v, B: v}
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	r := hueToRgb(p, q, h+1.0/3.0)
	g := hueToRgb(p, q, h)
	b := hueToRgb(p, q, h-1.0/3.0)
	return Rgb{
		R: clampFloatToUint8(r * 255),
		G: clampFloatToUint8(g * 255),
		B: clampFloatToUint8(b * 255),
	}
}

// DeltaE76 is the CIE76 Euclidean distance between two Lab colors.
func DeltaE76(a, b CieLab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// SquaredDistance is the cheaper integer-channel squared Euclidean distance
// in sRGB space, offered as an alternative to CIELab ΔE.
func SquaredDistance(a, b Rgb) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}
