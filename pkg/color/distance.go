package color

import (
	"github.com/kallisti-lab/lithophane/pkg/lerr"
)

// Method selects the distance metric used for nearest-color search.
type Method int

const (
	// CieLabMethod compares colors by CIE76 ΔE in Lab space (the default,
	// perceptually uniform metric).
	CieLabMethod Method = iota
	// RgbMethod compares colors by squared Euclidean distance in sRGB
	// space. Cheaper, not perceptually uniform.
	RgbMethod
)

// errEmptyPalette reports an empty candidate list with the InvalidPalette
// kind, so callers can branch on lerr.Kind like everywhere else.
func errEmptyPalette() error {
	return lerr.New(lerr.InvalidPalette, "color: palette is empty")
}

// LabTable precomputes the Lab representation of a palette once so bulk
// quantization doesn't repeat the sRGB->Lab conversion per pixel.
type LabTable struct {
	Colors []Rgb
	Labs   []CieLab
}

// NewLabTable precomputes Lab for every candidate color, preserving order.
func NewLabTable(colors []Rgb) LabTable {
	labs := make([]CieLab, len(colors))
	for i, c := range colors {
		labs[i] = c.Lab()
	}
	return LabTable{Colors: colors, Labs: labs}
}

// Nearest returns the index into the table of the candidate closest to
// target under the CIELab ΔE metric, breaking ties by first occurrence.
func (t LabTable) Nearest(target Rgb) (int, error) {
	if len(t.Colors) == 0 {
		return 0, errEmptyPalette()
	}
	targetLab := target.Lab()
	best := 0
	bestDist := DeltaE76(targetLab, t.Labs[0])
	for i := 1; i < len(t.Labs); i++ {
		d := DeltaE76(targetLab, t.Labs[i])
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best, nil
}

// Nearest performs a linear scan for the candidate closest to target under
// the chosen distance method, breaking ties by first occurrence. It fails
// with an InvalidPalette error when candidates is empty.
func Nearest(target Rgb, candidates []Rgb, method Method) (Rgb, error) {
	if len(candidates) == 0 {
		return Rgb{}, errEmptyPalette()
	}
	best := candidates[0]
	bestDist := distance(target, candidates[0], method)
	for _, c := range candidates[1:] {
		d := distance(target, c, method)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best, nil
}

func distance(a, b Rgb, method Method) float64 {
	if method == RgbMethod {
		return SquaredDistance(a, b)
	}
	return DeltaE76(a.Lab(), b.Lab())
}

// NearestInTable finds the closest candidate using the requested metric,
// reusing a precomputed Lab table when the metric is CIELab.
func NearestInTable(target Rgb, table LabTable, method Method) (Rgb, error) {
	if len(table.Colors) == 0 {
		return Rgb{}, errEmptyPalette()
	}
	if method == RgbMethod {
		return Nearest(target, table.Colors, method)
	}
	idx, err := table.Nearest(target)
	if err != nil {
		return Rgb{}, err
	}
	return table.Colors[idx], nil
}
