package palette

import (
	"github.com/kallisti-lab/lithophane/pkg/color"
)

// Palette is the fully-built combinatorics result: every realizable
// ColorCombi keyed by its projected RGB, plus the bookkeeping needed to
// answer the display-name and layer-budget questions the orchestrator asks.
type Palette struct {
	quantizedColors map[color.Rgb]ColorCombi
	hexNames        map[string]string
	nbLayers        int
	nbGroups        int
	hexGroups       [][]string
	slotAssignments [][]string
}

// NewPalette creates an empty palette for a given per-group layer count.
func NewPalette(nbLayers int) *Palette {
	return &Palette{
		quantizedColors: make(map[color.Rgb]ColorCombi),
		hexNames:        make(map[string]string),
		nbLayers:        nbLayers,
	}
}

// ColorCount reports how many distinct projected colors the palette holds.
func (p *Palette) ColorCount() int {
	return len(p.quantizedColors)
}

// Colors returns the palette's projected RGB keys, in no particular order.
func (p *Palette) Colors() []color.Rgb {
	out := make([]color.Rgb, 0, len(p.quantizedColors))
	for c := range p.quantizedColors {
		out = append(out, c)
	}
	return out
}

// Combi returns the ColorCombi realizing the given projected RGB, if any.
func (p *Palette) Combi(c color.Rgb) (ColorCombi, bool) {
	combi, ok := p.quantizedColors[c]
	return combi, ok
}

// AddCombi inserts combi under its own projected RGB. Two combis projecting
// to the same RGB are physically equivalent; the later insertion wins.
func (p *Palette) AddCombi(combi ColorCombi) {
	p.quantizedColors[combi.Projection()] = combi
}

// SetHexNames records the display name for each hex code, used for
// slot-group naming and calibration labels.
func (p *Palette) SetHexNames(names map[string]string) {
	p.hexNames = names
}

// ColorName returns the display name registered for a hex code, if any.
func (p *Palette) ColorName(hex string) (string, bool) {
	name, ok := p.hexNames[hex]
	return name, ok
}

// SetGroups records the slot-group partition and derives LayerCount.
func (p *Palette) SetGroups(groups [][]string) {
	p.hexGroups = groups
	p.nbGroups = len(groups)
}

// NbGroups returns the number of slot groups the palette was built from.
func (p *Palette) NbGroups() int {
	return p.nbGroups
}

// LayerCount returns the total per-pixel vertical budget: nb_layers * nb_groups.
func (p *Palette) LayerCount() int {
	return p.nbLayers * p.nbGroups
}

// NbLayersPerGroup returns the height budget of a single slot group.
func (p *Palette) NbLayersPerGroup() int {
	return p.nbLayers
}

// HexGroups returns the slot-group hex-code partition, in group order.
func (p *Palette) HexGroups() [][]string {
	return p.hexGroups
}

// SetSlotAssignments records the per-slot filament schedule (see
// SlotAssignments).
func (p *Palette) SetSlotAssignments(assignments [][]string) {
	p.slotAssignments = assignments
}

// SlotAssignments returns, for each physical printer slot, the hex codes
// that slot carries across the successive groups (i.e. the filament-swap
// schedule for that slot), with a trailing all-white slot.
func (p *Palette) SlotAssignments() [][]string {
	return p.slotAssignments
}

// FindClosest returns the palette color nearest target under method, or
// false if the palette is empty.
func (p *Palette) FindClosest(target color.Rgb, method color.Method) (color.Rgb, bool) {
	colors := p.Colors()
	if len(colors) == 0 {
		return color.Rgb{}, false
	}
	nearest, err := color.Nearest(target, colors, method)
	if err != nil {
		return color.Rgb{}, false
	}
	return nearest, true
}

// OptimizeWhiteLayers applies ColorCombi.OptimizeWhiteLayers to every
// stored combi, using nbColorPool as the bottom-bucket height threshold.
func (p *Palette) OptimizeWhiteLayers(nbColorPool int) {
	for k, combi := range p.quantizedColors {
		p.quantizedColors[k] = combi.OptimizeWhiteLayers(nbColorPool)
	}
}

// FactorizeAll applies ColorCombi.Factorize to every stored combi.
func (p *Palette) FactorizeAll() {
	for k, combi := range p.quantizedColors {
		p.quantizedColors[k] = combi.Factorize()
	}
}
