// Package calibration builds the calibration pattern: a base plate plus
// one mesh per active filament showing that filament's color at every
// printable layer count, independent of any source image or palette
// matching.
package calibration

import (
	"regexp"
	"sort"
	"strings"

	"github.com/kallisti-lab/lithophane/pkg/geometry"
)

const (
	squareEdge = 10.0
	squareGap  = 2.0
)

// Filament is one active palette entry to calibrate.
type Filament struct {
	Hex  string
	Name string
}

// Mesh pairs an output name with its geometry, matching the orchestrator's
// output shape (one named mesh per archive entry).
type Mesh struct {
	Name string
	Mesh geometry.Mesh
}

// Build returns the base plate plus one mesh per filament (sorted by hex),
// each containing nbLayers boxes at columns 1..nbLayers, where column j's
// box has height j*layerThickness.
func Build(filaments []Filament, nbLayers int, layerThickness, plateThickness float64) []Mesh {
	sorted := append([]Filament{}, filaments...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Hex < sorted[j].Hex })

	gridW := float64(nbLayers)*squareEdge + float64(nbLayers-1)*squareGap
	gridH := float64(len(sorted))*squareEdge + float64(len(sorted)-1)*squareGap
	if len(sorted) == 0 {
		gridH = 0
	}

	out := make([]Mesh, 0, len(sorted)+1)
	plate := geometry.Box(gridW, gridH, plateThickness, geometry.Vector3{
		X: gridW / 2, Y: gridH / 2, Z: -plateThickness / 2,
	})
	out = append(out, Mesh{Name: "calibration-plate", Mesh: plate})

	for row, f := range sorted {
		rowY := float64(row)*(squareEdge+squareGap) + squareEdge/2
		m := geometry.NewMeshWithCapacity(nbLayers * 12)
		for j := 1; j <= nbLayers; j++ {
			height := float64(j) * layerThickness
			colX := float64(j-1) * (squareEdge + squareGap)
			box := geometry.Box(squareEdge, squareEdge, height, geometry.Vector3{
				X: colX + squareEdge/2,
				Y: rowY,
				Z: height / 2,
			})
			m.MergeOwned(box)
		}
		out = append(out, Mesh{Name: "calibration-" + sanitize(f.Name), Mesh: m})
	}
	return out
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// sanitize lowercases name and replaces runs of non-alphanumeric
// characters with a single hyphen, so display names become safe,
// predictable file-name fragments.
func sanitize(name string) string {
	cleaned := nonAlphanumeric.ReplaceAllString(name, "-")
	cleaned = strings.Trim(cleaned, "-")
	return strings.ToLower(cleaned)
}
