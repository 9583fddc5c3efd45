// Package synth implements the color-layer synthesizer: it turns a
// quantized pixel grid into one triangle mesh per printer slot, each
// holding the physical contribution of every filament that slot carries.
package synth

import (
	"runtime"

	"github.com/kallisti-lab/lithophane/pkg/geometry"
	"github.com/kallisti-lab/lithophane/pkg/palette"
	"github.com/kallisti-lab/lithophane/pkg/quantize"
)

// Window is the vertical slice [Offset, Offset+Max) of a combi's layer
// stack that belongs to one slot group's output file.
type Window struct {
	Offset int
	Max    int
}

// Config carries the physical dimensions the synthesizer needs: the
// footprint of one color pixel and the z-height of one printed layer.
type Config struct {
	PixelWidth     float64
	LayerThickness float64
}

// clipWindow restricts a layer spanning flat positions [b, b+h) to the
// window [o, o+m). Returns the clipped (before, height) pair, both in
// layer-count units; (0,0) means the layer is entirely outside the window.
func clipWindow(b, h, o, m int) (before, height int) {
	if b >= o+m {
		return 0, 0
	}
	if b < o && b+h < o {
		return 0, 0
	}
	if b < o {
		hp := h - (o - b)
		if hp > m {
			hp = m
		}
		return 0, hp
	}
	bp := b - o
	hp := h
	if hp+bp > m {
		hp = m - bp
	}
	return bp, hp
}

// hasTransparentNeighbor reports whether any of (x,y)'s 8 neighbors in
// grid is transparent. Out-of-bounds neighbors are skipped, so the image
// edge alone does not trigger the moat.
func hasTransparentNeighbor(grid []quantize.Pixel, width, height, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= width || ny < 0 || ny >= height {
				continue
			}
			if grid[ny*width+nx].Transparent {
				return true
			}
		}
	}
	return false
}

func gridHasTransparency(grid []quantize.Pixel) bool {
	for _, p := range grid {
		if p.Transparent {
			return true
		}
	}
	return false
}

// Synthesize scans grid (a quantized, row-major width*height pixel array)
// and returns the mesh holding every prism the filaments in filamentHexes
// contribute, restricted to window. pal resolves each pixel's quantized
// RGB to the ColorCombi that realizes it. filamentHexes is typically one
// slot assignment: the filaments a physical printer slot carries across
// the successive groups.
//
// Rows are processed independently and in parallel; each row's triangles
// are merged in increasing row order, and within a row the emission order
// is filament-major then column-major, which keeps the output bit-stable
// for a given input.
func Synthesize(grid []quantize.Pixel, width, height int, pal *palette.Palette, filamentHexes []string, window Window, cfg Config) geometry.Mesh {
	if width == 0 || height == 0 {
		return geometry.NewMesh()
	}

	anyTransparent := gridHasTransparency(grid)

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > height {
		workers = height
	}
	rowsPerWorker := (height + workers - 1) / workers

	rows := make([]geometry.Mesh, height)
	done := make(chan struct{}, workers)
	for worker := 0; worker < workers; worker++ {
		y0 := worker * rowsPerWorker
		y1 := y0 + rowsPerWorker
		if y1 > height {
			y1 = height
		}
		if y0 >= y1 {
			done <- struct{}{}
			continue
		}
		go func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				rows[y] = synthesizeRow(grid, width, height, y, pal, filamentHexes, window, cfg, anyTransparent)
			}
			done <- struct{}{}
		}(y0, y1)
	}
	for worker := 0; worker < workers; worker++ {
		<-done
	}

	total := 0
	for _, m := range rows {
		total += m.Len()
	}
	merged := geometry.NewMeshWithCapacity(total)
	for _, m := range rows {
		merged.MergeOwned(m)
	}
	return merged
}

func synthesizeRow(grid []quantize.Pixel, width, height, y int, pal *palette.Palette, hexes []string, window Window, cfg Config, anyTransparent bool) geometry.Mesh {
	row := geometry.NewMesh()
	for _, hex := range hexes {
		x := 0
		for x < width {
			p := grid[y*width+x]
			if p.Transparent {
				x++
				continue
			}
			if anyTransparent && hasTransparentNeighbor(grid, width, height, x, y) {
				x++
				continue
			}

			runStart := x
			k := 1
			for x+k < width {
				next := grid[y*width+x+k]
				if next.Transparent || next.Rgb != p.Rgb {
					break
				}
				if anyTransparent && hasTransparentNeighbor(grid, width, height, x+k, y) {
					break
				}
				k++
			}

			combi, ok := pal.Combi(p.Rgb)
			if ok {
				emitRunBoxes(&row, combi, hex, runStart, k, y, window, cfg)
			}
			x += k
		}
	}
	return row
}

// emitRunBoxes appends one box per occurrence of hex in combi that
// survives the window clip, for a run of k identical pixels starting at
// column runStart on row y.
func emitRunBoxes(row *geometry.Mesh, combi palette.ColorCombi, hex string, runStart, k, y int, window Window, cfg Config) {
	before := 0
	for _, l := range combi.Layers {
		if l.HexCode != hex {
			before += l.LayerCount
			continue
		}
		clippedBefore, clippedHeight := clipWindow(before, l.LayerCount, window.Offset, window.Max)
		before += l.LayerCount
		if clippedHeight == 0 {
			continue
		}

		width := float64(k) * cfg.PixelWidth
		height := float64(clippedHeight) * cfg.LayerThickness
		center := geometry.Vector3{
			X: float64(runStart)*cfg.PixelWidth + width/2,
			Y: float64(y) * cfg.PixelWidth,
			Z: float64(clippedBefore)*cfg.LayerThickness + height/2,
		}
		row.MergeOwned(geometry.Box(width, cfg.PixelWidth, height, center))
	}
}

