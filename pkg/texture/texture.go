// Package texture implements the relief (lithophane-proper) synthesizer:
// it maps per-pixel luminance to a heightfield and triangulates it into a
// watertight-by-construction top surface plus sealing perimeter walls.
package texture

import (
	"runtime"

	"github.com/kallisti-lab/lithophane/pkg/color"
	"github.com/kallisti-lab/lithophane/pkg/geometry"
)

// Config carries the physical parameters of the relief.
type Config struct {
	PixelWidth   float64
	MinThickness float64
	MaxThickness float64
}

// Height returns the relief height at a pixel: K rises with darkness, so
// min_t + K*(max_t-min_t) is shortest for light pixels, tallest for dark ones.
func Height(rgb color.Rgb, cfg Config) float64 {
	k := rgb.Cmyk().K
	return cfg.MinThickness + k*(cfg.MaxThickness-cfg.MinThickness)
}

// Synthesize builds the relief mesh for a width*height grayscale grid
// (grid holds one Rgb per pixel; R==G==B is expected but not enforced).
// Interior 2x2 quads become two top triangles each; the four image
// boundaries get vertical wall pairs sealing the surface down to z=0.
// Rows of top triangles are synthesized in parallel; walls are emitted
// afterward, once, since each wall strip spans the full image edge.
func Synthesize(grid []color.Rgb, width, height int, cfg Config) geometry.Mesh {
	if width < 2 || height < 2 {
		return geometry.NewMesh()
	}

	heights := make([]float64, len(grid))
	for i, rgb := range grid {
		heights[i] = Height(rgb, cfg)
	}

	rowQuads := height - 1
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > rowQuads {
		workers = rowQuads
	}
	rowsPerWorker := (rowQuads + workers - 1) / workers

	rows := make([]geometry.Mesh, rowQuads)
	done := make(chan struct{}, workers)
	for worker := 0; worker < workers; worker++ {
		y0 := worker * rowsPerWorker
		y1 := y0 + rowsPerWorker
		if y1 > rowQuads {
			y1 = rowQuads
		}
		if y0 >= y1 {
			done <- struct{}{}
			continue
		}
		go func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				rows[y] = topRow(heights, width, y, cfg.PixelWidth)
			}
			done <- struct{}{}
		}(y0, y1)
	}
	for worker := 0; worker < workers; worker++ {
		<-done
	}

	total := 0
	for _, r := range rows {
		total += r.Len()
	}
	out := geometry.NewMeshWithCapacity(total)
	for _, r := range rows {
		out.MergeOwned(r)
	}

	walls := perimeterWalls(heights, width, height, cfg.PixelWidth)
	out.MergeOwned(walls)
	return out
}

func corner(heights []float64, width, x, y int, pixelW float64) geometry.Vector3 {
	return geometry.Vector3{X: float64(x) * pixelW, Y: float64(y) * pixelW, Z: heights[y*width+x]}
}

// topRow triangulates the 2x2 quads of row y (spanning image rows y and
// y+1), emitting two triangles per quad.
func topRow(heights []float64, width, y int, pixelW float64) geometry.Mesh {
	row := geometry.NewMeshWithCapacity(2 * (width - 1))
	for x := 0; x < width-1; x++ {
		tl := corner(heights, width, x, y, pixelW)
		tr := corner(heights, width, x+1, y, pixelW)
		bl := corner(heights, width, x, y+1, pixelW)
		br := corner(heights, width, x+1, y+1, pixelW)
		row.Add(geometry.Triangle{V0: tl, V1: bl, V2: tr})
		row.Add(geometry.Triangle{V0: tr, V1: bl, V2: br})
	}
	return row
}

// perimeterWalls seals the top surface to z=0 along all four image edges.
func perimeterWalls(heights []float64, width, height int, pixelW float64) geometry.Mesh {
	out := geometry.NewMeshWithCapacity(2 * 2 * ((width - 1) + (height - 1)))
	wall := func(top0, top1 geometry.Vector3) {
		bottom0 := geometry.Vector3{X: top0.X, Y: top0.Y, Z: 0}
		bottom1 := geometry.Vector3{X: top1.X, Y: top1.Y, Z: 0}
		out.Add(geometry.Triangle{V0: top0, V1: bottom0, V2: top1})
		out.Add(geometry.Triangle{V0: top1, V1: bottom0, V2: bottom1})
	}

	for x := 0; x < width-1; x++ {
		wall(corner(heights, width, x+1, 0, pixelW), corner(heights, width, x, 0, pixelW))
		wall(corner(heights, width, x, height-1, pixelW), corner(heights, width, x+1, height-1, pixelW))
	}
	for y := 0; y < height-1; y++ {
		wall(corner(heights, width, 0, y, pixelW), corner(heights, width, 0, y+1, pixelW))
		wall(corner(heights, width, width-1, y+1, pixelW), corner(heights, width, width-1, y, pixelW))
	}
	return out
}
