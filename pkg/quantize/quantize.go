// Package quantize maps a pixel grid onto a fixed, physically-realizable
// palette: each non-transparent pixel is replaced by its nearest palette
// color under a chosen distance method.
package quantize

import (
	"runtime"

	"github.com/kallisti-lab/lithophane/pkg/color"
)

// Pixel is one quantizer input sample: an RGB value plus whether it is
// transparent. Transparent pixels pass through untouched.
type Pixel struct {
	Rgb         color.Rgb
	Transparent bool
}

// Map replaces every non-transparent pixel in grid with its nearest
// palette color under method, using table for the precomputed Lab
// lookups. Transparent pixels are left as-is. Processing is row-parallel:
// grid is addressed as a flat, row-major array of width*height pixels.
//
// Map is pure (same inputs produce the same output for a given palette
// ordering) and parallelism-safe (no shared mutable state between rows).
func Map(grid []Pixel, width, height int, table *color.LabTable, method color.Method) []Pixel {
	out := make([]Pixel, len(grid))

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > height {
		workers = height
	}
	if workers == 0 {
		return out
	}
	rowsPerWorker := (height + workers - 1) / workers
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
				for x := 0; x < width; x++ {
					i := y*width + x
					p := grid[i]
					if p.Transparent {
						out[i] = p
						continue
					}
					nearest, err := color.NearestInTable(p.Rgb, *table, method)
					if err != nil {
						out[i] = p
						continue
					}
					out[i] = Pixel{Rgb: nearest}
				}
			}
			done <- struct{}{}
		}(y0, y1)
	}
	for worker := 0; worker < workers; worker++ {
		<-done
	}
	return out
}
