package quantize

import (
	"math/rand"
	"testing"

	"github.com/kallisti-lab/lithophane/pkg/color"
)

func TestMapPreservesLengthAndTransparency(t *testing.T) {
	palette := []color.Rgb{{R: 255}, {G: 255}, {B: 255}}
	table := color.NewLabTable(palette)

	grid := []Pixel{
		{Rgb: color.Rgb{R: 250, G: 5, B: 5}},
		{Transparent: true},
		{Rgb: color.Rgb{G: 250}},
	}
	out := Map(grid, 3, 1, &table, color.CieLabMethod)

	if len(out) != len(grid) {
		t.Fatalf("expected output length %d, got %d", len(grid), len(out))
	}
	if !out[1].Transparent {
		t.Fatal("expected transparent pixel to remain transparent")
	}
	if out[0].Rgb != (color.Rgb{R: 255}) {
		t.Fatalf("expected nearest red, got %+v", out[0].Rgb)
	}
	if out[2].Rgb != (color.Rgb{G: 255}) {
		t.Fatalf("expected nearest green, got %+v", out[2].Rgb)
	}
}

func TestMapIsPure(t *testing.T) {
	palette := []color.Rgb{{R: 255}, {B: 255}}
	table := color.NewLabTable(palette)
	grid := []Pixel{{Rgb: color.Rgb{R: 200, G: 10, B: 200}}}

	a := Map(grid, 1, 1, &table, color.RgbMethod)
	b := Map(grid, 1, 1, &table, color.RgbMethod)
	if a[0].Rgb != b[0].Rgb {
		t.Fatal("expected deterministic output for identical inputs")
	}
}

func BenchmarkMap512x512(b *testing.B) {
	rand.Seed(42)
	palette := make([]color.Rgb, 32)
	for i := range palette {
		palette[i] = color.Rgb{R: uint8(rand.Intn(256)), G: uint8(rand.Intn(256)), B: uint8(rand.Intn(256))}
	}
	table := color.NewLabTable(palette)

	w, h := 512, 512
	grid := make([]Pixel, w*h)
	for i := range grid {
		grid[i] = Pixel{Rgb: color.Rgb{R: uint8(rand.Intn(256)), G: uint8(rand.Intn(256)), B: uint8(rand.Intn(256))}}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Map(grid, w, h, &table, color.CieLabMethod)
	}
}
