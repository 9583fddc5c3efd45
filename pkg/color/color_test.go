package color

import (
	"errors"
	"math"
	"testing"

	"github.com/kallisti-lab/lithophane/pkg/lerr"
)

func TestLabBlackAndWhite(t *testing.T) {
	black := Rgb{0, 0, 0}.Lab()
	if black.L > 0.001 {
		t.Fatalf("expected black L near 0, got %v", black.L)
	}
	white := Rgb{255, 255, 255}.Lab()
	if math.Abs(white.L-100) > 0.1 {
		t.Fatalf("expected white L near 100, got %v", white.L)
	}
}

func TestCmykRoundTrip(t *testing.T) {
	cases := []Rgb{
		{255, 0, 0},
		{0, 255, 0},
		{0, 0, 255},
		{128, 64, 32},
		{255, 255, 255},
		{0, 0, 0},
		{17, 201, 99},
	}
	for _, rgb := range cases {
		got := rgb.Cmyk().Rgb()
		if absDiff(got.R, rgb.R) > 1 || absDiff(got.G, rgb.G) > 1 || absDiff(got.B, rgb.B) > 1 {
			t.Fatalf("round trip mismatch for %v: got %v", rgb, got)
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestHslRoundTrip(t *testing.T) {
	cases := []Rgb{{255, 0, 0}, {10, 200, 30}, {128, 128, 128}, {0, 0, 0}, {255, 255, 255}}
	for _, rgb := range cases {
		got := rgb.Hsl().Rgb()
		if absDiff(got.R, rgb.R) > 1 || absDiff(got.G, rgb.G) > 1 || absDiff(got.B, rgb.B) > 1 {
			t.Fatalf("hsl round trip mismatch for %v: got %v", rgb, got)
		}
	}
}

func TestDeltaE76Properties(t *testing.T) {
	a := Rgb{255, 0, 0}.Lab()
	b := Rgb{0, 255, 0}.Lab()
	c := Rgb{0, 0, 255}.Lab()

	if DeltaE76(a, a) != 0 {
		t.Fatalf("expected zero self-distance")
	}
	if DeltaE76(a, b) != DeltaE76(b, a) {
		t.Fatalf("expected symmetric distance")
	}
	if DeltaE76(a, b) < 0 {
		t.Fatalf("expected non-negative distance")
	}
	// triangle inequality
	if DeltaE76(a, c) > DeltaE76(a, b)+DeltaE76(b, c)+1e-9 {
		t.Fatalf("triangle inequality violated")
	}
}

func TestNearestTiesBreakFirst(t *testing.T) {
	candidates := []Rgb{{100, 100, 100}, {100, 100, 100}, {200, 200, 200}}
	got, err := Nearest(Rgb{100, 100, 100}, candidates, CieLabMethod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != candidates[0] {
		t.Fatalf("expected first match to win tie, got %v", got)
	}
}

func TestNearestEmptyPalette(t *testing.T) {
	_, err := Nearest(Rgb{0, 0, 0}, nil, CieLabMethod)
	var lerrErr *lerr.Error
	if !errors.As(err, &lerrErr) || lerrErr.Kind != lerr.InvalidPalette {
		t.Fatalf("expected InvalidPalette error, got %v", err)
	}
}

func TestCanonicalHex(t *testing.T) {
	got, err := CanonicalHex("#ff00aa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "#FF00AA" {
		t.Fatalf("expected canonical uppercase, got %s", got)
	}
	if _, err := CanonicalHex("not-a-hex"); err == nil {
		t.Fatalf("expected error for invalid hex")
	}
}

func TestParseHexAndBack(t *testing.T) {
	rgb, err := ParseHex("#1a2b3c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rgb.Hex() != "#1A2B3C" {
		t.Fatalf("expected #1A2B3C, got %s", rgb.Hex())
	}
}
