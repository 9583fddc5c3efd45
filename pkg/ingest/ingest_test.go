package ingest

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	lcolor "github.com/kallisti-lab/lithophane/pkg/color"
	"github.com/kallisti-lab/lithophane/pkg/quantize"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeTwoPixelPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	grid, w, h, err := Decode(bytes.NewReader(encodePNG(t, src)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if w != 2 || h != 1 {
		t.Fatalf("expected 2x1, got %dx%d", w, h)
	}
	if grid[0].Rgb != (lcolor.Rgb{R: 255}) {
		t.Fatalf("expected red at 0, got %+v", grid[0].Rgb)
	}
	if grid[1].Rgb != (lcolor.Rgb{R: 255, G: 255, B: 255}) {
		t.Fatalf("expected white at 1, got %+v", grid[1].Rgb)
	}
}

func TestDecodeTransparentPixel(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.Set(0, 0, color.NRGBA{})

	grid, _, _, err := Decode(bytes.NewReader(encodePNG(t, src)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !grid[0].Transparent {
		t.Fatal("expected fully transparent pixel to be marked Transparent")
	}
}

func TestFlipVertical(t *testing.T) {
	grid := []quantize.Pixel{
		{Rgb: lcolor.Rgb{R: 1}}, {Rgb: lcolor.Rgb{R: 2}},
		{Rgb: lcolor.Rgb{R: 3}}, {Rgb: lcolor.Rgb{R: 4}},
	}
	flipped := FlipVertical(grid, 2, 2)
	if flipped[0].Rgb.R != 3 || flipped[1].Rgb.R != 4 || flipped[2].Rgb.R != 1 || flipped[3].Rgb.R != 2 {
		t.Fatalf("unexpected flip result: %+v", flipped)
	}
}

func TestToGrayscaleMidGray(t *testing.T) {
	grid := []quantize.Pixel{{Rgb: lcolor.Rgb{R: 128, G: 128, B: 128}}}
	gray := ToGrayscale(grid)
	if gray[0].R != gray[0].G || gray[0].G != gray[0].B {
		t.Fatalf("expected neutral gray, got %+v", gray[0])
	}
}

func TestNRGBARoundTrip(t *testing.T) {
	grid := []quantize.Pixel{
		{Rgb: lcolor.Rgb{R: 10, G: 20, B: 30}},
		{Transparent: true},
	}
	img := ToNRGBA(grid, 2, 1)
	back := FromNRGBA(img)
	if back[0].Rgb != grid[0].Rgb {
		t.Fatalf("expected round-trip rgb, got %+v", back[0].Rgb)
	}
	if !back[1].Transparent {
		t.Fatal("expected round-tripped transparency")
	}
}

func TestPreScaleBoundsLargeSources(t *testing.T) {
	grid := make([]quantize.Pixel, 40*10)
	out, w, h := PreScale(grid, 40, 10, 20)
	if w != 20 || h != 5 {
		t.Fatalf("expected 20x5 after prescale, got %dx%d", w, h)
	}
	if len(out) != 20*5 {
		t.Fatalf("expected %d pixels, got %d", 20*5, len(out))
	}
}

func TestPreScaleNoOpWithinBounds(t *testing.T) {
	grid := []quantize.Pixel{{Rgb: lcolor.Rgb{R: 9}}}
	out, w, h := PreScale(grid, 1, 1, 100)
	if w != 1 || h != 1 || out[0].Rgb.R != 9 {
		t.Fatalf("expected untouched grid, got %dx%d %+v", w, h, out[0])
	}
	out, w, h = PreScale(grid, 1, 1, 0)
	if w != 1 || h != 1 {
		t.Fatalf("expected maxPx=0 to disable prescaling, got %dx%d", w, h)
	}
	_ = out
}

func TestResizePreservesSolidColor(t *testing.T) {
	grid := make([]quantize.Pixel, 16*16)
	for i := range grid {
		grid[i] = quantize.Pixel{Rgb: lcolor.Rgb{R: 200, G: 40, B: 90}}
	}
	out := Resize(grid, 16, 16, 4, 4)
	if len(out) != 16 {
		t.Fatalf("expected 4x4 output, got %d pixels", len(out))
	}
	for i, p := range out {
		if p.Rgb != (lcolor.Rgb{R: 200, G: 40, B: 90}) {
			t.Fatalf("expected solid color to survive resizing at %d, got %+v", i, p.Rgb)
		}
		if p.Transparent {
			t.Fatalf("expected opaque output at %d", i)
		}
	}
}

func TestResizeCarriesTransparency(t *testing.T) {
	grid := make([]quantize.Pixel, 4)
	for i := range grid {
		grid[i] = quantize.Pixel{Transparent: true}
	}
	out := Resize(grid, 2, 2, 1, 1)
	if !out[0].Transparent {
		t.Fatal("expected fully transparent source to stay transparent")
	}
}
