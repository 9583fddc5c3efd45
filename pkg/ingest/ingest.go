// Package ingest is the boundary adapter between arbitrary image files and
// the core's pixel-grid types. It owns every stdlib image codec import so
// the rest of the module never touches image.Image directly.
package ingest

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/kallisti-lab/lithophane/pkg/color"
	"github.com/kallisti-lab/lithophane/pkg/lerr"
	"github.com/kallisti-lab/lithophane/pkg/quantize"
)

// alphaTransparentThreshold is the alpha value (out of 255) at or below
// which a pixel is treated as fully transparent for moat and plate
// purposes; source images with partial transparency are binarized here
// rather than carrying fractional alpha through the synthesizer.
const alphaTransparentThreshold = 0

// Decode reads any registered image format (PNG, JPEG, GIF, WebP) and
// returns it as a row-major width*height grid of quantize.Pixel.
func Decode(r io.Reader) ([]quantize.Pixel, int, int, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, 0, 0, lerr.Wrap(lerr.ImageProcess, err)
	}
	return Flatten(img), img.Bounds().Dx(), img.Bounds().Dy(), nil
}

// Flatten converts any image.Image into a row-major width*height grid of
// quantize.Pixel, relative to img's own bounds.
func Flatten(img image.Image) []quantize.Pixel {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]quantize.Pixel, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out[y*w+x] = quantize.Pixel{
				Rgb:         color.Rgb{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)},
				Transparent: uint8(a>>8) <= alphaTransparentThreshold,
			}
		}
	}
	return out
}

// ToNRGBA renders grid as a standard library image, so it can be handed
// to an image/draw- or resampling-based resizer. Transparent pixels get
// alpha 0; everything else gets full opacity.
func ToNRGBA(grid []quantize.Pixel, width, height int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := grid[y*width+x]
			i := out.PixOffset(x, y)
			a := uint8(255)
			if p.Transparent {
				a = 0
			}
			out.Pix[i+0] = p.Rgb.R
			out.Pix[i+1] = p.Rgb.G
			out.Pix[i+2] = p.Rgb.B
			out.Pix[i+3] = a
		}
	}
	return out
}

// FromNRGBA is ToNRGBA's inverse.
func FromNRGBA(img *image.NRGBA) []quantize.Pixel {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]quantize.Pixel, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			out[y*w+x] = quantize.Pixel{
				Rgb:         color.Rgb{R: img.Pix[i+0], G: img.Pix[i+1], B: img.Pix[i+2]},
				Transparent: img.Pix[i+3] <= alphaTransparentThreshold,
			}
		}
	}
	return out
}

// Resize resamples grid to dstW x dstH with the Catmull-Rom kernel,
// carrying transparency through the alpha channel. This is the single
// resize path for both the color and texture grids.
func Resize(grid []quantize.Pixel, width, height, dstW, dstH int) []quantize.Pixel {
	src := ToNRGBA(grid, width, height)
	dst := image.NewNRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return FromNRGBA(dst)
}

// PreScale downsamples grid so that neither dimension exceeds maxPx,
// preserving aspect ratio. The orchestrator's own resize still runs
// afterward; this is only a convenience for very large sources, so that the
// expensive per-pixel stages never see more pixels than the output grid can
// use. A grid already within bounds is returned unchanged.
func PreScale(grid []quantize.Pixel, width, height, maxPx int) ([]quantize.Pixel, int, int) {
	if maxPx <= 0 || (width <= maxPx && height <= maxPx) {
		return grid, width, height
	}
	dstW, dstH := width, height
	if width >= height {
		dstW = maxPx
		dstH = height * maxPx / width
	} else {
		dstH = maxPx
		dstW = width * maxPx / height
	}
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}
	return Resize(grid, width, height, dstW, dstH), dstW, dstH
}

// FlipVertical reverses row order, matching the 3D-print orientation
// convention (image row 0 is "top" on screen but must become the far
// edge of the print).
func FlipVertical(grid []quantize.Pixel, width, height int) []quantize.Pixel {
	out := make([]quantize.Pixel, len(grid))
	for y := 0; y < height; y++ {
		src := y * width
		dst := (height - 1 - y) * width
		copy(out[dst:dst+width], grid[src:src+width])
	}
	return out
}

// FlipVerticalRgb is FlipVertical for plain Rgb grids.
func FlipVerticalRgb(grid []color.Rgb, width, height int) []color.Rgb {
	out := make([]color.Rgb, len(grid))
	for y := 0; y < height; y++ {
		src := y * width
		dst := (height - 1 - y) * width
		copy(out[dst:dst+width], grid[src:src+width])
	}
	return out
}

// ToGrayscale converts each pixel to a neutral Rgb whose channels all
// equal the BT.709 luma 0.2126 R + 0.7152 G + 0.0722 B, which the texture
// synthesizer reads back out via Cmyk.K.
func ToGrayscale(grid []quantize.Pixel) []color.Rgb {
	out := make([]color.Rgb, len(grid))
	for i, p := range grid {
		luma := 0.2126*float64(p.Rgb.R) + 0.7152*float64(p.Rgb.G) + 0.0722*float64(p.Rgb.B)
		v := uint8(luma + 0.5)
		out[i] = color.Rgb{R: v, G: v, B: v}
	}
	return out
}
