// Package lithophane is the orchestrator: it validates a Config, drives
// the resize/quantize/synthesize/curve pipeline, and assembles the final
// set of named meshes ready for archive.WriteZip.
package lithophane

import (
	"fmt"
	"strings"

	"github.com/kallisti-lab/lithophane/pkg/archive"
	"github.com/kallisti-lab/lithophane/pkg/color"
	"github.com/kallisti-lab/lithophane/pkg/geometry"
	"github.com/kallisti-lab/lithophane/pkg/ingest"
	"github.com/kallisti-lab/lithophane/pkg/lerr"
	"github.com/kallisti-lab/lithophane/pkg/palette"
	"github.com/kallisti-lab/lithophane/pkg/quantize"
	"github.com/kallisti-lab/lithophane/pkg/synth"
	"github.com/kallisti-lab/lithophane/pkg/texture"
)

// Run executes the full state machine: validate, size, color pipeline,
// texture pipeline, mesh emission, curve transform. img is the decoded
// source image at its native resolution.
func Run(cfg Config, pal *palette.Palette, img []quantize.Pixel, srcW, srcH int) ([]archive.Entry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	widthMM, heightMM := effectiveSize(cfg, srcW, srcH)

	var entries []archive.Entry

	if cfg.ColorLayer {
		colorEntries, err := runColorPipeline(cfg, pal, img, srcW, srcH, widthMM, heightMM)
		if err != nil {
			return nil, err
		}
		entries = append(entries, colorEntries...)
	}

	if cfg.TextureLayer {
		textureEntry, err := runTexturePipeline(cfg, img, srcW, srcH, widthMM, heightMM)
		if err != nil {
			return nil, err
		}
		entries = append(entries, textureEntry)
	}

	if cfg.Curve > 0 {
		for i := range entries {
			entries[i].Mesh = entries[i].Mesh.ApplyCurve(cfg.Curve, widthMM)
		}
	}

	return entries, nil
}

// effectiveSize derives the physical output dimensions: an explicit
// dimension wins, a zero dimension is derived from the other via the
// source image's aspect ratio, and both-zero derives from image pixels
// at color-pixel scale so color and texture layers cover the same area.
func effectiveSize(cfg Config, srcW, srcH int) (widthMM, heightMM float64) {
	widthMM, heightMM = cfg.DestWidthMM, cfg.DestHeightMM
	switch {
	case widthMM == 0 && heightMM == 0:
		widthMM = float64(srcW) * cfg.ColorPixelWidth
		heightMM = float64(srcH) * cfg.ColorPixelWidth
	case widthMM == 0:
		widthMM = heightMM * float64(srcW) / float64(srcH)
	case heightMM == 0:
		heightMM = widthMM * float64(srcH) / float64(srcW)
	}
	return widthMM, heightMM
}

func runColorPipeline(cfg Config, pal *palette.Palette, img []quantize.Pixel, srcW, srcH int, widthMM, heightMM float64) ([]archive.Entry, error) {
	dstW := int(widthMM / cfg.ColorPixelWidth)
	dstH := int(heightMM / cfg.ColorPixelWidth)
	if dstW <= 0 || dstH <= 0 {
		return nil, lerr.New(lerr.ImageProcess, "color pipeline: resized dimensions are zero (%dx%d)", dstW, dstH)
	}

	grid := ingest.Resize(img, srcW, srcH, dstW, dstH)

	table := color.NewLabTable(pal.Colors())
	quantized := quantize.Map(grid, dstW, dstH, &table, cfg.ColorDistanceMethod)
	quantized = ingest.FlipVertical(quantized, dstW, dstH)

	hasTransparency := false
	for _, p := range quantized {
		if p.Transparent {
			hasTransparency = true
			break
		}
	}

	synthCfg := synth.Config{PixelWidth: cfg.ColorPixelWidth, LayerThickness: cfg.ColorPixelLayerThickness}
	// The full stack is visible in every slot's file; the clip machinery
	// only narrows the window when a caller splits output by group.
	window := synth.Window{Offset: 0, Max: pal.LayerCount()}

	var entries []archive.Entry

	if !hasTransparency && cfg.PlateThickness > 0 {
		plate := geometry.Box(float64(dstW)*cfg.ColorPixelWidth, float64(dstH)*cfg.ColorPixelWidth, cfg.PlateThickness, geometry.Vector3{
			X: float64(dstW) * cfg.ColorPixelWidth / 2,
			Y: float64(dstH) * cfg.ColorPixelWidth / 2,
			Z: -cfg.PlateThickness / 2,
		})
		entries = append(entries, archive.Entry{Name: "layer-plate", Mesh: plate})
	}

	for slotIdx, slot := range pal.SlotAssignments() {
		mesh := synth.Synthesize(quantized, dstW, dstH, pal, slot, window, synthCfg)
		entries = append(entries, archive.Entry{Name: slotName(pal, slot, slotIdx), Mesh: mesh})
	}

	return entries, nil
}

// slotName joins the display names of every filament a slot carries
// ("layer-Red+Blue"), falling back to the 1-based slot index when no
// filament in the slot has a registered name.
func slotName(pal *palette.Palette, slot []string, slotIdx int) string {
	var names []string
	for _, hex := range slot {
		if name, ok := pal.ColorName(hex); ok && name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("layer-%d", slotIdx+1)
	}
	return "layer-" + strings.Join(names, "+")
}

func runTexturePipeline(cfg Config, img []quantize.Pixel, srcW, srcH int, widthMM, heightMM float64) (archive.Entry, error) {
	dstW := int(widthMM / cfg.TexturePixelWidth)
	dstH := int(heightMM / cfg.TexturePixelWidth)
	if dstW <= 0 || dstH <= 0 {
		return archive.Entry{}, lerr.New(lerr.ImageProcess, "texture pipeline: resized dimensions are zero (%dx%d)", dstW, dstH)
	}

	grid := ingest.Resize(img, srcW, srcH, dstW, dstH)
	gray := ingest.ToGrayscale(grid)
	flipped := ingest.FlipVerticalRgb(gray, dstW, dstH)

	texCfg := texture.Config{
		PixelWidth:   cfg.TexturePixelWidth,
		MinThickness: cfg.TextureMinThickness,
		MaxThickness: cfg.TextureMaxThickness,
	}
	mesh := texture.Synthesize(flipped, dstW, dstH, texCfg)
	return archive.Entry{Name: "layer-texture", Mesh: mesh}, nil
}
