package lithophane

import (
	"github.com/kallisti-lab/lithophane/pkg/color"
	"github.com/kallisti-lab/lithophane/pkg/lerr"
	"github.com/kallisti-lab/lithophane/pkg/palette"
)

// Config mirrors every external knob the orchestrator state machine reads.
// Zero-value fields are filled in by DefaultConfig, not by Validate.
type Config struct {
	DestWidthMM, DestHeightMM float64

	ColorPixelWidth          float64
	ColorPixelLayerThickness float64
	ColorPixelLayerNumber    int

	ColorLayer   bool
	TextureLayer bool

	TexturePixelWidth    float64
	TextureMinThickness  float64
	TextureMaxThickness  float64

	PlateThickness float64

	PixelCreationMethod palette.PixelCreationMethod
	ColorNumber         int
	ColorDistanceMethod color.Method

	Curve float64
}

// DefaultConfig returns the config the loader starts from before
// applying caller overrides.
func DefaultConfig() Config {
	return Config{
		ColorPixelWidth:          0.8,
		ColorPixelLayerThickness: 0.1,
		ColorPixelLayerNumber:    5,
		ColorLayer:               true,
		TextureLayer:             true,
		TexturePixelWidth:        0.25,
		TextureMinThickness:      0.3,
		TextureMaxThickness:      1.8,
		PlateThickness:           0.2,
		PixelCreationMethod:      palette.Additive,
		ColorDistanceMethod:      color.CieLabMethod,
	}
}

// Validate enforces numeric positivity, thickness ordering, curve bounds,
// and the at-least-one-pipeline invariant.
func (c Config) Validate() error {
	if c.ColorPixelWidth <= 0 {
		return lerr.New(lerr.Config, "color_pixel_width must be positive, got %v", c.ColorPixelWidth)
	}
	if c.ColorPixelLayerThickness <= 0 {
		return lerr.New(lerr.Config, "color_pixel_layer_thickness must be positive, got %v", c.ColorPixelLayerThickness)
	}
	if c.ColorPixelLayerNumber <= 0 {
		return lerr.New(lerr.Config, "color_pixel_layer_number must be positive, got %d", c.ColorPixelLayerNumber)
	}
	if c.TexturePixelWidth <= 0 {
		return lerr.New(lerr.Config, "texture_pixel_width must be positive, got %v", c.TexturePixelWidth)
	}
	if c.TextureMaxThickness <= c.TextureMinThickness {
		return lerr.New(lerr.Config, "texture_max_thickness (%v) must exceed texture_min_thickness (%v)", c.TextureMaxThickness, c.TextureMinThickness)
	}
	if c.PlateThickness < 0 {
		return lerr.New(lerr.Config, "plate_thickness must be non-negative, got %v", c.PlateThickness)
	}
	if c.DestWidthMM < 0 || c.DestHeightMM < 0 {
		return lerr.New(lerr.Config, "dest_width_mm and dest_height_mm must be non-negative")
	}
	if c.Curve < 0 || c.Curve > 360 {
		return lerr.New(lerr.Config, "curve must be within [0,360], got %v", c.Curve)
	}
	if !c.ColorLayer && !c.TextureLayer {
		return lerr.New(lerr.Config, "at least one of color_layer or texture_layer must be enabled")
	}
	return nil
}
