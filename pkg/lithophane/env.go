package lithophane

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/kallisti-lab/lithophane/pkg/lerr"
)

// LoadEnvOverrides loads a .env file (if present) via godotenv and applies
// any LITHOPHANE_* variables it or the ambient environment define on top of
// cfg. A missing .env file is not an error. Recognized variables:
//
//	LITHOPHANE_COLOR_PIXEL_WIDTH
//	LITHOPHANE_COLOR_PIXEL_LAYER_THICKNESS
//	LITHOPHANE_COLOR_PIXEL_LAYER_NUMBER
//	LITHOPHANE_TEXTURE_PIXEL_WIDTH
//	LITHOPHANE_PLATE_THICKNESS
//	LITHOPHANE_CURVE
//
// Unset variables leave the corresponding field untouched; a variable that
// fails to parse is reported as a Config error naming the variable.
func LoadEnvOverrides(cfg Config) (Config, error) {
	// Missing .env is expected; unreadable files are not distinguished.
	_ = godotenv.Load()

	var err error
	cfg.ColorPixelWidth, err = overrideFloat("LITHOPHANE_COLOR_PIXEL_WIDTH", cfg.ColorPixelWidth, err)
	cfg.ColorPixelLayerThickness, err = overrideFloat("LITHOPHANE_COLOR_PIXEL_LAYER_THICKNESS", cfg.ColorPixelLayerThickness, err)
	cfg.TexturePixelWidth, err = overrideFloat("LITHOPHANE_TEXTURE_PIXEL_WIDTH", cfg.TexturePixelWidth, err)
	cfg.PlateThickness, err = overrideFloat("LITHOPHANE_PLATE_THICKNESS", cfg.PlateThickness, err)
	cfg.Curve, err = overrideFloat("LITHOPHANE_CURVE", cfg.Curve, err)
	cfg.ColorPixelLayerNumber, err = overrideInt("LITHOPHANE_COLOR_PIXEL_LAYER_NUMBER", cfg.ColorPixelLayerNumber, err)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newEnvError(name, raw string, err error) error {
	return lerr.New(lerr.Config, "environment variable %s=%q: %v", name, raw, err)
}

func overrideFloat(name string, current float64, prevErr error) (float64, error) {
	if prevErr != nil {
		return current, prevErr
	}
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return current, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return current, newEnvError(name, raw, err)
	}
	return v, nil
}

func overrideInt(name string, current int, prevErr error) (int, error) {
	if prevErr != nil {
		return current, prevErr
	}
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return current, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return current, newEnvError(name, raw, err)
	}
	return v, nil
}
