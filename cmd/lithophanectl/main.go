// Command lithophanectl converts a raster image into a ZIP of per-filament
// STL meshes for multi-material color printing.
//
// Usage:
//
//	lithophanectl gen [options] <input-image>    image → <out>.zip of STL meshes
//	lithophanectl calibrate [options]            emit the filament calibration pattern
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/kallisti-lab/lithophane/pkg/archive"
	"github.com/kallisti-lab/lithophane/pkg/calibration"
	"github.com/kallisti-lab/lithophane/pkg/color"
	"github.com/kallisti-lab/lithophane/pkg/ingest"
	"github.com/kallisti-lab/lithophane/pkg/lithophane"
	"github.com/kallisti-lab/lithophane/pkg/palette"
	"github.com/kallisti-lab/lithophane/pkg/stl"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "gen":
		err = runGen(os.Args[2:])
	case "calibrate":
		err = runCalibrate(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "lithophanectl: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "lithophanectl: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  lithophanectl gen [options] <input-image>    Convert an image to per-filament STL meshes
  lithophanectl calibrate [options]            Emit the filament calibration pattern

Run "lithophanectl <command> -h" for command-specific options.
`)
}

// commonFlags holds the flags shared between gen and calibrate.
type commonFlags struct {
	palettePath string
	outPath     string
	binary      bool
}

func registerCommon(fs *flag.FlagSet, c *commonFlags) {
	fs.StringVar(&c.palettePath, "palette", "palette.json", "palette JSON file")
	fs.StringVar(&c.outPath, "o", "out.zip", "output ZIP path")
	fs.BoolVar(&c.binary, "binary", false, "write binary STL instead of ASCII")
}

func (c commonFlags) format() stl.Format {
	if c.binary {
		return stl.Binary
	}
	return stl.ASCII
}

func runGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	var common commonFlags
	registerCommon(fs, &common)

	cfg := lithophane.DefaultConfig()
	fs.Float64Var(&cfg.DestWidthMM, "width", cfg.DestWidthMM, "target width in mm (0 = derive)")
	fs.Float64Var(&cfg.DestHeightMM, "height", cfg.DestHeightMM, "target height in mm (0 = derive)")
	fs.Float64Var(&cfg.ColorPixelWidth, "pixel-width", cfg.ColorPixelWidth, "mm per color pixel")
	fs.Float64Var(&cfg.ColorPixelLayerThickness, "layer-thickness", cfg.ColorPixelLayerThickness, "mm per printed layer")
	fs.IntVar(&cfg.ColorPixelLayerNumber, "layers", cfg.ColorPixelLayerNumber, "printed layers per filament slot group")
	fs.Float64Var(&cfg.TexturePixelWidth, "texture-pixel-width", cfg.TexturePixelWidth, "mm per texture sample")
	fs.Float64Var(&cfg.TextureMinThickness, "texture-min", cfg.TextureMinThickness, "relief minimum thickness in mm")
	fs.Float64Var(&cfg.TextureMaxThickness, "texture-max", cfg.TextureMaxThickness, "relief maximum thickness in mm")
	fs.Float64Var(&cfg.PlateThickness, "plate", cfg.PlateThickness, "support plate thickness in mm")
	fs.Float64Var(&cfg.Curve, "curve", cfg.Curve, "cylindrical wrap angle in degrees, 0..360")
	fs.IntVar(&cfg.ColorNumber, "color-number", cfg.ColorNumber, "filament slots per group, 0 = single group")
	noColor := fs.Bool("no-color", false, "skip the color-layer pipeline")
	noTexture := fs.Bool("no-texture", false, "skip the texture pipeline")
	method := fs.String("method", "additive", "pixel creation method: additive or full")
	distance := fs.String("distance", "cielab", "color distance method: cielab or rgb")
	maxSrcPx := fs.Int("max-src-px", 0, "downscale sources larger than this many pixels per side before processing (0 = off)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("gen: expected exactly one input image")
	}

	cfg.ColorLayer = !*noColor
	cfg.TextureLayer = !*noTexture

	switch strings.ToLower(*method) {
	case "additive":
		cfg.PixelCreationMethod = palette.Additive
	case "full":
		cfg.PixelCreationMethod = palette.Full
	default:
		return fmt.Errorf("gen: unknown method %q, expected additive or full", *method)
	}
	switch strings.ToLower(*distance) {
	case "cielab":
		cfg.ColorDistanceMethod = color.CieLabMethod
	case "rgb":
		cfg.ColorDistanceMethod = color.RgbMethod
	default:
		return fmt.Errorf("gen: unknown distance method %q, expected cielab or rgb", *distance)
	}

	cfg, err := lithophane.LoadEnvOverrides(cfg)
	if err != nil {
		return err
	}

	pal, err := palette.Load(common.palettePath, palette.LoaderConfig{
		NbLayers:       cfg.ColorPixelLayerNumber,
		Method:         cfg.PixelCreationMethod,
		ColorNumber:    cfg.ColorNumber,
		DistanceMethod: cfg.ColorDistanceMethod,
	})
	if err != nil {
		return err
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("gen: opening %s: %w", fs.Arg(0), err)
	}
	defer in.Close()

	grid, srcW, srcH, err := ingest.Decode(in)
	if err != nil {
		return fmt.Errorf("gen: decoding %s: %w", fs.Arg(0), err)
	}
	grid, srcW, srcH = ingest.PreScale(grid, srcW, srcH, *maxSrcPx)

	entries, err := lithophane.Run(cfg, pal, grid, srcW, srcH)
	if err != nil {
		return err
	}

	return writeArchive(common.outPath, entries, common.format())
}

func runCalibrate(args []string) error {
	fs := flag.NewFlagSet("calibrate", flag.ExitOnError)
	var common commonFlags
	registerCommon(fs, &common)
	nbLayers := fs.Int("layers", 5, "printed layers per filament slot group")
	layerThickness := fs.Float64("layer-thickness", 0.1, "mm per printed layer")
	plateThickness := fs.Float64("plate", 0.2, "base plate thickness in mm")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pal, err := palette.Load(common.palettePath, palette.LoaderConfig{
		NbLayers: *nbLayers,
		Method:   palette.Additive,
	})
	if err != nil {
		return err
	}

	meshes := calibration.Build(activeFilaments(pal), pal.NbLayersPerGroup(), *layerThickness, *plateThickness)
	entries := make([]archive.Entry, len(meshes))
	for i, m := range meshes {
		entries[i] = archive.Entry{Name: m.Name, Mesh: m.Mesh}
	}
	return writeArchive(common.outPath, entries, common.format())
}

// activeFilaments flattens the palette's slot groups back into the unique
// set of active filaments, named for calibration labeling.
func activeFilaments(pal *palette.Palette) []calibration.Filament {
	seen := make(map[string]bool)
	var out []calibration.Filament
	for _, group := range pal.HexGroups() {
		for _, hex := range group {
			if seen[hex] {
				continue
			}
			seen[hex] = true
			name, ok := pal.ColorName(hex)
			if !ok || name == "" {
				name = hex
			}
			out = append(out, calibration.Filament{Hex: hex, Name: name})
		}
	}
	return out
}

func writeArchive(path string, entries []archive.Entry, format stl.Format) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := archive.WriteZip(out, entries, format); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %d meshes to %s\n", len(entries), path)
	return nil
}
