package palette

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/blang/semver"

	"github.com/kallisti-lab/lithophane/pkg/color"
	"github.com/kallisti-lab/lithophane/pkg/lerr"
)

// maxSupportedSchemaMajor is the highest palette JSON schema major version
// this loader understands. A palette declaring a newer major version is
// rejected rather than silently misread.
const maxSupportedSchemaMajor = 1

// PixelCreationMethod selects how a palette entry's layers become a
// ColorLayer set: additive mixing (requires white) or full single-layer
// color (no mixing, one ColorLayer per active hex code).
type PixelCreationMethod int

const (
	Additive PixelCreationMethod = iota
	Full
)

// LoaderConfig parameterizes Load: how many layers make up one slot
// group's height budget, the creation method, the AMS slot quota, and the
// quantization distance method. Load does not read DistanceMethod and the
// returned Palette does not store it.
type LoaderConfig struct {
	NbLayers       int
	Method         PixelCreationMethod
	ColorNumber    int
	DistanceMethod color.Method
}

// layerDef is the untagged JSON shape of one palette layer entry: either
// measured HSL or a hex code the loader resolves to HSL itself.
type layerDef struct {
	H       *float64 `json:"H,omitempty"`
	S       *float64 `json:"S,omitempty"`
	L       *float64 `json:"L,omitempty"`
	Hexcode string   `json:"hexcode,omitempty"`
}

func (d layerDef) rgb() (color.Rgb, error) {
	if d.Hexcode != "" {
		return color.ParseHex(d.Hexcode)
	}
	if d.H == nil || d.S == nil || d.L == nil {
		return color.Rgb{}, lerr.New(lerr.InvalidPalette, "palette: layer entry has neither hexcode nor complete H/S/L")
	}
	return color.Hsl{H: *d.H, S: *d.S, L: *d.L}.Rgb(), nil
}

// colorEntry is one top-level value in the palette JSON object.
type colorEntry struct {
	Name   string              `json:"name"`
	Active *bool               `json:"active,omitempty"`
	Layers map[string]layerDef `json:"layers,omitempty"`
}

func (e colorEntry) isActive() bool {
	return e.Active == nil || *e.Active
}

// Load reads a palette JSON file from path, builds every ColorLayer,
// partitions them into slot groups, and returns the fully combined and
// optimized Palette.
func Load(path string, cfg LoaderConfig) (*Palette, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, lerr.Wrap(lerr.InvalidPalette, fmt.Errorf("palette: reading %s: %w", path, err))
	}

	var rawEntries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &rawEntries); err != nil {
		return nil, lerr.Wrap(lerr.InvalidPalette, fmt.Errorf("palette: parsing %s: %w", path, err))
	}

	if schemaRaw, ok := rawEntries["schema_version"]; ok {
		var schemaStr string
		if err := json.Unmarshal(schemaRaw, &schemaStr); err != nil {
			return nil, lerr.New(lerr.Config, "palette: schema_version must be a string, got %s", schemaRaw)
		}
		version, err := semver.Parse(schemaStr)
		if err != nil {
			return nil, lerr.Wrap(lerr.Config, fmt.Errorf("palette: invalid schema_version %q: %w", schemaStr, err))
		}
		if version.Major > maxSupportedSchemaMajor {
			return nil, lerr.New(lerr.Config, "palette: schema_version %s is newer than the supported major version %d", schemaStr, maxSupportedSchemaMajor)
		}
		delete(rawEntries, "schema_version")
	}

	data := make(map[string]colorEntry, len(rawEntries))
	for hex, entryRaw := range rawEntries {
		var entry colorEntry
		if err := json.Unmarshal(entryRaw, &entry); err != nil {
			return nil, lerr.Wrap(lerr.InvalidPalette, fmt.Errorf("palette: parsing entry %q in %s: %w", hex, path, err))
		}
		data[hex] = entry
	}

	hexNames := make(map[string]string, len(data))
	var activeHexes []string
	for hex, entry := range data {
		canon, err := color.CanonicalHex(hex)
		if err != nil {
			return nil, err
		}
		hexNames[canon] = entry.Name
		if entry.isActive() && entry.Layers != nil {
			activeHexes = append(activeHexes, canon)
		}
	}

	if cfg.Method == Additive && !containsHex(activeHexes, whiteHex) {
		return nil, lerr.New(lerr.InvalidPalette, "palette: %q not found; mandatory in additive mode", whiteHex)
	}

	layers, err := buildColorLayers(data, cfg)
	if err != nil {
		return nil, err
	}
	if len(layers) == 0 {
		return nil, lerr.New(lerr.InvalidPalette, "palette: no active color layers")
	}
	SortByDarknessDescending(layers)

	nonWhite := make([]string, 0, len(activeHexes))
	for _, hex := range activeHexes {
		if !IsWhite(hex) {
			nonWhite = append(nonWhite, hex)
		}
	}
	groups, nbColorPool := BuildGroups(nonWhite, cfg.ColorNumber, cfg.Method == Additive)

	p := BuildPalette(layers, groups, cfg.NbLayers, nbColorPool)
	if p.ColorCount() == 0 {
		return nil, lerr.New(lerr.InvalidPalette, "palette: generated combination set is empty")
	}
	p.SetHexNames(hexNames)
	return p, nil
}

func buildColorLayers(data map[string]colorEntry, cfg LoaderConfig) ([]ColorLayer, error) {
	var out []ColorLayer
	for hex, entry := range data {
		if !entry.isActive() {
			continue
		}
		canon, err := color.CanonicalHex(hex)
		if err != nil {
			return nil, err
		}

		switch cfg.Method {
		case Full:
			rgb, err := color.ParseHex(hex)
			if err != nil {
				return nil, err
			}
			layer, err := NewColorLayer(canon, cfg.NbLayers, rgb)
			if err != nil {
				return nil, err
			}
			out = append(out, layer)
		default:
			for key, def := range entry.Layers {
				count, err := strconv.Atoi(key)
				if err != nil || count <= 0 {
					return nil, lerr.New(lerr.InvalidPalette, "palette: invalid layer count key %q for %s", key, canon)
				}
				rgb, err := def.rgb()
				if err != nil {
					return nil, err
				}
				layer, err := NewColorLayer(canon, count, rgb)
				if err != nil {
					return nil, err
				}
				out = append(out, layer)
			}
		}
	}
	return out, nil
}

func containsHex(hexes []string, target string) bool {
	for _, h := range hexes {
		if h == target {
			return true
		}
	}
	return false
}
