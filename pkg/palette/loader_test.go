package palette

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kallisti-lab/lithophane/pkg/color"
)

func writePaletteFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

const simplePalette = `{
  "#FF0000": {"name": "Red", "layers": {"5": {"hexcode": "#FF0000"}}},
  "#FFFFFF": {"name": "White", "layers": {"5": {"hexcode": "#FFFFFF"}}}
}`

func TestLoadSimplePalette(t *testing.T) {
	path := writePaletteFile(t, simplePalette)
	p, err := Load(path, LoaderConfig{NbLayers: 5, Method: Additive, DistanceMethod: color.CieLabMethod})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.ColorCount() == 0 {
		t.Fatal("expected at least one combi")
	}
	if name, ok := p.ColorName("#FF0000"); !ok || name != "Red" {
		t.Fatalf("expected name Red, got %q ok=%v", name, ok)
	}
}

func TestLoadRejectsMissingWhiteInAdditiveMode(t *testing.T) {
	body := `{"#FF0000": {"name": "Red", "layers": {"5": {"hexcode": "#FF0000"}}}}`
	path := writePaletteFile(t, body)
	_, err := Load(path, LoaderConfig{NbLayers: 5, Method: Additive})
	if err == nil {
		t.Fatal("expected error for missing #FFFFFF in additive mode")
	}
}

func TestLoadIgnoresInactiveAndLayerlessEntries(t *testing.T) {
	body := `{
    "#FF0000": {"name": "Red", "active": false, "layers": {"5": {"hexcode": "#FF0000"}}},
    "#00FF00": {"name": "Green"},
    "#FFFFFF": {"name": "White", "layers": {"5": {"hexcode": "#FFFFFF"}}}
  }`
	path := writePaletteFile(t, body)
	p, err := Load(path, LoaderConfig{NbLayers: 5, Method: Additive})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, hex := range p.HexGroups() {
		for _, h := range hex {
			if h == "#FF0000" || h == "#00FF00" {
				t.Fatalf("inactive/layerless entry leaked into groups: %v", hex)
			}
		}
	}
}

func TestLoadRejectsBadLayerKey(t *testing.T) {
	body := `{
    "#FF0000": {"name": "Red", "layers": {"x": {"hexcode": "#FF0000"}}},
    "#FFFFFF": {"name": "White", "layers": {"5": {"hexcode": "#FFFFFF"}}}
  }`
	path := writePaletteFile(t, body)
	_, err := Load(path, LoaderConfig{NbLayers: 5, Method: Additive})
	if err == nil {
		t.Fatal("expected error for non-integer layer key")
	}
}

func TestLoadAcceptsSupportedSchemaVersion(t *testing.T) {
	body := `{
    "schema_version": "1.2.0",
    "#FF0000": {"name": "Red", "layers": {"5": {"hexcode": "#FF0000"}}},
    "#FFFFFF": {"name": "White", "layers": {"5": {"hexcode": "#FFFFFF"}}}
  }`
	path := writePaletteFile(t, body)
	p, err := Load(path, LoaderConfig{NbLayers: 5, Method: Additive})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.ColorCount() == 0 {
		t.Fatal("expected at least one combi")
	}
}

func TestLoadRejectsNewerSchemaMajor(t *testing.T) {
	body := `{
    "schema_version": "2.0.0",
    "#FF0000": {"name": "Red", "layers": {"5": {"hexcode": "#FF0000"}}},
    "#FFFFFF": {"name": "White", "layers": {"5": {"hexcode": "#FFFFFF"}}}
  }`
	path := writePaletteFile(t, body)
	_, err := Load(path, LoaderConfig{NbLayers: 5, Method: Additive})
	if err == nil {
		t.Fatal("expected error for unsupported schema_version major")
	}
}

func TestLoadRejectsMalformedSchemaVersion(t *testing.T) {
	body := `{
    "schema_version": "not-a-version",
    "#FFFFFF": {"name": "White", "layers": {"5": {"hexcode": "#FFFFFF"}}}
  }`
	path := writePaletteFile(t, body)
	_, err := Load(path, LoaderConfig{NbLayers: 5, Method: Additive})
	if err == nil {
		t.Fatal("expected error for malformed schema_version")
	}
}

func TestLoadHslLayerDef(t *testing.T) {
	body := `{
    "#112233": {"name": "Navy", "layers": {"5": {"H": 210, "S": 50, "L": 20}}},
    "#FFFFFF": {"name": "White", "layers": {"5": {"hexcode": "#FFFFFF"}}}
  }`
	path := writePaletteFile(t, body)
	p, err := Load(path, LoaderConfig{NbLayers: 5, Method: Additive})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.ColorCount() == 0 {
		t.Fatal("expected at least one combi from HSL-defined layer")
	}
}
