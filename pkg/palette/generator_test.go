package palette

import (
	"math/rand"
	"testing"

	"github.com/kallisti-lab/lithophane/pkg/color"
)

func TestGenerateIsDeterministic(t *testing.T) {
	layers := []ColorLayer{
		mustLayer(t, "#FF0000", 1, color.Rgb{R: 255}),
		mustLayer(t, "#FF0000", 4, color.Rgb{R: 255}),
		mustLayer(t, "#00FF00", 2, color.Rgb{G: 255}),
		mustLayer(t, "#0000FF", 3, color.Rgb{B: 255}),
		mustLayer(t, "#FFFFFF", 2, color.Rgb{R: 255, G: 255, B: 255}),
		mustLayer(t, "#FFFFFF", 3, color.Rgb{R: 255, G: 255, B: 255}),
	}
	SortByDarknessDescending(layers)

	a := Generate(layers, 5, nil)
	b := Generate(layers, 5, nil)
	if len(a) != len(b) {
		t.Fatalf("expected identical output sizes, got %d vs %d", len(a), len(b))
	}
	for i := range a {
		if len(a[i].Layers) != len(b[i].Layers) {
			t.Fatalf("combi %d differs in length between runs", i)
		}
		for j := range a[i].Layers {
			if a[i].Layers[j] != b[i].Layers[j] {
				t.Fatalf("combi %d layer %d differs between runs", i, j)
			}
		}
	}
}

func TestGenerateRespectsRestrictionSet(t *testing.T) {
	layers := []ColorLayer{
		mustLayer(t, "#FF0000", 5, color.Rgb{R: 255}),
		mustLayer(t, "#00FF00", 5, color.Rgb{G: 255}),
	}
	SortByDarknessDescending(layers)

	restrict := map[string]bool{"#FF0000": true}
	combis := Generate(layers, 5, restrict)
	for _, c := range combis {
		for _, l := range c.Layers {
			if l.HexCode != "#FF0000" {
				t.Fatalf("restriction set leaked: %+v", c)
			}
		}
	}
	if len(combis) != 1 {
		t.Fatalf("expected exactly the single red combi, got %d", len(combis))
	}
}

func BenchmarkGenerateEightFilaments(b *testing.B) {
	rand.Seed(42)
	var layers []ColorLayer
	for i := 0; i < 8; i++ {
		hex := color.Rgb{R: uint8(rand.Intn(256)), G: uint8(rand.Intn(256)), B: uint8(rand.Intn(256))}.Hex()
		for _, count := range []int{1, 2, 4} {
			l, err := NewColorLayer(hex, count, color.Rgb{R: uint8(rand.Intn(256))})
			if err != nil {
				b.Fatal(err)
			}
			layers = append(layers, l)
		}
	}
	SortByDarknessDescending(layers)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Generate(layers, 8, nil)
	}
}
