package stl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kallisti-lab/lithophane/pkg/geometry"
)

func oneTriangleMesh() geometry.Mesh {
	m := geometry.NewMesh()
	m.Add(geometry.Triangle{
		V0: geometry.Vector3{X: 0, Y: 0, Z: 0},
		V1: geometry.Vector3{X: 1, Y: 0, Z: 0},
		V2: geometry.Vector3{X: 0, Y: 1, Z: 0},
	})
	return m
}

func TestWriteAsciiStructure(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, oneTriangleMesh(), "layer-red", ASCII); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "solid layer-red\n") {
		t.Fatalf("expected solid header, got %q", out[:20])
	}
	if !strings.HasSuffix(out, "endsolid layer-red\n") {
		t.Fatalf("expected endsolid trailer, got %q", out[len(out)-25:])
	}
	for _, want := range []string{"facet normal", "outer loop", "vertex", "endloop", "endfacet"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestWriteAsciiEmptyMesh(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, geometry.NewMesh(), "empty", ASCII); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "solid empty\nendsolid empty\n" {
		t.Fatalf("unexpected empty-mesh output: %q", buf.String())
	}
}

func TestBinarySizeContract(t *testing.T) {
	for _, n := range []int{0, 1, 12, 154} {
		mesh := geometry.NewMeshWithCapacity(n)
		for i := 0; i < n; i++ {
			mesh.Add(geometry.Triangle{})
		}
		var buf bytes.Buffer
		if err := Write(&buf, mesh, "x", Binary); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if buf.Len() != BinarySize(n) {
			t.Fatalf("n=%d: expected %d bytes, got %d", n, BinarySize(n), buf.Len())
		}
	}
}

func TestBinaryHeaderCarriesName(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, geometry.NewMesh(), "layer-blue", Binary); err != nil {
		t.Fatalf("Write: %v", err)
	}
	header := buf.Bytes()[:80]
	if !bytes.HasPrefix(header, []byte("layer-blue")) {
		t.Fatalf("expected header to start with name, got %q", header[:20])
	}
}
