// Package stl serializes triangle meshes to the STL format, in both its
// textual and binary encodings.
package stl

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kallisti-lab/lithophane/pkg/geometry"
	"github.com/kallisti-lab/lithophane/pkg/lerr"
)

// Format selects the STL encoding.
type Format int

const (
	ASCII Format = iota
	Binary
)

// Write serializes mesh as name in the requested format.
func Write(w io.Writer, mesh geometry.Mesh, name string, format Format) error {
	switch format {
	case Binary:
		return writeBinary(w, mesh, name)
	default:
		return writeASCII(w, mesh, name)
	}
}

func writeASCII(w io.Writer, mesh geometry.Mesh, name string) error {
	if _, err := fmt.Fprintf(w, "solid %s\n", name); err != nil {
		return lerr.Wrap(lerr.Serialization, err)
	}
	for _, tri := range mesh.Triangles {
		n := tri.Normal()
		if _, err := fmt.Fprintf(w, "facet normal %g %g %g\n", n.X, n.Y, n.Z); err != nil {
			return lerr.Wrap(lerr.Serialization, err)
		}
		if _, err := fmt.Fprintln(w, "  outer loop"); err != nil {
			return lerr.Wrap(lerr.Serialization, err)
		}
		for _, v := range []geometry.Vector3{tri.V0, tri.V1, tri.V2} {
			if _, err := fmt.Fprintf(w, "    vertex %g %g %g\n", v.X, v.Y, v.Z); err != nil {
				return lerr.Wrap(lerr.Serialization, err)
			}
		}
		if _, err := fmt.Fprintln(w, "  endloop"); err != nil {
			return lerr.Wrap(lerr.Serialization, err)
		}
		if _, err := fmt.Fprintln(w, "endfacet"); err != nil {
			return lerr.Wrap(lerr.Serialization, err)
		}
	}
	if _, err := fmt.Fprintf(w, "endsolid %s\n", name); err != nil {
		return lerr.Wrap(lerr.Serialization, err)
	}
	return nil
}

// writeBinary emits the 80-byte header, little-endian uint32 triangle
// count, then 50 bytes per triangle (12 float32 + trailing uint16
// attribute byte count, always 0). Total output is exactly 84+50*T bytes.
func writeBinary(w io.Writer, mesh geometry.Mesh, name string) error {
	var header [80]byte
	copy(header[:], name)
	if _, err := w.Write(header[:]); err != nil {
		return lerr.Wrap(lerr.Serialization, err)
	}

	count := uint32(len(mesh.Triangles))
	if err := binary.Write(w, binary.LittleEndian, count); err != nil {
		return lerr.Wrap(lerr.Serialization, err)
	}

	for _, tri := range mesh.Triangles {
		n := tri.Normal()
		if err := writeVec3(w, n); err != nil {
			return err
		}
		for _, v := range []geometry.Vector3{tri.V0, tri.V1, tri.V2} {
			if err := writeVec3(w, v); err != nil {
				return err
			}
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return lerr.Wrap(lerr.Serialization, err)
		}
	}
	return nil
}

func writeVec3(w io.Writer, v geometry.Vector3) error {
	coords := [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	if err := binary.Write(w, binary.LittleEndian, coords); err != nil {
		return lerr.Wrap(lerr.Serialization, err)
	}
	return nil
}

// BinarySize returns the exact byte size a binary STL of t triangles occupies.
func BinarySize(t int) int {
	return 84 + 50*t
}
