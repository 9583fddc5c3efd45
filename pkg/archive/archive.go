// Package archive packages a set of named meshes into the output ZIP,
// one STL file per mesh.
package archive

import (
	"archive/zip"
	"io"

	"github.com/kallisti-lab/lithophane/pkg/geometry"
	"github.com/kallisti-lab/lithophane/pkg/lerr"
	"github.com/kallisti-lab/lithophane/pkg/stl"
)

// Entry is one named mesh destined for a "<Name>.stl" archive member.
type Entry struct {
	Name string
	Mesh geometry.Mesh
}

// WriteZip writes entries into w as a ZIP archive, one deflated STL file
// per entry, in the given format.
func WriteZip(w io.Writer, entries []Entry, format stl.Format) error {
	zw := zip.NewWriter(w)
	for _, e := range entries {
		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:   e.Name + ".stl",
			Method: zip.Deflate,
		})
		if err != nil {
			return lerr.Wrap(lerr.Serialization, err)
		}
		if err := stl.Write(f, e.Mesh, e.Name, format); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return lerr.Wrap(lerr.Serialization, err)
	}
	return nil
}
