package geometry

// Triangle stores three vertices in winding order. Normal is derived, not
// stored, so a triangle can never carry a normal inconsistent with its
// vertices.
type Triangle struct {
	V0, V1, V2 Vector3
}

// Normal returns the normalized cross product of (v1-v0, v2-v0).
func (t Triangle) Normal() Vector3 {
	return t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0)).Normalize()
}

// Translate returns a new triangle with every vertex shifted by d.
func (t Triangle) Translate(d Vector3) Triangle {
	return Triangle{V0: t.V0.Add(d), V1: t.V1.Add(d), V2: t.V2.Add(d)}
}

// Mesh is an unordered set of triangles with no explicit topology.
// Watertightness is a construction-time property of the generators that
// build a Mesh; it is never verified after the fact.
type Mesh struct {
	Triangles []Triangle
}

// NewMesh returns an empty mesh.
func NewMesh() Mesh {
	return Mesh{}
}

// NewMeshWithCapacity returns an empty mesh whose backing slice is
// pre-reserved for n triangles, eliminating reallocation during row fan-in.
func NewMeshWithCapacity(n int) Mesh {
	return Mesh{Triangles: make([]Triangle, 0, n)}
}

// Add appends a single triangle.
func (m *Mesh) Add(t Triangle) {
	m.Triangles = append(m.Triangles, t)
}

// Translate returns a new mesh with every triangle shifted by d.
func (m Mesh) Translate(d Vector3) Mesh {
	out := NewMeshWithCapacity(len(m.Triangles))
	for _, t := range m.Triangles {
		out.Triangles = append(out.Triangles, t.Translate(d))
	}
	return out
}

// Merge returns a new mesh containing every triangle of m followed by every
// triangle of other, cloning both inputs' backing storage.
func (m Mesh) Merge(other Mesh) Mesh {
	out := NewMeshWithCapacity(len(m.Triangles) + len(other.Triangles))
	out.Triangles = append(out.Triangles, m.Triangles...)
	out.Triangles = append(out.Triangles, other.Triangles...)
	return out
}

// MergeOwned appends other's triangles directly onto m's backing slice,
// consuming other without cloning. Preferred for row fan-in: when m was
// pre-sized by NewMeshWithCapacity to hold every incoming triangle, the
// append does not reallocate; otherwise it grows m like any append.
func (m *Mesh) MergeOwned(other Mesh) {
	m.Triangles = append(m.Triangles, other.Triangles...)
}

// Len returns the number of triangles in the mesh.
func (m Mesh) Len() int {
	return len(m.Triangles)
}
