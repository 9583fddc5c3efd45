package geometry

// Box returns a closed, axis-aligned rectangular prism of the given
// dimensions centered at center, as exactly 12 triangles (2 per face) with
// outward-facing normals. Face winding is fixed so Triangle.Normal always
// agrees with the geometric face direction.
func Box(widthX, depthY, heightZ float64, center Vector3) Mesh {
	hx := widthX / 2
	hy := depthY / 2
	hz := heightZ / 2

	corner := func(sx, sy, sz float64) Vector3 {
		return Vector3{
			X: center.X + sx*hx,
			Y: center.Y + sy*hy,
			Z: center.Z + sz*hz,
		}
	}

	m := NewMeshWithCapacity(12)

	// +Z (top) and -Z (bottom).
	top := [4]Vector3{corner(-1, -1, 1), corner(1, -1, 1), corner(1, 1, 1), corner(-1, 1, 1)}
	m.Add(Triangle{top[0], top[1], top[2]})
	m.Add(Triangle{top[0], top[2], top[3]})

	bottom := [4]Vector3{corner(-1, -1, -1), corner(-1, 1, -1), corner(1, 1, -1), corner(1, -1, -1)}
	m.Add(Triangle{bottom[0], bottom[1], bottom[2]})
	m.Add(Triangle{bottom[0], bottom[2], bottom[3]})

	// +X and -X.
	plusX := [4]Vector3{corner(1, -1, -1), corner(1, 1, -1), corner(1, 1, 1), corner(1, -1, 1)}
	m.Add(Triangle{plusX[0], plusX[1], plusX[2]})
	m.Add(Triangle{plusX[0], plusX[2], plusX[3]})

	minusX := [4]Vector3{corner(-1, -1, -1), corner(-1, -1, 1), corner(-1, 1, 1), corner(-1, 1, -1)}
	m.Add(Triangle{minusX[0], minusX[1], minusX[2]})
	m.Add(Triangle{minusX[0], minusX[2], minusX[3]})

	// +Y and -Y.
	plusY := [4]Vector3{corner(-1, 1, -1), corner(-1, 1, 1), corner(1, 1, 1), corner(1, 1, -1)}
	m.Add(Triangle{plusY[0], plusY[1], plusY[2]})
	m.Add(Triangle{plusY[0], plusY[2], plusY[3]})

	minusY := [4]Vector3{corner(-1, -1, -1), corner(1, -1, -1), corner(1, -1, 1), corner(-1, -1, 1)}
	m.Add(Triangle{minusY[0], minusY[1], minusY[2]})
	m.Add(Triangle{minusY[0], minusY[2], minusY[3]})

	return m
}
