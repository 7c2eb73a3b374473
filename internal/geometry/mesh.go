package geometry

import "math"

// Vec3 is a point or direction in model space, millimeters.
type Vec3 struct {
	X, Y, Z float64
}

// Triangle is a single mesh facet with counter-clockwise winding.
type Triangle struct {
	A, B, C Vec3
}

// Mesh is the geometry handle produced by every build strategy.
type Mesh struct {
	Name      string
	Triangles []Triangle
}

// Normal computes the facet normal. Degenerate triangles return the zero
// vector, which exporters write as-is.
func (t Triangle) Normal() Vec3 {
	u := Vec3{t.B.X - t.A.X, t.B.Y - t.A.Y, t.B.Z - t.A.Z}
	v := Vec3{t.C.X - t.A.X, t.C.Y - t.A.Y, t.C.Z - t.A.Z}

	n := Vec3{
		X: u.Y*v.Z - u.Z*v.Y,
		Y: u.Z*v.X - u.X*v.Z,
		Z: u.X*v.Y - u.Y*v.X,
	}
	length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
	if length == 0 {
		return Vec3{}
	}
	return Vec3{n.X / length, n.Y / length, n.Z / length}
}

// addBox appends an axis-aligned box centered at c with the given full
// extents.
func (m *Mesh) addBox(c Vec3, dx, dy, dz float64) {
	hx, hy, hz := dx/2, dy/2, dz/2

	// Eight corners, bottom face first.
	v := [8]Vec3{
		{c.X - hx, c.Y - hy, c.Z - hz},
		{c.X + hx, c.Y - hy, c.Z - hz},
		{c.X + hx, c.Y + hy, c.Z - hz},
		{c.X - hx, c.Y + hy, c.Z - hz},
		{c.X - hx, c.Y - hy, c.Z + hz},
		{c.X + hx, c.Y - hy, c.Z + hz},
		{c.X + hx, c.Y + hy, c.Z + hz},
		{c.X - hx, c.Y + hy, c.Z + hz},
	}

	quads := [6][4]int{
		{0, 3, 2, 1}, // bottom
		{4, 5, 6, 7}, // top
		{0, 1, 5, 4}, // front
		{2, 3, 7, 6}, // back
		{1, 2, 6, 5}, // right
		{3, 0, 4, 7}, // left
	}
	for _, q := range quads {
		m.Triangles = append(m.Triangles,
			Triangle{v[q[0]], v[q[1]], v[q[2]]},
			Triangle{v[q[0]], v[q[2]], v[q[3]]},
		)
	}
}

// addCylinder appends a Z-aligned cylinder centered at c.
func (m *Mesh) addCylinder(c Vec3, radius, height float64, segments int) {
	if segments < 3 {
		segments = 3
	}
	top := c.Z + height/2
	bottom := c.Z - height/2

	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(segments)
		a1 := 2 * math.Pi * float64(i+1) / float64(segments)

		p0 := Vec3{c.X + radius*math.Cos(a0), c.Y + radius*math.Sin(a0), bottom}
		p1 := Vec3{c.X + radius*math.Cos(a1), c.Y + radius*math.Sin(a1), bottom}
		p2 := Vec3{c.X + radius*math.Cos(a1), c.Y + radius*math.Sin(a1), top}
		p3 := Vec3{c.X + radius*math.Cos(a0), c.Y + radius*math.Sin(a0), top}

		// Side wall.
		m.Triangles = append(m.Triangles,
			Triangle{p0, p1, p2},
			Triangle{p0, p2, p3},
		)
		// Caps as fans around the axis.
		m.Triangles = append(m.Triangles,
			Triangle{Vec3{c.X, c.Y, top}, p3, p2},
			Triangle{Vec3{c.X, c.Y, bottom}, p1, p0},
		)
	}
}

// addSphere appends a UV sphere centered at c.
func (m *Mesh) addSphere(c Vec3, radius float64, stacks, slices int) {
	if stacks < 2 {
		stacks = 2
	}
	if slices < 3 {
		slices = 3
	}

	point := func(stack, slice int) Vec3 {
		phi := math.Pi * float64(stack) / float64(stacks)
		theta := 2 * math.Pi * float64(slice) / float64(slices)
		return Vec3{
			X: c.X + radius*math.Sin(phi)*math.Cos(theta),
			Y: c.Y + radius*math.Sin(phi)*math.Sin(theta),
			Z: c.Z + radius*math.Cos(phi),
		}
	}

	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			p0 := point(i, j)
			p1 := point(i+1, j)
			p2 := point(i+1, j+1)
			p3 := point(i, j+1)

			if i > 0 {
				m.Triangles = append(m.Triangles, Triangle{p0, p1, p2})
			}
			if i < stacks-1 {
				m.Triangles = append(m.Triangles, Triangle{p0, p2, p3})
			}
		}
	}
}
