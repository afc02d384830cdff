package geometry

import "fmt"

// Mesh is a volumetric tetrahedral mesh: vertex coordinates plus
// tet-to-vertex connectivity. It is loaded once per invocation and
// never mutated after Scale.
type Mesh struct {
	Vertices [][]float64 // [nverts][3]
	Tets     [][4]int    // vertex indices per tetrahedron
}

func (m *Mesh) NumVertices() int { return len(m.Vertices) }
func (m *Mesh) NumTets() int     { return len(m.Tets) }

// Scale multiplies all vertex coordinates by s. Some datasets are stored
// in meters and need rescaling back to millimeters before classification.
func (m *Mesh) Scale(s float64) {
	if s == 1.0 {
		return
	}
	for _, v := range m.Vertices {
		for d := range v {
			v[d] *= s
		}
	}
}

// TetBarycenters returns the coordinate-wise average of each tet's four
// vertices, in cell order.
func (m *Mesh) TetBarycenters() [][]float64 {
	bc := make([][]float64, len(m.Tets))
	for i, tet := range m.Tets {
		b := make([]float64, 3)
		for _, vi := range tet {
			v := m.Vertices[vi]
			b[0] += v[0]
			b[1] += v[1]
			b[2] += v[2]
		}
		b[0] *= 0.25
		b[1] *= 0.25
		b[2] *= 0.25
		bc[i] = b
	}
	return bc
}

// Surface is a triangulated surface mesh, used as the reference geometry
// for extremal-point queries and winding-number tests.
type Surface struct {
	Vertices [][]float64 // [nverts][3]
	Tris     [][3]int    // vertex indices per triangle
}

func (s *Surface) NumVertices() int { return len(s.Vertices) }
func (s *Surface) NumTris() int     { return len(s.Tris) }

// TriangleBarycenters returns the barycenter of each triangle in the
// given facet list against the given vertex array.
func TriangleBarycenters(vertices [][]float64, tris [][3]int) [][]float64 {
	bc := make([][]float64, len(tris))
	for i, tri := range tris {
		b := make([]float64, 3)
		for _, vi := range tri {
			v := vertices[vi]
			b[0] += v[0]
			b[1] += v[1]
			b[2] += v[2]
		}
		b[0] /= 3
		b[1] /= 3
		b[2] /= 3
		bc[i] = b
	}
	return bc
}

// Validate checks index bounds of the connectivity against the vertex
// array so malformed files fail before any geometry is computed.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, tet := range m.Tets {
		for _, vi := range tet {
			if vi < 0 || vi >= n {
				return fmt.Errorf("tet %d references vertex %d, mesh has %d vertices", i, vi, n)
			}
		}
	}
	return nil
}

func (s *Surface) Validate() error {
	n := len(s.Vertices)
	for i, tri := range s.Tris {
		for _, vi := range tri {
			if vi < 0 || vi >= n {
				return fmt.Errorf("triangle %d references vertex %d, surface has %d vertices", i, vi, n)
			}
		}
	}
	return nil
}
