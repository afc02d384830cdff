package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitCubeMesh builds the Kuhn 6-tet decomposition of the unit cube
// around the 0-6 diagonal.
func unitCubeMesh() *Mesh {
	return &Mesh{
		Vertices: [][]float64{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
		},
		Tets: [][4]int{
			{0, 1, 2, 6},
			{0, 2, 3, 6},
			{0, 3, 7, 6},
			{0, 7, 4, 6},
			{0, 4, 5, 6},
			{0, 5, 1, 6},
		},
	}
}

// boxSurface builds a closed, outward-oriented box surface.
func boxSurface(min, max [3]float64) *Surface {
	x0, y0, z0 := min[0], min[1], min[2]
	x1, y1, z1 := max[0], max[1], max[2]
	return &Surface{
		Vertices: [][]float64{
			{x0, y0, z0}, {x1, y0, z0}, {x1, y1, z0}, {x0, y1, z0},
			{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1},
		},
		Tris: [][3]int{
			{0, 2, 1}, {0, 3, 2}, // bottom
			{4, 5, 6}, {4, 6, 7}, // top
			{0, 1, 5}, {0, 5, 4}, // front
			{3, 7, 6}, {3, 6, 2}, // back
			{0, 4, 7}, {0, 7, 3}, // left
			{1, 2, 6}, {1, 6, 5}, // right
		},
	}
}

func TestBoundaryFacetsSingleTet(t *testing.T) {
	tets := [][4]int{{0, 1, 2, 3}}
	f := BoundaryFacets(tets)
	assert.Len(t, f, 4)
}

func TestBoundaryFacetsSharedFace(t *testing.T) {
	// Two tets sharing face (1,2,3): the shared face is interior.
	tets := [][4]int{{0, 1, 2, 3}, {4, 1, 2, 3}}
	f := BoundaryFacets(tets)
	assert.Len(t, f, 6)
	for _, tri := range f {
		key := faceKey(tri[0], tri[1], tri[2])
		assert.NotEqual(t, faceKey(1, 2, 3), key, "shared face must not be a boundary facet")
	}
}

func TestBoundaryFacetsCube(t *testing.T) {
	f := BoundaryFacets(unitCubeMesh().Tets)
	// Each of the 6 cube faces is split into 2 triangles.
	assert.Len(t, f, 12)

	labels, n := FacetComponents(f)
	assert.Equal(t, 1, n)
	for _, l := range labels {
		assert.Equal(t, 0, l)
	}
}

func TestBoundaryFacetsDeterministic(t *testing.T) {
	tets := unitCubeMesh().Tets
	a := BoundaryFacets(tets)
	b := BoundaryFacets(tets)
	assert.Equal(t, a, b)
}

func TestFacetComponentsDisjoint(t *testing.T) {
	facets := [][3]int{
		{0, 1, 2},
		{1, 2, 3}, // shares edge 1-2 with facet 0
		{10, 11, 12},
	}
	labels, n := FacetComponents(facets)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int{0, 0, 1}, labels)
}

func TestTetBarycenters(t *testing.T) {
	m := &Mesh{
		Vertices: [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Tets:     [][4]int{{0, 1, 2, 3}},
	}
	bc := m.TetBarycenters()
	require.Len(t, bc, 1)
	assert.InDelta(t, 0.25, bc[0][0], 1e-14)
	assert.InDelta(t, 0.25, bc[0][1], 1e-14)
	assert.InDelta(t, 0.25, bc[0][2], 1e-14)
}

func TestWindingNumberCube(t *testing.T) {
	s := boxSurface([3]float64{0, 0, 0}, [3]float64{1, 1, 1})
	inside := WindingNumber(s.Vertices, s.Tris, []float64{0.5, 0.5, 0.5})
	outside := WindingNumber(s.Vertices, s.Tris, []float64{2, 2, 2})
	assert.InDelta(t, 1.0, inside, 1e-10)
	assert.InDelta(t, 0.0, outside, 1e-10)
}

func TestWindingNumbersHalfCube(t *testing.T) {
	// Reference surface occupying x in [0, 0.6] of the unit cube.
	m := unitCubeMesh()
	s := boxSurface([3]float64{0, 0, 0}, [3]float64{0.6, 1, 1})
	w := s.WindingNumbers(m.TetBarycenters())
	require.Len(t, w, 6)
	// Tet barycenter x-coordinates are 0.75, 0.5, 0.25, 0.25, 0.5, 0.75.
	wantInside := []bool{false, true, true, true, true, false}
	for i, inside := range wantInside {
		if inside {
			assert.Greater(t, w[i], 0.5, "tet %d", i)
		} else {
			assert.Less(t, w[i], 0.5, "tet %d", i)
		}
	}
}

func TestPointExtents(t *testing.T) {
	pts := [][]float64{{0, -1, 2}, {10, 3, -2}, {5, 0, 0}}
	e := PointExtents(pts)
	assert.Equal(t, 0.0, e.Min[X])
	assert.Equal(t, 10.0, e.Max[X])
	assert.Equal(t, 11.0, e.RangeX())
	assert.Equal(t, 1.0, e.CenterY())
	assert.Equal(t, 1, ArgmaxAxis(pts, X))
	assert.Equal(t, 0, ArgminAxis(pts, Y))
	assert.Equal(t, 1, ArgmaxAxis(pts, Y))
}

func TestMeshValidate(t *testing.T) {
	m := &Mesh{
		Vertices: [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Tets:     [][4]int{{0, 1, 2, 3}},
	}
	assert.Error(t, m.Validate())
}

func TestMeshScale(t *testing.T) {
	m := &Mesh{Vertices: [][]float64{{1, 2, 3}}}
	m.Scale(1000)
	assert.Equal(t, []float64{1000, 2000, 3000}, m.Vertices[0])
}
