package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// WindingNumber evaluates the generalized winding number of the query
// point against a triangulated surface, using the van Oosterom-Strackee
// solid angle of each triangle. For a closed, consistently oriented
// surface the result is ~1 inside and ~0 outside.
func WindingNumber(vertices [][]float64, tris [][3]int, query []float64) float64 {
	var total float64
	a := make([]float64, 3)
	b := make([]float64, 3)
	c := make([]float64, 3)
	for _, tri := range tris {
		va, vb, vc := vertices[tri[0]], vertices[tri[1]], vertices[tri[2]]
		for d := 0; d < 3; d++ {
			a[d] = va[d] - query[d]
			b[d] = vb[d] - query[d]
			c[d] = vc[d] - query[d]
		}
		la := floats.Norm(a, 2)
		lb := floats.Norm(b, 2)
		lc := floats.Norm(c, 2)

		det := mat.Det(mat.NewDense(3, 3, []float64{
			a[0], a[1], a[2],
			b[0], b[1], b[2],
			c[0], c[1], c[2],
		}))
		denom := la*lb*lc +
			floats.Dot(a, b)*lc +
			floats.Dot(b, c)*la +
			floats.Dot(c, a)*lb

		total += 2 * math.Atan2(det, denom)
	}
	return total / (4 * math.Pi)
}

// WindingNumbers evaluates the winding number of each query point
// against the surface.
func (s *Surface) WindingNumbers(queries [][]float64) []float64 {
	w := make([]float64, len(queries))
	for i, q := range queries {
		w[i] = WindingNumber(s.Vertices, s.Tris, q)
	}
	return w
}
