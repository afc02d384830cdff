package geometry

import "gonum.org/v1/gonum/floats"

// Axis indices into vertex coordinate triples.
const (
	X = 0
	Y = 1
	Z = 2
)

// Column extracts one coordinate axis from a point array.
func Column(points [][]float64, axis int) []float64 {
	col := make([]float64, len(points))
	for i, p := range points {
		col[i] = p[axis]
	}
	return col
}

// Extents holds the axis-aligned bounding range of a point set.
type Extents struct {
	Min, Max [3]float64
}

func (e Extents) RangeX() float64 { return e.Max[X] - e.Min[X] }
func (e Extents) RangeY() float64 { return e.Max[Y] - e.Min[Y] }

func (e Extents) CenterY() float64 { return (e.Max[Y] + e.Min[Y]) / 2 }

// PointExtents computes the bounding extents of a non-empty point set.
func PointExtents(points [][]float64) Extents {
	var e Extents
	for axis := 0; axis < 3; axis++ {
		col := Column(points, axis)
		e.Min[axis] = floats.Min(col)
		e.Max[axis] = floats.Max(col)
	}
	return e
}

// ArgmaxAxis returns the index of the point with the largest coordinate
// on the given axis.
func ArgmaxAxis(points [][]float64, axis int) int {
	return floats.MaxIdx(Column(points, axis))
}

// ArgminAxis returns the index of the point with the smallest coordinate
// on the given axis.
func ArgminAxis(points [][]float64, axis int) int {
	return floats.MinIdx(Column(points, axis))
}
