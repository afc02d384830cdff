package selections

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tissuemech/fesweep/geometry"
)

// Policy selects the Dirichlet-constrained subset of boundary triangles
// from their barycenters and the reference surface geometry. The three
// policies encode per-dataset conventions; the operator picks one, it is
// never auto-detected.
type Policy interface {
	Name() string

	// Mask returns one bool per boundary-triangle barycenter. volumePoints
	// carries the volumetric mesh vertices for policies that need them.
	Mask(barycenters [][]float64, surface *geometry.Surface, volumePoints [][]float64) ([]bool, error)
}

// ParsePolicy maps an operator-facing policy name to its default-
// parameterized implementation.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "coverage":
		return NewCoveragePercent(DefaultCoveragePercent, DefaultYToleranceFactor), nil
	case "extent":
		return ExcludedExtent{}, nil
	case "line":
		return ExtremalLine{}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q, want coverage, extent or line", name)
	}
}

const (
	DefaultCoveragePercent  = 0.5
	DefaultYToleranceFactor = 0.6
)

// CoveragePercent selects triangles whose barycenter x lies within
// Coverage of the reference surface's total x-extent from its maximum x,
// and whose barycenter y lies within a tolerance band around the
// surface's y-center.
type CoveragePercent struct {
	Coverage         float64 // fraction of the surface x-extent, from max x
	YToleranceFactor float64 // fraction of the surface y-range
}

func NewCoveragePercent(coverage, yTolerance float64) CoveragePercent {
	return CoveragePercent{Coverage: coverage, YToleranceFactor: yTolerance}
}

func (p CoveragePercent) Name() string { return "coverage" }

func (p CoveragePercent) Mask(barycenters [][]float64, surface *geometry.Surface, _ [][]float64) ([]bool, error) {
	ext := geometry.PointExtents(surface.Vertices)
	if ext.RangeX() <= 0 {
		return nil, fmt.Errorf("degenerate reference surface: zero x-extent")
	}

	coverageBoundary := ext.Max[geometry.X] - p.Coverage*ext.RangeX()
	yCenter := ext.CenterY()
	yTolerance := p.YToleranceFactor * ext.RangeY()

	mask := make([]bool, len(barycenters))
	for i, b := range barycenters {
		mask[i] = b[geometry.X] >= coverageBoundary &&
			b[geometry.X] <= ext.Max[geometry.X] &&
			math.Abs(b[geometry.Y]-yCenter) <= yTolerance
	}
	return mask, nil
}

// ExcludedExtent selects triangles whose barycenter x exceeds the
// maximum x of all volumetric-mesh points lying before the reference
// surface's x-range.
type ExcludedExtent struct{}

func (ExcludedExtent) Name() string { return "extent" }

func (ExcludedExtent) Mask(barycenters [][]float64, surface *geometry.Surface, volumePoints [][]float64) ([]bool, error) {
	surfMinX := geometry.PointExtents(surface.Vertices).Min[geometry.X]

	var outside []float64
	for _, v := range volumePoints {
		if v[geometry.X] < surfMinX {
			outside = append(outside, v[geometry.X])
		}
	}
	if len(outside) == 0 {
		return nil, fmt.Errorf("degenerate geometry: no volumetric points before the reference surface x-range")
	}

	sort.Float64s(outside)
	maxOutside := outside[len(outside)-1]
	p95 := stat.Quantile(0.95, stat.Empirical, outside, nil)
	fmt.Printf("x extent outside reference surface: [%g, %g], 95th percentile %g\n",
		outside[0], maxOutside, p95)

	mask := make([]bool, len(barycenters))
	for i, b := range barycenters {
		mask[i] = b[geometry.X] > maxOutside
	}
	return mask, nil
}

// ExtremalLine selects triangles inside an x-band and above a line, both
// derived from the reference surface's extremal points: max x, min y and
// max y.
type ExtremalLine struct{}

func (ExtremalLine) Name() string { return "line" }

func (ExtremalLine) Mask(barycenters [][]float64, surface *geometry.Surface, _ [][]float64) ([]bool, error) {
	pts := surface.Vertices
	p1 := pts[geometry.ArgmaxAxis(pts, geometry.X)] // max x
	p2 := pts[geometry.ArgminAxis(pts, geometry.Y)] // min y
	p3 := pts[geometry.ArgmaxAxis(pts, geometry.Y)] // max y

	maxX, yAtMaxX := p1[geometry.X], p1[geometry.Y]
	minY, xAtMinY := p2[geometry.Y], p2[geometry.X]
	xAtMaxY := p3[geometry.X]

	if yAtMaxX == minY {
		return nil, fmt.Errorf("degenerate reference surface: extremal points give a vertical slope")
	}

	lowerX := xAtMaxY + (maxX-xAtMaxY)/2
	upperX := math.Ceil(maxX)
	slope := (maxX - xAtMinY) / (yAtMaxX - minY)

	mask := make([]bool, len(barycenters))
	for i, b := range barycenters {
		if b[geometry.X] < lowerX || b[geometry.X] > upperX {
			continue
		}
		dy := b[geometry.Y] - minY
		if dy == 0 {
			// Barycenter exactly at the surface's minimum y: the ratio is
			// undefined, leave it unselected.
			continue
		}
		mask[i] = (b[geometry.X]-xAtMinY)/dy >= slope
	}
	return mask, nil
}
