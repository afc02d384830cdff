package selections

import (
	"fmt"

	"github.com/tissuemech/fesweep/geometry"
)

// Surface labels in the selection file.
const (
	LabelDirichlet = 1 // prescribed boundary
	LabelInner     = 2 // inner interface (cavity surface, component 1)
	LabelOuter     = 3 // remaining outer boundary
)

// Volume labels, one per tetrahedron.
const (
	VolumeInside  = 1 // barycenter inside the reference surface
	VolumeOutside = 2
)

// windingThreshold decides inside/outside from a generalized winding
// number. 0.5 splits the ~1 inside / ~0 outside plateaus.
const windingThreshold = 0.5

// Result holds the classification of one mesh pair.
type Result struct {
	Facets       [][3]int // boundary triangles, deterministic order
	Components   []int    // connected component id per facet
	Dirichlet    []bool   // Dirichlet mask per facet, component 0 only
	VolumeLabels []int    // one of VolumeInside/VolumeOutside per tet

	Summary Summary
}

// Summary carries the diagnostic counts printed after classification.
type Summary struct {
	BoundaryFacets int
	Components     int
	DirichletTris  int
	InnerTris      int
	OuterTris      int
	InsideTets     int
	OutsideTets    int
}

func (s Summary) Print() {
	fmt.Printf("Selected %d triangles for Dirichlet BC\n", s.DirichletTris)
	fmt.Printf("Boundary: %d facets in %d components (inner %d, outer %d)\n",
		s.BoundaryFacets, s.Components, s.InnerTris, s.OuterTris)
	fmt.Printf("Found %d tetrahedra inside the reference surface\n", s.InsideTets)
	fmt.Printf("Found %d tetrahedra outside the reference surface\n", s.OutsideTets)
}

// Classify runs the full mesh region classification: boundary facet
// extraction, component labeling, Dirichlet selection under the given
// policy, and winding-number volume labeling of tet barycenters against
// the reference surface.
func Classify(m *geometry.Mesh, surface *geometry.Surface, policy Policy) (*Result, error) {
	if m.NumTets() == 0 {
		return nil, fmt.Errorf("volumetric mesh has no tetrahedra")
	}

	facets := geometry.BoundaryFacets(m.Tets)
	components, numComponents := geometry.FacetComponents(facets)

	triBarycenters := geometry.TriangleBarycenters(m.Vertices, facets)
	mask, err := policy.Mask(triBarycenters, surface, m.Vertices)
	if err != nil {
		return nil, fmt.Errorf("policy %s: %w", policy.Name(), err)
	}

	// A boundary triangle gets exactly one label: the inner interface
	// (component 1) wins over any Dirichlet match.
	dirichlet := make([]bool, len(facets))
	selected := 0
	for i := range facets {
		dirichlet[i] = mask[i] && components[i] == 0
		if dirichlet[i] {
			selected++
		}
	}
	if selected == 0 {
		fmt.Printf("warning: policy %s selected no Dirichlet triangles\n", policy.Name())
	}

	res := &Result{
		Facets:     facets,
		Components: components,
		Dirichlet:  dirichlet,
	}

	inner, outer := 0, 0
	for i := range facets {
		switch {
		case components[i] == 1:
			inner++
		case dirichlet[i]:
		default:
			outer++
		}
	}
	if outer == 0 && selected > 0 {
		fmt.Printf("warning: policy %s selected every outer boundary triangle\n", policy.Name())
	}

	w := surface.WindingNumbers(m.TetBarycenters())
	res.VolumeLabels = make([]int, m.NumTets())
	inside := 0
	for i, wn := range w {
		if wn > windingThreshold {
			res.VolumeLabels[i] = VolumeInside
			inside++
		} else {
			res.VolumeLabels[i] = VolumeOutside
		}
	}

	res.Summary = Summary{
		BoundaryFacets: len(facets),
		Components:     numComponents,
		DirichletTris:  selected,
		InnerTris:      inner,
		OuterTris:      outer,
		InsideTets:     inside,
		OutsideTets:    m.NumTets() - inside,
	}
	return res, nil
}
