package geometry

import (
	"fmt"
	"sort"
)

// localTetFaces enumerates the four faces of a tet, oriented outward for
// a positively oriented tet.
var localTetFaces = [4][3]int{
	{1, 2, 3},
	{0, 3, 2},
	{0, 1, 3},
	{0, 2, 1},
}

func faceKey(a, b, c int) string {
	s := []int{a, b, c}
	sort.Ints(s)
	return fmt.Sprintf("%d %d %d", s[0], s[1], s[2])
}

// BoundaryFacets extracts the triangular faces owned by exactly one
// tetrahedron. Facets come out in deterministic order: by owning tet,
// then by local face index, so repeated runs produce identical output.
func BoundaryFacets(tets [][4]int) [][3]int {
	type owned struct {
		tri   [3]int
		count int
	}
	faces := make(map[string]*owned, 4*len(tets))
	order := make([]string, 0, 4*len(tets))

	for _, tet := range tets {
		for _, lf := range localTetFaces {
			tri := [3]int{tet[lf[0]], tet[lf[1]], tet[lf[2]]}
			key := faceKey(tri[0], tri[1], tri[2])
			if f, ok := faces[key]; ok {
				f.count++
			} else {
				faces[key] = &owned{tri: tri, count: 1}
				order = append(order, key)
			}
		}
	}

	var boundary [][3]int
	for _, key := range order {
		if f := faces[key]; f.count == 1 {
			boundary = append(boundary, f.tri)
		}
	}
	return boundary
}

// FacetComponents labels each facet with a connected component id, where
// facets sharing an edge belong to the same component. Component ids are
// assigned in order of first facet appearance: the component containing
// facet 0 (the outer hull, for the meshes this tool handles) gets id 0.
func FacetComponents(facets [][3]int) (labels []int, numComponents int) {
	labels = make([]int, len(facets))
	for i := range labels {
		labels[i] = -1
	}

	// Edge to facet adjacency, edges keyed on sorted endpoints.
	edgeFacets := make(map[[2]int][]int, 3*len(facets))
	for fi, tri := range facets {
		for e := 0; e < 3; e++ {
			a, b := tri[e], tri[(e+1)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]int{a, b}
			edgeFacets[key] = append(edgeFacets[key], fi)
		}
	}

	for seed := range facets {
		if labels[seed] >= 0 {
			continue
		}
		// BFS from the seed facet across shared edges.
		queue := []int{seed}
		labels[seed] = numComponents
		for len(queue) > 0 {
			fi := queue[0]
			queue = queue[1:]
			tri := facets[fi]
			for e := 0; e < 3; e++ {
				a, b := tri[e], tri[(e+1)%3]
				if a > b {
					a, b = b, a
				}
				for _, nb := range edgeFacets[[2]int{a, b}] {
					if labels[nb] < 0 {
						labels[nb] = numComponents
						queue = append(queue, nb)
					}
				}
			}
		}
		numComponents++
	}
	return labels, numComponents
}
