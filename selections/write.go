package selections

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteSurfaceSelections writes one line per boundary triangle in the
// group order the downstream solver expects: inner interface (label 2)
// first, then Dirichlet (label 1), then the remaining outer boundary
// (label 3). Each line is "<label> <i> <j> <k>".
func WriteSurfaceSelections(w io.Writer, res *Result) error {
	bw := bufio.NewWriter(w)

	for i, tri := range res.Facets {
		if res.Components[i] == 1 {
			fmt.Fprintf(bw, "%d %d %d %d\n", LabelInner, tri[0], tri[1], tri[2])
		}
	}
	for i, tri := range res.Facets {
		if res.Dirichlet[i] {
			fmt.Fprintf(bw, "%d %d %d %d\n", LabelDirichlet, tri[0], tri[1], tri[2])
		}
	}
	for i, tri := range res.Facets {
		if res.Components[i] != 1 && !res.Dirichlet[i] {
			fmt.Fprintf(bw, "%d %d %d %d\n", LabelOuter, tri[0], tri[1], tri[2])
		}
	}
	return bw.Flush()
}

// WriteVolumeSelections writes one volume label per tetrahedron, in mesh
// cell order.
func WriteVolumeSelections(w io.Writer, res *Result) error {
	bw := bufio.NewWriter(w)
	for _, label := range res.VolumeLabels {
		fmt.Fprintf(bw, "%d\n", label)
	}
	return bw.Flush()
}

// WriteFiles writes both selection files. Output is single-pass; a
// failed write leaves no partial-file cleanup to do beyond the error.
func WriteFiles(surfacePath, volumePath string, res *Result) error {
	sf, err := os.Create(surfacePath)
	if err != nil {
		return err
	}
	defer sf.Close()
	if err = WriteSurfaceSelections(sf, res); err != nil {
		return fmt.Errorf("writing %s: %w", surfacePath, err)
	}

	vf, err := os.Create(volumePath)
	if err != nil {
		return err
	}
	defer vf.Close()
	if err = WriteVolumeSelections(vf, res); err != nil {
		return fmt.Errorf("writing %s: %w", volumePath, err)
	}
	return nil
}
