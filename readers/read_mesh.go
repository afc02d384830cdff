package readers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tissuemech/fesweep/geometry"
)

// ReadVolumeMesh reads a volumetric tetrahedral mesh based on file
// extension. Only tetrahedral cells are retained; a file with no tet
// block is an error.
func ReadVolumeMesh(filename string) (*geometry.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		m   *geometry.Mesh
		err error
	)
	switch ext {
	case ".msh":
		m, err = ReadGmsh22(filename)
	case ".neu":
		m, err = ReadGambitNeutral(filename)
	default:
		return nil, fmt.Errorf("unsupported volumetric mesh format: %s", ext)
	}
	if err != nil {
		return nil, err
	}
	if len(m.Tets) == 0 {
		return nil, fmt.Errorf("%s: mesh contains no tetrahedral cells", filename)
	}
	if err = m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// ReadSurfaceMesh reads a triangulated surface mesh based on file
// extension. A file with no triangle block is an error.
func ReadSurfaceMesh(filename string) (*geometry.Surface, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		s   *geometry.Surface
		err error
	)
	switch ext {
	case ".stl":
		s, err = ReadSTL(filename)
	case ".obj":
		s, err = ReadOBJ(filename)
	default:
		return nil, fmt.Errorf("unsupported surface mesh format: %s", ext)
	}
	if err != nil {
		return nil, err
	}
	if len(s.Tris) == 0 {
		return nil, fmt.Errorf("%s: surface contains no triangles", filename)
	}
	if err = s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}
