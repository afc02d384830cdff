package readers

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tissuemech/fesweep/geometry"
)

// ReadOBJ reads a Wavefront OBJ surface. Faces with more than three
// vertices are fan-triangulated. Texture/normal references after '/'
// are ignored.
func ReadOBJ(filename string) (*geometry.Surface, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s := &geometry.Surface{}
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: invalid vertex line", lineNo)
			}
			x, err1 := strconv.ParseFloat(fields[1], 64)
			y, err2 := strconv.ParseFloat(fields[2], 64)
			z, err3 := strconv.ParseFloat(fields[3], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("line %d: invalid vertex coordinates", lineNo)
			}
			s.Vertices = append(s.Vertices, []float64{x, y, z})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face with fewer than 3 vertices", lineNo)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				ref := strings.SplitN(tok, "/", 2)[0]
				vi, err := strconv.Atoi(ref)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid face index %q", lineNo, tok)
				}
				if vi < 0 {
					vi = len(s.Vertices) + 1 + vi // negative indices count from the end
				}
				idx = append(idx, vi-1)
			}
			for i := 1; i+1 < len(idx); i++ {
				s.Tris = append(s.Tris, [3]int{idx[0], idx[i], idx[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return s, nil
}
