package readers

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tissuemech/fesweep/geometry"
)

const gambitTetType = 6

// ReadGambitNeutral reads a Gambit neutral file (.neu), keeping only the
// tetrahedral cells. Node ids are 1-based in the file.
func ReadGambitNeutral(filename string) (*geometry.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	m := &geometry.Mesh{}

	var numnp, nelem int
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "NUMNP") && strings.Contains(line, "NELEM") {
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected EOF after control header")
			}
			values := strings.Fields(scanner.Text())
			if len(values) < 2 {
				return nil, fmt.Errorf("invalid control line: %q", scanner.Text())
			}
			numnp, _ = strconv.Atoi(values[0])
			nelem, _ = strconv.Atoi(values[1])
			break
		}
	}
	if numnp == 0 {
		return nil, fmt.Errorf("%s: missing control info section", filename)
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.Contains(line, "NODAL COORDINATES"):
			m.Vertices = make([][]float64, numnp)
			for i := 0; i < numnp; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}
				fields := strings.Fields(scanner.Text())
				if len(fields) < 4 {
					return nil, fmt.Errorf("invalid node line: %q", scanner.Text())
				}
				nodeID, _ := strconv.Atoi(fields[0])
				x, _ := strconv.ParseFloat(fields[1], 64)
				y, _ := strconv.ParseFloat(fields[2], 64)
				z, _ := strconv.ParseFloat(fields[3], 64)
				idx := nodeID - 1
				if idx < 0 || idx >= numnp {
					return nil, fmt.Errorf("node id %d out of range", nodeID)
				}
				m.Vertices[idx] = []float64{x, y, z}
			}

		case strings.Contains(line, "ELEMENTS/CELLS"):
			for i := 0; i < nelem; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}
				fields := strings.Fields(scanner.Text())
				if len(fields) < 3 {
					continue
				}
				gambitType, _ := strconv.Atoi(fields[1])
				numNodes, _ := strconv.Atoi(fields[2])
				if gambitType != gambitTetType || numNodes != 4 {
					continue
				}
				if len(fields) < 7 {
					return nil, fmt.Errorf("invalid tet line: %q", scanner.Text())
				}
				var tet [4]int
				for j := 0; j < 4; j++ {
					id, _ := strconv.Atoi(fields[3+j])
					tet[j] = id - 1
				}
				m.Tets = append(m.Tets, tet)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	return m, nil
}
