package readers

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tissuemech/fesweep/geometry"
)

const gmshTetType = 4

// ReadGmsh22 reads an ASCII Gmsh MSH file, format version 2.2. Nodes may
// carry sparse 1-based ids; connectivity is remapped to dense 0-based
// indices. Non-tet elements are skipped.
func ReadGmsh22(filename string) (*geometry.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	m := &geometry.Mesh{}
	nodeIndex := make(map[int]int)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "$MeshFormat":
			if err := readGmshFormat(scanner); err != nil {
				return nil, err
			}

		case "$Nodes":
			if err := readGmshNodes(scanner, m, nodeIndex); err != nil {
				return nil, err
			}

		case "$Elements":
			if err := readGmshElements(scanner, m, nodeIndex); err != nil {
				return nil, err
			}

		default:
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				// Skip sections we do not consume.
				endMarker := "$End" + line[1:]
				for scanner.Scan() {
					if strings.TrimSpace(scanner.Text()) == endMarker {
						break
					}
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	return m, nil
}

func readGmshFormat(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}
	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2.") {
		return fmt.Errorf("unsupported msh format version %s, want 2.x", parts[0])
	}
	if fileType, _ := strconv.Atoi(parts[1]); fileType == 1 {
		return fmt.Errorf("binary msh files are not supported")
	}
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndMeshFormat" {
			break
		}
	}
	return nil
}

func readGmshNodes(scanner *bufio.Scanner, m *geometry.Mesh, nodeIndex map[int]int) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}
	numNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid node count: %v", err)
	}

	m.Vertices = make([][]float64, 0, numNodes)
	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return fmt.Errorf("invalid node line: %q", scanner.Text())
		}
		nodeID, _ := strconv.Atoi(fields[0])
		x, _ := strconv.ParseFloat(fields[1], 64)
		y, _ := strconv.ParseFloat(fields[2], 64)
		z, _ := strconv.ParseFloat(fields[3], 64)

		nodeIndex[nodeID] = len(m.Vertices)
		m.Vertices = append(m.Vertices, []float64{x, y, z})
	}

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndNodes" {
			break
		}
	}
	return nil
}

func readGmshElements(scanner *bufio.Scanner, m *geometry.Mesh, nodeIndex map[int]int) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}
	numElems, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid element count: %v", err)
	}

	for i := 0; i < numElems; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading elements")
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			return fmt.Errorf("invalid element line: %q", scanner.Text())
		}
		elemType, _ := strconv.Atoi(fields[1])
		numTags, _ := strconv.Atoi(fields[2])

		if elemType != gmshTetType {
			continue
		}
		nodeFields := fields[3+numTags:]
		if len(nodeFields) < 4 {
			return fmt.Errorf("tet element with %d nodes: %q", len(nodeFields), scanner.Text())
		}
		var tet [4]int
		for j := 0; j < 4; j++ {
			id, _ := strconv.Atoi(nodeFields[j])
			idx, ok := nodeIndex[id]
			if !ok {
				return fmt.Errorf("element references unknown node %d", id)
			}
			tet[j] = idx
		}
		m.Tets = append(m.Tets, tet)
	}

	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndElements" {
			break
		}
	}
	return nil
}
