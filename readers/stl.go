package readers

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tissuemech/fesweep/geometry"
)

// ReadSTL reads an STL surface, ASCII or binary, welding duplicate
// vertices so shared triangle corners get one index.
func ReadSTL(filename string) (*geometry.Surface, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if isASCIISTL(data) {
		return readSTLASCII(data)
	}
	return readSTLBinary(data)
}

// isASCIISTL sniffs the format. A binary STL can legally start with
// "solid" in its 80-byte header, so require a "facet" keyword too.
func isASCIISTL(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.HasPrefix(bytes.TrimSpace(head), []byte("solid")) &&
		bytes.Contains(head, []byte("facet"))
}

type vertexWelder struct {
	index    map[[3]float64]int
	vertices [][]float64
}

func newVertexWelder() *vertexWelder {
	return &vertexWelder{index: make(map[[3]float64]int)}
}

func (w *vertexWelder) add(x, y, z float64) int {
	key := [3]float64{x, y, z}
	if i, ok := w.index[key]; ok {
		return i
	}
	i := len(w.vertices)
	w.index[key] = i
	w.vertices = append(w.vertices, []float64{x, y, z})
	return i
}

func readSTLASCII(data []byte) (*geometry.Surface, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	welder := newVertexWelder()
	var tris [][3]int

	var tri [3]int
	corner := 0
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("invalid vertex line: %q", scanner.Text())
			}
			x, err1 := strconv.ParseFloat(fields[1], 64)
			y, err2 := strconv.ParseFloat(fields[2], 64)
			z, err3 := strconv.ParseFloat(fields[3], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("invalid vertex coordinates: %q", scanner.Text())
			}
			if corner > 2 {
				return nil, fmt.Errorf("facet with more than 3 vertices")
			}
			tri[corner] = welder.add(x, y, z)
			corner++
		case "endfacet":
			if corner != 3 {
				return nil, fmt.Errorf("facet with %d vertices", corner)
			}
			tris = append(tris, tri)
			corner = 0
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &geometry.Surface{Vertices: welder.vertices, Tris: tris}, nil
}

func readSTLBinary(data []byte) (*geometry.Surface, error) {
	r := bytes.NewReader(data)
	if _, err := r.Seek(80, io.SeekStart); err != nil {
		return nil, fmt.Errorf("short binary stl header")
	}
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("reading triangle count: %v", err)
	}

	welder := newVertexWelder()
	tris := make([][3]int, 0, count)
	// Each record: normal (3f32), 3 vertices (9f32), attribute (u16).
	var rec struct {
		Normal [3]float32
		Verts  [3][3]float32
		Attrib uint16
	}
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("reading triangle %d: %v", i, err)
		}
		var tri [3]int
		for c := 0; c < 3; c++ {
			v := rec.Verts[c]
			tri[c] = welder.add(float64(v[0]), float64(v[1]), float64(v[2]))
		}
		tris = append(tris, tri)
	}
	return &geometry.Surface{Vertices: welder.vertices, Tris: tris}, nil
}
