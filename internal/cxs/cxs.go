// Package cxs parses CrystalExplorer surface (.cxs) files: the vertex
// coordinates, triangle indices and per-vertex d_i / d_e distances that
// a Hirshfeld surface fingerprint is computed from.
package cxs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Surface holds the blocks of a .cxs file needed for fingerprinting.
// Triangles index into Vertices, DI and DE, which share one ordering.
type Surface struct {
	Vertices  []r3.Vec
	Triangles [][3]int
	DI        []float64
	DE        []float64
}

// ParseFile reads and parses the named .cxs file.
func ParseFile(path string) (*Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// Parse reads a .cxs stream. Blocks are delimited by
// "begin <name> <count>" and "end <name>" lines; content outside the
// four blocks of interest is ignored. Each declared count must match
// the number of entries collected, and every triangle index must refer
// to an existing vertex.
func Parse(r io.Reader) (*Surface, error) {
	s := &Surface{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	var (
		block string
		want  int
		line  int
	)

	flush := func() error {
		var got int
		switch block {
		case "vertices":
			got = len(s.Vertices)
		case "indices":
			got = len(s.Triangles)
		case "d_i":
			got = len(s.DI)
		case "d_e":
			got = len(s.DE)
		}
		if got != want {
			return fmt.Errorf("block %s declares %d entries, found %d", block, want, got)
		}
		return nil
	}

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		if name, count, ok := blockHeader(text); ok {
			if block != "" {
				return nil, fmt.Errorf("line %d: begin %s inside unterminated block %s", line, name, block)
			}
			block, want = name, count
			continue
		}
		if name, ok := blockFooter(text); ok {
			if name != block {
				// "end" for a block we are not collecting.
				continue
			}
			if err := flush(); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			block = ""
			continue
		}
		if block == "" || text == "" {
			continue
		}

		var err error
		switch block {
		case "vertices":
			err = s.appendVertex(text)
		case "indices":
			err = s.appendTriangle(text)
		case "d_i":
			err = appendScalar(&s.DI, text)
		case "d_e":
			err = appendScalar(&s.DE, text)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if block != "" {
		return nil, fmt.Errorf("unterminated block %s", block)
	}

	if len(s.Vertices) == 0 {
		return nil, fmt.Errorf("no vertices block found")
	}
	if len(s.DI) != len(s.Vertices) || len(s.DE) != len(s.Vertices) {
		return nil, fmt.Errorf("vertex count %d does not match d_i count %d / d_e count %d",
			len(s.Vertices), len(s.DI), len(s.DE))
	}
	for i, tri := range s.Triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(s.Vertices) {
				return nil, fmt.Errorf("triangle %d references vertex %d of %d", i, idx, len(s.Vertices))
			}
		}
	}

	return s, nil
}

// blockHeader recognizes "begin <name> <count>" for the blocks of
// interest.
func blockHeader(line string) (name string, count int, ok bool) {
	fields := strings.Fields(line)
	if len(fields) != 3 || fields[0] != "begin" {
		return "", 0, false
	}
	switch fields[1] {
	case "vertices", "indices", "d_i", "d_e":
	default:
		return "", 0, false
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return fields[1], n, true
}

func blockFooter(line string) (name string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 || fields[0] != "end" {
		return "", false
	}
	return fields[1], true
}

func (s *Surface) appendVertex(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return fmt.Errorf("vertex %q: want three coordinates", line)
	}
	var v [3]float64
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return fmt.Errorf("vertex %q: %w", line, err)
		}
		v[i] = f
	}
	s.Vertices = append(s.Vertices, r3.Vec{X: v[0], Y: v[1], Z: v[2]})
	return nil
}

func (s *Surface) appendTriangle(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return fmt.Errorf("triangle %q: want three indices", line)
	}
	var tri [3]int
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return fmt.Errorf("triangle %q: %w", line, err)
		}
		tri[i] = n
	}
	s.Triangles = append(s.Triangles, tri)
	return nil
}

func appendScalar(dst *[]float64, line string) error {
	f, err := strconv.ParseFloat(strings.Fields(line)[0], 64)
	if err != nil {
		return fmt.Errorf("scalar %q: %w", line, err)
	}
	*dst = append(*dst, f)
	return nil
}
