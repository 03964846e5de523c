package fingerprint

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/cxs"
)

// BinWidth is the (d_i, d_e) grid increment recommended by Rohl et al.
// for CrystalExplorer exports, in Angstrom.
const BinWidth = 0.01

// MapRange bounds the (d_i, d_e) grid of a fingerprint map. Both axes
// share the same bounds.
type MapRange struct {
	Name string
	Min  float64
	Max  float64
}

var (
	// Standard covers 0.40–2.60 A, the common organic-molecule window.
	Standard = MapRange{Name: "standard", Min: 0.40, Max: 2.60}

	// Translated covers 0.80–3.00 A for structures with heavier atoms.
	Translated = MapRange{Name: "translated", Min: 0.80, Max: 3.00}

	// Extended covers 0.40–3.00 A and contains the other two ranges;
	// maps of this range are what the difference tools usually consume.
	Extended = MapRange{Name: "extended", Min: 0.40, Max: 3.00}
)

// ParseMapRange accepts a range name or its single-letter shorthand.
func ParseMapRange(s string) (MapRange, error) {
	switch s {
	case "standard", "s":
		return Standard, nil
	case "translated", "t":
		return Translated, nil
	case "extended", "e":
		return Extended, nil
	}
	return MapRange{}, fmt.Errorf("unknown map range %q (want standard, translated or extended)", s)
}

// Bins reports the number of grid points per axis, bounds included.
func (r MapRange) Bins() int {
	return int(math.Round((r.Max-r.Min)/BinWidth)) + 1
}

// Grid is a normalized fingerprint: for every (d_i, d_e) bin the
// percentage of the total Hirshfeld surface area falling into it.
type Grid struct {
	Range MapRange

	// TotalArea is the integral surface area over all valid triangles,
	// the normalization denominator.
	TotalArea float64

	// Degenerate counts triangles rejected by the area formula;
	// OutOfRange counts triangles whose mean (d_i, d_e) misses the grid.
	Degenerate int
	OutOfRange int

	vals []float64 // row-major, d_i outer, d_e inner
}

// Bins reports the per-axis grid point count.
func (g *Grid) Bins() int { return g.Range.Bins() }

// DI reports the d_i coordinate of row i.
func (g *Grid) DI(i int) float64 { return g.Range.Min + float64(i)*BinWidth }

// DE reports the d_e coordinate of column j.
func (g *Grid) DE(j int) float64 { return g.Range.Min + float64(j)*BinWidth }

// At reports the normalized surface percentage of bin (i, j).
func (g *Grid) At(i, j int) float64 { return g.vals[i*g.Bins()+j] }

// New bins a parsed CrystalExplorer surface into a normalized
// fingerprint grid. Per triangle, the area is attributed to the bin of
// the mean (d_i, d_e) over its three vertices; bin values are then
// normalized by the total area and scaled to percent.
func New(s *cxs.Surface, algo Algorithm, rng MapRange) (*Grid, error) {
	if len(s.Triangles) == 0 {
		return nil, fmt.Errorf("surface has no triangles")
	}

	bins := rng.Bins()
	g := &Grid{Range: rng, vals: make([]float64, bins*bins)}

	// Collect areas first so the total is a single compensated sum; the
	// individual triangle areas are tiny against their running total.
	areas := make([]float64, 0, len(s.Triangles))
	binIdx := make([]int, 0, len(s.Triangles))

	for _, tri := range s.Triangles {
		a, b, c := s.Vertices[tri[0]], s.Vertices[tri[1]], s.Vertices[tri[2]]
		area, ok := TriangleArea(algo, a, b, c)
		if !ok {
			g.Degenerate++
			continue
		}

		di := (s.DI[tri[0]] + s.DI[tri[1]] + s.DI[tri[2]]) / 3
		de := (s.DE[tri[0]] + s.DE[tri[1]] + s.DE[tri[2]]) / 3

		i := binOf(di, rng)
		j := binOf(de, rng)
		if i < 0 || i >= bins || j < 0 || j >= bins {
			// Still part of the surface, so it contributes to the
			// normalization denominator.
			g.OutOfRange++
			areas = append(areas, area)
			binIdx = append(binIdx, -1)
			continue
		}

		areas = append(areas, area)
		binIdx = append(binIdx, i*bins+j)
	}

	g.TotalArea = floats.Sum(areas)
	if g.TotalArea <= 0 {
		return nil, fmt.Errorf("surface has no measurable area")
	}

	for k, idx := range binIdx {
		if idx >= 0 {
			g.vals[idx] += areas[k]
		}
	}
	scale := 100.0 / g.TotalArea
	floats.Scale(scale, g.vals)

	return g, nil
}

func binOf(v float64, rng MapRange) int {
	return int(math.Round((v - rng.Min) / BinWidth))
}

// WriteDat emits the dense grid in the .dat layout the plotting tools
// expect: one "d_i d_e z" line per bin, d_i as the outer loop, and a
// blank separator line after each completed d_e sweep.
func (g *Grid) WriteDat(w io.Writer) error {
	out := bufio.NewWriter(w)
	bins := g.Bins()

	for i := 0; i < bins; i++ {
		for j := 0; j < bins; j++ {
			if _, err := fmt.Fprintf(out, "%4.2f %4.2f %10.8f\n", g.DI(i), g.DE(j), g.At(i, j)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
	}
	return out.Flush()
}
