// Package plotting renders fingerprint and difference maps: static
// heatmaps via gonum/plot (.png, .pdf), interactive HTML overviews via
// go-echarts, and gnuplot scripts for users who keep the historic
// gnuplot pipeline.
package plotting

import (
	"fmt"
	"math"
	"sort"

	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/gridmap"
)

// Default color ranges: fingerprints plot 0..ZMaxFingerprint percent
// per bin, difference maps plot a symmetric ±ZMaxDifference band.
const (
	ZMaxFingerprint = 0.08
	ZMaxDifference  = 0.025
)

// Map is a dense (d_i, d_e) grid assembled from the records of one
// .dat file, in the shape the heatmap renderers consume.
type Map struct {
	Name string
	DI   []float64 // sorted unique d_i values (plot x axis)
	DE   []float64 // sorted unique d_e values (plot y axis)

	vals []float64 // len(DI)*len(DE), d_i major
}

// FromRecords assembles a Map from a loaded .dat file. Blank separator
// records are skipped; bins absent from the file stay zero.
func FromRecords(name string, records []gridmap.Record) (*Map, error) {
	diSet := map[int]struct{}{}
	deSet := map[int]struct{}{}

	type point struct{ di, de int }
	points := map[point]float64{}

	for _, rec := range records {
		if rec.Kind != gridmap.Triplet {
			continue
		}
		di := centibin(rec.X)
		de := centibin(rec.Y)
		diSet[di] = struct{}{}
		deSet[de] = struct{}{}
		points[point{di, de}] = rec.Z
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%s: no data points", name)
	}

	m := &Map{
		Name: name,
		DI:   sortedCoords(diSet),
		DE:   sortedCoords(deSet),
	}
	m.vals = make([]float64, len(m.DI)*len(m.DE))

	diIdx := indexOf(m.DI)
	deIdx := indexOf(m.DE)
	for p, z := range points {
		i := diIdx[p.di]
		j := deIdx[p.de]
		m.vals[i*len(m.DE)+j] = z
	}
	return m, nil
}

// LoadMapFile reads and assembles the named .dat map.
func LoadMapFile(path string) (*Map, error) {
	records, err := gridmap.ReadMapFile(path)
	if err != nil {
		return nil, err
	}
	return FromRecords(path, records)
}

// centibin keys a coordinate by its 0.01 A bin.
func centibin(v float64) int { return int(math.Round(v * 100)) }

func sortedCoords(set map[int]struct{}) []float64 {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	coords := make([]float64, len(keys))
	for i, k := range keys {
		coords[i] = float64(k) / 100
	}
	return coords
}

func indexOf(coords []float64) map[int]int {
	idx := make(map[int]int, len(coords))
	for i, c := range coords {
		idx[centibin(c)] = i
	}
	return idx
}

// MinMax reports the z extrema of the map.
func (m *Map) MinMax() (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range m.vals {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	return min, max
}

// Dims, X, Y and Z implement gonum's plotter.GridXYZ over the map,
// with d_i on the x axis and d_e on the y axis.
func (m *Map) Dims() (c, r int) { return len(m.DI), len(m.DE) }

func (m *Map) X(c int) float64 { return m.DI[c] }

func (m *Map) Y(r int) float64 { return m.DE[r] }

func (m *Map) Z(c, r int) float64 { return m.vals[c*len(m.DE)+r] }
