// Package diffnum computes the difference number of a Hirshfeld
// surface difference map: the sum of the absolute z values across the
// map. The larger the number, the more the two compared fingerprints
// differ.
package diffnum

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/gridmap"
)

// Sum reads a difference map and reports its difference number. Blank
// separator lines are skipped; a malformed line is an error. name
// labels the reader in diagnostics.
func Sum(name string, r io.Reader) (float64, error) {
	records, err := gridmap.ReadMap(name, r)
	if err != nil {
		return 0, err
	}

	abs := make([]float64, 0, len(records))
	for _, rec := range records {
		if rec.Kind == gridmap.Triplet {
			abs = append(abs, math.Abs(rec.Z))
		}
	}
	return floats.Sum(abs), nil
}

// SumFile reports the difference number of the named map.
func SumFile(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &gridmap.OpenError{Path: path, Err: err}
	}
	defer f.Close()
	return Sum(path, f)
}

// Discover lists the difference maps (diff*.dat) in dir, sorted by
// name, the file set the original tooling walked.
func Discover(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "diff*.dat"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}
