// Package gridmap reads, classifies and compares normalized 2D Hirshfeld
// surface fingerprint maps: text files of whitespace-separated (x, y, z)
// triplets with blank separator lines between grid rows.
package gridmap

import (
	"strconv"
	"strings"
)

// Kind classifies one line of a fingerprint map.
type Kind int

const (
	// Blank is an empty or whitespace-only line, used by plotting tools
	// as a grid row separator.
	Blank Kind = iota

	// Triplet is a data line whose first three fields parse as floats.
	// Fields beyond the third are ignored.
	Triplet

	// Malformed is any other line: one or two fields, or a non-numeric
	// field where a number was expected.
	Malformed
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Triplet:
		return "triplet"
	case Malformed:
		return "malformed"
	}
	return "unknown"
}

// Record is one classified line of a fingerprint map. X, Y and Z are
// only meaningful when Kind is Triplet.
type Record struct {
	Kind    Kind
	X, Y, Z float64
}

// Classify parses one line of a fingerprint map. Leading and trailing
// whitespace is insignificant.
func Classify(line string) Record {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Record{Kind: Blank}
	}
	if len(fields) < 3 {
		return Record{Kind: Malformed}
	}

	var vals [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Record{Kind: Malformed}
		}
		vals[i] = v
	}
	return Record{Kind: Triplet, X: vals[0], Y: vals[1], Z: vals[2]}
}
