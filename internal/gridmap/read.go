package gridmap

import (
	"fmt"
	"io"
	"os"
)

// ReadMap loads a whole fingerprint or difference map, blank separator
// lines included. A malformed line is an error; name labels the reader
// in diagnostics.
func ReadMap(name string, r io.Reader) ([]Record, error) {
	var records []Record

	s := newLineScanner(r)
	line := 0
	for s.Scan() {
		line++
		rec := Classify(s.Text())
		if rec.Kind == Malformed {
			return nil, fmt.Errorf("invalid line %d in %s: %q", line, name, s.Text())
		}
		records = append(records, rec)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return records, nil
}

// ReadMapFile loads the named map from disk.
func ReadMapFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	defer f.Close()
	return ReadMap(path, f)
}

// CountLines reports the number of lines in a map without retaining it,
// for the moderator's compatibility screen before pairing two maps.
func CountLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, &OpenError{Path: path, Err: err}
	}
	defer f.Close()

	s := newLineScanner(f)
	n := 0
	for s.Scan() {
		n++
	}
	if err := s.Err(); err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return n, nil
}
