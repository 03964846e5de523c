package gridmap

import "fmt"

// OpenError reports an input map that could not be opened for reading.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("could not open file %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// LengthMismatchError reports that one map has more lines than the other.
type LengthMismatchError struct {
	Longer  string
	Shorter string
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("file %s is longer than file %s", e.Longer, e.Shorter)
}

// StructuralMismatchError reports a line pair that disagrees in kind
// (blank against triplet), or a line that is malformed in either map.
// File and Text identify the offending side.
type StructuralMismatchError struct {
	File  string
	Line  int
	Text  string
	KindA Kind
	KindB Kind
}

func (e *StructuralMismatchError) Error() string {
	return fmt.Sprintf("invalid line %d in %s: %q (%s vs %s)",
		e.Line, e.File, e.Text, e.KindA, e.KindB)
}
