package gridmap

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// maxLineLength caps a single input line at 1 MiB. The historic tool
// silently truncated lines at 255 characters; here an overlong line is
// surfaced as a read error instead.
const maxLineLength = 1 << 20

// Diff walks two fingerprint maps in lockstep, line by line, and writes
// the difference map to w: a blank output line for each pair of blank
// input lines, and "x1 y1 (z1-z2)" for each pair of triplets, with the
// coordinates taken from the first map. Any disagreement in line count
// or line kind is fatal; output already written stays written, since the
// result is streamed, not buffered.
//
// nameA and nameB label the two readers in diagnostics.
func Diff(nameA, nameB string, a, b io.Reader, w io.Writer) error {
	scanA := newLineScanner(a)
	scanB := newLineScanner(b)

	// Output already computed must reach w even when the diff aborts;
	// partial output is never retracted.
	out := bufio.NewWriter(w)
	defer out.Flush()

	line := 0

	for scanA.Scan() {
		line++
		if !scanB.Scan() {
			if err := scanB.Err(); err != nil {
				return fmt.Errorf("read %s: %w", nameB, err)
			}
			return &LengthMismatchError{Longer: nameA, Shorter: nameB}
		}

		recA := Classify(scanA.Text())
		recB := Classify(scanB.Text())

		switch {
		case recA.Kind == Blank && recB.Kind == Blank:
			if _, err := fmt.Fprintln(out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		case recA.Kind == Triplet && recB.Kind == Triplet:
			_, err := fmt.Fprintf(out, "%4.2f %4.2f %9.6f\n", recA.X, recA.Y, recA.Z-recB.Z)
			if err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		default:
			return structuralError(nameA, nameB, line, scanA.Text(), scanB.Text(), recA.Kind, recB.Kind)
		}
	}
	if err := scanA.Err(); err != nil {
		return fmt.Errorf("read %s: %w", nameA, err)
	}

	// A is exhausted; one more line in B means B is the longer map.
	if scanB.Scan() {
		return &LengthMismatchError{Longer: nameB, Shorter: nameA}
	}
	if err := scanB.Err(); err != nil {
		return fmt.Errorf("read %s: %w", nameB, err)
	}

	return out.Flush()
}

// structuralError pins the mismatch on the side that broke the pairing:
// a malformed line in map A, otherwise the line in map B that failed to
// match map A's kind.
func structuralError(nameA, nameB string, line int, textA, textB string, kindA, kindB Kind) error {
	if kindA == Malformed {
		return &StructuralMismatchError{
			File: nameA, Line: line, Text: textA, KindA: kindA, KindB: kindB,
		}
	}
	return &StructuralMismatchError{
		File: nameB, Line: line, Text: textB, KindA: kindA, KindB: kindB,
	}
}

// DiffFiles opens both named maps and streams their difference to w.
// Both files are closed on every return path.
func DiffFiles(pathA, pathB string, w io.Writer) error {
	fa, err := os.Open(pathA)
	if err != nil {
		return &OpenError{Path: pathA, Err: err}
	}
	defer fa.Close()

	fb, err := os.Open(pathB)
	if err != nil {
		return &OpenError{Path: pathB, Err: err}
	}
	defer fb.Close()

	return Diff(pathA, pathB, fa, fb, w)
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineLength)
	return s
}
