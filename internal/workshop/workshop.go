// Package workshop drives the moderator workflow: staging
// CrystalExplorer .cxs files into a working directory, normalizing them
// into fingerprint .dat maps, computing round-robin difference maps and
// the difference number per map.
package workshop

import (
	"bufio"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/cxs"
	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/diffnum"
	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/fingerprint"
	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/fsutil"
	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/gridmap"
)

// Logf is the package diagnostic logger, defaulting to log.Printf.
// Tests may redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// DirName is the staging directory created next to the .cxs sources.
const DirName = "cxs_workshop"

// Workshop stages and processes one project folder of .cxs files.
type Workshop struct {
	FS   fsutil.FileSystem
	Root string // project folder holding the .cxs sources
	Dir  string // staging directory, Root/cxs_workshop by default
}

// New returns a workshop over the host filesystem rooted at root.
func New(root string) *Workshop {
	return &Workshop{
		FS:   fsutil.OSFileSystem{},
		Root: root,
		Dir:  filepath.Join(root, DirName),
	}
}

// ListCXS lists the .cxs files in the project folder, sorted by name.
func (w *Workshop) ListCXS() ([]string, error) {
	return w.FS.Glob(w.Root, "*.cxs")
}

// Join recreates the staging directory and copies every .cxs into it.
// File names are truncated at the first underscore, so that
// "compound_CrystalExplorer.cxs" stages as "compound.cxs".
func (w *Workshop) Join() error {
	sources, err := w.ListCXS()
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no .cxs files in %s", w.Root)
	}

	if err := w.FS.RemoveAll(w.Dir); err != nil {
		return fmt.Errorf("clear %s: %w", w.Dir, err)
	}
	if err := w.FS.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", w.Dir, err)
	}

	for _, src := range sources {
		dst := filepath.Join(w.Dir, truncateName(filepath.Base(src)))
		if err := fsutil.CopyFile(w.FS, src, dst); err != nil {
			return err
		}
		Logf("staged %s as %s", filepath.Base(src), filepath.Base(dst))
	}
	return nil
}

// truncateName cuts a .cxs file name at the first underscore, keeping
// the extension.
func truncateName(name string) string {
	stem := strings.TrimSuffix(name, ".cxs")
	if i := strings.Index(stem, "_"); i > 0 {
		stem = stem[:i]
	}
	return stem + ".cxs"
}

// Normalize fingerprints every staged .cxs into a .dat map of the given
// range, using the given triangle area algorithm.
func (w *Workshop) Normalize(algo fingerprint.Algorithm, rng fingerprint.MapRange) error {
	staged, err := w.FS.Glob(w.Dir, "*.cxs")
	if err != nil {
		return err
	}
	if len(staged) == 0 {
		return fmt.Errorf("no staged .cxs files in %s (run join first)", w.Dir)
	}

	for _, path := range staged {
		if err := w.normalizeOne(path, algo, rng); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workshop) normalizeOne(path string, algo fingerprint.Algorithm, rng fingerprint.MapRange) error {
	f, err := w.FS.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	surface, err := cxs.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	Logf("%s: %d vertices, %d triangles", filepath.Base(path),
		len(surface.Vertices), len(surface.Triangles))

	grid, err := fingerprint.New(surface, algo, rng)
	if err != nil {
		return fmt.Errorf("fingerprint %s: %w", path, err)
	}
	if grid.Degenerate > 0 || grid.OutOfRange > 0 {
		Logf("%s: skipped %d degenerate and %d out-of-range triangles",
			filepath.Base(path), grid.Degenerate, grid.OutOfRange)
	}
	Logf("%s: total surface area %.5f", filepath.Base(path), grid.TotalArea)

	out, err := w.FS.Create(datName(path))
	if err != nil {
		return fmt.Errorf("create %s: %w", datName(path), err)
	}
	if err := grid.WriteDat(out); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", datName(path), err)
	}
	return out.Close()
}

func datName(cxsPath string) string {
	return strings.TrimSuffix(cxsPath, ".cxs") + ".dat"
}

// Comparison records one computed difference map.
type Comparison struct {
	Reference string // reference fingerprint .dat
	Probe     string // probe fingerprint .dat
	Output    string // resulting diff_<ref>_<probe>.dat
	Lines     int    // line count shared by both maps
}

// CompareAll pairs every staged fingerprint map against every other in
// a round-robin and writes one difference map per compatible pair, named
// diff_<reference-stem>_<probe>.dat. Pairs whose maps disagree in line
// count cover different map ranges and are skipped with a log line;
// structural defects inside a compatible pair abort the run.
func (w *Workshop) CompareAll() ([]Comparison, error) {
	register, err := w.fingerprints()
	if err != nil {
		return nil, err
	}

	var results []Comparison
	for len(register) > 1 {
		reference := register[0]
		for _, probe := range register[1:] {
			cmp, ok, err := w.compareOne(reference, probe)
			if err != nil {
				return results, err
			}
			if !ok {
				continue
			}
			results = append(results, cmp)
		}
		register = register[1:]
	}
	return results, nil
}

// fingerprints lists the staged .dat maps that are not difference maps.
func (w *Workshop) fingerprints() ([]string, error) {
	all, err := w.FS.Glob(w.Dir, "*.dat")
	if err != nil {
		return nil, err
	}
	register := all[:0]
	for _, path := range all {
		if !strings.HasPrefix(filepath.Base(path), "diff") {
			register = append(register, path)
		}
	}
	sort.Strings(register)
	return register, nil
}

func (w *Workshop) compareOne(reference, probe string) (Comparison, bool, error) {
	refLines, err := w.countLines(reference)
	if err != nil {
		return Comparison{}, false, err
	}
	probeLines, err := w.countLines(probe)
	if err != nil {
		return Comparison{}, false, err
	}
	if refLines != probeLines {
		Logf("skipping %s vs. %s: map ranges differ (%d vs. %d lines)",
			filepath.Base(reference), filepath.Base(probe), refLines, probeLines)
		return Comparison{}, false, nil
	}

	output := diffName(reference, probe)
	Logf("%s vs. %s yields %s",
		filepath.Base(reference), filepath.Base(probe), filepath.Base(output))

	fr, err := w.FS.Open(reference)
	if err != nil {
		return Comparison{}, false, fmt.Errorf("open %s: %w", reference, err)
	}
	defer fr.Close()

	fp, err := w.FS.Open(probe)
	if err != nil {
		return Comparison{}, false, fmt.Errorf("open %s: %w", probe, err)
	}
	defer fp.Close()

	out, err := w.FS.Create(output)
	if err != nil {
		return Comparison{}, false, fmt.Errorf("create %s: %w", output, err)
	}

	if err := gridmap.Diff(reference, probe, fr, fp, out); err != nil {
		out.Close()
		return Comparison{}, false, err
	}
	if err := out.Close(); err != nil {
		return Comparison{}, false, err
	}

	return Comparison{
		Reference: reference,
		Probe:     probe,
		Output:    output,
		Lines:     refLines,
	}, true, nil
}

// diffName builds the historic output name: diff_ + reference stem +
// "_" + probe file name.
func diffName(reference, probe string) string {
	refStem := strings.TrimSuffix(filepath.Base(reference), ".dat")
	return filepath.Join(filepath.Dir(reference),
		"diff_"+refStem+"_"+filepath.Base(probe))
}

func (w *Workshop) countLines(path string) (int, error) {
	f, err := w.FS.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 64*1024), 1<<20)
	n := 0
	for s.Scan() {
		n++
	}
	if err := s.Err(); err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return n, nil
}

// DiffNumber pairs a difference map with its difference number.
type DiffNumber struct {
	Map string
	Sum float64
}

// DifferenceNumbers computes the difference number of every diff*.dat
// in the staging directory, sorted by map name.
func (w *Workshop) DifferenceNumbers() ([]DiffNumber, error) {
	maps, err := w.FS.Glob(w.Dir, "diff*.dat")
	if err != nil {
		return nil, err
	}

	var results []DiffNumber
	for _, path := range maps {
		f, err := w.FS.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		sum, err := diffnum.Sum(path, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		results = append(results, DiffNumber{Map: path, Sum: sum})
	}
	return results, nil
}

// DifferenceMaps lists the staged diff*.dat files, sorted by name.
func (w *Workshop) DifferenceMaps() ([]string, error) {
	return w.FS.Glob(w.Dir, "diff*.dat")
}

// FingerprintMaps lists the staged non-diff .dat files, sorted by name.
func (w *Workshop) FingerprintMaps() ([]string, error) {
	return w.fingerprints()
}
