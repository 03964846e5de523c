package workshop

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/fingerprint"
	"github.com/nbehrnd/Hirshfeld-surfaces-fingerprint/internal/fsutil"
)

const testCXS = `begin vertices 4
0.0 0.0 0.0
1.0 0.0 0.0
0.0 1.0 0.0
1.0 1.0 0.0
end vertices
begin indices 2
0 1 2
1 3 2
end indices
begin d_i 4
1.00
1.00
1.00
1.00
end d_i
begin d_e 4
1.20
1.20
1.20
1.20
end d_e
`

func newTestWorkshop(t *testing.T) (*Workshop, *fsutil.MemoryFileSystem) {
	t.Helper()

	old := Logf
	Logf = func(string, ...interface{}) {}
	t.Cleanup(func() { Logf = old })

	mfs := fsutil.NewMemoryFileSystem()
	return &Workshop{
		FS:   mfs,
		Root: "/project",
		Dir:  "/project/cxs_workshop",
	}, mfs
}

func TestJoinTruncatesNames(t *testing.T) {
	w, mfs := newTestWorkshop(t)

	files := map[string]string{
		"/project/alpha_CrystalExplorer.cxs": testCXS,
		"/project/beta.cxs":                  testCXS,
		"/project/notes.txt":                 "ignored",
	}
	for name, content := range files {
		if err := mfs.WriteFile(name, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := w.Join(); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	for _, want := range []string{"alpha.cxs", "beta.cxs"} {
		if !mfs.Exists(filepath.Join(w.Dir, want)) {
			t.Errorf("expected staged %s", want)
		}
	}
	if mfs.Exists(filepath.Join(w.Dir, "notes.txt")) {
		t.Error("non-cxs file was staged")
	}
}

func TestJoinWithoutSources(t *testing.T) {
	w, _ := newTestWorkshop(t)
	if err := w.Join(); err == nil {
		t.Fatal("expected an error for an empty project folder")
	}
}

func TestNormalizeWritesDat(t *testing.T) {
	w, mfs := newTestWorkshop(t)
	if err := mfs.WriteFile(filepath.Join(w.Dir, "alpha.cxs"), []byte(testCXS), 0644); err != nil {
		t.Fatal(err)
	}

	if err := w.Normalize(fingerprint.Kahan, fingerprint.Extended); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	data, err := mfs.ReadFile(filepath.Join(w.Dir, "alpha.dat"))
	if err != nil {
		t.Fatalf("missing alpha.dat: %v", err)
	}
	if !strings.HasPrefix(string(data), "0.40 0.40 ") {
		t.Errorf("unexpected .dat head %q", string(data)[:20])
	}
}

func TestCompareAllRoundRobin(t *testing.T) {
	w, mfs := newTestWorkshop(t)

	m := "0.40 0.40 0.100000\n\n0.41 0.40 0.200000\n"
	for _, name := range []string{"a.dat", "b.dat", "c.dat"} {
		if err := mfs.WriteFile(filepath.Join(w.Dir, name), []byte(m), 0644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := w.CompareAll()
	if err != nil {
		t.Fatalf("CompareAll failed: %v", err)
	}

	var got []string
	for _, c := range results {
		got = append(got, filepath.Base(c.Output))
	}
	want := []string{"diff_a_b.dat", "diff_a_c.dat", "diff_b_c.dat"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}

	for _, name := range want {
		data, err := mfs.ReadFile(filepath.Join(w.Dir, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if string(data) != "0.40 0.40  0.000000\n\n0.41 0.40  0.000000\n" {
			t.Errorf("%s content %q", name, data)
		}
	}
}

func TestCompareAllSkipsMismatchedRanges(t *testing.T) {
	w, mfs := newTestWorkshop(t)

	short := "0.40 0.40 0.100000\n"
	long := "0.40 0.40 0.100000\n0.40 0.41 0.200000\n"
	if err := mfs.WriteFile(filepath.Join(w.Dir, "a.dat"), []byte(short), 0644); err != nil {
		t.Fatal(err)
	}
	if err := mfs.WriteFile(filepath.Join(w.Dir, "b.dat"), []byte(long), 0644); err != nil {
		t.Fatal(err)
	}

	results, err := w.CompareAll()
	if err != nil {
		t.Fatalf("CompareAll failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no comparisons, got %v", results)
	}
}

func TestCompareAllIgnoresExistingDiffMaps(t *testing.T) {
	w, mfs := newTestWorkshop(t)

	m := "0.40 0.40 0.100000\n"
	for _, name := range []string{"a.dat", "b.dat", "diff_old_run.dat"} {
		if err := mfs.WriteFile(filepath.Join(w.Dir, name), []byte(m), 0644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := w.CompareAll()
	if err != nil {
		t.Fatalf("CompareAll failed: %v", err)
	}
	if len(results) != 1 || filepath.Base(results[0].Output) != "diff_a_b.dat" {
		t.Errorf("unexpected results %v", results)
	}
}

func TestDifferenceNumbers(t *testing.T) {
	w, mfs := newTestWorkshop(t)

	maps := map[string]string{
		"diff_a_b.dat": "0.40 0.40 0.010000\n\n0.41 0.40 -0.020000\n",
		"diff_a_c.dat": "0.40 0.40 0.000000\n",
	}
	for name, content := range maps {
		if err := mfs.WriteFile(filepath.Join(w.Dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := w.DifferenceNumbers()
	if err != nil {
		t.Fatalf("DifferenceNumbers failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if filepath.Base(results[0].Map) != "diff_a_b.dat" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if got := results[0].Sum; got < 0.03-1e-12 || got > 0.03+1e-12 {
		t.Errorf("results[0].Sum = %v, want 0.03", got)
	}
	if results[1].Sum != 0 {
		t.Errorf("results[1] = %+v", results[1])
	}
}

func TestTruncateName(t *testing.T) {
	tests := map[string]string{
		"alpha_CrystalExplorer.cxs": "alpha.cxs",
		"beta.cxs":                  "beta.cxs",
		"_odd.cxs":                  "_odd.cxs",
		"a_b_c.cxs":                 "a.cxs",
	}
	for in, want := range tests {
		if got := truncateName(in); got != want {
			t.Errorf("truncateName(%q) = %q, want %q", in, got, want)
		}
	}
}
