package report

import (
	"path/filepath"
	"testing"
)

func TestLedgerRoundTrip(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	runID, err := db.BeginRun("pyridine series")
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if runID == "" {
		t.Fatal("BeginRun returned an empty run id")
	}

	if err := db.RecordComparison(runID, "alpha", "beta", 0.0321, 68121); err != nil {
		t.Fatalf("RecordComparison: %v", err)
	}
	if err := db.RecordComparison(runID, "alpha", "gamma", 0.1250, 68121); err != nil {
		t.Fatalf("RecordComparison: %v", err)
	}

	got, err := db.Comparisons(runID)
	if err != nil {
		t.Fatalf("Comparisons: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d comparisons, want 2", len(got))
	}
	// Ordered by descending difference number.
	if got[0].Probe != "gamma" || got[1].Probe != "beta" {
		t.Errorf("unexpected order: %q then %q", got[0].Probe, got[1].Probe)
	}
	if got[0].DiffNumber != 0.1250 {
		t.Errorf("DiffNumber = %v, want 0.1250", got[0].DiffNumber)
	}
	if got[0].MapLines != 68121 {
		t.Errorf("MapLines = %d, want 68121", got[0].MapLines)
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	db.Close()

	// Reopening an already migrated ledger must not fail.
	db, err = Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	db.Close()
}

func TestComparisonsUnknownRun(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	got, err := db.Comparisons("no-such-run")
	if err != nil {
		t.Fatalf("Comparisons: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d comparisons for unknown run, want 0", len(got))
	}
}
