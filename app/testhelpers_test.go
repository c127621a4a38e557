package app

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/DavidABliss/directory-report-generator/models"
)

// setupTestDir creates a temporary workspace for a test
func setupTestDir(t *testing.T) (string, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "dirreport_test_*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	cleanup := func() {
		os.RemoveAll(tmpDir)
	}

	return tmpDir, cleanup
}

// writeTestFile creates a file of the given size, creating parent
// directories as needed. Large sizes are sparse via Truncate, so multi-GiB
// trees cost no real disk space.
func writeTestFile(t *testing.T, path string, size int64) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		t.Fatalf("failed to size %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close %s: %v", path, err)
	}
}

// readCSVFile parses a persisted ledger file into raw rows
func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("failed to parse %s: %v", path, err)
	}
	return records
}

// buildLedger merges a sequence of scan columns into a fresh ledger
func buildLedger(t *testing.T, cols ...*models.ScanColumn) *models.Ledger {
	t.Helper()

	ledger := models.NewLedger()
	for _, col := range cols {
		ledger = MergeColumn(ledger, col)
	}
	return ledger
}

func column(date string, sizes map[string]int64) *models.ScanColumn {
	col := &models.ScanColumn{Date: date, Sizes: make(map[string]int64, len(sizes)+1)}
	var total int64
	for name, size := range sizes {
		col.Sizes[name] = size
		total += size
	}
	col.Sizes[models.TotalRow] = total
	return col
}
