package app

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/DavidABliss/directory-report-generator/models"
)

const (
	LedgerFileName = "directory_report.csv"
	ReportFileName = "directory_report.txt"

	// First header cell of the persisted ledger; the remaining header
	// cells are ISO 8601 scan dates.
	dateHeader = "DATE"

	bytesPerGiB = 1 << 30
)

// Cells are held in bytes in memory and persisted as GiB at two decimals.
// The round trip is stable: formatting a loaded cell reproduces the
// persisted text.

func bytesToGiBCell(size int64) string {
	return strconv.FormatFloat(float64(size)/bytesPerGiB, 'f', 2, 64)
}

func gibCellToBytes(cell string) (int64, error) {
	gib, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(gib * bytesPerGiB)), nil
}

// LoadLedger reads the persisted ledger. A missing file yields an empty
// ledger; a malformed one fails with CorruptLedgerError so history is never
// silently discarded.
func LoadLedger(path string) (*models.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewLedger(), nil
		}
		return nil, fmt.Errorf("failed to open ledger %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, &CorruptLedgerError{Path: path, Reason: err.Error()}
	}
	if len(records) == 0 {
		return models.NewLedger(), nil
	}

	header := records[0]
	if header[0] != dateHeader {
		return nil, &CorruptLedgerError{Path: path, Reason: fmt.Sprintf("first header cell is %q, want %q", header[0], dateHeader)}
	}

	ledger := models.NewLedger()
	ledger.Dates = append(ledger.Dates, header[1:]...)

	seen := make(map[string]bool)
	for _, row := range records[1:] {
		name := row[0]
		if name == "" {
			return nil, &CorruptLedgerError{Path: path, Reason: "row with empty name"}
		}
		if seen[name] {
			return nil, &CorruptLedgerError{Path: path, Reason: fmt.Sprintf("duplicate row %q", name)}
		}
		seen[name] = true
		if len(row) > len(header) {
			return nil, &CorruptLedgerError{Path: path, Reason: fmt.Sprintf("row %q has %d cells, header has %d", name, len(row), len(header))}
		}
		if name != models.TotalRow {
			ledger.Names = append(ledger.Names, name)
		}
		for i, cell := range row[1:] {
			if cell == "" {
				continue
			}
			size, err := gibCellToBytes(cell)
			if err != nil {
				return nil, &CorruptLedgerError{Path: path, Reason: fmt.Sprintf("row %q column %s: non-numeric cell %q", name, ledger.Dates[i], cell)}
			}
			ledger.SetCell(name, ledger.Dates[i], size)
		}
	}

	return ledger, nil
}

// MergeColumn returns a new ledger with the scan column appended. Prior
// columns and their cells are preserved unchanged; a directory absent from
// the new column keeps a blank cell there (removal, not zero). Re-running a
// date drops the old column for that date first, so last write wins. TOTAL
// is recomputed for the new column only.
func MergeColumn(ledger *models.Ledger, col *models.ScanColumn) *models.Ledger {
	merged := models.NewLedger()
	merged.Names = append(merged.Names, ledger.Names...)
	for _, date := range ledger.Dates {
		if date == col.Date {
			continue
		}
		merged.Dates = append(merged.Dates, date)
	}

	for name, row := range ledger.Cells {
		for _, date := range merged.Dates {
			if size, ok := row[date]; ok {
				merged.SetCell(name, date, size)
			}
		}
	}

	merged.Dates = append(merged.Dates, col.Date)

	known := make(map[string]bool, len(merged.Names))
	for _, name := range merged.Names {
		known[name] = true
	}

	var added []string
	var total int64
	for name, size := range col.Sizes {
		if name == models.TotalRow {
			continue
		}
		if !known[name] {
			added = append(added, name)
		}
		merged.SetCell(name, col.Date, size)
		total += size
	}
	sort.Strings(added)
	merged.Names = append(merged.Names, added...)
	merged.SetCell(models.TotalRow, col.Date, total)

	return merged
}

// tempLedgerPath derives the temporary spreadsheet name written before the
// atomic swap, e.g. directory_report.csv -> directory_report_new.csv.
func tempLedgerPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_new" + ext
}

// PersistLedger serializes the full ledger to a temporary file in the same
// directory, then atomically replaces path with it. A crash mid-write leaves
// the previously committed ledger untouched; readers see either the fully
// old or fully new version, never a partial one.
func PersistLedger(ledger *models.Ledger, path string) error {
	tmpPath := tempLedgerPath(path)
	f, err := os.Create(tmpPath)
	if err != nil {
		return &WriteError{Path: tmpPath, Err: err}
	}

	w := csv.NewWriter(f)
	if err := writeLedger(w, ledger); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return &WriteError{Path: tmpPath, Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return &WriteError{Path: tmpPath, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: tmpPath, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func writeLedger(w *csv.Writer, ledger *models.Ledger) error {
	header := append([]string{dateHeader}, ledger.Dates...)
	if err := w.Write(header); err != nil {
		return err
	}

	writeRow := func(name string) error {
		row := make([]string, 0, len(ledger.Dates)+1)
		row = append(row, name)
		for _, date := range ledger.Dates {
			if size, ok := ledger.Cell(name, date); ok {
				row = append(row, bytesToGiBCell(size))
			} else {
				row = append(row, "")
			}
		}
		return w.Write(row)
	}

	for _, name := range ledger.Names {
		if err := writeRow(name); err != nil {
			return err
		}
	}
	// TOTAL renders last
	return writeRow(models.TotalRow)
}
