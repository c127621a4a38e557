package app

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/DavidABliss/directory-report-generator/models"
)

// Run executes one full cycle: scan the root, merge the result into the
// persisted ledger, atomically replace the ledger, then write the growth
// report comparing the two most recent scans.
func Run(cfg *models.Config) error {
	if cfg.RootPath == "" {
		return fmt.Errorf("root path is required")
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}

	date := cfg.ScanDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	scanner := NewScanner(cfg.RootPath, cfg.ExcludePaths, cfg.ScanWorkers)
	col, err := scanner.Collect(date)
	if err != nil {
		return err
	}

	ledgerPath := filepath.Join(cfg.OutputDir, LedgerFileName)
	ledger, err := LoadLedger(ledgerPath)
	if err != nil {
		return err
	}

	merged := MergeColumn(ledger, col)
	if err := PersistLedger(merged, ledgerPath); err != nil {
		return err
	}
	log.Printf("Ledger updated: %s (%d directories, %d scan columns)", ledgerPath, len(merged.Names), len(merged.Dates))

	report, err := Analyze(merged)
	if err != nil {
		return err
	}

	reportPath := filepath.Join(cfg.OutputDir, ReportFileName)
	if err := WriteReport(report, reportPath); err != nil {
		return err
	}
	log.Printf("Report written: %s", reportPath)

	if cfg.HistoryDB != "" {
		last, err := LastScan(cfg.HistoryDB)
		switch {
		case err != nil:
			log.Printf("Failed to read last scan from %s: %v", cfg.HistoryDB, err)
		case !last.IsZero():
			log.Printf("Previous recorded scan: %s", last.Format(time.RFC3339))
		}
		// Best effort: the ledger and report are already committed.
		if err := RecordScan(cfg.HistoryDB, col, cfg.RootPath); err != nil {
			log.Printf("Failed to record scan history in %s: %v", cfg.HistoryDB, err)
		}
	}

	return nil
}
