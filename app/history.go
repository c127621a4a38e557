package app

import (
	"database/sql"
	_ "embed"
	"time"

	_ "modernc.org/sqlite"

	"github.com/DavidABliss/directory-report-generator/models"
)

//go:embed schema.sql
var schemaSQL string

func RunMigrations(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	return err
}

func openHistoryDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// RecordScan appends one audit row for a completed scan and updates the
// last_scan metadata key. The CSV ledger stays the source of truth; this
// database exists for querying scan runs over time.
func RecordScan(dbPath string, col *models.ScanColumn, rootPath string) error {
	db, err := openHistoryDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	dirCount := len(col.Sizes) - 1 // TOTAL is not a directory
	now := time.Now()

	if _, err := db.Exec(`
		INSERT INTO scan_history (scan_time, scan_date, root_path, dir_count, total_bytes)
		VALUES (?, ?, ?, ?, ?)
	`, now.Unix(), col.Date, rootPath, dirCount, col.Sizes[models.TotalRow]); err != nil {
		return err
	}

	_, err = db.Exec(`INSERT OR REPLACE INTO metadata (key, value) VALUES ('last_scan', ?)`,
		now.Format(time.RFC3339))
	return err
}

// LastScan returns the recorded time of the most recent scan, or the zero
// time when none has been recorded yet.
func LastScan(dbPath string) (time.Time, error) {
	db, err := openHistoryDB(dbPath)
	if err != nil {
		return time.Time{}, err
	}
	defer db.Close()

	var value string
	err = db.QueryRow(`SELECT value FROM metadata WHERE key = 'last_scan'`).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}
