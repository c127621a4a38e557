package models

// TotalRow is the reserved row name holding the sum of all directory rows.
const TotalRow = "TOTAL"

// ScanColumn is the result of one scan: sizes in bytes per top-level
// directory, keyed by directory name, plus a TotalRow entry.
type ScanColumn struct {
	Date  string
	Sizes map[string]int64
}

// Ledger is the cumulative size history: one row per directory name plus
// TOTAL, one column per scan date. A missing cell means the directory was
// not present in that scan, which is distinct from a size of zero.
type Ledger struct {
	Dates []string                    // chronological insertion order
	Names []string                    // first-appearance order, TOTAL excluded
	Cells map[string]map[string]int64 // name -> date -> bytes
}

func NewLedger() *Ledger {
	return &Ledger{Cells: make(map[string]map[string]int64)}
}

func (l *Ledger) Cell(name, date string) (int64, bool) {
	row, ok := l.Cells[name]
	if !ok {
		return 0, false
	}
	size, ok := row[date]
	return size, ok
}

func (l *Ledger) SetCell(name, date string, size int64) {
	row, ok := l.Cells[name]
	if !ok {
		row = make(map[string]int64)
		l.Cells[name] = row
	}
	row[date] = size
}

type ChangeStatus string

const (
	StatusAdded     ChangeStatus = "added"
	StatusRemoved   ChangeStatus = "removed"
	StatusGrew      ChangeStatus = "grew"
	StatusShrank    ChangeStatus = "shrank"
	StatusUnchanged ChangeStatus = "unchanged"
)

// GrowthRecord compares one directory across the two most recent scans.
type GrowthRecord struct {
	Name         string
	SizePrev     int64
	HasPrev      bool
	SizeCurr     int64
	HasCurr      bool
	DeltaBytes   int64
	PercentDelta float64
	HasPercent   bool // false when the directory is new or was empty before
	Status       ChangeStatus
}

// GrowthReport is the full comparison of the two most recent scan columns.
// TOTAL is carried as a summary, never as a GrowthRecord.
type GrowthReport struct {
	CurrDate     string
	PrevDate     string // empty when only one scan exists
	TotalCurr    int64
	TotalPrev    int64
	HasTotalPrev bool
	Records      []GrowthRecord
}

// ScanStats counts what a scan touched, for end-of-scan logging.
type ScanStats struct {
	FilesSeen int64
	DirsSeen  int64
	Skipped   int64
}
