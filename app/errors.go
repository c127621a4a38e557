package app

import "fmt"

// PathError means the root path is missing, not a directory, or unreadable
// at the top level. Nothing is written when it occurs.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("root path %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// CorruptLedgerError means the persisted ledger exists but cannot be parsed
// into the expected shape. The run aborts rather than overwrite history.
type CorruptLedgerError struct {
	Path   string
	Reason string
}

func (e *CorruptLedgerError) Error() string {
	return fmt.Sprintf("ledger %s is corrupt: %s (rename or inspect the file before re-running)", e.Path, e.Reason)
}

// WriteError means an output file could not be written or the atomic swap
// failed. The previously committed ledger is left intact.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
