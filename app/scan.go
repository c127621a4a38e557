package app

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/DavidABliss/directory-report-generator/models"
)

// Scanner walks the immediate subdirectories of a root path and sums their
// recursive sizes. Symlinks are never followed: a symlink inside a tree
// counts its own size, and a top-level symlink is treated as a loose
// non-directory entry and excluded.
type Scanner struct {
	RootPath     string
	ExcludePaths []string
	NumWorkers   int

	filesSeen int64
	dirsSeen  int64
	skipped   int64
}

func NewScanner(rootPath string, excludePaths []string, numWorkers int) *Scanner {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Scanner{
		RootPath:     rootPath,
		ExcludePaths: excludePaths,
		NumWorkers:   numWorkers,
	}
}

// Collect produces the scan column for the given date: one entry per
// top-level subdirectory plus the TOTAL entry. Loose files directly under
// the root contribute nothing. Unreadable subpaths inside a directory are
// logged and skipped, so totals are a lower bound in that case.
func (s *Scanner) Collect(date string) (*models.ScanColumn, error) {
	entries, err := os.ReadDir(s.RootPath)
	if err != nil {
		return nil, &PathError{Path: s.RootPath, Err: err}
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if s.excluded(filepath.Join(s.RootPath, entry.Name())) {
			atomic.AddInt64(&s.skipped, 1)
			continue
		}
		dirs = append(dirs, entry.Name())
	}

	sizes := make([]int64, len(dirs))
	g := new(errgroup.Group)
	g.SetLimit(s.NumWorkers)
	for i, name := range dirs {
		i, name := i, name
		g.Go(func() error {
			log.Printf("Now reading directory: %s", name)
			sizes[i] = s.dirSize(filepath.Join(s.RootPath, name))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	col := &models.ScanColumn{
		Date:  date,
		Sizes: make(map[string]int64, len(dirs)+1),
	}
	var total int64
	for i, name := range dirs {
		col.Sizes[name] = sizes[i]
		total += sizes[i]
	}
	col.Sizes[models.TotalRow] = total

	log.Printf("Scanned %d directories under %s: %s total (%d files, %d entries skipped)",
		len(dirs), s.RootPath, humanize.IBytes(uint64(total)),
		atomic.LoadInt64(&s.filesSeen), atomic.LoadInt64(&s.skipped))

	return col, nil
}

// dirSize sums file sizes under dir. Each call runs in a single goroutine,
// so the local accumulator needs no synchronization.
func (s *Scanner) dirSize(dir string) int64 {
	var size int64
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			atomic.AddInt64(&s.skipped, 1)
			log.Printf("Skipping %s: %v", path, err)
			return nil
		}
		if s.excluded(path) {
			atomic.AddInt64(&s.skipped, 1)
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			atomic.AddInt64(&s.dirsSeen, 1)
			return nil
		}
		info, err := d.Info()
		if err != nil {
			atomic.AddInt64(&s.skipped, 1)
			log.Printf("Skipping %s: %v", path, err)
			return nil
		}
		atomic.AddInt64(&s.filesSeen, 1)
		size += info.Size()
		return nil
	})
	return size
}

func (s *Scanner) excluded(path string) bool {
	for _, exclude := range s.ExcludePaths {
		if matched, _ := filepath.Match(exclude, path); matched {
			return true
		}
		if strings.HasPrefix(path, exclude) {
			return true
		}
	}
	return false
}

func (s *Scanner) Stats() models.ScanStats {
	return models.ScanStats{
		FilesSeen: atomic.LoadInt64(&s.filesSeen),
		DirsSeen:  atomic.LoadInt64(&s.dirsSeen),
		Skipped:   atomic.LoadInt64(&s.skipped),
	}
}
