package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/DavidABliss/directory-report-generator/app"
	"github.com/DavidABliss/directory-report-generator/models"
)

const (
	exitUsage         = 1
	exitPath          = 2
	exitCorruptLedger = 3
	exitWrite         = 4
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	rootPath := flag.String("root", "", "Drive or directory to be scanned")
	outputDir := flag.String("out", "", "Directory where both report files are written")
	workers := flag.Int("workers", 0, "Parallel scan workers (0 = number of CPUs)")
	scanDate := flag.String("date", "", "Scan date column label, YYYY-MM-DD (default today)")
	flag.Parse()

	cfg := &models.Config{}
	if *configPath != "" {
		loaded, err := app.LoadConfig(*configPath)
		if err != nil {
			log.Printf("Failed to load config: %v", err)
			os.Exit(exitUsage)
		}
		cfg = loaded
	}

	// Flags override config values
	if *rootPath != "" {
		cfg.RootPath = *rootPath
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *workers != 0 {
		cfg.ScanWorkers = *workers
	}
	if *scanDate != "" {
		cfg.ScanDate = *scanDate
	}

	if cfg.RootPath == "" || cfg.OutputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: a root path and an output directory are required. Use -root and -out, or -config.")
		os.Exit(exitUsage)
	}

	if err := app.Run(cfg); err != nil {
		log.Printf("error: %v", err)

		var pathErr *app.PathError
		var corruptErr *app.CorruptLedgerError
		var writeErr *app.WriteError
		switch {
		case errors.As(err, &pathErr):
			os.Exit(exitPath)
		case errors.As(err, &corruptErr):
			os.Exit(exitCorruptLedger)
		case errors.As(err, &writeErr):
			os.Exit(exitWrite)
		}
		os.Exit(exitUsage)
	}
}
