package models

type Config struct {
	RootPath     string   `mapstructure:"root_path"`
	OutputDir    string   `mapstructure:"output_dir"`
	ExcludePaths []string `mapstructure:"exclude_paths"`
	ScanWorkers  int      `mapstructure:"scan_workers"` // 0 = auto (CPU count)
	HistoryDB    string   `mapstructure:"history_db"`   // optional scan history database
	ScanDate     string   `mapstructure:"scan_date"`    // column label override, YYYY-MM-DD; empty = today
}
