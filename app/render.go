package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/DavidABliss/directory-report-generator/models"
)

const (
	bytesPerTiB = 1 << 40

	// Sizes at or above this many GiB render in TiB.
	tibThresholdGiB = 1024
)

// formatSize renders bytes in GiB, switching to TiB at exactly 1024 GiB.
func formatSize(size int64) string {
	gib := float64(size) / bytesPerGiB
	if gib >= tibThresholdGiB {
		return fmt.Sprintf("%.2f TiB", float64(size)/bytesPerTiB)
	}
	return fmt.Sprintf("%.2f GiB", gib)
}

// formatDelta is always in GiB, signed, regardless of magnitude.
func formatDelta(delta int64) string {
	return fmt.Sprintf("%+.2f GiB", float64(delta)/bytesPerGiB)
}

func formatPercent(rec models.GrowthRecord) string {
	if !rec.HasPercent {
		return "N/A"
	}
	return fmt.Sprintf("%+.2f%%", rec.PercentDelta)
}

// RenderReport formats the growth report as human-readable text. The output
// is explicitly approximate: GiB and TiB at two decimals, never raw bytes.
func RenderReport(report *models.GrowthReport) string {
	var b strings.Builder

	if report.PrevDate == "" {
		fmt.Fprintf(&b, "Report date: %s (no prior scan)\n", report.CurrDate)
	} else {
		fmt.Fprintf(&b, "Report date: %s (previous scan: %s)\n", report.CurrDate, report.PrevDate)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s -- %s\n\n", models.TotalRow, formatSize(report.TotalCurr))

	for _, rec := range report.Records {
		switch rec.Status {
		case models.StatusAdded:
			fmt.Fprintf(&b, "%s -- %s (added)\n", rec.Name, formatSize(rec.SizeCurr))
		case models.StatusRemoved:
			fmt.Fprintf(&b, "%s -- removed (%s)\n", rec.Name, formatDelta(rec.DeltaBytes))
		case models.StatusUnchanged:
			fmt.Fprintf(&b, "%s -- %s (no change)\n", rec.Name, formatSize(rec.SizeCurr))
		default:
			fmt.Fprintf(&b, "%s -- %s (%s, %s)\n", rec.Name, formatSize(rec.SizeCurr), formatDelta(rec.DeltaBytes), formatPercent(rec))
		}
	}

	return b.String()
}

// WriteReport overwrites path with the rendered report. Unlike the ledger,
// the text report is not historical.
func WriteReport(report *models.GrowthReport, path string) error {
	if err := os.WriteFile(path, []byte(RenderReport(report)), 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
