package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DavidABliss/directory-report-generator/models"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0.00 GiB"},
		{1073741824, "1.00 GiB"},
		{1073741824 / 2, "0.50 GiB"},
		{1099511627776, "1.00 TiB"},          // exactly 1024 GiB switches to TiB
		{1099511627776 - 1<<29, "1023.50 GiB"}, // just under the threshold stays GiB
		{3 * 1099511627776 / 2, "1.50 TiB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatSize(tt.bytes); got != tt.want {
				t.Errorf("formatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatDelta_AlwaysGiB(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{2 * gib, "+2.00 GiB"},
		{-3 * gib, "-3.00 GiB"},
		{0, "+0.00 GiB"},
		{2048 * gib, "+2048.00 GiB"}, // deltas never switch to TiB
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatDelta(tt.bytes); got != tt.want {
				t.Errorf("formatDelta(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestRenderReport(t *testing.T) {
	report := &models.GrowthReport{
		CurrDate:     "2026-01-08",
		PrevDate:     "2026-01-01",
		TotalCurr:    5 * gib,
		TotalPrev:    5 * gib,
		HasTotalPrev: true,
		Records: []models.GrowthRecord{
			{Name: "a", SizePrev: 2 * gib, HasPrev: true, SizeCurr: 4 * gib, HasCurr: true,
				DeltaBytes: 2 * gib, PercentDelta: 100, HasPercent: true, Status: models.StatusGrew},
			{Name: "d", SizePrev: gib / 2, HasPrev: true, SizeCurr: gib / 2, HasCurr: true,
				Status: models.StatusUnchanged},
			{Name: "e", SizePrev: 0, HasPrev: true, SizeCurr: 1 * gib, HasCurr: true,
				DeltaBytes: 1 * gib, Status: models.StatusGrew},
			{Name: "c", SizeCurr: 1 * gib, HasCurr: true, DeltaBytes: 1 * gib, Status: models.StatusAdded},
			{Name: "b", SizePrev: 3 * gib, HasPrev: true, DeltaBytes: -3 * gib, Status: models.StatusRemoved},
		},
	}

	want := strings.Join([]string{
		"Report date: 2026-01-08 (previous scan: 2026-01-01)",
		"",
		"TOTAL -- 5.00 GiB",
		"",
		"a -- 4.00 GiB (+2.00 GiB, +100.00%)",
		"d -- 0.50 GiB (no change)",
		"e -- 1.00 GiB (+1.00 GiB, N/A)",
		"c -- 1.00 GiB (added)",
		"b -- removed (-3.00 GiB)",
		"",
	}, "\n")

	if got := RenderReport(report); got != want {
		t.Errorf("rendered report:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderReport_NoPriorScan(t *testing.T) {
	report := &models.GrowthReport{
		CurrDate:  "2026-01-01",
		TotalCurr: 2 * gib,
		Records: []models.GrowthRecord{
			{Name: "a", SizeCurr: 2 * gib, HasCurr: true, DeltaBytes: 2 * gib, Status: models.StatusAdded},
		},
	}

	got := RenderReport(report)
	if !strings.Contains(got, "Report date: 2026-01-01 (no prior scan)") {
		t.Errorf("missing no-prior-scan header:\n%s", got)
	}
	if !strings.Contains(got, "a -- 2.00 GiB (added)") {
		t.Errorf("missing added line:\n%s", got)
	}
}

func TestRenderReport_TiBSizes(t *testing.T) {
	report := &models.GrowthReport{
		CurrDate:  "2026-01-08",
		PrevDate:  "2026-01-01",
		TotalCurr: 2048 * gib,
		Records: []models.GrowthRecord{
			{Name: "huge", SizePrev: 1024 * gib, HasPrev: true, SizeCurr: 2048 * gib, HasCurr: true,
				DeltaBytes: 1024 * gib, PercentDelta: 100, HasPercent: true, Status: models.StatusGrew},
		},
	}

	got := RenderReport(report)
	if !strings.Contains(got, "TOTAL -- 2.00 TiB") {
		t.Errorf("total not rendered in TiB:\n%s", got)
	}
	// Size switches to TiB, the delta stays in GiB
	if !strings.Contains(got, "huge -- 2.00 TiB (+1024.00 GiB, +100.00%)") {
		t.Errorf("unexpected TiB line:\n%s", got)
	}
}

func TestWriteReport_Overwrites(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()
	path := filepath.Join(tmpDir, ReportFileName)

	if err := os.WriteFile(path, []byte("stale content from a previous run\n"), 0644); err != nil {
		t.Fatalf("failed to seed report file: %v", err)
	}

	report := &models.GrowthReport{CurrDate: "2026-01-01", TotalCurr: 1 * gib}
	if err := WriteReport(report, path); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if strings.Contains(string(content), "stale content") {
		t.Error("report file was not overwritten")
	}
	if !strings.Contains(string(content), "Report date: 2026-01-01") {
		t.Errorf("unexpected report content:\n%s", content)
	}
}
