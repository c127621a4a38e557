package app

import (
	"fmt"
	"sort"

	"github.com/DavidABliss/directory-report-generator/models"
)

// Analyze compares the two most recent columns of the ledger. With a single
// column every row is classified added. Record order is: rows present in
// both scans ranked by delta descending (ties by name), then added rows
// alphabetical, then removed rows alphabetical.
func Analyze(ledger *models.Ledger) (*models.GrowthReport, error) {
	if len(ledger.Dates) == 0 {
		return nil, fmt.Errorf("ledger has no scan columns")
	}

	currDate := ledger.Dates[len(ledger.Dates)-1]
	prevDate := ""
	if len(ledger.Dates) > 1 {
		prevDate = ledger.Dates[len(ledger.Dates)-2]
	}

	report := &models.GrowthReport{CurrDate: currDate, PrevDate: prevDate}
	if total, ok := ledger.Cell(models.TotalRow, currDate); ok {
		report.TotalCurr = total
	}
	if prevDate != "" {
		if total, ok := ledger.Cell(models.TotalRow, prevDate); ok {
			report.TotalPrev = total
			report.HasTotalPrev = true
		}
	}

	var ranked, added, removed []models.GrowthRecord
	for _, name := range ledger.Names {
		curr, hasCurr := ledger.Cell(name, currDate)
		var prev int64
		hasPrev := false
		if prevDate != "" {
			prev, hasPrev = ledger.Cell(name, prevDate)
		}

		switch {
		case hasCurr && !hasPrev:
			added = append(added, models.GrowthRecord{
				Name:       name,
				SizeCurr:   curr,
				HasCurr:    true,
				DeltaBytes: curr,
				Status:     models.StatusAdded,
			})
		case !hasCurr && hasPrev:
			removed = append(removed, models.GrowthRecord{
				Name:       name,
				SizePrev:   prev,
				HasPrev:    true,
				DeltaBytes: -prev,
				Status:     models.StatusRemoved,
			})
		case hasCurr && hasPrev:
			rec := models.GrowthRecord{
				Name:       name,
				SizePrev:   prev,
				HasPrev:    true,
				SizeCurr:   curr,
				HasCurr:    true,
				DeltaBytes: curr - prev,
			}
			switch {
			case rec.DeltaBytes > 0:
				rec.Status = models.StatusGrew
			case rec.DeltaBytes < 0:
				rec.Status = models.StatusShrank
			default:
				rec.Status = models.StatusUnchanged
			}
			if prev > 0 {
				rec.PercentDelta = float64(curr-prev) / float64(prev) * 100
				rec.HasPercent = true
			}
			ranked = append(ranked, rec)
		default:
			// blank in both recent columns: removed before the previous
			// scan, kept in the ledger but not reported
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DeltaBytes != ranked[j].DeltaBytes {
			return ranked[i].DeltaBytes > ranked[j].DeltaBytes
		}
		return ranked[i].Name < ranked[j].Name
	})
	sort.Slice(added, func(i, j int) bool { return added[i].Name < added[j].Name })
	sort.Slice(removed, func(i, j int) bool { return removed[i].Name < removed[j].Name })

	report.Records = make([]models.GrowthRecord, 0, len(ranked)+len(added)+len(removed))
	report.Records = append(report.Records, ranked...)
	report.Records = append(report.Records, added...)
	report.Records = append(report.Records, removed...)

	return report, nil
}
