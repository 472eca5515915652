package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
)

// SummaryStats computes the aggregate counters for an admin dashboard tile:
// total record count plus a count per lifecycle status. For the donations
// collection the summed amount is included as "total_amount".
func SummaryStats(app *pocketbase.PocketBase, collection string, statuses []string) (map[string]any, error) {
	records, err := app.FindAllRecords(collection)
	if err != nil {
		return nil, fmt.Errorf("could not load %s records: %w", collection, err)
	}

	byStatus := make(map[string]int, len(statuses))
	for _, s := range statuses {
		byStatus[s] = 0
	}

	var totalAmount float64
	for _, r := range records {
		byStatus[r.GetString("status")]++
		if collection == "donations" {
			totalAmount += r.GetFloat("amount")
		}
	}

	summary := map[string]any{"total": len(records)}
	for _, s := range statuses {
		summary[s] = byStatus[s]
	}
	if collection == "donations" {
		summary["total_amount"] = totalAmount
	}
	return summary, nil
}
