package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// FiscalYear returns the Indian fiscal year string for a given date.
// Indian fiscal year runs April to March.
// Jan 2026 → "25-26", May 2026 → "26-27"
func FiscalYear(t time.Time) string {
	year := t.Year()
	startYear := year
	if t.Month() < time.April {
		startYear = year - 1
	}
	return fmt.Sprintf("%02d-%02d", startYear%100, (startYear+1)%100)
}

// formatSerial constructs an issued number from its components.
// Uses "-" as separator throughout so the number is safe in filenames.
func formatSerial(kind, fiscalYear string, sequence int) string {
	return fmt.Sprintf("SNG-%s-%s-%04d", kind, fiscalYear, sequence)
}

// nextSerial issues the next number of the given kind by counting existing
// records whose field carries the current fiscal-year prefix.
// Format: SNG-{kind}-{fiscal_year}-{sequence}, e.g. SNG-MEM-25-26-0001.
func nextSerial(app *pocketbase.PocketBase, collection, field, kind string, now time.Time) (string, error) {
	fy := FiscalYear(now)
	prefix := fmt.Sprintf("SNG-%s-%s-", kind, fy)

	existing, err := app.FindRecordsByFilter(
		collection,
		fmt.Sprintf("%s ~ {:prefix}", field),
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		// No matching records yet; start the sequence at 1.
		existing = nil
	}

	return formatSerial(kind, fy, len(existing)+1), nil
}

// NextMembershipNumber issues the next membership ID.
func NextMembershipNumber(app *pocketbase.PocketBase, now time.Time) (string, error) {
	return nextSerial(app, "members", "membership_id", "MEM", now)
}

// NextDonationReference issues the next donation reference ID.
func NextDonationReference(app *pocketbase.PocketBase, now time.Time) (string, error) {
	return nextSerial(app, "donations", "reference_id", "DON", now)
}

// NextComplaintReference issues the next complaint reference ID.
func NextComplaintReference(app *pocketbase.PocketBase, now time.Time) (string, error) {
	return nextSerial(app, "complaints", "reference_id", "CMP", now)
}
