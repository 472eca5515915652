package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"communityportal/services"
)

var donationFormFields = []string{
	"donor_name", "phone", "email", "state", "district", "mandal", "amount", "purpose",
}

// HandleDonationCreate accepts a donation submission.
// Route: POST /api/donations/
func HandleDonationCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		// Tolerate both multipart and urlencoded submissions.
		if err := e.Request.ParseMultipartForm(1 << 20); err != nil && err != http.ErrNotMultipart {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		fields := make(map[string]string, len(donationFormFields))
		for _, f := range donationFormFields {
			fields[f] = strings.TrimSpace(e.Request.FormValue(f))
		}

		if errs := services.ValidateDonation(fields); len(errs) > 0 {
			return apiValidationError(e, errs)
		}

		donationsCol, err := app.FindCollectionByNameOrId("donations")
		if err != nil {
			log.Printf("donation_create: could not find donations collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		referenceID, err := services.NextDonationReference(app, time.Now())
		if err != nil {
			log.Printf("donation_create: could not issue reference: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		amount, _ := strconv.ParseFloat(fields["amount"], 64)

		record := core.NewRecord(donationsCol)
		record.Set("donor_name", fields["donor_name"])
		record.Set("phone", fields["phone"])
		record.Set("email", fields["email"])
		record.Set("state", fields["state"])
		record.Set("district", fields["district"])
		record.Set("mandal", fields["mandal"])
		record.Set("amount", amount)
		record.Set("purpose", fields["purpose"])
		record.Set("reference_id", referenceID)
		record.Set("status", "received")

		if err := app.Save(record); err != nil {
			log.Printf("donation_create: could not save donation: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":           record.Id,
			"reference_id": referenceID,
			"status":       "received",
		})
	}
}

func donationJSON(r *core.Record) map[string]any {
	return map[string]any{
		"id":           r.Id,
		"reference_id": r.GetString("reference_id"),
		"donor_name":   r.GetString("donor_name"),
		"phone":        r.GetString("phone"),
		"email":        r.GetString("email"),
		"state":        r.GetString("state"),
		"district":     r.GetString("district"),
		"mandal":       r.GetString("mandal"),
		"amount":       r.GetFloat("amount"),
		"purpose":      r.GetString("purpose"),
		"status":       r.GetString("status"),
		"created":      r.GetString("created"),
	}
}

// HandleDonationList lists donations with pagination and filters.
// Route: GET /api/donations/
func HandleDonationList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := parseListQuery(e.Request)
		filter, params := buildFilter(q, []string{"donor_name", "phone", "reference_id"})

		records, err := app.FindRecordsByFilter("donations", filter, "-created", q.Limit, q.Skip, params)
		if err != nil {
			log.Printf("donation_list: query failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load donations")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			out = append(out, donationJSON(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleDonationView returns one donation.
// Route: GET /api/donations/{id}
func HandleDonationView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("donations", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Donation not found")
		}
		return e.JSON(http.StatusOK, donationJSON(record))
	}
}

// HandleDonationStatus mutates a donation's status.
// Route: PATCH /api/donations/{id}/status
func HandleDonationStatus(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("donations", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Donation not found")
		}

		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(e.Request.Body).Decode(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid JSON body")
		}
		if !services.ValidStatus(services.DonationStatuses, body.Status) {
			return apiError(e, http.StatusBadRequest, "Invalid status value")
		}

		record.Set("status", body.Status)
		if err := app.Save(record); err != nil {
			log.Printf("donation_status: could not save donation %s: %v", record.Id, err)
			return apiError(e, http.StatusInternalServerError, "Could not update the donation")
		}
		return e.JSON(http.StatusOK, donationJSON(record))
	}
}

// HandleDonationStats returns the aggregate donation counters.
// Route: GET /api/donations/stats/summary
func HandleDonationStats(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		summary, err := services.SummaryStats(app, "donations", services.DonationStatuses)
		if err != nil {
			log.Printf("donation_stats: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not compute stats")
		}
		return e.JSON(http.StatusOK, summary)
	}
}
