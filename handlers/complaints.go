package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"

	"communityportal/services"
)

var complaintFormFields = []string{
	"full_name", "phone", "email", "state", "district", "mandal", "subject", "description",
}

// HandleComplaintCreate accepts a complaint submission with an optional
// attachment.
// Route: POST /api/complaints/
func HandleComplaintCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil && err != http.ErrNotMultipart {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		fields := make(map[string]string, len(complaintFormFields))
		for _, f := range complaintFormFields {
			fields[f] = strings.TrimSpace(e.Request.FormValue(f))
		}

		attachment, attachmentName, err := readUpload(e, "attachment")
		if err != nil {
			log.Printf("complaint_create: could not read attachment part: %v", err)
			return apiError(e, http.StatusBadRequest, "Could not read the uploaded file")
		}

		if errs := services.ValidateComplaint(fields, attachment); len(errs) > 0 {
			return apiValidationError(e, errs)
		}

		complaintsCol, err := app.FindCollectionByNameOrId("complaints")
		if err != nil {
			log.Printf("complaint_create: could not find complaints collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		referenceID, err := services.NextComplaintReference(app, time.Now())
		if err != nil {
			log.Printf("complaint_create: could not issue reference: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(complaintsCol)
		for _, f := range complaintFormFields {
			record.Set(f, fields[f])
		}
		record.Set("reference_id", referenceID)
		record.Set("status", "open")

		if attachment != nil && len(attachment.Data) > 0 {
			file, err := filesystem.NewFileFromBytes(attachment.Data, attachmentName)
			if err != nil {
				log.Printf("complaint_create: could not wrap attachment: %v", err)
				return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
			}
			record.Set("attachment", file)
		}

		if err := app.Save(record); err != nil {
			log.Printf("complaint_create: could not save complaint: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":           record.Id,
			"reference_id": referenceID,
			"status":       "open",
		})
	}
}

func complaintJSON(cfg Config, r *core.Record) map[string]any {
	return map[string]any{
		"id":             r.Id,
		"reference_id":   r.GetString("reference_id"),
		"full_name":      r.GetString("full_name"),
		"phone":          r.GetString("phone"),
		"email":          r.GetString("email"),
		"state":          r.GetString("state"),
		"district":       r.GetString("district"),
		"mandal":         r.GetString("mandal"),
		"subject":        r.GetString("subject"),
		"description":    r.GetString("description"),
		"attachment_url": cfg.fileURL("complaints", r, "attachment"),
		"status":         r.GetString("status"),
		"created":        r.GetString("created"),
	}
}

// HandleComplaintList lists complaints with pagination and filters.
// Route: GET /api/complaints/
func HandleComplaintList(app *pocketbase.PocketBase, cfg Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := parseListQuery(e.Request)
		filter, params := buildFilter(q, []string{"full_name", "phone", "subject", "reference_id"})

		records, err := app.FindRecordsByFilter("complaints", filter, "-created", q.Limit, q.Skip, params)
		if err != nil {
			log.Printf("complaint_list: query failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load complaints")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			out = append(out, complaintJSON(cfg, r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleComplaintView returns one complaint.
// Route: GET /api/complaints/{id}
func HandleComplaintView(app *pocketbase.PocketBase, cfg Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("complaints", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Complaint not found")
		}
		return e.JSON(http.StatusOK, complaintJSON(cfg, record))
	}
}

// HandleComplaintStatus mutates a complaint's status.
// Route: PATCH /api/complaints/{id}/status
func HandleComplaintStatus(app *pocketbase.PocketBase, cfg Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("complaints", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Complaint not found")
		}

		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(e.Request.Body).Decode(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid JSON body")
		}
		if !services.ValidStatus(services.ComplaintStatuses, body.Status) {
			return apiError(e, http.StatusBadRequest, "Invalid status value")
		}

		record.Set("status", body.Status)
		if err := app.Save(record); err != nil {
			log.Printf("complaint_status: could not save complaint %s: %v", record.Id, err)
			return apiError(e, http.StatusInternalServerError, "Could not update the complaint")
		}
		return e.JSON(http.StatusOK, complaintJSON(cfg, record))
	}
}

// HandleComplaintStats returns the aggregate complaint counters.
// Route: GET /api/complaints/stats/summary
func HandleComplaintStats(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		summary, err := services.SummaryStats(app, "complaints", services.ComplaintStatuses)
		if err != nil {
			log.Printf("complaint_stats: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not compute stats")
		}
		return e.JSON(http.StatusOK, summary)
	}
}
