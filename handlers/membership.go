package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"

	"communityportal/services"
)

// membershipFormFields are the text parts expected in the registration
// multipart payload.
var membershipFormFields = []string{
	"full_name", "father_name", "gender", "caste", "dob", "phone", "aadhar",
	"email", "village", "full_address", "state", "district", "mandal",
}

// HandleMembershipRegister accepts a membership registration.
// Route: POST /api/membership/register
func HandleMembershipRegister(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid form data")
		}

		fields := make(map[string]string, len(membershipFormFields))
		for _, f := range membershipFormFields {
			fields[f] = strings.TrimSpace(e.Request.FormValue(f))
		}

		photo, header, err := readUpload(e, "photo")
		if err != nil {
			log.Printf("membership_register: could not read photo part: %v", err)
			return apiError(e, http.StatusBadRequest, "Could not read the uploaded photo")
		}

		if errs := services.ValidateMembership(fields, photo, time.Now()); len(errs) > 0 {
			return apiValidationError(e, errs)
		}

		// A double-submit must not create two members.
		dupes, err := app.FindRecordsByFilter("members", "aadhar = {:aadhar}", "", 1, 0,
			map[string]any{"aadhar": fields["aadhar"]})
		if err == nil && len(dupes) > 0 {
			return apiError(e, http.StatusConflict,
				"A membership application with this Aadhaar number already exists")
		}

		membersCol, err := app.FindCollectionByNameOrId("members")
		if err != nil {
			log.Printf("membership_register: could not find members collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		membershipID, err := services.NextMembershipNumber(app, time.Now())
		if err != nil {
			log.Printf("membership_register: could not issue membership number: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(membersCol)
		for _, f := range membershipFormFields {
			record.Set(f, fields[f])
		}
		record.Set("membership_id", membershipID)
		record.Set("status", "pending")

		photoFile, err := filesystem.NewFileFromBytes(photo.Data, header)
		if err != nil {
			log.Printf("membership_register: could not wrap photo file: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		record.Set("photo", photoFile)

		if err := app.Save(record); err != nil {
			log.Printf("membership_register: could not save member: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":            record.Id,
			"membership_id": membershipID,
			"status":        "pending",
			"id_card_url":   nil,
		})
	}
}

// readUpload pulls one file part out of the parsed multipart form. A missing
// part is not an error; the validator decides whether the field is required.
func readUpload(e *core.RequestEvent, field string) (*services.Upload, string, error) {
	file, header, err := e.Request.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	// One byte past the cap is enough to trip the size check.
	data, err := io.ReadAll(io.LimitReader(file, services.MaxUploadSize+1))
	if err != nil {
		return nil, "", err
	}

	return &services.Upload{
		Name: header.Filename,
		Size: int64(len(data)),
		Data: data,
	}, header.Filename, nil
}

// memberJSON serializes a member record for API responses.
func memberJSON(cfg Config, r *core.Record) map[string]any {
	photoURL := cfg.fileURL("members", r, "photo")
	if photoURL == "" {
		photoURL = r.GetString("photo_url")
	}

	return map[string]any{
		"id":            r.Id,
		"membership_id": r.GetString("membership_id"),
		"full_name":     r.GetString("full_name"),
		"father_name":   r.GetString("father_name"),
		"gender":        r.GetString("gender"),
		"caste":         r.GetString("caste"),
		"dob":           r.GetString("dob"),
		"phone":         r.GetString("phone"),
		"aadhar":        r.GetString("aadhar"),
		"email":         r.GetString("email"),
		"village":       r.GetString("village"),
		"full_address":  r.GetString("full_address"),
		"state":         r.GetString("state"),
		"district":      r.GetString("district"),
		"mandal":        r.GetString("mandal"),
		"status":        r.GetString("status"),
		"photo_url":     photoURL,
		"id_card_url":   cfg.fileURL("members", r, "id_card"),
		"created":       r.GetString("created"),
	}
}

// HandleMembershipList lists members with pagination and filters.
// Route: GET /api/membership/?skip=&limit=&status=&state=&district=&search=
func HandleMembershipList(app *pocketbase.PocketBase, cfg Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := parseListQuery(e.Request)
		filter, params := buildFilter(q, []string{"full_name", "phone", "membership_id"})

		records, err := app.FindRecordsByFilter("members", filter, "-created", q.Limit, q.Skip, params)
		if err != nil {
			log.Printf("membership_list: query failed: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load members")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			out = append(out, memberJSON(cfg, r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleMembershipView returns one member.
// Route: GET /api/membership/{id}
func HandleMembershipView(app *pocketbase.PocketBase, cfg Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("members", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Member not found")
		}
		return e.JSON(http.StatusOK, memberJSON(cfg, record))
	}
}

// HandleMembershipStatus mutates a member's status. Approving a member
// renders and stores their ID card; re-approving is idempotent.
// Route: PATCH /api/membership/{id}/status
func HandleMembershipStatus(app *pocketbase.PocketBase, cfg Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		record, err := app.FindRecordById("members", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Member not found")
		}

		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(e.Request.Body).Decode(&body); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid JSON body")
		}
		if !services.ValidStatus(services.MembershipStatuses, body.Status) {
			return apiError(e, http.StatusBadRequest, "Invalid status value")
		}

		record.Set("status", body.Status)

		if body.Status == "approved" && record.GetString("id_card") == "" {
			cardPNG, err := renderMemberCard(e, app, cfg, record)
			if err != nil {
				log.Printf("membership_status: could not render card for %s: %v", record.Id, err)
				return apiError(e, http.StatusInternalServerError, "Could not generate the ID card")
			}
			cardFile, err := filesystem.NewFileFromBytes(cardPNG, "id-card.png")
			if err != nil {
				log.Printf("membership_status: could not wrap card file: %v", err)
				return apiError(e, http.StatusInternalServerError, "Could not generate the ID card")
			}
			record.Set("id_card", cardFile)
		}

		if err := app.Save(record); err != nil {
			log.Printf("membership_status: could not save member %s: %v", record.Id, err)
			return apiError(e, http.StatusInternalServerError, "Could not update the member")
		}

		return e.JSON(http.StatusOK, memberJSON(cfg, record))
	}
}

// renderMemberCard assembles CardData from a member record and rasterizes it.
func renderMemberCard(e *core.RequestEvent, app *pocketbase.PocketBase, cfg Config, record *core.Record) ([]byte, error) {
	portrait := services.ResolvePortrait(e.Request.Context(), app, record, cfg.PhotoOrigins)

	return services.RenderIDCard(services.CardData{
		MembershipID: record.GetString("membership_id"),
		FullName:     record.GetString("full_name"),
		FatherName:   record.GetString("father_name"),
		Phone:        record.GetString("phone"),
		Mandal:       record.GetString("mandal"),
		District:     record.GetString("district"),
		State:        record.GetString("state"),
		IssuedOn:     time.Now().Format("2006-01-02"),
		Portrait:     portrait,
	})
}

// HandleMembershipStats returns the aggregate membership counters.
// Route: GET /api/membership/stats/summary
func HandleMembershipStats(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		summary, err := services.SummaryStats(app, "members", services.MembershipStatuses)
		if err != nil {
			log.Printf("membership_stats: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not compute stats")
		}
		return e.JSON(http.StatusOK, summary)
	}
}
