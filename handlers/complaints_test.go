package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"communityportal/testhelpers"
)

func validComplaintFields() map[string]string {
	return map[string]string{
		"full_name":   "Lakshmi Devi",
		"phone":       "8765432109",
		"email":       "lakshmi@example.com",
		"state":       "Telangana",
		"district":    "Nalgonda",
		"mandal":      "Chityal",
		"subject":     "Road condition",
		"description": "The approach road to the community hall has been impassable for two months.",
	}
}

func TestHandleComplaintCreate_Valid(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleComplaintCreate(app)

	body, contentType := multipartBody(t, validComplaintFields(), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/complaints/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := testhelpers.DecodeJSON(t, rec.Body.String())
	testhelpers.AssertJSONField(t, resp, "status", "open")
	ref, _ := resp["reference_id"].(string)
	if !strings.HasPrefix(ref, "SNG-CMP-") {
		t.Errorf("reference_id = %q, want SNG-CMP- prefix", ref)
	}
}

func TestHandleComplaintCreate_WithAttachment(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleComplaintCreate(app)

	body, contentType := multipartBody(t, validComplaintFields(),
		map[string][]byte{"attachment": smallPNG(t)})
	req := httptest.NewRequest(http.MethodPost, "/api/complaints/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	records, err := app.FindAllRecords("complaints")
	if err != nil {
		t.Fatalf("failed to query complaints: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 complaint record, got %d", len(records))
	}
	if records[0].GetString("attachment") == "" {
		t.Error("attachment file was not stored on the record")
	}
}

func TestHandleComplaintCreate_RejectsDisallowedFileType(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleComplaintCreate(app)

	// ZIP magic bytes; archives are not on the attachment allow-list.
	zipData := append([]byte("PK\x03\x04"), make([]byte, 64)...)
	body, contentType := multipartBody(t, validComplaintFields(),
		map[string][]byte{"attachment": zipData})
	req := httptest.NewRequest(http.MethodPost, "/api/complaints/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	resp := testhelpers.DecodeJSON(t, rec.Body.String())
	errs, _ := resp["errors"].(map[string]any)
	if errs["attachment"] == nil {
		t.Errorf("expected an attachment error, got %v", errs)
	}
}

func TestHandleComplaintCreate_ShortDescription(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleComplaintCreate(app)

	fields := validComplaintFields()
	fields["description"] = "Too short"
	body, contentType := multipartBody(t, fields, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/complaints/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	resp := testhelpers.DecodeJSON(t, rec.Body.String())
	errs, _ := resp["errors"].(map[string]any)
	if errs["description"] == nil {
		t.Errorf("expected a description error, got %v", errs)
	}
}

func TestHandleComplaintCreate_MissingLocation(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleComplaintCreate(app)

	fields := validComplaintFields()
	delete(fields, "district")
	delete(fields, "mandal")
	body, contentType := multipartBody(t, fields, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/complaints/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestHandleComplaintList_DistrictFilter(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestComplaint(t, app, "Nalgonda Issue")
	other := testhelpers.CreateTestComplaint(t, app, "Warangal Issue")
	other.Set("district", "Warangal")
	other.Set("mandal", "Parkal")
	if err := app.Save(other); err != nil {
		t.Fatalf("failed to move complaint: %v", err)
	}

	handler := HandleComplaintList(app, testConfig)
	req := httptest.NewRequest(http.MethodGet, "/api/complaints/?district=Nalgonda", nil)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Nalgonda Issue") {
		t.Error("complaint in filtered district missing")
	}
	if strings.Contains(body, "Warangal Issue") {
		t.Error("complaint from another district should not appear")
	}
}

func TestHandleComplaintStatus(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	complaint := testhelpers.CreateTestComplaint(t, app, "Status Flow")

	handler := HandleComplaintStatus(app, testConfig)
	req := httptest.NewRequest(http.MethodPatch, "/api/complaints/"+complaint.Id+"/status",
		strings.NewReader(`{"status":"resolved"}`))
	req.SetPathValue("id", complaint.Id)
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	updated, err := app.FindRecordById("complaints", complaint.Id)
	if err != nil {
		t.Fatalf("failed to reload complaint: %v", err)
	}
	if updated.GetString("status") != "resolved" {
		t.Errorf("status = %q, want resolved", updated.GetString("status"))
	}
}
