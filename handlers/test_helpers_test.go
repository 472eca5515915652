package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// testConfig is the handler Config used across handler tests.
var testConfig = Config{PublicBaseURL: "http://test.local"}

// decodeJSONList unmarshals a JSON array response body.
func decodeJSONList(body []byte, out *[]map[string]any) error {
	return json.Unmarshal(body, out)
}

// decodeJSONStrings unmarshals a JSON string array response body.
func decodeJSONStrings(body []byte, out *[]string) error {
	return json.Unmarshal(body, out)
}

// multipartBody builds a multipart form body from text fields and optional
// files (field name -> file content). Returns the body and content type.
func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field %s: %v", k, err)
		}
	}
	for field, data := range files {
		fw, err := w.CreateFormFile(field, field+".png")
		if err != nil {
			t.Fatalf("failed to create form file %s: %v", field, err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("failed to write form file %s: %v", field, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}
