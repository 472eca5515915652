// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"communityportal/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: t.TempDir(),
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestMember creates a member record with sensible defaults, applies
// the given overrides and returns it.
func CreateTestMember(t *testing.T, app *pocketbase.PocketBase, overrides map[string]any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("members")
	if err != nil {
		t.Fatalf("failed to find members collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("full_name", "Ravi Kumar")
	record.Set("father_name", "Suresh Kumar")
	record.Set("gender", "Male")
	record.Set("caste", "Mudiraj")
	record.Set("dob", "1990-03-12")
	record.Set("phone", "9876543210")
	record.Set("aadhar", "123412341234")
	record.Set("village", "Chevella")
	record.Set("full_address", "H-12, Main Road, Chevella")
	record.Set("state", "Telangana")
	record.Set("district", "Rangareddy")
	record.Set("mandal", "Chevella")
	record.Set("status", "pending")
	for k, v := range overrides {
		record.Set(k, v)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test member: %v", err)
	}

	return record
}

// CreateTestDonation creates a donation record and returns it.
func CreateTestDonation(t *testing.T, app *pocketbase.PocketBase, donorName string, amount float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("donations")
	if err != nil {
		t.Fatalf("failed to find donations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("donor_name", donorName)
	record.Set("phone", "9123456780")
	record.Set("amount", amount)
	record.Set("purpose", "General Fund")
	record.Set("status", "received")
	record.Set("reference_id", "SNG-DON-25-26-0001")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test donation: %v", err)
	}

	return record
}

// CreateTestComplaint creates a complaint record and returns it.
func CreateTestComplaint(t *testing.T, app *pocketbase.PocketBase, subject string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("complaints")
	if err != nil {
		t.Fatalf("failed to find complaints collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("full_name", "Lakshmi Devi")
	record.Set("phone", "8765432109")
	record.Set("subject", subject)
	record.Set("description", "The approach road to the community hall has been impassable for two months.")
	record.Set("state", "Telangana")
	record.Set("district", "Nalgonda")
	record.Set("mandal", "Chityal")
	record.Set("status", "open")
	record.Set("reference_id", "SNG-CMP-25-26-0001")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test complaint: %v", err)
	}

	return record
}

// DecodeJSON unmarshals a response body into a map and fails the test on error.
func DecodeJSON(t *testing.T, body string) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody (first 500 chars): %s",
			err, truncate(body, 500))
	}
	return out
}

// AssertJSONField checks that a decoded JSON object carries the expected
// string value under key.
func AssertJSONField(t *testing.T, obj map[string]any, key, expected string) {
	t.Helper()

	val, ok := obj[key].(string)
	if !ok {
		t.Errorf("expected JSON field %q to be a string, got %T (%v)", key, obj[key], obj[key])
		return
	}
	if val != expected {
		t.Errorf("JSON field %q = %q, want %q", key, val, expected)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "..."
}
