package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// Config carries the environment-derived settings handlers need.
type Config struct {
	// PublicBaseURL is the externally visible base URL of this service,
	// used to build absolute file URLs in API responses.
	PublicBaseURL string
	// PhotoOrigins is the allow-list of origins legacy remote member
	// photos may be fetched from during card rendering.
	PhotoOrigins []string
}

// apiError writes the uniform error envelope. Every failure path surfaces a
// "detail" field so the front-end has one place to look for a message.
func apiError(e *core.RequestEvent, status int, detail string) error {
	return e.JSON(status, map[string]any{"detail": detail})
}

// apiValidationError writes a 422 with the per-field error map alongside the
// generic detail message. No record is written when this is returned.
func apiValidationError(e *core.RequestEvent, errors map[string]string) error {
	return e.JSON(http.StatusUnprocessableEntity, map[string]any{
		"detail": "Please fix the errors below",
		"errors": errors,
	})
}

// fileURL builds the public URL of a file stored on a record, or "" when the
// record has no file in that field.
func (c Config) fileURL(collection string, record *core.Record, field string) string {
	filename := record.GetString(field)
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("%s/api/files/%s/%s/%s", c.PublicBaseURL, collection, record.Id, filename)
}
