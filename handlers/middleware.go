package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// APIMiddleware handles CORS for the external front-end and logs API
// requests. The browser UI lives on a different origin, so every /api route
// must answer preflights.
func APIMiddleware() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		h := e.Response.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if e.Request.Method == http.MethodOptions {
			return e.NoContent(http.StatusNoContent)
		}

		start := time.Now()
		err := e.Next()
		log.Printf("%s %s (%s)", e.Request.Method, e.Request.URL.Path, time.Since(start).Round(time.Millisecond))
		return err
	}
}
