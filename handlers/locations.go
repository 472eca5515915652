package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"communityportal/services"
)

// HandleStates returns the ordered list of states.
// Route: GET /api/locations/states
func HandleStates(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, services.States())
	}
}

// HandleDistricts returns the districts of a state. Unknown or missing
// states yield an empty array, mirroring the disabled district select.
// Route: GET /api/locations/districts?state=
func HandleDistricts(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		state := e.Request.URL.Query().Get("state")
		return e.JSON(http.StatusOK, services.Districts(state))
	}
}

// HandleMandals returns the mandals of a (state, district) pair, empty for
// unknown parents.
// Route: GET /api/locations/mandals?state=&district=
func HandleMandals(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q := e.Request.URL.Query()
		return e.JSON(http.StatusOK, services.Mandals(q.Get("state"), q.Get("district")))
	}
}
