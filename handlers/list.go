package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// listQuery is the common pagination/filter surface of the admin list
// endpoints: skip/limit plus status, state, district and a search term.
type listQuery struct {
	Skip     int
	Limit    int
	Status   string
	State    string
	District string
	Search   string
}

func parseListQuery(r *http.Request) listQuery {
	q := r.URL.Query()

	skip, _ := strconv.Atoi(q.Get("skip"))
	if skip < 0 {
		skip = 0
	}

	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	return listQuery{
		Skip:     skip,
		Limit:    limit,
		Status:   strings.TrimSpace(q.Get("status")),
		State:    strings.TrimSpace(q.Get("state")),
		District: strings.TrimSpace(q.Get("district")),
		Search:   strings.TrimSpace(q.Get("search")),
	}
}

// buildFilter turns a listQuery into a PocketBase filter expression plus its
// bound parameters. searchFields are OR-matched against the search term.
func buildFilter(q listQuery, searchFields []string) (string, map[string]any) {
	var clauses []string
	params := map[string]any{}

	if q.Status != "" {
		clauses = append(clauses, "status = {:status}")
		params["status"] = q.Status
	}
	if q.State != "" {
		clauses = append(clauses, "state = {:state}")
		params["state"] = q.State
	}
	if q.District != "" {
		clauses = append(clauses, "district = {:district}")
		params["district"] = q.District
	}
	if q.Search != "" && len(searchFields) > 0 {
		var ors []string
		for _, f := range searchFields {
			ors = append(ors, fmt.Sprintf("%s ~ {:search}", f))
		}
		clauses = append(clauses, "("+strings.Join(ors, " || ")+")")
		params["search"] = q.Search
	}

	if len(clauses) == 0 {
		return "id != ''", params
	}
	return strings.Join(clauses, " && "), params
}
