package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"communityportal/services"
)

// excelExport describes one admin list export target.
type excelExport struct {
	collection   string
	title        string
	columns      []services.ExportColumn
	searchFields []string
}

var excelExports = map[string]excelExport{
	"members": {
		collection:   "members",
		title:        "Members",
		columns:      services.MemberExportColumns,
		searchFields: []string{"full_name", "phone", "membership_id"},
	},
	"donations": {
		collection:   "donations",
		title:        "Donations",
		columns:      services.DonationExportColumns,
		searchFields: []string{"donor_name", "phone", "reference_id"},
	},
	"complaints": {
		collection:   "complaints",
		title:        "Complaints",
		columns:      services.ComplaintExportColumns,
		searchFields: []string{"full_name", "phone", "subject", "reference_id"},
	},
}

// HandleListExportExcel downloads an admin list as a workbook, honoring the
// same filters as the list endpoint (pagination excluded: exports are full).
// Routes: GET /api/{membership,donations,complaints}/export/excel
func HandleListExportExcel(app *pocketbase.PocketBase, target string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		exp, ok := excelExports[target]
		if !ok {
			return apiError(e, http.StatusNotFound, "Unknown export target")
		}

		q := parseListQuery(e.Request)
		q.Skip = 0
		q.Limit = 0 // no limit: export everything matching the filters
		filter, params := buildFilter(q, exp.searchFields)

		records, err := app.FindRecordsByFilter(exp.collection, filter, "-created", 0, 0, params)
		if err != nil {
			log.Printf("excel_export: query failed for %s: %v", exp.collection, err)
			return apiError(e, http.StatusInternalServerError, "Could not load records")
		}

		rows := make([]map[string]string, 0, len(records))
		for _, r := range records {
			rows = append(rows, services.RecordExportRow(r, exp.columns))
		}

		out, err := services.GenerateListExcel(services.ListExportData{
			Title:   exp.title,
			Columns: exp.columns,
			Rows:    rows,
		})
		if err != nil {
			log.Printf("excel_export: generate failed for %s: %v", exp.collection, err)
			return apiError(e, http.StatusInternalServerError, "Could not generate the export")
		}

		filename := fmt.Sprintf("%s-%s.xlsx", exp.title, time.Now().Format("2006-01-02"))
		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(out)
		return nil
	}
}
