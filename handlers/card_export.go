package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"communityportal/services"
)

// HandleCardExport renders a member's ID card and downloads it as PNG or a
// credit-card-size PDF.
// Route: GET /api/membership/{id}/card?format=png|pdf
func HandleCardExport(app *pocketbase.PocketBase, cfg Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jobID := uuid.NewString()

		record, err := app.FindRecordById("members", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Member not found")
		}

		membershipID := record.GetString("membership_id")
		if membershipID == "" {
			return apiError(e, http.StatusConflict, "Member has no membership number yet")
		}

		format := e.Request.URL.Query().Get("format")
		if format == "" {
			format = "png"
		}
		if format != "png" && format != "pdf" {
			return apiError(e, http.StatusBadRequest, "Unsupported format (use png or pdf)")
		}

		cardPNG, err := renderMemberCard(e, app, cfg, record)
		if err != nil {
			log.Printf("card_export[%s]: could not render card for %s: %v", jobID, record.Id, err)
			return apiError(e, http.StatusInternalServerError, "Could not generate the ID card")
		}

		filename := fmt.Sprintf("ID-Card-%s.%s", membershipID, format)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

		switch format {
		case "pdf":
			pdfBytes, err := services.GenerateIDCardPDF(cardPNG)
			if err != nil {
				log.Printf("card_export[%s]: could not build PDF for %s: %v", jobID, record.Id, err)
				return apiError(e, http.StatusInternalServerError, "Could not generate the ID card PDF")
			}
			e.Response.Header().Set("Content-Type", "application/pdf")
			e.Response.Write(pdfBytes)
		default:
			e.Response.Header().Set("Content-Type", "image/png")
			e.Response.Write(cardPNG)
		}

		log.Printf("card_export[%s]: exported %s as %s", jobID, membershipID, format)
		return nil
	}
}
