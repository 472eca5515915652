package main

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"communityportal/collections"
	"communityportal/handlers"
)

func loadConfig() handlers.Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	cfg := handlers.Config{
		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://127.0.0.1:8090"
	}
	cfg.PublicBaseURL = strings.TrimSuffix(cfg.PublicBaseURL, "/")

	if origins := os.Getenv("PHOTO_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.PhotoOrigins = append(cfg.PhotoOrigins, o)
			}
		}
	}
	// The service's own file hosting is always a valid photo source.
	cfg.PhotoOrigins = append(cfg.PhotoOrigins, cfg.PublicBaseURL)

	return cfg
}

func main() {
	app := pocketbase.New()
	cfg := loadConfig()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve site assets (gallery images, banners) from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// CORS and request logging for the browser front-end
		se.Router.BindFunc(handlers.APIMiddleware())

		// ── Location lookups ─────────────────────────────────────
		se.Router.GET("/api/locations/states", handlers.HandleStates(app))
		se.Router.GET("/api/locations/districts", handlers.HandleDistricts(app))
		se.Router.GET("/api/locations/mandals", handlers.HandleMandals(app))

		// ── Membership ───────────────────────────────────────────
		se.Router.POST("/api/membership/register", handlers.HandleMembershipRegister(app))
		se.Router.GET("/api/membership/stats/summary", handlers.HandleMembershipStats(app))
		se.Router.GET("/api/membership/export/excel", handlers.HandleListExportExcel(app, "members"))
		se.Router.GET("/api/membership/{id}/card", handlers.HandleCardExport(app, cfg))
		se.Router.PATCH("/api/membership/{id}/status", handlers.HandleMembershipStatus(app, cfg))
		se.Router.GET("/api/membership/{id}", handlers.HandleMembershipView(app, cfg))
		se.Router.GET("/api/membership/", handlers.HandleMembershipList(app, cfg))

		// ── Donations ────────────────────────────────────────────
		se.Router.POST("/api/donations/", handlers.HandleDonationCreate(app))
		se.Router.GET("/api/donations/stats/summary", handlers.HandleDonationStats(app))
		se.Router.GET("/api/donations/export/excel", handlers.HandleListExportExcel(app, "donations"))
		se.Router.PATCH("/api/donations/{id}/status", handlers.HandleDonationStatus(app))
		se.Router.GET("/api/donations/{id}", handlers.HandleDonationView(app))
		se.Router.GET("/api/donations/", handlers.HandleDonationList(app))

		// ── Complaints ───────────────────────────────────────────
		se.Router.POST("/api/complaints/", handlers.HandleComplaintCreate(app))
		se.Router.GET("/api/complaints/stats/summary", handlers.HandleComplaintStats(app))
		se.Router.GET("/api/complaints/export/excel", handlers.HandleListExportExcel(app, "complaints"))
		se.Router.PATCH("/api/complaints/{id}/status", handlers.HandleComplaintStatus(app, cfg))
		se.Router.GET("/api/complaints/{id}", handlers.HandleComplaintView(app, cfg))
		se.Router.GET("/api/complaints/", handlers.HandleComplaintList(app, cfg))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
