package main

import (
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/collections"
	"costestimation/handlers"
)

const defaultDatabasePassword = "Proseen2025"

func main() {
	app := pocketbase.New()

	dbPassword := os.Getenv("ESTIMATION_DB_PASSWORD")
	if dbPassword == "" {
		dbPassword = defaultDatabasePassword
	}

	logoPath := os.Getenv("ESTIMATION_LOGO")
	if logoPath == "" {
		logoPath = "assets/logo.png"
	}

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateProjectNumbers(app); err != nil {
			log.Printf("Warning: project number migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Projects ─────────────────────────────────────────────
		se.Router.GET("/api/estimation/projects", handlers.HandleProjectList(app))
		se.Router.POST("/api/estimation/projects", handlers.HandleProjectCreate(app))
		se.Router.GET("/api/estimation/projects/{id}", handlers.HandleProjectView(app))
		se.Router.DELETE("/api/estimation/projects/{id}", handlers.HandleProjectDelete(app))

		// ── Line items per category ledger ───────────────────────
		se.Router.GET("/api/estimation/projects/{id}/items/{category}", handlers.HandleItemList(app))
		se.Router.POST("/api/estimation/projects/{id}/items/{category}", handlers.HandleItemAdd(app))
		se.Router.DELETE("/api/estimation/projects/{id}/items/{category}/{itemId}", handlers.HandleItemDelete(app))

		// ── Estimate export ──────────────────────────────────────
		se.Router.GET("/api/estimation/projects/{id}/export/pdf", handlers.HandleEstimateExportPDF(app, logoPath))
		se.Router.GET("/api/estimation/projects/{id}/export/excel", handlers.HandleEstimateExportExcel(app))

		// ── Reference database (password-gated) ──────────────────
		se.Router.POST("/api/database/unlock", handlers.HandleDatabaseUnlock(dbPassword))
		se.Router.GET("/api/database/templates/{category}", handlers.HandleTemplateList(app, dbPassword))
		se.Router.POST("/api/database/templates/{category}", handlers.HandleTemplateAdd(app, dbPassword))
		se.Router.POST("/api/database/templates/{category}/import", handlers.HandleTemplateImport(app, dbPassword))
		se.Router.DELETE("/api/database/templates/{category}/{itemId}", handlers.HandleTemplateDelete(app, dbPassword))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
