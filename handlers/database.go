package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

const databaseAccessCookie = "estimation_db_access"

// HandleDatabaseUnlock checks the submitted password against the configured
// secret and, on success, sets the access cookie for the reference database
// endpoints.
func HandleDatabaseUnlock(secret string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		password := e.Request.FormValue("password")

		if !services.CheckDatabasePassword(password, secret) {
			return e.JSON(http.StatusUnauthorized, map[string]string{"error": "incorrect password"})
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     databaseAccessCookie,
			Value:    services.DatabaseAccessToken(secret),
			Path:     "/api/database",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		return e.JSON(http.StatusOK, map[string]string{"status": "unlocked"})
	}
}

// requireDatabaseAccess verifies the access cookie. Returns false after
// writing the 401 response when the client has not unlocked the database.
func requireDatabaseAccess(e *core.RequestEvent, secret string) bool {
	cookie, err := e.Request.Cookie(databaseAccessCookie)
	if err != nil || cookie.Value != services.DatabaseAccessToken(secret) {
		e.JSON(http.StatusUnauthorized, map[string]string{"error": "database is locked"})
		return false
	}
	return true
}

type templateEntry struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
}

// HandleTemplateList returns a category's reference price list.
func HandleTemplateList(app *pocketbase.PocketBase, secret string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if !requireDatabaseAccess(e, secret) {
			return nil
		}

		items, err := services.ListTemplateItems(app, e.Request.PathValue("category"))
		if err != nil {
			return apiError(e, err)
		}

		entries := make([]templateEntry, 0, len(items))
		for _, it := range items {
			entries = append(entries, templateEntry{
				ID:          it.ID,
				Description: it.Description,
				UnitPrice:   it.UnitPrice,
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"templates": entries})
	}
}

// HandleTemplateAdd stores a new reference price list row from form values:
// description, unit_price.
func HandleTemplateAdd(app *pocketbase.PocketBase, secret string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if !requireDatabaseAccess(e, secret) {
			return nil
		}

		unitPrice, err := parseFormFloat(e, "unit_price")
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		id, addErr := services.AddTemplateItem(app, e.Request.PathValue("category"), e.Request.FormValue("description"), unitPrice)
		if addErr != nil {
			return apiError(e, addErr)
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": id})
	}
}

// HandleTemplateDelete removes one reference price list row.
func HandleTemplateDelete(app *pocketbase.PocketBase, secret string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if !requireDatabaseAccess(e, secret) {
			return nil
		}

		if err := services.DeleteTemplateItem(app, e.Request.PathValue("category"), e.Request.PathValue("itemId")); err != nil {
			return apiError(e, err)
		}

		return e.NoContent(http.StatusNoContent)
	}
}

// HandleTemplateImport imports an uploaded CSV/XLSX price list into a
// category's template ledger.
func HandleTemplateImport(app *pocketbase.PocketBase, secret string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if !requireDatabaseAccess(e, secret) {
			return nil
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "missing file upload"})
		}
		defer file.Close()

		result, err := services.ImportTemplateFile(app, e.Request.PathValue("category"), file, header.Filename)
		if err != nil {
			return apiError(e, err)
		}

		return e.JSON(http.StatusOK, result)
	}
}
