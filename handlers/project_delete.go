package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// HandleProjectDelete removes a project and, through the ledger relations,
// all of its line items.
func HandleProjectDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		if err := services.DeleteProject(app, id); err != nil {
			return apiError(e, err)
		}

		return e.NoContent(http.StatusNoContent)
	}
}
