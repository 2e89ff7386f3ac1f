package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// HandleProjectCreate creates a project from form values: name, description
// and one or more repeated categories fields.
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "invalid form data"})
		}

		name := e.Request.FormValue("name")
		description := e.Request.FormValue("description")
		categories := e.Request.Form["categories"]

		id, err := services.CreateProject(app, name, description, categories)
		if err != nil {
			return apiError(e, err)
		}

		project, err := services.GetProject(app, id)
		if err != nil {
			return apiError(e, err)
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":        project.ID,
			"name":      project.Name,
			"number":    project.Number,
			"reference": services.FormatProjectReference(project.Number),
		})
	}
}
