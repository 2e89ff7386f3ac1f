package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/collections"
	"costestimation/services"
)

type categoryDetail struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Subtotal float64 `json:"subtotal"`
}

// HandleProjectView returns one project with per-category subtotals over its
// selected categories.
func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		project, err := services.GetProject(app, id)
		if err != nil {
			return apiError(e, err)
		}

		grand, perCategory, err := services.ProjectTotalCost(app, id)
		if err != nil {
			return apiError(e, err)
		}

		details := make([]categoryDetail, 0, len(project.Categories))
		for _, key := range project.Categories {
			cat, ok := collections.CategoryByKey(key)
			if !ok {
				continue
			}
			details = append(details, categoryDetail{
				Key:      key,
				Label:    cat.Label,
				Subtotal: perCategory[key],
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"id":          project.ID,
			"name":        project.Name,
			"description": project.Description,
			"number":      project.Number,
			"reference":   services.FormatProjectReference(project.Number),
			"status":      project.Status,
			"categories":  details,
			"total_cost":  grand,
		})
	}
}
