package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

type projectListEntry struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Number     int      `json:"number"`
	Reference  string   `json:"reference"`
	Categories []string `json:"categories"`
	Status     string   `json:"status"`
	TotalCost  float64  `json:"total_cost"`
}

// HandleProjectList returns all projects with their grand totals, ordered by
// number.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projects, err := services.ListProjects(app)
		if err != nil {
			return apiError(e, err)
		}

		entries := make([]projectListEntry, 0, len(projects))
		for _, p := range projects {
			grand, _, err := services.ProjectTotalCost(app, p.ID)
			if err != nil {
				return apiError(e, err)
			}
			entries = append(entries, projectListEntry{
				ID:         p.ID,
				Name:       p.Name,
				Number:     p.Number,
				Reference:  services.FormatProjectReference(p.Number),
				Categories: p.Categories,
				Status:     p.Status,
				TotalCost:  grand,
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"projects": entries})
	}
}
