package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

type itemEntry struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// HandleItemList returns one category ledger for a project, in insertion
// order, along with the category subtotal.
func HandleItemList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		category := e.Request.PathValue("category")

		if _, err := services.GetProject(app, projectID); err != nil {
			return apiError(e, err)
		}

		items, err := services.ListLineItems(app, category, projectID)
		if err != nil {
			return apiError(e, err)
		}

		entries := make([]itemEntry, 0, len(items))
		for _, it := range items {
			entries = append(entries, itemEntry{
				ID:          it.ID,
				Description: it.Description,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				Total:       it.Total(),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items":    entries,
			"subtotal": services.SumLineTotals(items),
		})
	}
}

// HandleItemAdd adds a line item to a project's category ledger from form
// values: description, quantity, unit_price. A missing quantity defaults to
// 1; the unit price is required.
func HandleItemAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		category := e.Request.PathValue("category")

		quantity := 1.0
		if raw := strings.TrimSpace(e.Request.FormValue("quantity")); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return apiError(e, services.ValidationError{Field: "quantity", Reason: "must be a number"})
			}
			quantity = v
		}

		rawPrice := strings.TrimSpace(e.Request.FormValue("unit_price"))
		if rawPrice == "" {
			return apiError(e, services.ValidationError{Field: "unit_price", Reason: "is required"})
		}
		unitPrice, err := strconv.ParseFloat(rawPrice, 64)
		if err != nil {
			return apiError(e, services.ValidationError{Field: "unit_price", Reason: "must be a number"})
		}

		id, addErr := services.AddLineItem(app, category, projectID, e.Request.FormValue("description"), quantity, unitPrice)
		if addErr != nil {
			return apiError(e, addErr)
		}

		return e.JSON(http.StatusCreated, map[string]string{"id": id})
	}
}

// HandleItemDelete removes one ledger row.
func HandleItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		category := e.Request.PathValue("category")
		itemID := e.Request.PathValue("itemId")

		if err := services.DeleteLineItem(app, category, itemID); err != nil {
			return apiError(e, err)
		}

		return e.NoContent(http.StatusNoContent)
	}
}

// parseFormFloat reads a numeric form value. Empty values default to zero.
func parseFormFloat(e *core.RequestEvent, field string) (float64, error) {
	raw := e.Request.FormValue(field)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, services.ValidationError{Field: field, Reason: "must be a number"}
	}
	return v, nil
}
