package services

import (
	"database/sql"
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/collections"
)

// findRecord looks up one record, mapping an absent row to NotFoundError and
// any other lookup failure to StorageError.
func findRecord(app *pocketbase.PocketBase, collection, id, resource string) (*core.Record, error) {
	record, err := app.FindRecordById(collection, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NotFoundError{Resource: resource, ID: id}
		}
		return nil, StorageError{Op: "find " + resource, Err: err}
	}
	return record, nil
}

// ProjectSummary is the list/detail view of a project.
type ProjectSummary struct {
	ID          string
	Name        string
	Description string
	Number      int
	Categories  []string
	Status      string
	Created     string
}

// LineItem is one row of a category ledger.
type LineItem struct {
	ID          string
	ProjectID   string
	Description string
	Quantity    float64
	UnitPrice   float64
}

// Total returns the derived line cost.
func (it LineItem) Total() float64 {
	return LineTotal(it.Quantity, it.UnitPrice)
}

// TemplateItem is one row of a reference price list.
type TemplateItem struct {
	ID          string
	Description string
	UnitPrice   float64
}

// CreateProject validates and stores a new project, assigning the next free
// sequential number. Returns the record id.
func CreateProject(app *pocketbase.PocketBase, name, description string, categoryKeys []string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(categoryKeys) == 0 {
		return "", ValidationError{Field: "categories", Reason: "select at least one category"}
	}
	for _, key := range categoryKeys {
		if _, ok := collections.CategoryByKey(key); !ok {
			return "", ValidationError{Field: "categories", Reason: "unknown category " + key}
		}
	}

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return "", StorageError{Op: "find projects collection", Err: err}
	}

	number, err := nextProjectNumber(app)
	if err != nil {
		return "", err
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("description", strings.TrimSpace(description))
	record.Set("number", number)
	record.Set("categories", categoryKeys)
	record.Set("status", "en_cours")

	if err := app.Save(record); err != nil {
		return "", StorageError{Op: "save project", Err: err}
	}
	return record.Id, nil
}

func nextProjectNumber(app *pocketbase.PocketBase) (int, error) {
	records, err := app.FindAllRecords("projects")
	if err != nil {
		return 0, StorageError{Op: "query project numbers", Err: err}
	}
	max := 0
	for _, r := range records {
		if n := r.GetInt("number"); n > max {
			max = n
		}
	}
	return max + 1, nil
}

// ListProjects returns all projects ordered by number.
func ListProjects(app *pocketbase.PocketBase) ([]ProjectSummary, error) {
	records, err := app.FindAllRecords("projects")
	if err != nil {
		return nil, StorageError{Op: "list projects", Err: err}
	}

	summaries := make([]ProjectSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, projectFromRecord(r))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Number < summaries[j].Number
	})
	return summaries, nil
}

// GetProject fetches one project by id.
func GetProject(app *pocketbase.PocketBase, id string) (ProjectSummary, error) {
	record, err := findRecord(app, "projects", id, "project")
	if err != nil {
		return ProjectSummary{}, err
	}
	return projectFromRecord(record), nil
}

// DeleteProject removes a project. Line items follow through the cascade on
// the ledgers' relation fields. Deleting an absent project is a no-op.
func DeleteProject(app *pocketbase.PocketBase, id string) error {
	record, err := findRecord(app, "projects", id, "project")
	if err != nil {
		var nf NotFoundError
		if errors.As(err, &nf) {
			return nil
		}
		return err
	}
	if err := app.Delete(record); err != nil {
		return StorageError{Op: "delete project", Err: err}
	}
	return nil
}

func projectFromRecord(r *core.Record) ProjectSummary {
	return ProjectSummary{
		ID:          r.Id,
		Name:        r.GetString("name"),
		Description: r.GetString("description"),
		Number:      r.GetInt("number"),
		Categories:  r.GetStringSlice("categories"),
		Status:      r.GetString("status"),
		Created:     r.GetString("created"),
	}
}

// AddLineItem validates and stores a line item in the category's ledger.
func AddLineItem(app *pocketbase.PocketBase, categoryKey, projectID, description string, quantity, unitPrice float64) (string, error) {
	if _, ok := collections.CategoryByKey(categoryKey); !ok {
		return "", ValidationError{Field: "category", Reason: "unknown category " + categoryKey}
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return "", ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if err := validateAmount("quantity", quantity); err != nil {
		return "", err
	}
	if err := validateAmount("unit_price", unitPrice); err != nil {
		return "", err
	}

	if _, err := findRecord(app, "projects", projectID, "project"); err != nil {
		return "", err
	}

	col, err := app.FindCollectionByNameOrId(categoryKey)
	if err != nil {
		return "", StorageError{Op: "find ledger " + categoryKey, Err: err}
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("description", description)
	record.Set("quantity", quantity)
	record.Set("unit_price", unitPrice)

	if err := app.Save(record); err != nil {
		return "", StorageError{Op: "save line item", Err: err}
	}
	return record.Id, nil
}

func validateAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ValidationError{Field: field, Reason: "must be a finite number"}
	}
	if v < 0 {
		return ValidationError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

// ListLineItems returns a project's ledger rows in insertion order. Autodate
// timestamps have millisecond precision, so id breaks ties to keep the order
// stable across calls.
func ListLineItems(app *pocketbase.PocketBase, categoryKey, projectID string) ([]LineItem, error) {
	if _, ok := collections.CategoryByKey(categoryKey); !ok {
		return nil, ValidationError{Field: "category", Reason: "unknown category " + categoryKey}
	}

	records, err := app.FindRecordsByFilter(categoryKey, "project = {:project}", "created,id", 0, 0,
		map[string]any{"project": projectID})
	if err != nil {
		return nil, StorageError{Op: "list line items " + categoryKey, Err: err}
	}

	items := make([]LineItem, 0, len(records))
	for _, r := range records {
		items = append(items, lineItemFromRecord(r))
	}
	return items, nil
}

// DeleteLineItem removes a ledger row. Absent rows are a no-op.
func DeleteLineItem(app *pocketbase.PocketBase, categoryKey, id string) error {
	if _, ok := collections.CategoryByKey(categoryKey); !ok {
		return ValidationError{Field: "category", Reason: "unknown category " + categoryKey}
	}
	record, err := findRecord(app, categoryKey, id, "line item")
	if err != nil {
		var nf NotFoundError
		if errors.As(err, &nf) {
			return nil
		}
		return err
	}
	if err := app.Delete(record); err != nil {
		return StorageError{Op: "delete line item", Err: err}
	}
	return nil
}

func lineItemFromRecord(r *core.Record) LineItem {
	return LineItem{
		ID:          r.Id,
		ProjectID:   r.GetString("project"),
		Description: r.GetString("description"),
		Quantity:    r.GetFloat("quantity"),
		UnitPrice:   r.GetFloat("unit_price"),
	}
}

// ProjectTotalCost recomputes the grand total and per-category subtotals over
// all nine ledgers. Categories without items contribute zero.
func ProjectTotalCost(app *pocketbase.PocketBase, projectID string) (float64, CategoryTotals, error) {
	if _, err := findRecord(app, "projects", projectID, "project"); err != nil {
		return 0, nil, err
	}

	totals := make(CategoryTotals, len(collections.Categories))
	for _, cat := range collections.Categories {
		items, err := ListLineItems(app, cat.Key, projectID)
		if err != nil {
			return 0, nil, err
		}
		totals[cat.Key] = SumLineTotals(items)
	}
	return totals.GrandTotal(), totals, nil
}

// AddTemplateItem stores a row in a category's reference price list.
func AddTemplateItem(app *pocketbase.PocketBase, categoryKey, description string, unitPrice float64) (string, error) {
	if _, ok := collections.CategoryByKey(categoryKey); !ok {
		return "", ValidationError{Field: "category", Reason: "unknown category " + categoryKey}
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return "", ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if err := validateAmount("unit_price", unitPrice); err != nil {
		return "", err
	}

	col, err := app.FindCollectionByNameOrId(collections.TemplateLedger(categoryKey))
	if err != nil {
		return "", StorageError{Op: "find template ledger", Err: err}
	}

	record := core.NewRecord(col)
	record.Set("description", description)
	record.Set("unit_price", unitPrice)

	if err := app.Save(record); err != nil {
		return "", StorageError{Op: "save template item", Err: err}
	}
	return record.Id, nil
}

// ListTemplateItems returns a category's reference price list sorted by
// description. A missing ledger yields an empty list rather than an error.
func ListTemplateItems(app *pocketbase.PocketBase, categoryKey string) ([]TemplateItem, error) {
	if _, ok := collections.CategoryByKey(categoryKey); !ok {
		return nil, ValidationError{Field: "category", Reason: "unknown category " + categoryKey}
	}

	ledger := collections.TemplateLedger(categoryKey)
	if _, err := app.FindCollectionByNameOrId(ledger); err != nil {
		return []TemplateItem{}, nil
	}

	records, err := app.FindAllRecords(ledger)
	if err != nil {
		return nil, StorageError{Op: "list templates " + categoryKey, Err: err}
	}

	items := make([]TemplateItem, 0, len(records))
	for _, r := range records {
		items = append(items, TemplateItem{
			ID:          r.Id,
			Description: r.GetString("description"),
			UnitPrice:   r.GetFloat("unit_price"),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Description) < strings.ToLower(items[j].Description)
	})
	return items, nil
}

// DeleteTemplateItem removes a reference price list row. Absent rows are a
// no-op.
func DeleteTemplateItem(app *pocketbase.PocketBase, categoryKey, id string) error {
	if _, ok := collections.CategoryByKey(categoryKey); !ok {
		return ValidationError{Field: "category", Reason: "unknown category " + categoryKey}
	}
	record, err := findRecord(app, collections.TemplateLedger(categoryKey), id, "template item")
	if err != nil {
		var nf NotFoundError
		if errors.As(err, &nf) {
			return nil
		}
		return err
	}
	if err := app.Delete(record); err != nil {
		return StorageError{Op: "delete template item", Err: err}
	}
	return nil
}
