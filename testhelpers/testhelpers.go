// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name, number and
// category selection and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string, number int, categories ...string) *core.Record {
	t.Helper()

	if len(categories) == 0 {
		categories = []string{"materiel_electrique"}
	}

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("number", number)
	record.Set("categories", categories)
	record.Set("status", "en_cours")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestLineItem creates a ledger row in the given category for a project.
func CreateTestLineItem(t *testing.T, app *pocketbase.PocketBase, categoryKey, projectID, description string, qty, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(categoryKey)
	if err != nil {
		t.Fatalf("failed to find ledger %s: %v", categoryKey, err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("description", description)
	record.Set("quantity", qty)
	record.Set("unit_price", unitPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test line item: %v", err)
	}

	return record
}

// CreateTestTemplateItem creates a reference price list row for a category.
func CreateTestTemplateItem(t *testing.T, app *pocketbase.PocketBase, categoryKey, description string, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.TemplateLedger(categoryKey))
	if err != nil {
		t.Fatalf("failed to find template ledger for %s: %v", categoryKey, err)
	}

	record := core.NewRecord(col)
	record.Set("description", description)
	record.Set("unit_price", unitPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test template item: %v", err)
	}

	return record
}
