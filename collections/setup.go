package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ProjectStatusOptions are the allowed project lifecycle states.
var ProjectStatusOptions = []string{"en_cours", "termine", "suspendu"}

// Setup programmatically creates/ensures the projects collection, the nine
// line-item ledgers and the nine template ledgers.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.NumberField{Name: "number", Required: false, OnlyInt: true})
		c.Fields.Add(&core.SelectField{
			Name:      "categories",
			Required:  true,
			Values:    CategoryKeys(),
			MaxSelect: len(Categories),
		})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    ProjectStatusOptions,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	// One line-item ledger per category, all with the same shape. Deleting a
	// project cascades into every ledger through the relation field.
	for _, cat := range Categories {
		ensureCollection(app, cat.Key, func(c *core.Collection) {
			c.Fields.Add(&core.RelationField{
				Name:          "project",
				Required:      true,
				CollectionId:  projects.Id,
				CascadeDelete: true,
				MaxSelect:     1,
			})
			c.Fields.Add(&core.TextField{Name: "description", Required: true})
			c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
			c.Fields.Add(&core.NumberField{Name: "unit_price", Required: false})
			c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		})
	}

	// Template ledgers hold global reference price lists, no project relation.
	for _, cat := range Categories {
		ensureCollection(app, TemplateLedger(cat.Key), func(c *core.Collection) {
			c.Fields.Add(&core.TextField{Name: "description", Required: true})
			c.Fields.Add(&core.NumberField{Name: "unit_price", Required: false})
			c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		})
	}
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
