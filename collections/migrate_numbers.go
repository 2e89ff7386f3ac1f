package collections

import (
	"fmt"
	"log"
	"sort"

	"github.com/pocketbase/pocketbase"
)

// MigrateProjectNumbers assigns sequential numbers to projects that predate
// the number field. Numbering continues after the highest existing value, in
// creation order, so references stay stable across restarts.
func MigrateProjectNumbers(app *pocketbase.PocketBase) error {
	records, err := app.FindAllRecords("projects")
	if err != nil {
		return fmt.Errorf("migrate numbers: list projects: %w", err)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].GetString("created") < records[j].GetString("created")
	})

	next := 1
	for _, r := range records {
		if n := r.GetInt("number"); n >= next {
			next = n + 1
		}
	}

	migrated := 0
	for _, r := range records {
		if r.GetInt("number") > 0 {
			continue
		}
		r.Set("number", next)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("migrate numbers: save project %s: %w", r.Id, err)
		}
		next++
		migrated++
	}

	if migrated > 0 {
		log.Printf("migrate numbers: assigned numbers to %d project(s)", migrated)
	}
	return nil
}
