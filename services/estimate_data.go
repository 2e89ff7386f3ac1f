package services

import (
	"sort"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"

	"costestimation/collections"
)

// Issuer identity printed on every estimate document.
const (
	IssuerName    = "PROSEEN"
	IssuerCity    = "Abidjan, Côte d'Ivoire"
	IssuerPhone   = "Tél: +225 07 07 07 07 07"
	IssuerEmail   = "Email: contact@proseen.ci"
	DocumentTitle = "ETUDES APD POUR LA CONSTRUCTION D'UNE INFRASTRUCTURE"
)

// EstimateRow is one printable line of the estimate table.
type EstimateRow struct {
	Description string
	Quantity    float64
	UnitPrice   float64
	Total       float64
}

// EstimateSection groups a category's rows under its report label.
type EstimateSection struct {
	CategoryKey string
	Label       string
	Rows        []EstimateRow
	Subtotal    float64
}

// EstimateData is everything the PDF/Excel generators need, fully resolved so
// the generators stay free of database access.
type EstimateData struct {
	ProjectName        string
	ProjectDescription string
	ProjectNumber      int
	Reference          string
	Date               string
	Version            string
	Sections           []EstimateSection
	GrandTotal         float64
}

// BuildEstimateData assembles the report model for a project: its selected
// categories in stored order, each ledger's items sorted by description, and
// the derived totals. Categories without items are skipped so the document
// carries no empty group headers.
func BuildEstimateData(app *pocketbase.PocketBase, projectID string) (*EstimateData, error) {
	project, err := GetProject(app, projectID)
	if err != nil {
		return nil, err
	}

	data := &EstimateData{
		ProjectName:        project.Name,
		ProjectDescription: project.Description,
		ProjectNumber:      project.Number,
		Reference:          FormatProjectReference(project.Number),
		Date:               time.Now().Format("02/01/2006"),
		Version:            "1.0",
	}

	for _, key := range project.Categories {
		cat, ok := collections.CategoryByKey(key)
		if !ok {
			continue
		}

		items, err := ListLineItems(app, key, projectID)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			continue
		}

		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Description) < strings.ToLower(items[j].Description)
		})

		section := EstimateSection{
			CategoryKey: key,
			Label:       cat.ReportLabel,
		}
		for _, it := range items {
			total := it.Total()
			section.Rows = append(section.Rows, EstimateRow{
				Description: it.Description,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				Total:       total,
			})
			section.Subtotal += total
		}

		data.Sections = append(data.Sections, section)
		data.GrandTotal += section.Subtotal
	}

	return data, nil
}
