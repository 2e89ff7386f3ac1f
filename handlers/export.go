package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// HandleEstimateExportPDF generates the estimate PDF for a project and
// returns it as a download.
func HandleEstimateExportPDF(app *pocketbase.PocketBase, logoPath string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")

		data, err := services.BuildEstimateData(app, projectID)
		if err != nil {
			return apiError(e, err)
		}

		pdfBytes, err := services.GenerateEstimatePDF(data, logoPath)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := services.EstimateDownloadName(data.ProjectNumber, "pdf")

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleEstimateExportExcel generates the estimate spreadsheet for a project
// and returns it as a download.
func HandleEstimateExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")

		data, err := services.BuildEstimateData(app, projectID)
		if err != nil {
			return apiError(e, err)
		}

		xlsxBytes, err := services.GenerateEstimateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := services.EstimateDownloadName(data.ProjectNumber, "xlsx")

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
