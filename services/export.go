package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pocketbase/pocketbase"
)

// ExportEstimatePDF builds the estimate for a project, renders the PDF and
// writes it to path. When path is empty a timestamped default filename in the
// current directory is used. Nothing is written unless generation succeeds.
// Returns the final path.
func ExportEstimatePDF(app *pocketbase.PocketBase, projectID, path, logoPath string) (string, error) {
	data, err := BuildEstimateData(app, projectID)
	if err != nil {
		return "", err
	}

	pdf, err := GenerateEstimatePDF(data, logoPath)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = defaultEstimateFilename(data.ProjectNumber, time.Now())
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", StorageError{Op: "create export directory", Err: err}
		}
	}

	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", StorageError{Op: "write estimate PDF", Err: err}
	}

	return path, nil
}

// defaultEstimateFilename builds the canonical export name, e.g.
// estimation_projet_7_20260831_141502.pdf.
func defaultEstimateFilename(projectNumber int, now time.Time) string {
	return fmt.Sprintf("estimation_projet_%d_%s.pdf", projectNumber, now.Format("20060102_150405"))
}

// EstimateDownloadName builds the attachment filename for HTTP downloads.
func EstimateDownloadName(projectNumber int, ext string) string {
	return fmt.Sprintf("estimation_projet_%d_%s.%s", projectNumber, time.Now().Format("20060102_150405"), ext)
}
