package services

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"costestimation/testhelpers"
)

func TestDefaultEstimateFilename(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 45, 0, time.UTC)

	got := defaultEstimateFilename(7, now)
	want := "estimation_projet_7_20260315_143045.pdf"
	if got != want {
		t.Errorf("defaultEstimateFilename = %q, want %q", got, want)
	}

	got = defaultEstimateFilename(123, now)
	want = "estimation_projet_123_20260315_143045.pdf"
	if got != want {
		t.Errorf("defaultEstimateFilename = %q, want %q", got, want)
	}
}

func TestExportEstimatePDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	project := testhelpers.CreateTestProject(t, app, "Station", 7, "materiel_electrique")
	testhelpers.CreateTestLineItem(t, app, "materiel_electrique", project.Id, "Armoire", 1, 500000)

	path := filepath.Join(t.TempDir(), "export", "estimation.pdf")

	finalPath, err := ExportEstimatePDF(app, project.Id, path, "")
	if err != nil {
		t.Fatalf("ExportEstimatePDF: %v", err)
	}
	if finalPath != path {
		t.Errorf("final path = %q, want %q", finalPath, path)
	}

	content, err := os.ReadFile(finalPath)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF")) {
		t.Error("exported file is not a PDF")
	}
}

func TestExportEstimatePDFMissingProjectWritesNothing(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	path := filepath.Join(t.TempDir(), "estimation.pdf")
	_, err := ExportEstimatePDF(app, "missing123", path, "")

	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should exist after a failed export")
	}
}
