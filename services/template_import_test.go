package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"costestimation/testhelpers"
)

func TestImportTemplateFileCSV(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	csvData := strings.Join([]string{
		"description,unit_price",
		"Vanne papillon DN100,285000",
		"Bride plate DN80,38 000",
		"Clapet anti-retour,\"195000,50\"",
	}, "\n")

	result, err := ImportTemplateFile(app, "materiel_tuyauterie", strings.NewReader(csvData), "prix.csv")
	if err != nil {
		t.Fatalf("ImportTemplateFile: %v", err)
	}

	if result.TotalRows != 3 {
		t.Errorf("total rows = %d, want 3", result.TotalRows)
	}
	if result.ImportedRows != 3 {
		t.Errorf("imported rows = %d, want 3", result.ImportedRows)
	}
	if result.ErrorRows != 0 {
		t.Errorf("error rows = %d, errors: %v", result.ErrorRows, result.Errors)
	}

	items, err := ListTemplateItems(app, "materiel_tuyauterie")
	if err != nil {
		t.Fatalf("ListTemplateItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items", len(items))
	}

	byDesc := make(map[string]float64, len(items))
	for _, it := range items {
		byDesc[it.Description] = it.UnitPrice
	}
	if byDesc["Bride plate DN80"] != 38000 {
		t.Errorf("grouped price not parsed, got %v", byDesc["Bride plate DN80"])
	}
	if byDesc["Clapet anti-retour"] != 195000.50 {
		t.Errorf("comma decimal not parsed, got %v", byDesc["Clapet anti-retour"])
	}
}

func TestImportTemplateFileRejectsBadRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	csvData := strings.Join([]string{
		"description,unit_price",
		",100000",
		"Vanne,abc",
		"Bride,-500",
		"Clapet,195000",
	}, "\n")

	result, err := ImportTemplateFile(app, "materiel_tuyauterie", strings.NewReader(csvData), "prix.csv")
	if err != nil {
		t.Fatalf("ImportTemplateFile: %v", err)
	}

	if result.ImportedRows != 1 {
		t.Errorf("imported rows = %d, want 1", result.ImportedRows)
	}
	if result.ErrorRows != 3 {
		t.Errorf("error rows = %d, want 3; errors: %v", result.ErrorRows, result.Errors)
	}

	// Row numbers are 1-indexed counting the header row.
	if len(result.Errors) == 0 || result.Errors[0].Row != 2 {
		t.Errorf("first error should be on row 2, got %+v", result.Errors)
	}

	items, err := ListTemplateItems(app, "materiel_tuyauterie")
	if err != nil {
		t.Fatalf("ListTemplateItems: %v", err)
	}
	if len(items) != 1 || items[0].Description != "Clapet" {
		t.Errorf("only the valid row should be saved, got %+v", items)
	}
}

func TestImportTemplateFileXLSX(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "description")
	f.SetCellValue(sheet, "B1", "unit_price")
	f.SetCellValue(sheet, "A2", "Ciment CPA 42.5")
	f.SetCellValue(sheet, "B2", 95000)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	f.Close()

	result, err := ImportTemplateFile(app, "materiel_genie_civil", bytes.NewReader(buf.Bytes()), "prix.xlsx")
	if err != nil {
		t.Fatalf("ImportTemplateFile: %v", err)
	}
	if result.ImportedRows != 1 {
		t.Fatalf("imported rows = %d, want 1; errors: %v", result.ImportedRows, result.Errors)
	}

	items, err := ListTemplateItems(app, "materiel_genie_civil")
	if err != nil {
		t.Fatalf("ListTemplateItems: %v", err)
	}
	if len(items) != 1 || items[0].UnitPrice != 95000 {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestImportTemplateFileUnsupportedFormat(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	_, err := ImportTemplateFile(app, "materiel_genie_civil", strings.NewReader("x"), "prix.pdf")
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestImportTemplateFileHeaderOnly(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	_, err := ImportTemplateFile(app, "materiel_genie_civil", strings.NewReader("description,unit_price\n"), "prix.csv")
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
