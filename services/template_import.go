package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/xuri/excelize/v2"
)

// ImportRowError represents a single field-level error on one uploaded row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult summarizes a price-list import: how many rows were saved and
// which rows were rejected. Valid rows are saved even when other rows fail.
type ImportResult struct {
	TotalRows    int              `json:"total_rows"`
	ImportedRows int              `json:"imported_rows"`
	ErrorRows    int              `json:"error_rows"`
	Errors       []ImportRowError `json:"errors"`
}

type importRow struct {
	description string
	unitPrice   float64
}

// ImportTemplateFile parses an uploaded CSV or XLSX price list and saves the
// valid rows into the category's template ledger. Expected columns:
// description, unit price (header row required).
func ImportTemplateFile(app *pocketbase.PocketBase, categoryKey string, file io.Reader, fileName string) (*ImportResult, error) {
	var (
		dataRows [][]string
		err      error
	)

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		dataRows, err = parseTemplateCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		dataRows, err = parseTemplateExcel(file)
	default:
		return nil, ValidationError{Field: "file", Reason: "unsupported format, must be .csv or .xlsx"}
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{TotalRows: len(dataRows)}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row

		parsed, rowErrors := validateTemplateRow(rowNum, row)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			result.ErrorRows++
			continue
		}

		if _, err := AddTemplateItem(app, categoryKey, parsed.description, parsed.unitPrice); err != nil {
			return nil, err
		}
		result.ImportedRows++
	}

	return result, nil
}

func validateTemplateRow(rowNum int, row []string) (importRow, []ImportRowError) {
	var errs []ImportRowError

	description := ""
	if len(row) > 0 {
		description = strings.TrimSpace(row[0])
	}
	if description == "" {
		errs = append(errs, ImportRowError{
			Row:     rowNum,
			Field:   "description",
			Message: "description is required",
		})
	}

	rawPrice := ""
	if len(row) > 1 {
		rawPrice = strings.TrimSpace(row[1])
	}
	// Accept "750 000" and "750000,50" style inputs.
	normalized := strings.ReplaceAll(rawPrice, " ", "")
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")

	unitPrice := 0.0
	if normalized != "" {
		v, err := strconv.ParseFloat(normalized, 64)
		switch {
		case err != nil:
			errs = append(errs, ImportRowError{
				Row:     rowNum,
				Field:   "unit_price",
				Message: fmt.Sprintf("%q is not a number", rawPrice),
			})
		case v < 0:
			errs = append(errs, ImportRowError{
				Row:     rowNum,
				Field:   "unit_price",
				Message: "unit price must not be negative",
			})
		default:
			unitPrice = v
		}
	}

	return importRow{description: description, unitPrice: unitPrice}, errs
}

// parseTemplateCSV reads a CSV file and returns the data rows after the header.
func parseTemplateCSV(file io.Reader) ([][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, ValidationError{Field: "file", Reason: fmt.Sprintf("failed to parse CSV: %v", err)}
	}
	if len(allRows) < 2 {
		return nil, ValidationError{Field: "file", Reason: "file must contain a header row and at least one data row"}
	}
	return allRows[1:], nil
}

// parseTemplateExcel reads the first sheet of an xlsx file and returns the
// data rows after the header.
func parseTemplateExcel(file io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, ValidationError{Field: "file", Reason: fmt.Sprintf("failed to open Excel file: %v", err)}
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, ValidationError{Field: "file", Reason: fmt.Sprintf("failed to read sheet: %v", err)}
	}
	if len(rows) < 2 {
		return nil, ValidationError{Field: "file", Reason: "file must contain a header row and at least one data row"}
	}
	return rows[1:], nil
}
