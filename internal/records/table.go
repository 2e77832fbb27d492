package records

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Results"

// TableFilename derives the default table path from the search inputs, with
// everything but alphanumerics, '_', '.' and '-' stripped.
func TableFilename(query, location string) string {
	name := fmt.Sprintf("YellowPages_%s_%s.xlsx", query, location)
	var sb strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '_' || r == '.' || r == '-' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func (rs *ResultSet) headers() []string {
	if rs.HasEmailColumn {
		return []string{ColBusinessName, ColPhoneNumber, ColEmail}
	}
	return []string{ColBusinessName, ColPhoneNumber}
}

func (rs *ResultSet) row(r Record) []string {
	if rs.HasEmailColumn {
		return []string{r.BusinessName, r.PhoneNumber, r.Email}
	}
	return []string{r.BusinessName, r.PhoneNumber}
}

// Save persists the set to path, chosen by extension (.csv or .xlsx). A
// workbook write failure falls back to a CSV next to the requested path so
// collected data is never lost to a formatting error. It returns the path
// actually written.
func Save(path string, rs *ResultSet) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return path, saveCSV(path, rs)
	}

	if err := saveXLSX(path, rs); err != nil {
		csvPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
		fmt.Fprintf(os.Stderr, "[records] workbook save failed (%v), falling back to %s\n", err, csvPath)
		if err2 := saveCSV(csvPath, rs); err2 != nil {
			return "", fmt.Errorf("failed to save table: %w", err)
		}
		return csvPath, nil
	}
	return path, nil
}

func saveXLSX(path string, rs *ResultSet) error {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), sheetName)

	headers := rs.headers()
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for rowIdx, r := range rs.Records {
		for colIdx, v := range rs.row(r) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", rowIdx+1, err)
			}
		}
	}
	for i := 1; i <= len(headers); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		_ = f.SetColWidth(sheetName, col, col, 32)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func saveCSV(path string, rs *ResultSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(rs.headers()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rs.Records {
		if err := w.Write(rs.row(r)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Load reads a table previously written by Save, in either format.
func Load(path string) (*ResultSet, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return loadCSV(path)
	}
	return loadXLSX(path)
}

func loadXLSX(path string) (*ResultSet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := sheetName
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return fromRows(rows)
}

func loadCSV(path string) (*ResultSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) (*ResultSet, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("table is empty")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.TrimSpace(h)] = i
	}
	nameIdx, ok := cols[ColBusinessName]
	if !ok {
		return nil, fmt.Errorf("%q column not found", ColBusinessName)
	}
	phoneIdx, hasPhone := cols[ColPhoneNumber]
	emailIdx, hasEmail := cols[ColEmail]

	rs := &ResultSet{HasEmailColumn: hasEmail}
	for _, row := range rows[1:] {
		if nameIdx >= len(row) || strings.TrimSpace(row[nameIdx]) == "" {
			continue
		}
		rec := Record{BusinessName: row[nameIdx]}
		if hasPhone && phoneIdx < len(row) {
			rec.PhoneNumber = row[phoneIdx]
		}
		if hasEmail && emailIdx < len(row) {
			rec.Email = row[emailIdx]
		}
		rs.Append(rec)
	}
	return rs, nil
}
