package store

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nibzard/yawmak/internal/todo"
)

const sheetName = "todos"

func writeXLSX(path string, tasks []todo.Task) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, t := range tasks {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := taskRecord(t)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return f.SaveAs(path)
}

// readXLSX returns the rows of the "todos" sheet (or the first sheet) keyed
// by the header row. Blank cells are left out.
func readXLSX(path string) ([]map[string]any, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := sheetName
	if idx, _ := f.GetSheetIndex(sheetName); idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	var out []map[string]any
	for _, r := range rows[1:] {
		rec := make(map[string]any, len(header))
		for i, h := range header {
			if h == "" || i >= len(r) || strings.TrimSpace(r[i]) == "" {
				continue
			}
			rec[h] = r[i]
		}
		if len(rec) > 0 {
			out = append(out, rec)
		}
	}
	return out, nil
}
