package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	DataSheet = "Reporte"
	InfoSheet = "Información"
)

// WriteXLSX renders doc as a workbook with the data sheet and the info sheet.
func WriteXLSX(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return err
	}
	if err := writeDataSheet(f, doc.Table); err != nil {
		return fmt.Errorf("write %s sheet: %w", DataSheet, err)
	}
	if err := writeInfoSheet(f, doc); err != nil {
		return fmt.Errorf("write %s sheet: %w", InfoSheet, err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeDataSheet(f *excelize.File, t Table) error {
	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(DataSheet, "A1", &header); err != nil {
		return err
	}
	for r, row := range t.Rows {
		values := make([]any, len(row))
		for i, v := range row {
			values[i] = sheetValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(DataSheet, cell, &values); err != nil {
			return err
		}
	}
	if len(t.Headers) == 0 {
		return nil
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2980B9"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(t.Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(DataSheet, "A1", last, style); err != nil {
		return err
	}

	for i, width := range ColumnWidths(t) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(DataSheet, col, col, float64(width)); err != nil {
			return err
		}
	}
	return nil
}

// sheetValue keeps the native cell types excelize understands and renders
// everything else as text.
func sheetValue(v any) any {
	switch v.(type) {
	case nil:
		return ""
	case string, bool, int, int32, int64, float32, float64:
		return v
	}
	return CellText(v)
}

func writeInfoSheet(f *excelize.File, doc Document) error {
	if _, err := f.NewSheet(InfoSheet); err != nil {
		return err
	}
	rows := [][]any{
		{"Información del Reporte"},
		{"Título", doc.Title},
		{"Fecha de generación", doc.GeneratedAt.Format(timestampLayout)},
		{"Generado por", doc.GeneratedBy},
		{"Filtros aplicados", doc.Filters},
		{"Total de registros", doc.TotalRecords},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(InfoSheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(InfoSheet, "A", "B", 25)
}
