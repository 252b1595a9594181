package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin      = 20.0
	pdfLineHeight  = 5.0
	pdfCellPadding = 1.5
	footerText     = "Página %d de {nb} - Sistema de Gestión de Seguridad Ciudadana (SGSC)"
	// Tables wider than this many columns are laid out in landscape.
	portraitMaxColumns = 6
)

// WritePDF renders doc as an A4 document: title, the table with its header
// repeated on every page and alternate row shading, then the metadata block.
// Every page carries the "Página i de n" footer.
func WritePDF(w io.Writer, doc Document) error {
	orientation := "P"
	if len(doc.Headers) > portraitMaxColumns {
		orientation = "L"
	}
	pdf := fpdf.New(orientation, "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AliasNbPages("{nb}")
	pdf.SetFooterFunc(func() {
		_, pageH := pdf.GetPageSize()
		pdf.SetY(pageH - 15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf(footerText, pdf.PageNo())), "", 0, "L", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(40, 40, 40)
	pdf.MultiCell(0, 8, tr(doc.Title), "", "L", false)
	pdf.Ln(4)

	t := &pdfTable{pdf: pdf, tr: tr, doc: doc}
	t.layout()
	t.header()
	for i, row := range doc.Rows {
		t.row(i, row)
	}

	t.metadata()
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

type pdfTable struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	doc    Document
	widths []float64
}

// layout spreads the usable page width over the columns in proportion to
// their text widths.
func (t *pdfTable) layout() {
	pageW, _ := t.pdf.GetPageSize()
	usable := pageW - 2*pdfMargin
	chars := ColumnWidths(t.doc.Table)
	total := 0
	for _, c := range chars {
		total += c
	}
	t.widths = make([]float64, len(chars))
	for i, c := range chars {
		t.widths[i] = usable * float64(c) / float64(total)
	}
}

func (t *pdfTable) bottom() float64 {
	_, pageH := t.pdf.GetPageSize()
	return pageH - pdfMargin
}

func (t *pdfTable) header() {
	pdf := t.pdf
	pdf.SetFont("Helvetica", "B", 10)
	lines := make([][]string, len(t.doc.Headers))
	height := 0.0
	for i, h := range t.doc.Headers {
		lines[i] = t.wrap(h, t.widths[i])
		height = max(height, float64(len(lines[i]))*pdfLineHeight)
	}
	height += 2 * pdfCellPadding
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	t.cells(lines, height, true)
	pdf.SetFont("Helvetica", "", 9)
}

func (t *pdfTable) row(index int, row []any) {
	pdf := t.pdf
	pdf.SetFont("Helvetica", "", 9)
	lines := make([][]string, len(row))
	height := 0.0
	for i, v := range row {
		if i >= len(t.widths) {
			break
		}
		lines[i] = t.wrap(CellText(v), t.widths[i])
		height = max(height, float64(len(lines[i]))*pdfLineHeight)
	}
	height += 2 * pdfCellPadding
	if pdf.GetY()+height > t.bottom() {
		pdf.AddPage()
		t.header()
	}
	pdf.SetTextColor(50, 50, 50)
	shaded := index%2 == 1
	if shaded {
		pdf.SetFillColor(245, 245, 245)
	}
	t.cells(lines, height, shaded)
}

func (t *pdfTable) cells(lines [][]string, height float64, fill bool) {
	pdf := t.pdf
	x, y := pdfMargin, pdf.GetY()
	pdf.SetDrawColor(220, 220, 220)
	for i, cell := range lines {
		if i >= len(t.widths) {
			break
		}
		style := "D"
		if fill {
			style = "FD"
		}
		pdf.Rect(x, y, t.widths[i], height, style)
		for n, line := range cell {
			pdf.SetXY(x+pdfCellPadding, y+pdfCellPadding+float64(n)*pdfLineHeight)
			pdf.CellFormat(t.widths[i]-2*pdfCellPadding, pdfLineHeight, t.tr(line), "", 0, "L", false, 0, "")
		}
		x += t.widths[i]
	}
	pdf.SetXY(pdfMargin, y+height)
}

// wrap breaks text into lines that fit width at the current font. Words
// longer than a line are cut.
func (t *pdfTable) wrap(text string, width float64) []string {
	limit := width - 2*pdfCellPadding
	fits := func(s string) bool { return t.pdf.GetStringWidth(t.tr(s)) <= limit }
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if fits(candidate) {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			line = ""
			for _, r := range word {
				if !fits(line+string(r)) && line != "" {
					lines = append(lines, line)
					line = ""
				}
				line += string(r)
			}
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func (t *pdfTable) metadata() {
	pdf := t.pdf
	m := t.doc.Metadata
	entries := []string{
		"Fecha de generación: " + m.GeneratedAt.Format(timestampLayout),
		"Generado por: " + m.GeneratedBy,
		"Filtros aplicados: " + m.Filters,
		fmt.Sprintf("Total de registros: %d", m.TotalRecords),
	}
	pdf.SetFont("Helvetica", "", 10)
	pageW, _ := pdf.GetPageSize()
	width := pageW - 2*pdfMargin
	height := 6.0
	for _, e := range entries {
		height += float64(len(t.wrap(e, width))) * 7
	}
	if pdf.GetY()+height > t.bottom() {
		pdf.AddPage()
	}
	pdf.Ln(6)
	pdf.SetTextColor(100, 100, 100)
	for _, e := range entries {
		pdf.SetX(pdfMargin)
		pdf.MultiCell(width, 7, t.tr(e), "", "L", false)
	}
}
