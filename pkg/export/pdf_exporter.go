package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth   = 190.0
	minColWidth = 18.0
	rowHeight   = 7.0
)

// PDFExporter renders datasets into a striped A4 table with page numbers.
type PDFExporter struct {
	now func() time.Time
}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{now: time.Now}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	generated := e.now().UTC().Format("2006-01-02 15:04 MST")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 7)
		pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s | page %d/{nb}", generated, pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
		pdf.Ln(3)
	}

	widths := columnWidths(data)
	header := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(220, 228, 240)
		for i, h := range data.Headers {
			pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}
	header()

	if len(data.Rows) == 0 {
		pdf.CellFormat(pageWidth, rowHeight, "No entries", "1", 1, "C", false, 0, "")
	}
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	pdf.SetFillColor(245, 245, 245)
	for n, row := range data.Rows {
		if pdf.GetY()+rowHeight > pageHeight-bottom-15 {
			pdf.AddPage()
			header()
			pdf.SetFillColor(245, 245, 245)
		}
		for i, h := range data.Headers {
			value := row[h]
			align := "L"
			if isNumeric(value) {
				align = "R"
			}
			pdf.CellFormat(widths[i], rowHeight, value, "1", 0, align, n%2 == 1, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths sizes columns by their longest cell, filling the page width.
func columnWidths(data Dataset) []float64 {
	weights := make([]float64, len(data.Headers))
	total := 0.0
	for i, h := range data.Headers {
		longest := len(h)
		for _, row := range data.Rows {
			if l := len(row[h]); l > longest {
				longest = l
			}
		}
		weights[i] = float64(longest) + 4
		total += weights[i]
	}
	widths := make([]float64, len(weights))
	for i, w := range weights {
		widths[i] = pageWidth * w / total
		if widths[i] < minColWidth && len(weights)*int(minColWidth) <= int(pageWidth) {
			widths[i] = minColWidth
		}
	}
	return widths
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
