package export

import (
	"fmt"
	"strings"
)

// Dataset defines tabular report content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Format selects the report encoding.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat normalises a user supplied format, defaulting to CSV.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}

// Report is a rendered document ready to be streamed.
type Report struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Renderer picks the exporter matching the requested format.
type Renderer struct {
	csv *CSVExporter
	pdf *PDFExporter
}

// NewRenderer builds a renderer with both exporters.
func NewRenderer() *Renderer {
	return &Renderer{csv: NewCSVExporter(), pdf: NewPDFExporter()}
}

// Render encodes data as format, using title for the PDF heading and filename stem.
func (r *Renderer) Render(format Format, data Dataset, title, stem string) (*Report, error) {
	var (
		body []byte
		err  error
	)
	switch format {
	case FormatPDF:
		body, err = r.pdf.Render(data, title)
	case FormatCSV:
		body, err = r.csv.Render(data)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return &Report{
		Filename:    fmt.Sprintf("%s.%s", stem, format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}
