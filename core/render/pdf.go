package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/lexipipe/core"
)

// Layout in millimetres on an A4 portrait page.
const (
	pdfMargin   = 15.0
	pdfLabelW   = 45.0
	pdfBarMaxW  = 110.0
	pdfRowH     = 6.0
	pdfBarInset = 1.0
)

// PDFRenderer renders the preview rows as a horizontal bar chart.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render draws one bar per previewed word, longest bar = highest frequency.
func (r *PDFRenderer) Render(report *core.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	// Core fonts are cp1252; translate so umlauts survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr(heading(report)), "", "L", false)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr("Source: "+report.URL), "", "L", false)
	subtitle := fmt.Sprintf("%d tokens, %d distinct words", report.Table.Total(), report.Table.Len())
	if report.Leveled {
		subtitle += fmt.Sprintf(", level %s and above: %d words", report.Threshold, len(report.Rows))
	}
	pdf.MultiCell(0, 5, subtitle, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	shown := preview(report)
	maxCount := 0
	for _, row := range shown {
		maxCount = max(maxCount, row.Count)
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(70, 130, 180)
	for _, row := range shown {
		label := row.Word
		if report.Leveled {
			label += " (" + string(row.Level) + ")"
		}

		x, y := pdf.GetXY()
		pdf.CellFormat(pdfLabelW, pdfRowH, tr(label), "", 0, "R", false, 0, "")

		w := 0.0
		if maxCount > 0 {
			w = pdfBarMaxW * float64(row.Count) / float64(maxCount)
		}
		pdf.Rect(x+pdfLabelW+2, y+pdfBarInset, w, pdfRowH-2*pdfBarInset, "F")
		pdf.SetXY(x+pdfLabelW+4+w, y)
		pdf.CellFormat(20, pdfRowH, strconv.Itoa(row.Count), "", 1, "L", false, 0, "")
		pdf.SetX(x)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}
