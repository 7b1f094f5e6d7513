package formatter

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	"github.com/verdalab/garden-backend/internal/entity"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func (pf *PDFFormatter) Format(summary *entity.GardenSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 10, baseTitle)
	pdf.Ln(14)

	for _, sec := range summarySections(summary) {
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 8, sec.Title)
		pdf.Ln(9)

		pdf.SetFont("Arial", "", 11)
		_, lineHeight := pdf.GetFontSize()
		for _, line := range sec.Lines {
			pdf.MultiCell(0, lineHeight*1.6, "- "+line, "", "", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
