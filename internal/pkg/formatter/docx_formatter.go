package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/document"

	"github.com/verdalab/garden-backend/internal/entity"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(summary *entity.GardenSummary) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(baseTitle)

	for _, sec := range summarySections(summary) {
		headingPar := doc.AddParagraph()
		headingPar.SetStyle("Heading2")
		headingPar.AddRun().AddText(sec.Title)

		for _, line := range sec.Lines {
			linePar := doc.AddParagraph()
			linePar.AddRun().AddText("- " + line)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
