package formatter

import (
	"fmt"
	"strings"

	"github.com/verdalab/garden-backend/internal/entity"
)

const baseTitle = "Garden Concept"

// Formatter renders a finished garden summary into one export encoding.
type Formatter interface {
	Format(summary *entity.GardenSummary) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatJSON:
		return NewJSONFormatter(), nil
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// section is one labelled block of the rendered summary. The shared section
// list keeps markdown, pdf and docx output consistent.
type section struct {
	Title string
	Lines []string
}

func summarySections(summary *entity.GardenSummary) []section {
	sections := []section{
		{Title: "Styles", Lines: summary.Styles},
		{Title: "Moods", Lines: summary.Moods},
		{Title: "Plant palette", Lines: summary.Palette},
		{Title: "Features", Lines: summary.Features},
		{Title: "Usage plan", Lines: summary.UsagePlan},
	}

	var conditions []string
	if summary.Sunlight != nil {
		conditions = append(conditions, "Sunlight: "+string(*summary.Sunlight))
	}
	if summary.Maintenance != nil {
		conditions = append(conditions, "Maintenance: "+string(*summary.Maintenance))
	}
	if summary.Climate != nil {
		conditions = append(conditions, "Climate: "+string(*summary.Climate))
	}
	if len(conditions) > 0 {
		sections = append(sections, section{Title: "Conditions", Lines: conditions})
	}

	if len(summary.Notes) > 0 {
		sections = append(sections, section{Title: "Notes", Lines: summary.Notes})
	}

	return sections
}

// plainText renders the summary as indented text, used by the pdf and docx
// formatters.
func plainText(summary *entity.GardenSummary) string {
	var b strings.Builder
	for _, sec := range summarySections(summary) {
		b.WriteString(sec.Title)
		b.WriteString("\n")
		for _, line := range sec.Lines {
			b.WriteString("  - ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
