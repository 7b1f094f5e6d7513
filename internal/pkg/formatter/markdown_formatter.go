package formatter

import (
	"bytes"
	"fmt"

	"github.com/verdalab/garden-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(summary *entity.GardenSummary) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", baseTitle)
	for _, sec := range summarySections(summary) {
		fmt.Fprintf(&buf, "\n## %s\n\n", sec.Title)
		for _, line := range sec.Lines {
			fmt.Fprintf(&buf, "- %s\n", line)
		}
	}
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
