package formatter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verdalab/garden-backend/internal/entity"
)

func sampleSummary() *entity.GardenSummary {
	shade := entity.SunlightShade
	return &entity.GardenSummary{
		Styles:    []string{"Japanese Zen"},
		Moods:     []string{"Calm"},
		Palette:   []string{"Japanese Maple", "Ferns"},
		Features:  []string{"Stone lantern"},
		UsagePlan: []string{"Quiet"},
		Sunlight:  &shade,
		Notes:     []string{"Avoid: Roses"},
	}
}

func TestFactoryCreatesAllFormats(t *testing.T) {
	factory := NewFactory()
	for _, format := range []entity.ResultFormat{
		entity.FormatJSON, entity.FormatMarkdown, entity.FormatPDF, entity.FormatDOCX,
	} {
		fmtr, err := factory.Create(format)
		require.NoError(t, err, "format %s", format)
		require.NotNil(t, fmtr)
	}

	_, err := factory.Create(entity.ResultFormat("xml"))
	require.Error(t, err)
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(sampleSummary())
	require.NoError(t, err)

	text := string(out)
	require.Contains(t, text, "# Garden Concept")
	require.Contains(t, text, "## Styles")
	require.Contains(t, text, "- Japanese Zen")
	require.Contains(t, text, "Sunlight: shade")
	require.Contains(t, text, "- Avoid: Roses")
}

func TestMarkdownOmitsEmptyOptionalSections(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(&entity.GardenSummary{
		Styles: []string{"Relaxed Garden"},
	})
	require.NoError(t, err)

	text := string(out)
	require.NotContains(t, text, "## Conditions")
	require.NotContains(t, text, "## Notes")
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	out, err := NewJSONFormatter().Format(sampleSummary())
	require.NoError(t, err)
	require.Contains(t, string(out), `"Japanese Zen"`)
	require.Equal(t, "application/json", NewJSONFormatter().ContentType())
}

func TestPDFFormatterProducesDocument(t *testing.T) {
	out, err := NewPDFFormatter().Format(sampleSummary())
	require.NoError(t, err)
	require.True(t, len(out) > 4)
	require.Equal(t, "%PDF", string(out[:4]))
}
