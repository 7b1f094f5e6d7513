package garden

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verdalab/garden-backend/internal/entity"
)

func TestSynthesizeFallbacks(t *testing.T) {
	summary := Synthesize(Analyze(nil))

	require.Equal(t, []string{defaultStyle}, summary.Styles)
	require.Equal(t, defaultMoods, summary.Moods)
	require.Equal(t, defaultUsagePlan, summary.UsagePlan)
	require.Nil(t, summary.Sunlight)
	require.Nil(t, summary.Maintenance)
	require.Nil(t, summary.Climate)
	require.Empty(t, summary.Notes)
}

func TestSynthesizeTopTwoStyles(t *testing.T) {
	analysis := entity.Analysis{
		StyleScores: map[string]int{
			"Modern Minimal":   2,
			"Cottage Romantic": 5,
			"Japanese Zen":     3,
		},
	}

	summary := Synthesize(analysis)
	require.Equal(t, []string{"Cottage Romantic", "Japanese Zen"}, summary.Styles)
}

func TestSynthesizeStyleTieBreaksByTableOrder(t *testing.T) {
	analysis := entity.Analysis{
		StyleScores: map[string]int{
			"Formal Classic": 2,
			"Modern Minimal": 2,
			"Japanese Zen":   2,
		},
	}

	summary := Synthesize(analysis)
	require.Equal(t, []string{"Modern Minimal", "Japanese Zen"}, summary.Styles)
}

func TestDislikeOverridesStyleSuggestion(t *testing.T) {
	analysis := entity.Analysis{
		StyleScores:    map[string]int{"Cottage Romantic": 4},
		DislikedPlants: []string{"Roses"},
	}

	summary := Synthesize(analysis)
	require.Equal(t, []string{"Cottage Romantic"}, summary.Styles)
	for _, plant := range summary.Palette {
		require.NotContains(t, plant, "Roses")
	}
	require.Contains(t, summary.Palette, "Lavender")
	require.Contains(t, summary.Notes, "Avoid: Roses")
}

func TestDislikeRemovesAfterLikeAddition(t *testing.T) {
	analysis := entity.Analysis{
		LikedPlants:    []string{"Roses"},
		DislikedPlants: []string{"Roses"},
	}

	summary := Synthesize(analysis)
	require.NotContains(t, summary.Palette, "Roses")
}

func TestPaletteConditionalAdditions(t *testing.T) {
	shade := entity.SunlightShade
	low := entity.MaintenanceLow
	coastal := entity.ClimateCoastal

	analysis := entity.Analysis{
		Sunlight:    &shade,
		Maintenance: &low,
		Climate:     &coastal,
		LikedPlants: []string{"Tulips"},
	}

	summary := Synthesize(analysis)
	require.Contains(t, summary.Palette, "Hostas")
	require.Contains(t, summary.Palette, "Succulents")
	require.Contains(t, summary.Palette, "Sea thrift")
	require.Contains(t, summary.Palette, "Tulips")
}

func TestPaletteDeduplicatesInInsertionOrder(t *testing.T) {
	low := entity.MaintenanceLow
	analysis := entity.Analysis{
		StyleScores: map[string]int{"Modern Minimal": 1},
		Maintenance: &low,
	}

	// "Ornamental Grasses" comes both from the style and the low-maintenance
	// rule; it must appear once, at its first position.
	summary := Synthesize(analysis)
	count := 0
	for _, p := range summary.Palette {
		if p == "Ornamental Grasses" {
			count++
		}
	}
	require.Equal(t, 1, count)
	require.Equal(t, "Ornamental Grasses", summary.Palette[0])
}

func TestUsageTriggeredFeatures(t *testing.T) {
	analysis := entity.Analysis{
		Usage: []string{"Entertaining", "Firepit", "Reading", "Vegetable"},
	}

	summary := Synthesize(analysis)
	require.Contains(t, summary.Features, "Dining terrace")
	require.Contains(t, summary.Features, "Fire pit lounge")
	require.Contains(t, summary.Features, "Quiet reading nook")
	require.Contains(t, summary.Features, "Raised vegetable beds")
}

func TestKidsPetsAdditions(t *testing.T) {
	analysis := entity.Analysis{HasKidsOrPets: true}

	summary := Synthesize(analysis)
	require.Contains(t, summary.Features, "Soft lawn play area")
	require.Contains(t, summary.UsagePlan, kidsPetsUsageNote)
}

func TestFullSunAndLowMaintenanceFeatures(t *testing.T) {
	full := entity.SunlightFull
	low := entity.MaintenanceLow
	analysis := entity.Analysis{Sunlight: &full, Maintenance: &low}

	summary := Synthesize(analysis)
	require.Contains(t, summary.Features, "Pergola for summer shade")
	require.Contains(t, summary.Features, "Drought-tolerant planting")
}

func TestNotesListConstraints(t *testing.T) {
	analysis := entity.Analysis{Constraints: []string{"Budget", "Rental"}}

	summary := Synthesize(analysis)
	require.Contains(t, summary.Notes, "Constraints: Budget, Rental")
}
