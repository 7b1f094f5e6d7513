package garden

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verdalab/garden-backend/internal/entity"
)

func userMsg(content string) entity.Message {
	return entity.Message{Role: entity.RoleUser, Content: content}
}

func assistantMsg(content string) entity.Message {
	return entity.Message{Role: entity.RoleAssistant, Content: content}
}

func TestAnalyzeEmptyConversation(t *testing.T) {
	analysis := Analyze(nil)

	require.Empty(t, analysis.StyleScores)
	require.Empty(t, analysis.Moods)
	require.Empty(t, analysis.LikedPlants)
	require.Empty(t, analysis.DislikedPlants)
	require.Empty(t, analysis.Usage)
	require.Empty(t, analysis.Constraints)
	require.Nil(t, analysis.Maintenance)
	require.Nil(t, analysis.Sunlight)
	require.Nil(t, analysis.Climate)
	require.False(t, analysis.HasKidsOrPets)
}

func TestAnalyzeIgnoresAssistantText(t *testing.T) {
	messages := []entity.Message{
		assistantMsg("[q:style] do you prefer a modern minimal clean garden?"),
	}

	analysis := Analyze(messages)
	require.Empty(t, analysis.StyleScores)
}

func TestAnalyzeIdempotent(t *testing.T) {
	messages := []entity.Message{
		userMsg("I love modern clean lines and hate roses"),
		userMsg("mostly shade, low-maintenance please, we have a dog"),
	}

	first := Analyze(messages)
	second := Analyze(messages)
	require.Equal(t, first, second)
}

func TestStyleScoringCountsOccurrences(t *testing.T) {
	analysis := Analyze([]entity.Message{
		userMsg("I love modern minimal clean lines"),
	})

	require.GreaterOrEqual(t, analysis.StyleScores["Modern Minimal"], 3)
	require.Len(t, analysis.StyleScores, 1, "no other style keyword present")
}

func TestStyleScoringCountsRepeats(t *testing.T) {
	analysis := Analyze([]entity.Message{
		userMsg("modern, very modern, extremely modern"),
	})

	require.Equal(t, 3, analysis.StyleScores["Modern Minimal"])
}

func TestMoodAndConstraintExtraction(t *testing.T) {
	analysis := Analyze([]entity.Message{
		userMsg("something calm and cozy, calm above all, but we rent so it's a rental on a budget"),
	})

	// Presence only, capitalized, table order, no duplicates.
	require.Equal(t, []string{"Calm", "Cozy"}, analysis.Moods)
	require.Equal(t, []string{"Budget", "Rental"}, analysis.Constraints)
}

func TestMaintenanceFirstPatternWins(t *testing.T) {
	low := entity.MaintenanceLow

	analysis := Analyze([]entity.Message{
		userMsg("I'm busy but I also love gardening daily"),
	})
	require.NotNil(t, analysis.Maintenance)
	require.Equal(t, low, *analysis.Maintenance)

	analysis = Analyze([]entity.Message{userMsg("nothing about upkeep here")})
	require.Nil(t, analysis.Maintenance)
}

func TestSunlightLastMatchWins(t *testing.T) {
	analysis := Analyze([]entity.Message{
		userMsg("we get full sun in the morning but it's mostly shade after noon"),
	})

	require.NotNil(t, analysis.Sunlight)
	require.Equal(t, entity.SunlightShade, *analysis.Sunlight)
}

func TestClimateLastMatchWins(t *testing.T) {
	analysis := Analyze([]entity.Message{
		userMsg("mild here, though winters bring frost"),
	})

	require.NotNil(t, analysis.Climate)
	require.Equal(t, entity.ClimateCold, *analysis.Climate)
}

func TestPlantLikeAndDislike(t *testing.T) {
	analysis := Analyze([]entity.Message{
		userMsg("I love lavender and hate roses"),
	})

	require.Contains(t, analysis.LikedPlants, "Lavender")
	require.Contains(t, analysis.DislikedPlants, "Roses")
}

func TestPlantBareMentionCountsAsLiked(t *testing.T) {
	analysis := Analyze([]entity.Message{
		userMsg("maybe some hostas in the corner"),
	})

	require.Contains(t, analysis.LikedPlants, "Hostas")
	require.Empty(t, analysis.DislikedPlants)
}

func TestPlantCanBeLikedAndDisliked(t *testing.T) {
	analysis := Analyze([]entity.Message{
		userMsg("I like roses but my partner says avoid roses"),
	})

	require.Contains(t, analysis.LikedPlants, "Roses")
	require.Contains(t, analysis.DislikedPlants, "Roses")
}

func TestKidsPetsFlag(t *testing.T) {
	analysis := Analyze([]entity.Message{userMsg("two kids and a dog")})
	require.True(t, analysis.HasKidsOrPets)

	analysis = Analyze([]entity.Message{userMsg("just the two of us")})
	require.False(t, analysis.HasKidsOrPets)
}
