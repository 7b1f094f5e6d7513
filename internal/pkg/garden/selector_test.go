package garden

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verdalab/garden-backend/internal/entity"
)

func TestTagRoundTrip(t *testing.T) {
	tagged := TagQuestion(entity.QuestionSun, "How much sun does the space get?")
	require.Equal(t, "[q:sun] How much sun does the space get?", tagged)

	key, ok := ParseQuestionKey(tagged)
	require.True(t, ok)
	require.Equal(t, entity.QuestionSun, key)
}

func TestParseQuestionKeyRejectsGarbage(t *testing.T) {
	for _, content := range []string{
		"plain assistant text",
		"[q:unknown-topic] something",
		"[q:style no closing bracket",
		"",
	} {
		_, ok := ParseQuestionKey(content)
		require.False(t, ok, "content %q", content)
	}
}

func TestAskedKeysScansAssistantOnly(t *testing.T) {
	messages := []entity.Message{
		assistantMsg(TagQuestion(entity.QuestionPlants, "Plants?")),
		userMsg("[q:style] trying to spoof a tag"),
		assistantMsg(TagQuestion(entity.QuestionSun, "Sun?")),
		assistantMsg("untagged remark"),
	}

	asked := AskedKeys(messages)
	require.Len(t, asked, 2)
	require.True(t, asked[entity.QuestionPlants])
	require.True(t, asked[entity.QuestionSun])
}

func TestFirstQuestionIsPlants(t *testing.T) {
	analysis := Analyze(nil)
	next := SelectNext(AskedKeys(nil), analysis)
	require.Equal(t, entity.QuestionPlants, next)
}

func TestSelectionPolicyOrder(t *testing.T) {
	sun := entity.SunlightFull
	maintenance := entity.MaintenanceLow
	climate := entity.ClimateTemperate

	resolved := entity.Analysis{
		LikedPlants: []string{"Roses"},
		Sunlight:    &sun,
		Maintenance: &maintenance,
		Climate:     &climate,
	}

	// With every signal resolved the static order applies.
	require.Equal(t, entity.QuestionFeels, SelectNext(map[entity.QuestionKey]bool{}, resolved))

	// Kids/pets promotes the usage topic.
	withKids := resolved
	withKids.HasKidsOrPets = true
	require.Equal(t, entity.QuestionUse, SelectNext(map[entity.QuestionKey]bool{}, withKids))

	// Missing sunlight outranks missing maintenance.
	unresolved := resolved
	unresolved.Sunlight = nil
	unresolved.Maintenance = nil
	require.Equal(t, entity.QuestionSun, SelectNext(map[entity.QuestionKey]bool{}, unresolved))

	asked := map[entity.QuestionKey]bool{entity.QuestionSun: true}
	require.Equal(t, entity.QuestionMaintenance, SelectNext(asked, unresolved))
}

func TestSelectNextFallsBackToConstraints(t *testing.T) {
	asked := map[entity.QuestionKey]bool{}
	for _, key := range entity.DefaultQuestionOrder {
		asked[key] = true
	}
	sun := entity.SunlightFull
	maintenance := entity.MaintenanceLow
	climate := entity.ClimateTemperate
	analysis := entity.Analysis{
		LikedPlants: []string{"Ferns"},
		Sunlight:    &sun,
		Maintenance: &maintenance,
		Climate:     &climate,
	}

	require.Equal(t, entity.QuestionConstraints, SelectNext(asked, analysis))
}

func TestCompletionByCoverage(t *testing.T) {
	var messages []entity.Message
	keys := entity.DefaultQuestionOrder[:coverageTarget]
	for _, key := range keys {
		messages = append(messages, assistantMsg(TagQuestion(key, fmt.Sprintf("about %s?", key))))
		messages = append(messages, userMsg("hm"))
	}

	asked := AskedKeys(messages)
	require.True(t, IsComplete(messages, asked))

	// Monotonic: more turns never undo completion.
	messages = append(messages, assistantMsg(TagQuestion(entity.QuestionClimate, "climate?")), userMsg("hm"))
	require.True(t, IsComplete(messages, AskedKeys(messages)))
}

func TestCompletionByEndPhrase(t *testing.T) {
	messages := []entity.Message{
		assistantMsg(TagQuestion(entity.QuestionPlants, "Plants?")),
		userMsg("ok that's all"),
	}

	asked := AskedKeys(messages)
	require.Len(t, asked, 1)
	require.True(t, IsComplete(messages, asked))
}

func TestNotCompleteEarly(t *testing.T) {
	messages := []entity.Message{
		assistantMsg(TagQuestion(entity.QuestionPlants, "Plants?")),
		userMsg("I love lavender"),
	}

	require.False(t, IsComplete(messages, AskedKeys(messages)))
}
