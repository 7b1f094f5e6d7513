package garden

import (
	"fmt"
	"strings"

	"github.com/verdalab/garden-backend/internal/entity"
)

// Question tags embed the topic key in assistant text, e.g. "[q:plants] Are
// there plants you love?". The asked set is reconstructed from these tags on
// every turn instead of being stored out-of-band, so a bare transcript is all
// a stateless caller ever needs to resend.
const questionTagPrefix = "[q:"

// TagQuestion renders an assistant question with its topic tag.
func TagQuestion(key entity.QuestionKey, text string) string {
	return fmt.Sprintf("%s%s] %s", questionTagPrefix, key, text)
}

// ParseQuestionKey recovers the topic key from tagged assistant text.
// Untagged or unknown-key text is reported as not a question.
func ParseQuestionKey(content string) (entity.QuestionKey, bool) {
	if !strings.HasPrefix(content, questionTagPrefix) {
		return "", false
	}
	rest := content[len(questionTagPrefix):]
	end := strings.Index(rest, "]")
	if end < 0 {
		return "", false
	}
	key := entity.QuestionKey(rest[:end])
	if key.Validate() != nil {
		return "", false
	}
	return key, true
}

// UntagQuestion strips the topic tag from assistant text for display.
// Untagged text is returned unchanged.
func UntagQuestion(content string) string {
	if _, ok := ParseQuestionKey(content); !ok {
		return content
	}
	rest := content[len(questionTagPrefix):]
	end := strings.Index(rest, "]")
	return strings.TrimPrefix(rest[end+1:], " ")
}

// AskedKeys scans prior assistant messages and rebuilds the set of topics
// already asked. Unknown keys in old transcripts are silently ignored.
func AskedKeys(messages []entity.Message) map[entity.QuestionKey]bool {
	asked := map[entity.QuestionKey]bool{}
	for _, m := range messages {
		if m.Role != entity.RoleAssistant {
			continue
		}
		if key, ok := ParseQuestionKey(m.Content); ok {
			asked[key] = true
		}
	}
	return asked
}

// coverageTarget is how many distinct topics must be asked before the
// conversation completes on its own.
const coverageTarget = 6

// IsComplete reports whether the conversation is over: either the user said
// an end phrase or enough distinct topics have been asked. Completion is
// monotonic; nothing appended later can undo it.
func IsComplete(messages []entity.Message, asked map[entity.QuestionKey]bool) bool {
	if len(asked) >= coverageTarget {
		return true
	}
	text := userText(messages)
	for _, phrase := range endPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// SelectNext picks the next topic to ask about. Topics with unresolved
// signal are promoted ahead of the static sequence; the rules are ordered
// and the first one that applies wins.
func SelectNext(asked map[entity.QuestionKey]bool, analysis entity.Analysis) entity.QuestionKey {
	if len(analysis.LikedPlants) == 0 && len(analysis.DislikedPlants) == 0 && !asked[entity.QuestionPlants] {
		return entity.QuestionPlants
	}
	if analysis.HasKidsOrPets && !asked[entity.QuestionUse] {
		return entity.QuestionUse
	}
	if analysis.Sunlight == nil && !asked[entity.QuestionSun] {
		return entity.QuestionSun
	}
	if analysis.Maintenance == nil && !asked[entity.QuestionMaintenance] {
		return entity.QuestionMaintenance
	}
	if analysis.Climate == nil && !asked[entity.QuestionClimate] {
		return entity.QuestionClimate
	}
	for _, key := range entity.DefaultQuestionOrder {
		if !asked[key] {
			return key
		}
	}
	// Unreachable in practice: the completion check fires once six topics
	// have been asked, before all eight run out.
	return entity.QuestionConstraints
}
