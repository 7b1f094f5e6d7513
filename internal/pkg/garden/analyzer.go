package garden

import (
	"strings"

	"github.com/verdalab/garden-backend/internal/entity"
)

// Analyze extracts preference signal from all user-authored text in the
// transcript. Assistant text never contributes signal; it is only consulted
// by AskedKeys. The result is a pure function of the messages, so calling
// Analyze twice on the same transcript yields identical output.
func Analyze(messages []entity.Message) entity.Analysis {
	text := userText(messages)

	analysis := entity.Analysis{
		StyleScores:    map[string]int{},
		Moods:          []string{},
		LikedPlants:    []string{},
		DislikedPlants: []string{},
		Usage:          []string{},
		Constraints:    []string{},
	}

	if text == "" {
		return analysis
	}

	analysis.StyleScores = scoreStyles(text)
	analysis.Moods = matchWords(text, moodWords)
	analysis.Usage = matchWords(text, usageWords)
	analysis.Constraints = matchWords(text, constraintWords)
	analysis.Maintenance = detectMaintenance(text)
	analysis.Sunlight = detectSunlight(text)
	analysis.Climate = detectClimate(text)
	analysis.LikedPlants, analysis.DislikedPlants = detectPlants(text)
	analysis.HasKidsOrPets = kidsPetsPattern.MatchString(text)

	return analysis
}

// userText concatenates all user message content, lowercased, separated by
// newlines so phrases never match across message boundaries by accident.
func userText(messages []entity.Message) string {
	var parts []string
	for _, m := range messages {
		if m.Role == entity.RoleUser && m.Content != "" {
			parts = append(parts, strings.ToLower(m.Content))
		}
	}
	return strings.Join(parts, "\n")
}

// scoreStyles counts keyword occurrences (not just presence) per style
// category. Keywords match as literal substrings, never as patterns. Only
// styles with a positive score appear in the result.
func scoreStyles(text string) map[string]int {
	scores := map[string]int{}
	for _, style := range styleTable {
		total := 0
		for _, kw := range style.Keywords {
			total += strings.Count(text, strings.ToLower(kw))
		}
		if total > 0 {
			scores[style.Name] = total
		}
	}
	return scores
}

// matchWords collects words present in the text, capitalized, in table
// order. Presence only: repeated occurrences do not repeat the word.
func matchWords(text string, table []string) []string {
	matched := []string{}
	for _, w := range table {
		if strings.Contains(text, w) {
			matched = append(matched, capitalizeFirst(w))
		}
	}
	return matched
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// detectMaintenance tests the level patterns in fixed priority order; the
// first matching pattern decides the level.
func detectMaintenance(text string) *entity.MaintenanceLevel {
	for _, p := range maintenancePatterns {
		if p.Pattern.MatchString(text) {
			level := p.Level
			return &level
		}
	}
	return nil
}

// detectSunlight walks the whole phrase table and lets every matching entry
// overwrite the previous one, so the last matching table entry wins. See the
// quirk note on sunlightTable.
func detectSunlight(text string) *entity.SunlightLevel {
	var found *entity.SunlightLevel
	for _, e := range sunlightTable {
		if strings.Contains(text, e.Phrase) {
			level := e.Level
			found = &level
		}
	}
	return found
}

// detectClimate has the same last-match-wins overwrite behavior as
// detectSunlight.
func detectClimate(text string) *entity.ClimateKind {
	var found *entity.ClimateKind
	for _, c := range climateTable {
		for _, kw := range c.Keywords {
			if strings.Contains(text, kw) {
				kind := c.Kind
				found = &kind
			}
		}
	}
	return found
}

// detectPlants extracts liked and disliked canonical plants. A synonym marks
// a plant liked when prefixed by a like verb or when it appears bare anywhere
// in the text; it marks the plant disliked when prefixed by a dislike verb.
// The lists are not mutually exclusive: different occurrences can put the
// same plant in both.
func detectPlants(text string) (liked, disliked []string) {
	liked = []string{}
	disliked = []string{}
	for _, plant := range plantTable {
		isLiked := false
		isDisliked := false
		for _, syn := range plant.Synonyms {
			for _, prefix := range likePrefixes {
				if strings.Contains(text, prefix+syn) {
					isLiked = true
				}
			}
			for _, prefix := range dislikePrefixes {
				if strings.Contains(text, prefix+syn) {
					isDisliked = true
				}
			}
			if strings.Contains(text, syn) {
				isLiked = true
			}
		}
		if isLiked {
			liked = append(liked, plant.Name)
		}
		if isDisliked {
			disliked = append(disliked, plant.Name)
		}
	}
	return liked, disliked
}
