package garden

import (
	"sort"
	"strings"

	"github.com/verdalab/garden-backend/internal/entity"
)

// Synthesize renders the final garden concept from accumulated signal.
func Synthesize(analysis entity.Analysis) entity.GardenSummary {
	styles := rankStyles(analysis.StyleScores)

	summary := entity.GardenSummary{
		Styles:      styles,
		Moods:       analysis.Moods,
		Maintenance: analysis.Maintenance,
		Sunlight:    analysis.Sunlight,
		Climate:     analysis.Climate,
	}

	if len(summary.Moods) == 0 {
		summary.Moods = append([]string{}, defaultMoods...)
	}

	summary.Palette = buildPalette(styles, analysis)
	summary.Features = buildFeatures(styles, analysis)
	summary.UsagePlan = buildUsagePlan(analysis)
	summary.Notes = buildNotes(analysis)

	return summary
}

// rankStyles orders styles by score descending, drops non-positive scores,
// keeps the top two and falls back to the default label when nothing scored.
// Ties break by style table order, which sort.SliceStable preserves.
func rankStyles(scores map[string]int) []string {
	type scored struct {
		name  string
		score int
	}
	var ranked []scored
	for _, style := range styleTable {
		if s := scores[style.Name]; s > 0 {
			ranked = append(ranked, scored{style.Name, s})
		}
	}
	if len(ranked) == 0 {
		return []string{defaultStyle}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > 2 {
		ranked = ranked[:2]
	}
	names := make([]string, 0, len(ranked))
	for _, r := range ranked {
		names = append(names, r.name)
	}
	return names
}

// orderedSet collects strings preserving first-insertion order and
// collapsing duplicates.
type orderedSet struct {
	items []string
	seen  map[string]bool
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]bool{}}
}

func (s *orderedSet) add(items ...string) {
	for _, item := range items {
		if !s.seen[item] {
			s.seen[item] = true
			s.items = append(s.items, item)
		}
	}
}

// removeContaining drops every item whose text contains the needle,
// case-insensitively.
func (s *orderedSet) removeContaining(needle string) {
	needle = strings.ToLower(needle)
	kept := s.items[:0]
	for _, item := range s.items {
		if strings.Contains(strings.ToLower(item), needle) {
			delete(s.seen, item)
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
}

func (s *orderedSet) values() []string {
	if s.items == nil {
		return []string{}
	}
	return s.items
}

// buildPalette unions style suggestions with conditional sun, maintenance
// and climate additions, then applies explicit likes and dislikes. Disliked
// plants are removed after all additions, so a dislike also vetoes
// suggestions contributed by a selected style.
func buildPalette(styles []string, analysis entity.Analysis) []string {
	palette := newOrderedSet()

	for _, name := range styles {
		for _, style := range styleTable {
			if style.Name == name {
				palette.add(style.Plants...)
			}
		}
	}

	if analysis.Sunlight != nil {
		palette.add(sunlightPlants[*analysis.Sunlight]...)
	}
	if analysis.Maintenance != nil && *analysis.Maintenance == entity.MaintenanceLow {
		palette.add(lowMaintenancePlants...)
	}
	if analysis.Climate != nil {
		palette.add(climatePlants[*analysis.Climate]...)
	}

	palette.add(analysis.LikedPlants...)

	for _, disliked := range analysis.DislikedPlants {
		palette.removeContaining(disliked)
	}

	return palette.values()
}

func buildFeatures(styles []string, analysis entity.Analysis) []string {
	features := newOrderedSet()

	for _, name := range styles {
		for _, style := range styleTable {
			if style.Name == name {
				features.add(style.Features...)
			}
		}
	}

	if analysis.Maintenance != nil && *analysis.Maintenance == entity.MaintenanceLow {
		features.add(lowMaintenanceFeatures...)
	}
	if analysis.Sunlight != nil && *analysis.Sunlight == entity.SunlightFull {
		features.add(fullSunFeatures...)
	}
	if analysis.HasKidsOrPets {
		features.add(kidsPetsFeatures...)
	}

	for _, usage := range analysis.Usage {
		lowered := strings.ToLower(usage)
		for _, rule := range usageFeatureRules {
			for _, kw := range rule.Keywords {
				if strings.Contains(lowered, kw) {
					features.add(rule.Feature)
				}
			}
		}
	}

	return features.values()
}

func buildUsagePlan(analysis entity.Analysis) []string {
	plan := newOrderedSet()
	plan.add(analysis.Usage...)
	if analysis.HasKidsOrPets {
		plan.add(kidsPetsUsageNote)
	}
	if len(plan.values()) == 0 {
		plan.add(defaultUsagePlan...)
	}
	return plan.values()
}

func buildNotes(analysis entity.Analysis) []string {
	var notes []string
	if len(analysis.DislikedPlants) > 0 {
		notes = append(notes, "Avoid: "+strings.Join(analysis.DislikedPlants, ", "))
	}
	if len(analysis.Constraints) > 0 {
		notes = append(notes, "Constraints: "+strings.Join(analysis.Constraints, ", "))
	}
	return notes
}
