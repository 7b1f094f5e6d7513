package garden

import (
	"regexp"

	"github.com/verdalab/garden-backend/internal/entity"
)

// Fixed vocabularies backing the keyword classifier. All tables are ordered
// slices, not maps: extraction results depend on iteration order (see the
// last-match-wins note on sunlightTable) so the order must be deterministic.

// styleDef binds a style category to its trigger keywords and to the plant
// and feature suggestions it contributes to the final concept.
type styleDef struct {
	Name     string
	Keywords []string
	Plants   []string
	Features []string
}

var styleTable = []styleDef{
	{
		Name:     "Modern Minimal",
		Keywords: []string{"modern", "minimal", "clean", "sleek", "geometric", "contemporary"},
		Plants:   []string{"Ornamental Grasses", "Boxwood spheres", "Silver birch"},
		Features: []string{"Concrete pavers", "Corten steel planters", "Linear water feature"},
	},
	{
		Name:     "Cottage Romantic",
		Keywords: []string{"cottage", "romantic", "rose", "english", "charming", "quaint"},
		Plants:   []string{"Roses", "Lavender", "Foxgloves", "Peonies"},
		Features: []string{"Winding gravel path", "Rose arch", "Picket border"},
	},
	{
		Name:     "Japanese Zen",
		Keywords: []string{"zen", "japanese", "calm", "meditat", "tranquil", "balance"},
		Plants:   []string{"Japanese Maple", "Moss carpet", "Bamboo", "Ferns"},
		Features: []string{"Raked gravel bed", "Stone lantern", "Stepping stones"},
	},
	{
		Name:     "Mediterranean",
		Keywords: []string{"mediterranean", "tuscan", "olive", "terracotta", "provence", "sun-baked"},
		Plants:   []string{"Olive tree", "Lavender", "Rosemary", "Potted citrus"},
		Features: []string{"Terracotta pots", "Vine-covered pergola", "Gravel terrace"},
	},
	{
		Name:     "Wild Naturalistic",
		Keywords: []string{"wild", "meadow", "native", "pollinator", "prairie", "naturalistic"},
		Plants:   []string{"Wildflower mix", "Native grasses", "Echinacea"},
		Features: []string{"Meadow patch", "Insect hotel", "Log pile habitat"},
	},
	{
		Name:     "Tropical Lush",
		Keywords: []string{"tropical", "jungle", "exotic", "lush", "palm"},
		Plants:   []string{"Hardy palms", "Banana plant", "Canna lilies"},
		Features: []string{"Dense layered borders", "Shaded hammock spot"},
	},
	{
		Name:     "Formal Classic",
		Keywords: []string{"formal", "classic", "symmetr", "elegant", "traditional", "hedge"},
		Plants:   []string{"Clipped boxwood", "Standard roses", "Yew hedging"},
		Features: []string{"Symmetrical parterre", "Central fountain", "Clipped hedges"},
	},
}

// defaultStyle is the fallback label when no style keyword scores above zero.
const defaultStyle = "Relaxed Garden"

var moodWords = []string{
	"calm", "cozy", "peaceful", "joyful", "playful",
	"romantic", "serene", "vibrant", "fresh", "welcoming",
}

var defaultMoods = []string{"Calm", "Welcoming"}

var usageWords = []string{
	"entertaining", "dining", "grill", "bbq", "firepit", "fire pit",
	"hot tub", "pool", "reading", "quiet", "yoga", "play",
	"gardening", "food", "vegetable", "herbs",
}

var defaultUsagePlan = []string{"Relaxing and unwinding outdoors"}

var constraintWords = []string{
	"budget", "small space", "narrow", "slope", "rental",
	"windy", "noise", "privacy", "deer", "drought", "hoa",
}

// Maintenance patterns are tested in this priority order; the first match
// wins and the rest are not consulted.
var maintenancePatterns = []struct {
	Level   entity.MaintenanceLevel
	Pattern *regexp.Regexp
}{
	{entity.MaintenanceLow, regexp.MustCompile(`low[- ]?maintenance|easy[- ]?care|not much time|little time|busy|minimal upkeep`)},
	{entity.MaintenanceMedium, regexp.MustCompile(`moderate|average|some time|now and then|weekends?`)},
	{entity.MaintenanceHigh, regexp.MustCompile(`high[- ]?maintenance|love gardening|lots of time|hands[- ]?on|every ?day|daily`)},
}

// sunlightTable maps phrases to canonical levels. Multiple phrases can match
// the same text; the LAST matching entry wins because later entries overwrite
// earlier ones. Probably a bug worth revisiting (first-match or most-specific
// would be saner), but callers depend on the current answers, so the table
// order is part of the contract. Full-sun entries precede shade entries.
var sunlightTable = []struct {
	Phrase string
	Level  entity.SunlightLevel
}{
	{"full sun", entity.SunlightFull},
	{"sunny", entity.SunlightFull},
	{"lots of sun", entity.SunlightFull},
	{"south-facing", entity.SunlightFull},
	{"partial", entity.SunlightPartial},
	{"part sun", entity.SunlightPartial},
	{"part shade", entity.SunlightPartial},
	{"morning sun", entity.SunlightPartial},
	{"afternoon sun", entity.SunlightPartial},
	{"shade", entity.SunlightShade},
	{"shady", entity.SunlightShade},
	{"mostly shade", entity.SunlightShade},
	{"north-facing", entity.SunlightShade},
}

// climateTable has the same last-match-wins overwrite quirk as sunlightTable.
var climateTable = []struct {
	Kind     entity.ClimateKind
	Keywords []string
}{
	{entity.ClimateTemperate, []string{"temperate", "mild", "four seasons"}},
	{entity.ClimateCoastal, []string{"coastal", "seaside", "salty", "ocean"}},
	{entity.ClimateCold, []string{"cold", "frost", "snow", "harsh winter"}},
	{entity.ClimateDesert, []string{"desert", "arid", "dry heat", "drought"}},
	{entity.ClimateHumid, []string{"humid", "tropical climate", "monsoon"}},
}

// plantDef binds a canonical plant name to the synonyms users mention it by.
type plantDef struct {
	Name     string
	Synonyms []string
}

var plantTable = []plantDef{
	{"Roses", []string{"rose", "roses"}},
	{"Lavender", []string{"lavender"}},
	{"Hydrangeas", []string{"hydrangea"}},
	{"Tulips", []string{"tulip"}},
	{"Ornamental Grasses", []string{"ornamental grass", "grasses", "miscanthus"}},
	{"Ferns", []string{"fern"}},
	{"Succulents", []string{"succulent", "cactus", "cacti"}},
	{"Japanese Maple", []string{"japanese maple", "acer", "maple"}},
	{"Hostas", []string{"hosta"}},
}

var likePrefixes = []string{"love ", "like "}
var dislikePrefixes = []string{"dislike ", "hate ", "avoid "}

var kidsPetsPattern = regexp.MustCompile(`kid|child|children|pet|dog|cat`)

// endPhrases mark the user wrapping up; matched case-insensitively as
// substrings of user text.
var endPhrases = []string{"that's all", "enough", "done", "finish"}

// Conditional palette additions keyed on extracted levels.
var sunlightPlants = map[entity.SunlightLevel][]string{
	entity.SunlightShade:   {"Hostas", "Ferns", "Hellebores"},
	entity.SunlightPartial: {"Hydrangeas", "Astilbe"},
	entity.SunlightFull:    {"Salvia", "Sedum", "Echinacea"},
}

var lowMaintenancePlants = []string{"Succulents", "Ornamental Grasses"}

var climatePlants = map[entity.ClimateKind][]string{
	entity.ClimateCoastal: {"Sea thrift", "Escallonia"},
	entity.ClimateCold:    {"Dwarf conifers", "Hardy shrubs"},
	entity.ClimateDesert:  {"Agave", "Yucca"},
}

// Conditional feature additions.
var lowMaintenanceFeatures = []string{"Drought-tolerant planting", "Drip irrigation"}
var fullSunFeatures = []string{"Pergola for summer shade"}
var kidsPetsFeatures = []string{"Soft lawn play area", "Secure boundary fence"}

// usageFeatureRules trigger features off matched usage phrases. One phrase
// can trigger several rules when it matches more than one pattern.
var usageFeatureRules = []struct {
	Keywords []string
	Feature  string
}{
	{[]string{"entertaining", "dining", "grill", "bbq"}, "Dining terrace"},
	{[]string{"firepit", "fire pit"}, "Fire pit lounge"},
	{[]string{"hot tub", "pool"}, "Privacy planting"},
	{[]string{"reading", "quiet"}, "Quiet reading nook"},
	{[]string{"food", "vegetable"}, "Raised vegetable beds"},
}

const kidsPetsUsageNote = "Safe play and pet circulation"
