package entity

import (
	"fmt"
	"time"
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleAssistant:
		return nil
	default:
		return fmt.Errorf("unknown message role: %s", r)
	}
}

// Message is a single entry in the conversation transcript. The transcript is
// append-only: the caller extends it each turn and never rewrites history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// QuestionKey names one of the fixed questionnaire topics. The declaration
// order below is the default asking sequence.
type QuestionKey string

const (
	QuestionFeels       QuestionKey = "feels"
	QuestionStyle       QuestionKey = "style"
	QuestionPlants      QuestionKey = "plants"
	QuestionUse         QuestionKey = "use"
	QuestionMaintenance QuestionKey = "maintenance"
	QuestionSun         QuestionKey = "sun"
	QuestionClimate     QuestionKey = "climate"
	QuestionConstraints QuestionKey = "constraints"
)

// DefaultQuestionOrder is the static asking sequence used when no detected
// signal promotes a topic ahead of the rest.
var DefaultQuestionOrder = []QuestionKey{
	QuestionFeels,
	QuestionStyle,
	QuestionPlants,
	QuestionUse,
	QuestionMaintenance,
	QuestionSun,
	QuestionClimate,
	QuestionConstraints,
}

func (k QuestionKey) Validate() error {
	for _, known := range DefaultQuestionOrder {
		if k == known {
			return nil
		}
	}
	return fmt.Errorf("unknown question key: %s", k)
}

// MaintenanceLevel is how much upkeep the user is willing to put in.
type MaintenanceLevel string

const (
	MaintenanceLow    MaintenanceLevel = "low"
	MaintenanceMedium MaintenanceLevel = "medium"
	MaintenanceHigh   MaintenanceLevel = "high"
)

// SunlightLevel is the detected light situation of the plot.
type SunlightLevel string

const (
	SunlightFull    SunlightLevel = "full"
	SunlightPartial SunlightLevel = "partial"
	SunlightShade   SunlightLevel = "shade"
)

// ClimateKind is the broad climate category detected from user text.
type ClimateKind string

const (
	ClimateTemperate ClimateKind = "temperate"
	ClimateCoastal   ClimateKind = "coastal"
	ClimateCold      ClimateKind = "cold"
	ClimateDesert    ClimateKind = "desert"
	ClimateHumid     ClimateKind = "humid"
)

// Analysis is the signal extracted from all user-authored text so far. It is
// a pure function of the transcript, recomputed every turn and never stored.
type Analysis struct {
	StyleScores    map[string]int    `json:"style_scores"`
	Moods          []string          `json:"moods"`
	LikedPlants    []string          `json:"liked_plants"`
	DislikedPlants []string          `json:"disliked_plants"`
	Usage          []string          `json:"usage"`
	Constraints    []string          `json:"constraints"`
	Maintenance    *MaintenanceLevel `json:"maintenance,omitempty"`
	Sunlight       *SunlightLevel    `json:"sunlight,omitempty"`
	Climate        *ClimateKind      `json:"climate,omitempty"`
	HasKidsOrPets  bool              `json:"has_kids_or_pets"`
}

// GardenSummary is the synthesized concept produced once a conversation is
// complete. Constructed once, never mutated afterwards.
type GardenSummary struct {
	Styles      []string          `json:"styles"`
	Moods       []string          `json:"moods"`
	Palette     []string          `json:"palette"`
	Features    []string          `json:"features"`
	UsagePlan   []string          `json:"usage_plan"`
	Sunlight    *SunlightLevel    `json:"sunlight,omitempty"`
	Maintenance *MaintenanceLevel `json:"maintenance,omitempty"`
	Climate     *ClimateKind      `json:"climate,omitempty"`
	Notes       []string          `json:"notes,omitempty"`
}

// ConversationStatus is the lifecycle state of a server-held conversation.
type ConversationStatus string

const (
	ConversationStatusActive ConversationStatus = "ACTIVE"
	ConversationStatusDone   ConversationStatus = "DONE"
)

// Conversation is a server-held questionnaire thread. Clients that prefer not
// to resend the full transcript each turn store it here; the analysis is still
// recomputed from Messages on every turn.
type Conversation struct {
	ID        string             `json:"conversation_id"`
	Status    ConversationStatus `json:"status"`
	Messages  []Message          `json:"messages"`
	Summary   *GardenSummary     `json:"summary,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
