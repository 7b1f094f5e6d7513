package render

import (
	"fmt"
	"strings"

	"github.com/verdalab/garden-backend/internal/entity"
)

// User-facing bot messages.
const (
	MsgWelcome = "🌿 Hi! I'm your garden design assistant.\n\n" +
		"I'll ask a few questions about how you want your garden to look and feel, " +
		"then put together a concept for you.\n\nTap the button below when you're ready."

	MsgHelp = "🌿 *Garden bot commands:*\n\n" +
		"/start - Begin a new garden questionnaire\n" +
		"/summary - Show your garden concept (once finished)\n" +
		"/cancel - Discard the current questionnaire\n" +
		"/help - Show this message\n\n" +
		"Answer in your own words. Say \"that's all\" whenever you feel done."

	MsgNoActiveSession = "No active questionnaire. Use /start to begin."
	MsgCancelled       = "Questionnaire discarded. Use /start whenever you want to begin again."
	MsgAlreadyDone     = "Your garden concept is ready! Use /summary to see it, or /start to begin a new one."

	ErrGeneric = "❌ Something went wrong. Please try again, or use /start to begin over."
)

// Question renders the next question for the chat.
func Question(q *entity.NextQuestion) string {
	return q.Text
}

// Summary renders the garden concept as a Telegram Markdown card.
func Summary(s *entity.GardenSummary) string {
	var b strings.Builder

	b.WriteString("🌿 *Your Garden Concept*\n\n")

	b.WriteString("*Styles:* ")
	b.WriteString(strings.Join(s.Styles, ", "))
	b.WriteString("\n*Moods:* ")
	b.WriteString(strings.Join(s.Moods, ", "))

	if len(s.Palette) > 0 {
		b.WriteString("\n\n*Planting palette:*\n")
		for _, p := range s.Palette {
			fmt.Fprintf(&b, "• %s\n", p)
		}
	}

	if len(s.Features) > 0 {
		b.WriteString("\n*Features:*\n")
		for _, f := range s.Features {
			fmt.Fprintf(&b, "• %s\n", f)
		}
	}

	if len(s.UsagePlan) > 0 {
		b.WriteString("\n*Usage:* ")
		b.WriteString(strings.Join(s.UsagePlan, ", "))
		b.WriteString("\n")
	}

	var conditions []string
	if s.Sunlight != nil {
		conditions = append(conditions, fmt.Sprintf("sunlight %s", *s.Sunlight))
	}
	if s.Maintenance != nil {
		conditions = append(conditions, fmt.Sprintf("%s maintenance", *s.Maintenance))
	}
	if s.Climate != nil {
		conditions = append(conditions, fmt.Sprintf("%s climate", *s.Climate))
	}
	if len(conditions) > 0 {
		b.WriteString("\n*Conditions:* ")
		b.WriteString(strings.Join(conditions, ", "))
		b.WriteString("\n")
	}

	if len(s.Notes) > 0 {
		b.WriteString("\n*Notes:*\n")
		for _, n := range s.Notes {
			fmt.Fprintf(&b, "• %s\n", n)
		}
	}

	b.WriteString("\nUse the buttons below to export the concept as a file.")
	return b.String()
}
