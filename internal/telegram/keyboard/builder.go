package keyboard

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/verdalab/garden-backend/internal/entity"
)

// Builder creates keyboards for the questionnaire flow.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// StartKeyboard shows the initial "begin" button.
func (b *Builder) StartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌱 Start questionnaire", "action:start"),
		),
	)
}

// ExportKeyboard offers summary export formats.
func (b *Builder) ExportKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 PDF", "export:pdf"),
			tgbotapi.NewInlineKeyboardButtonData("📝 Word", "export:docx"),
			tgbotapi.NewInlineKeyboardButtonData("🔤 Markdown", "export:markdown"),
		),
	)
}

// quickReplies holds suggested answers per question topic. They are plain
// reply buttons, not callbacks: the tapped text goes through the same
// free-text analysis as a typed answer.
var quickReplies = map[entity.QuestionKey][]string{
	entity.QuestionFeels:       {"Calm and peaceful", "Cozy and welcoming", "Vibrant and lively"},
	entity.QuestionStyle:       {"Modern", "Cottage", "Zen", "Mediterranean"},
	entity.QuestionMaintenance: {"Low maintenance", "A few hours a week", "I love gardening daily"},
	entity.QuestionSun:         {"Full sun", "Partial shade", "Mostly shade"},
	entity.QuestionClimate:     {"Temperate", "Coastal", "Hot and dry", "Cold winters"},
	entity.QuestionConstraints: {"Tight budget", "Small space", "No constraints, that's all"},
}

// QuestionKeyboard returns quick-reply suggestions for a question, or nil
// when the topic has no canned answers (plants, use).
func (b *Builder) QuestionKeyboard(key entity.QuestionKey) interface{} {
	replies, ok := quickReplies[key]
	if !ok {
		return tgbotapi.NewRemoveKeyboard(false)
	}

	row := make([]tgbotapi.KeyboardButton, 0, len(replies))
	for _, r := range replies {
		row = append(row, tgbotapi.NewKeyboardButton(r))
	}

	kb := tgbotapi.NewReplyKeyboard(row)
	kb.OneTimeKeyboard = true
	kb.ResizeKeyboard = true
	return kb
}
