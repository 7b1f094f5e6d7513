package entity

import "time"

// TurnRequest carries the full transcript for one stateless turn.
type TurnRequest struct {
	Messages []Message `json:"messages"`
}

// NextQuestion is the topic and rendered text the assistant should ask next.
type NextQuestion struct {
	Key  QuestionKey `json:"key"`
	Text string      `json:"text"`
}

// TurnResponse is the outcome of one turn: either a next question or, once
// the conversation is complete, the synthesized summary.
type TurnResponse struct {
	Done         bool           `json:"done"`
	NextQuestion *NextQuestion  `json:"next_question,omitempty"`
	Summary      *GardenSummary `json:"summary,omitempty"`
}

// SubmitMessageRequest appends one user answer to a stored conversation.
type SubmitMessageRequest struct {
	Content string `json:"content"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ConversationDTO is the external view of a stored conversation.
type ConversationDTO struct {
	ID        string             `json:"conversation_id"`
	Status    ConversationStatus `json:"status"`
	Messages  []Message          `json:"messages"`
	Summary   *GardenSummary     `json:"summary,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ResultFormat selects the export encoding of a finished summary.
type ResultFormat string

const (
	FormatJSON     ResultFormat = "json"
	FormatMarkdown ResultFormat = "markdown"
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatJSON, FormatMarkdown, FormatPDF, FormatDOCX:
		return true
	}
	return false
}
