package conversation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/verdalab/garden-backend/internal/entity"
	"github.com/verdalab/garden-backend/internal/pkg/garden"
	"github.com/verdalab/garden-backend/internal/repository"
)

// Usecase implements the questionnaire business logic. The classifier itself
// is stateless; this layer adds transcript storage for clients that do not
// resend history each turn.
type Usecase struct {
	repo      repository.ConversationRepository
	questions map[entity.QuestionKey]string
	logger    *zap.Logger
}

func NewUsecase(
	repo repository.ConversationRepository,
	questions map[entity.QuestionKey]string,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		repo:      repo,
		questions: questions,
		logger:    logger,
	}
}

// RunTurn executes one stateless turn over the supplied transcript: decide
// completion, then either pick the next question or synthesize the summary.
// A nil transcript is treated as an empty conversation.
func (uc *Usecase) RunTurn(ctx context.Context, messages []entity.Message) (*entity.TurnResponse, error) {
	asked := garden.AskedKeys(messages)
	analysis := garden.Analyze(messages)

	if garden.IsComplete(messages, asked) {
		summary := garden.Synthesize(analysis)
		ctxzap.Info(ctx, "conversation complete",
			zap.Int("asked_topics", len(asked)),
			zap.Strings("styles", summary.Styles),
		)
		return &entity.TurnResponse{Done: true, Summary: &summary}, nil
	}

	key := garden.SelectNext(asked, analysis)
	ctxzap.Debug(ctx, "selected next question",
		zap.String("question_key", string(key)),
		zap.Int("asked_topics", len(asked)),
	)

	return &entity.TurnResponse{
		Done: false,
		NextQuestion: &entity.NextQuestion{
			Key:  key,
			Text: uc.questions[key],
		},
	}, nil
}

// StartConversation creates a stored conversation seeded with the first
// question.
func (uc *Usecase) StartConversation(ctx context.Context) (*entity.Conversation, error) {
	turn, err := uc.RunTurn(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("run first turn: %w", err)
	}

	conv := entity.Conversation{
		ID:     uuid.New().String(),
		Status: entity.ConversationStatusActive,
		Messages: []entity.Message{
			{
				Role:    entity.RoleAssistant,
				Content: garden.TagQuestion(turn.NextQuestion.Key, turn.NextQuestion.Text),
			},
		},
	}

	created, err := uc.repo.Create(ctx, conv)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	ctxzap.Info(ctx, "conversation started",
		zap.String("conversation_id", created.ID),
		zap.String("first_question", string(turn.NextQuestion.Key)),
	)
	return created, nil
}

// SubmitMessage appends a user answer to a stored conversation and runs a
// turn over the extended transcript. Once a conversation completes, further
// submissions keep returning the summary; completion is permanent.
func (uc *Usecase) SubmitMessage(ctx context.Context, id, content string) (*entity.TurnResponse, error) {
	conv, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	if conv.Status == entity.ConversationStatusDone {
		return &entity.TurnResponse{Done: true, Summary: conv.Summary}, nil
	}

	userMsg := entity.Message{Role: entity.RoleUser, Content: content}
	if err := uc.repo.AppendMessage(ctx, id, userMsg); err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	transcript := append(conv.Messages, userMsg)
	turn, err := uc.RunTurn(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("run turn: %w", err)
	}

	if turn.Done {
		if _, err := uc.repo.Complete(ctx, id, *turn.Summary); err != nil {
			return nil, fmt.Errorf("complete conversation: %w", err)
		}
		return turn, nil
	}

	assistantMsg := entity.Message{
		Role:    entity.RoleAssistant,
		Content: garden.TagQuestion(turn.NextQuestion.Key, turn.NextQuestion.Text),
	}
	if err := uc.repo.AppendMessage(ctx, id, assistantMsg); err != nil {
		return nil, fmt.Errorf("append question: %w", err)
	}

	return turn, nil
}

// GetConversation fetches a stored conversation with its transcript.
func (uc *Usecase) GetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	conv, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return conv, nil
}

// GetSummary returns the synthesized summary of a completed conversation.
func (uc *Usecase) GetSummary(ctx context.Context, id string) (*entity.GardenSummary, error) {
	conv, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	if conv.Status != entity.ConversationStatusDone || conv.Summary == nil {
		return nil, entity.ErrSummaryNotReady
	}
	return conv.Summary, nil
}

// DeleteConversation removes a stored conversation entirely.
func (uc *Usecase) DeleteConversation(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	ctxzap.Info(ctx, "conversation deleted", zap.String("conversation_id", id))
	return nil
}

// ResetConversation clears the transcript and re-seeds the first question
// ("start over").
func (uc *Usecase) ResetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	if _, err := uc.repo.Reset(ctx, id); err != nil {
		return nil, fmt.Errorf("reset conversation: %w", err)
	}

	turn, err := uc.RunTurn(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("run first turn: %w", err)
	}

	firstQuestion := entity.Message{
		Role:    entity.RoleAssistant,
		Content: garden.TagQuestion(turn.NextQuestion.Key, turn.NextQuestion.Text),
	}
	if err := uc.repo.AppendMessage(ctx, id, firstQuestion); err != nil {
		return nil, fmt.Errorf("append question: %w", err)
	}

	conv, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	ctxzap.Info(ctx, "conversation reset", zap.String("conversation_id", id))
	return conv, nil
}
