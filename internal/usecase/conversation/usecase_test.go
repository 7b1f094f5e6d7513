package conversation

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/verdalab/garden-backend/internal/config"
	"github.com/verdalab/garden-backend/internal/entity"
	"github.com/verdalab/garden-backend/internal/pkg/garden"
	"github.com/verdalab/garden-backend/internal/repository"
)

type mockRepo struct {
	conversations map[string]*entity.Conversation
	createErr     error
	getErr        error
}

func newMockRepo() *mockRepo {
	return &mockRepo{conversations: map[string]*entity.Conversation{}}
}

func (m *mockRepo) Create(_ context.Context, conv entity.Conversation) (*entity.Conversation, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.conversations[conv.ID] = &conv
	return &conv, nil
}

func (m *mockRepo) Get(_ context.Context, id string) (*entity.Conversation, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	conv, ok := m.conversations[id]
	if !ok {
		return nil, entity.ErrConversationNotFound
	}
	copied := *conv
	copied.Messages = append([]entity.Message{}, conv.Messages...)
	return &copied, nil
}

func (m *mockRepo) AppendMessage(_ context.Context, id string, msg entity.Message) error {
	conv, ok := m.conversations[id]
	if !ok {
		return entity.ErrConversationNotFound
	}
	conv.Messages = append(conv.Messages, msg)
	return nil
}

func (m *mockRepo) Complete(_ context.Context, id string, summary entity.GardenSummary) (*entity.Conversation, error) {
	conv, ok := m.conversations[id]
	if !ok {
		return nil, entity.ErrConversationNotFound
	}
	conv.Status = entity.ConversationStatusDone
	conv.Summary = &summary
	return conv, nil
}

func (m *mockRepo) Reset(_ context.Context, id string) (*entity.Conversation, error) {
	conv, ok := m.conversations[id]
	if !ok {
		return nil, entity.ErrConversationNotFound
	}
	conv.Status = entity.ConversationStatusActive
	conv.Messages = nil
	conv.Summary = nil
	return conv, nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.conversations[id]; !ok {
		return entity.ErrConversationNotFound
	}
	delete(m.conversations, id)
	return nil
}

var _ repository.ConversationRepository = &mockRepo{}

func newTestUsecase(repo repository.ConversationRepository) *Usecase {
	return NewUsecase(repo, config.DefaultQuestionTexts(), zap.NewNop())
}

func TestRunTurnEmptyTranscriptAsksPlants(t *testing.T) {
	uc := newTestUsecase(newMockRepo())

	turn, err := uc.RunTurn(context.Background(), nil)
	require.NoError(t, err)
	require.False(t, turn.Done)
	require.NotNil(t, turn.NextQuestion)
	require.Equal(t, entity.QuestionPlants, turn.NextQuestion.Key)
	require.NotEmpty(t, turn.NextQuestion.Text)
}

func TestRunTurnEndPhraseCompletes(t *testing.T) {
	uc := newTestUsecase(newMockRepo())

	turn, err := uc.RunTurn(context.Background(), []entity.Message{
		{Role: entity.RoleAssistant, Content: garden.TagQuestion(entity.QuestionPlants, "Plants?")},
		{Role: entity.RoleUser, Content: "ok that's all"},
	})
	require.NoError(t, err)
	require.True(t, turn.Done)
	require.NotNil(t, turn.Summary)
	require.Nil(t, turn.NextQuestion)
}

func TestStartConversationSeedsTaggedQuestion(t *testing.T) {
	repo := newMockRepo()
	uc := newTestUsecase(repo)

	conv, err := uc.StartConversation(context.Background())
	require.NoError(t, err)
	require.Equal(t, entity.ConversationStatusActive, conv.Status)
	require.Len(t, conv.Messages, 1)
	require.Equal(t, entity.RoleAssistant, conv.Messages[0].Role)

	key, ok := garden.ParseQuestionKey(conv.Messages[0].Content)
	require.True(t, ok)
	require.Equal(t, entity.QuestionPlants, key)
}

func TestSubmitMessageAdvancesConversation(t *testing.T) {
	repo := newMockRepo()
	uc := newTestUsecase(repo)

	conv, err := uc.StartConversation(context.Background())
	require.NoError(t, err)

	turn, err := uc.SubmitMessage(context.Background(), conv.ID, "I love lavender, we have two kids")
	require.NoError(t, err)
	require.False(t, turn.Done)
	// Plant signal present and kids detected: use is promoted next.
	require.Equal(t, entity.QuestionUse, turn.NextQuestion.Key)

	stored, err := uc.GetConversation(context.Background(), conv.ID)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 3)
	require.True(t, strings.HasPrefix(stored.Messages[2].Content, "[q:use]"))
}

func TestSubmitMessageCompletesAndPersistsSummary(t *testing.T) {
	repo := newMockRepo()
	uc := newTestUsecase(repo)

	conv, err := uc.StartConversation(context.Background())
	require.NoError(t, err)

	turn, err := uc.SubmitMessage(context.Background(), conv.ID, "modern and minimal please, that's all")
	require.NoError(t, err)
	require.True(t, turn.Done)
	require.NotNil(t, turn.Summary)
	require.Contains(t, turn.Summary.Styles, "Modern Minimal")

	stored, err := uc.GetConversation(context.Background(), conv.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ConversationStatusDone, stored.Status)
	require.NotNil(t, stored.Summary)

	summary, err := uc.GetSummary(context.Background(), conv.ID)
	require.NoError(t, err)
	require.Equal(t, stored.Summary, summary)
}

func TestSubmitMessageAfterDoneKeepsSummary(t *testing.T) {
	repo := newMockRepo()
	uc := newTestUsecase(repo)

	conv, err := uc.StartConversation(context.Background())
	require.NoError(t, err)

	_, err = uc.SubmitMessage(context.Background(), conv.ID, "that's all")
	require.NoError(t, err)

	before, err := uc.GetConversation(context.Background(), conv.ID)
	require.NoError(t, err)

	turn, err := uc.SubmitMessage(context.Background(), conv.ID, "actually, one more thing")
	require.NoError(t, err)
	require.True(t, turn.Done)
	require.NotNil(t, turn.Summary)

	after, err := uc.GetConversation(context.Background(), conv.ID)
	require.NoError(t, err)
	// No further questions are offered and the transcript stays untouched.
	require.Equal(t, len(before.Messages), len(after.Messages))
}

func TestGetSummaryBeforeDone(t *testing.T) {
	repo := newMockRepo()
	uc := newTestUsecase(repo)

	conv, err := uc.StartConversation(context.Background())
	require.NoError(t, err)

	_, err = uc.GetSummary(context.Background(), conv.ID)
	require.ErrorIs(t, err, entity.ErrSummaryNotReady)
}

func TestGetConversationNotFound(t *testing.T) {
	uc := newTestUsecase(newMockRepo())

	_, err := uc.GetConversation(context.Background(), "2f0a7f7e-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, entity.ErrConversationNotFound)
}

func TestResetConversationStartsOver(t *testing.T) {
	repo := newMockRepo()
	uc := newTestUsecase(repo)

	conv, err := uc.StartConversation(context.Background())
	require.NoError(t, err)

	_, err = uc.SubmitMessage(context.Background(), conv.ID, "that's all")
	require.NoError(t, err)

	reset, err := uc.ResetConversation(context.Background(), conv.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ConversationStatusActive, reset.Status)
	require.Nil(t, reset.Summary)
	require.Len(t, reset.Messages, 1)

	key, ok := garden.ParseQuestionKey(reset.Messages[0].Content)
	require.True(t, ok)
	require.Equal(t, entity.QuestionPlants, key)
}
