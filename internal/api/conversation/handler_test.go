package conversation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/verdalab/garden-backend/internal/config"
	"github.com/verdalab/garden-backend/internal/entity"
	"github.com/verdalab/garden-backend/internal/pkg/validator"
	"github.com/verdalab/garden-backend/internal/repository"
	conversationuc "github.com/verdalab/garden-backend/internal/usecase/conversation"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	repo := repository.NewConversationMemory(time.Hour)
	uc := conversationuc.NewUsecase(repo, config.DefaultQuestionTexts(), zap.NewNop())
	v := validator.NewConversationValidator(config.LimitsConfig{
		MaxMessages:      200,
		MaxContentLength: 4000,
	})

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc, v))
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRunTurnEmptyBodyAsksFirstQuestion(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/conversation/turn", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var turn entity.TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &turn))
	require.False(t, turn.Done)
	require.NotNil(t, turn.NextQuestion)
	require.Equal(t, entity.QuestionPlants, turn.NextQuestion.Key)
}

func TestRunTurnMalformedBodyTreatedAsEmpty(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/conversation/turn", `not json at all`)
	require.Equal(t, http.StatusOK, rec.Code)

	var turn entity.TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &turn))
	require.False(t, turn.Done)
	require.NotNil(t, turn.NextQuestion)
}

func TestRunTurnCompletesWithSummary(t *testing.T) {
	router := newTestRouter(t)

	body := `{"messages":[
		{"role":"assistant","content":"[q:plants] Plants?"},
		{"role":"user","content":"I love modern minimal clean lines, that's all"}
	]}`
	rec := doJSON(t, router, http.MethodPost, "/conversation/turn", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var turn entity.TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &turn))
	require.True(t, turn.Done)
	require.NotNil(t, turn.Summary)
	require.Contains(t, turn.Summary.Styles, "Modern Minimal")
}

func TestSessionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Create
	rec := doJSON(t, router, http.MethodPost, "/garden-session/", ``)
	require.Equal(t, http.StatusCreated, rec.Code)

	var conv entity.ConversationDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conv))
	require.NotEmpty(t, conv.ID)
	require.Len(t, conv.Messages, 1)

	// Answer until done via end phrase
	rec = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/garden-session/%s/message", conv.ID),
		`{"content":"cottage style with roses, that's all"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var turn entity.TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &turn))
	require.True(t, turn.Done)
	require.NotNil(t, turn.Summary)

	// Summary export
	rec = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/garden-session/%s/summary?format=markdown", conv.ID), ``)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/markdown")
	require.Contains(t, rec.Body.String(), "# Garden Concept")

	// Reset starts over
	rec = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/garden-session/%s/reset", conv.ID), ``)
	require.Equal(t, http.StatusOK, rec.Code)

	var reset entity.ConversationDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reset))
	require.Equal(t, entity.ConversationStatusActive, reset.Status)
	require.Nil(t, reset.Summary)

	// Delete
	rec = doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/garden-session/%s", conv.ID), ``)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/garden-session/%s", conv.ID), ``)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitMessageValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/garden-session/", ``)
	require.Equal(t, http.StatusCreated, rec.Code)

	var conv entity.ConversationDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conv))

	rec = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/garden-session/%s/message", conv.ID), `{"content":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSummaryBeforeDoneConflicts(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/garden-session/", ``)
	var conv entity.ConversationDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conv))

	rec = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/garden-session/%s/summary", conv.ID), ``)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetSummaryInvalidFormat(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/garden-session/", ``)
	var conv entity.ConversationDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conv))

	rec = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/garden-session/%s/summary?format=xml", conv.ID), ``)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownConversationIs404(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet,
		"/garden-session/00000000-0000-0000-0000-000000000000", ``)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
