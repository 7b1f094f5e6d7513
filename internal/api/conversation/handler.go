package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/verdalab/garden-backend/internal/entity"
	"github.com/verdalab/garden-backend/internal/pkg/formatter"
	"github.com/verdalab/garden-backend/internal/pkg/logger"
	"github.com/verdalab/garden-backend/internal/pkg/response"
	"github.com/verdalab/garden-backend/internal/pkg/validator"
)

type Handler struct {
	usecase   ConversationUsecase
	validator *validator.Validator
}

func NewHandler(usecase ConversationUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// RunTurn handles POST /conversation/turn - one stateless questionnaire turn
func (h *Handler) RunTurn(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RunTurn")

	// A missing or malformed messages array is treated as an empty
	// conversation rather than rejected.
	var req entity.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Debug(ctx, "unreadable request body, assuming empty transcript", zap.Error(err))
		req.Messages = nil
	}

	if err := h.validator.ValidateTurn(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	turn, err := h.usecase.RunTurn(ctx, req.Messages)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, turn)
}

// StartConversation handles POST /garden-session - create a stored conversation
func (h *Handler) StartConversation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartConversation")

	conv, err := h.usecase.StartConversation(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, toConversationDTO(conv))
}

// GetConversation handles GET /garden-session/{id}
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	ctx, conversationID := h.requestContext(r, "GetConversation")

	conv, err := h.usecase.GetConversation(ctx, conversationID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toConversationDTO(conv))
}

// SubmitMessage handles POST /garden-session/{id}/message - one answer
func (h *Handler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	ctx, conversationID := h.requestContext(r, "SubmitMessage")

	var req entity.SubmitMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSubmitMessage(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	turn, err := h.usecase.SubmitMessage(ctx, conversationID, req.Content)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "message processed", zap.Bool("done", turn.Done))
	response.Success(w, turn)
}

// GetSummary handles GET /garden-session/{id}/summary - export final result
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, conversationID := h.requestContext(r, "GetSummary")

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatJSON)
	}

	format := entity.ResultFormat(formatParam)
	if !format.IsValid() {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid format parameter",
			fmt.Errorf("%w: format must be one of: json, markdown, pdf, docx", entity.ErrInvalidFormat))
		return
	}

	summary, err := h.usecase.GetSummary(ctx, conversationID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	fmtr, err := formatter.NewFactory().Create(format)
	if err != nil {
		h.respondError(ctx, w, http.StatusNotImplemented, "format not implemented", err)
		return
	}

	formatted, err := fmtr.Format(summary)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to format summary", err)
		return
	}

	ctxzap.Info(ctx, "summary exported", zap.String("format", string(format)))
	w.Header().Set("Content-Type", fmtr.ContentType())
	if format != entity.FormatJSON {
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=\"garden-concept-%s%s\"", conversationID, fmtr.FileExtension()))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(formatted)
}

// ResetConversation handles POST /garden-session/{id}/reset - start over
func (h *Handler) ResetConversation(w http.ResponseWriter, r *http.Request) {
	ctx, conversationID := h.requestContext(r, "ResetConversation")

	conv, err := h.usecase.ResetConversation(ctx, conversationID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toConversationDTO(conv))
}

// DeleteConversation handles DELETE /garden-session/{id}
func (h *Handler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	ctx, conversationID := h.requestContext(r, "DeleteConversation")

	if err := h.usecase.DeleteConversation(ctx, conversationID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) requestContext(r *http.Request, action string) (context.Context, string) {
	conversationID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("conversation_id", conversationID),
		zap.String("action", action),
	)
	return ctx, conversationID
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrConversationNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "conversation not found", err)
	case errors.Is(err, entity.ErrSummaryNotReady):
		h.respondError(ctx, w, http.StatusConflict, "summary not ready", err)
	case errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrInvalidFormat), errors.Is(err, entity.ErrMissingField):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
