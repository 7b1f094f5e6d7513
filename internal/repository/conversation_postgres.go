package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/verdalab/garden-backend/internal/entity"
)

var _ ConversationRepository = &ConversationPostgres{}

// ConversationPostgres implements ConversationRepository using PostgreSQL.
type ConversationPostgres struct {
	db *pgxpool.Pool
}

func NewConversationPostgres(db *pgxpool.Pool) *ConversationPostgres {
	return &ConversationPostgres{db: db}
}

// parseID maps a malformed conversation id to not-found: a caller probing
// with garbage should get the same answer as one probing with a fresh UUID.
func parseID(id string) (uuid.UUID, error) {
	convID, err := uuid.Parse(id)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("%w: malformed id %q", entity.ErrConversationNotFound, id)
	}
	return convID, nil
}

func (r *ConversationPostgres) Create(ctx context.Context, conv entity.Conversation) (*entity.Conversation, error) {
	convID, err := uuid.Parse(conv.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid conversation ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO conversations (id, status)
		VALUES ($1, $2)
		RETURNING created_at, updated_at`,
		convID, string(conv.Status),
	)
	if err := row.Scan(&conv.CreatedAt, &conv.UpdatedAt); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	for _, msg := range conv.Messages {
		if err := r.insertMessage(ctx, convID, msg); err != nil {
			return nil, err
		}
	}

	return r.Get(ctx, conv.ID)
}

func (r *ConversationPostgres) Get(ctx context.Context, id string) (*entity.Conversation, error) {
	convID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var (
		conv        entity.Conversation
		summaryJSON []byte
	)
	row := r.db.QueryRow(ctx, `
		SELECT id, status, summary, created_at, updated_at
		FROM conversations
		WHERE id = $1`,
		convID,
	)
	if err := row.Scan(&conv.ID, &conv.Status, &summaryJSON, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrConversationNotFound
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}

	if summaryJSON != nil {
		var summary entity.GardenSummary
		if err := json.Unmarshal(summaryJSON, &summary); err != nil {
			return nil, fmt.Errorf("decode summary: %w", err)
		}
		conv.Summary = &summary
	}

	messages, err := r.listMessages(ctx, convID)
	if err != nil {
		return nil, err
	}
	conv.Messages = messages

	return &conv, nil
}

func (r *ConversationPostgres) AppendMessage(ctx context.Context, id string, msg entity.Message) error {
	convID, err := parseID(id)
	if err != nil {
		return err
	}

	if err := r.insertMessage(ctx, convID, msg); err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx,
		`UPDATE conversations SET updated_at = now() WHERE id = $1`, convID,
	); err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}
	return nil
}

func (r *ConversationPostgres) Complete(ctx context.Context, id string, summary entity.GardenSummary) (*entity.Conversation, error) {
	convID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE conversations
		SET status = $2, summary = $3, updated_at = now()
		WHERE id = $1`,
		convID, string(entity.ConversationStatusDone), summaryJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("complete conversation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, entity.ErrConversationNotFound
	}

	return r.Get(ctx, id)
}

func (r *ConversationPostgres) Reset(ctx context.Context, id string) (*entity.Conversation, error) {
	convID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM messages WHERE conversation_id = $1`, convID,
	); err != nil {
		return nil, fmt.Errorf("clear messages: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE conversations
		SET status = $2, summary = NULL, updated_at = now()
		WHERE id = $1`,
		convID, string(entity.ConversationStatusActive),
	)
	if err != nil {
		return nil, fmt.Errorf("reset conversation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, entity.ErrConversationNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reset: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *ConversationPostgres) Delete(ctx context.Context, id string) error {
	convID, err := parseID(id)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM conversations WHERE id = $1`, convID)
	if err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrConversationNotFound
	}
	return nil
}

func (r *ConversationPostgres) insertMessage(ctx context.Context, convID uuid.UUID, msg entity.Message) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO messages (conversation_id, role, content)
		VALUES ($1, $2, $3)`,
		convID, string(msg.Role), msg.Content,
	); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *ConversationPostgres) listMessages(ctx context.Context, convID uuid.UUID) ([]entity.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT role, content
		FROM messages
		WHERE conversation_id = $1
		ORDER BY id`,
		convID,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := []entity.Message{}
	for rows.Next() {
		var msg entity.Message
		if err := rows.Scan(&msg.Role, &msg.Content); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}
