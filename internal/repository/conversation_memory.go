package repository

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/verdalab/garden-backend/internal/entity"
)

var _ ConversationRepository = &ConversationMemory{}

// ConversationMemory implements ConversationRepository on an in-process TTL
// cache. Used when no database is configured; conversations silently expire
// after the configured TTL.
type ConversationMemory struct {
	cache *gocache.Cache
	mu    sync.Mutex
}

func NewConversationMemory(ttl time.Duration) *ConversationMemory {
	return &ConversationMemory{
		cache: gocache.New(ttl, ttl/2),
	}
}

func (r *ConversationMemory) Create(_ context.Context, conv entity.Conversation) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	conv.CreatedAt = now
	conv.UpdatedAt = now
	if conv.Messages == nil {
		conv.Messages = []entity.Message{}
	}

	r.cache.SetDefault(conv.ID, &conv)
	return cloneConversation(&conv), nil
}

func (r *ConversationMemory) Get(_ context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, err := r.get(id)
	if err != nil {
		return nil, err
	}
	return cloneConversation(conv), nil
}

func (r *ConversationMemory) AppendMessage(_ context.Context, id string, msg entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, err := r.get(id)
	if err != nil {
		return err
	}
	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = time.Now().UTC()
	r.cache.SetDefault(id, conv)
	return nil
}

func (r *ConversationMemory) Complete(_ context.Context, id string, summary entity.GardenSummary) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, err := r.get(id)
	if err != nil {
		return nil, err
	}
	conv.Status = entity.ConversationStatusDone
	conv.Summary = &summary
	conv.UpdatedAt = time.Now().UTC()
	r.cache.SetDefault(id, conv)
	return cloneConversation(conv), nil
}

func (r *ConversationMemory) Reset(_ context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, err := r.get(id)
	if err != nil {
		return nil, err
	}
	conv.Status = entity.ConversationStatusActive
	conv.Messages = []entity.Message{}
	conv.Summary = nil
	conv.UpdatedAt = time.Now().UTC()
	r.cache.SetDefault(id, conv)
	return cloneConversation(conv), nil
}

func (r *ConversationMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.get(id); err != nil {
		return err
	}
	r.cache.Delete(id)
	return nil
}

func (r *ConversationMemory) get(id string) (*entity.Conversation, error) {
	stored, ok := r.cache.Get(id)
	if !ok {
		return nil, entity.ErrConversationNotFound
	}
	return stored.(*entity.Conversation), nil
}

// cloneConversation copies the conversation so callers never share slices
// with the cached value.
func cloneConversation(conv *entity.Conversation) *entity.Conversation {
	copied := *conv
	copied.Messages = append([]entity.Message{}, conv.Messages...)
	if conv.Summary != nil {
		summary := *conv.Summary
		copied.Summary = &summary
	}
	return &copied
}
