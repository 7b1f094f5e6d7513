package state

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Manager maps a Telegram chat to its active conversation. Mappings expire
// together with the stored conversation so a stale chat cannot point at a
// conversation the store already evicted.
type Manager struct {
	cache *gocache.Cache
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		cache: gocache.New(ttl, 10*time.Minute),
	}
}

// ConversationID returns the active conversation for a chat, if any.
func (m *Manager) ConversationID(chatID int64) (string, bool) {
	v, ok := m.cache.Get(key(chatID))
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Bind associates a chat with a conversation, replacing any previous binding.
func (m *Manager) Bind(chatID int64, conversationID string) {
	m.cache.SetDefault(key(chatID), conversationID)
}

// Unbind removes the chat's conversation binding.
func (m *Manager) Unbind(chatID int64) {
	m.cache.Delete(key(chatID))
}

func key(chatID int64) string {
	return "chat:" + strconv.FormatInt(chatID, 10)
}
