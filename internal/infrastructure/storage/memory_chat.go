package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/Berani354/Barang/internal/domain/repository"
)

// ErrConversationNotFound is returned when a user has no stored exchanges.
var ErrConversationNotFound = errors.New("conversation not found")

type memoryChatRepository struct {
	mu      sync.RWMutex
	convs   map[int64]*entity.Conversation
	maxSize int
}

// NewMemoryChatRepository in-memory assistant history, used when no chat database is configured
func NewMemoryChatRepository(maxContextSize int) repository.ChatRepository {
	return &memoryChatRepository{
		convs:   make(map[int64]*entity.Conversation),
		maxSize: maxContextSize,
	}
}

// SaveMessage stores one exchange
func (m *memoryChatRepository) SaveMessage(ctx context.Context, message entity.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, exists := m.convs[message.UserID]
	if !exists {
		conv = &entity.Conversation{UserID: message.UserID}
		m.convs[message.UserID] = conv
	}

	conv.Messages = append(conv.Messages, message)
	conv.LastUsed = time.Now()

	if m.maxSize > 0 && len(conv.Messages) > m.maxSize {
		conv.Messages = conv.Messages[len(conv.Messages)-m.maxSize:]
	}
	return nil
}

// GetHistory oldest-first history of a user
func (m *memoryChatRepository) GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conv, exists := m.convs[userID]
	if !exists {
		return []entity.Message{}, nil
	}

	messages := conv.Messages
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	out := make([]entity.Message, len(messages))
	copy(out, messages)
	return out, nil
}

// ClearHistory forgets a user's exchanges
func (m *memoryChatRepository) ClearHistory(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.convs, userID)
	return nil
}

// GetConversation the user's conversation
func (m *memoryChatRepository) GetConversation(ctx context.Context, userID int64) (*entity.Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	conv, exists := m.convs[userID]
	if !exists {
		return nil, fmt.Errorf("%w: user %d", ErrConversationNotFound, userID)
	}
	out := *conv
	out.Messages = append([]entity.Message(nil), conv.Messages...)
	return &out, nil
}

// Close is a no-op
func (m *memoryChatRepository) Close() error { return nil }
