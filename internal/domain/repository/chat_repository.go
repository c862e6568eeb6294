package repository

import (
	"context"

	"github.com/Berani354/Barang/internal/domain/entity"
)

// ChatRepository stores assistant exchanges per user
type ChatRepository interface {
	// SaveMessage stores one exchange, trimming the user's history to the configured size
	SaveMessage(ctx context.Context, message entity.Message) error

	// GetHistory oldest-first history of a user, at most limit messages (0 = all)
	GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error)

	// ClearHistory forgets a user's exchanges
	ClearHistory(ctx context.Context, userID int64) error

	// GetConversation the user's conversation
	GetConversation(ctx context.Context, userID int64) (*entity.Conversation, error)

	// Close closes the underlying storage
	Close() error
}
