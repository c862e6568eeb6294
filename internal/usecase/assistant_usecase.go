package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/Berani354/Barang/internal/domain/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAssistantDisabled is returned by Ask when no AI backend is configured.
var ErrAssistantDisabled = errors.New("assistant is not configured")

const historyWindow = 10

// AssistantUseCase answers free-form questions about the inventory
type AssistantUseCase interface {
	// Ask answers question using the current inventory and the user's recent exchanges
	Ask(ctx context.Context, userID int64, username, question string) (string, error)

	// ClearHistory forgets the user's exchanges
	ClearHistory(ctx context.Context, userID int64) error

	// History the user's exchanges, oldest first
	History(ctx context.Context, userID int64) ([]entity.Message, error)
}

type assistantUseCase struct {
	aiRepo    repository.AIRepository
	chatRepo  repository.ChatRepository
	inventory InventoryUseCase
	timeout   time.Duration
	logger    *zap.Logger
}

// NewAssistantUseCase creates an AssistantUseCase. aiRepo may be nil, in which
// case Ask returns ErrAssistantDisabled.
func NewAssistantUseCase(aiRepo repository.AIRepository, chatRepo repository.ChatRepository, inventory InventoryUseCase, logger *zap.Logger) AssistantUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &assistantUseCase{
		aiRepo:    aiRepo,
		chatRepo:  chatRepo,
		inventory: inventory,
		timeout:   20 * time.Second,
		logger:    logger,
	}
}

func (u *assistantUseCase) Ask(ctx context.Context, userID int64, username, question string) (string, error) {
	if u.aiRepo == nil {
		return "", ErrAssistantDisabled
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", errors.New("question is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	history, err := u.chatRepo.GetHistory(ctx, userID, historyWindow)
	if err != nil {
		return "", fmt.Errorf("failed to get history: %w", err)
	}

	answer, err := u.aiRepo.Answer(ctx, u.inventory.InventoryAsText(ctx), question, history)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	message := entity.Message{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		Question:  question,
		Answer:    answer,
		Timestamp: time.Now(),
	}
	if err := u.chatRepo.SaveMessage(ctx, message); err != nil {
		return "", fmt.Errorf("failed to save message: %w", err)
	}

	u.logger.Debug("assistant answered", zap.Int64("user_id", userID), zap.Int("history", len(history)))
	return answer, nil
}

func (u *assistantUseCase) ClearHistory(ctx context.Context, userID int64) error {
	return u.chatRepo.ClearHistory(ctx, userID)
}

func (u *assistantUseCase) History(ctx context.Context, userID int64) ([]entity.Message, error) {
	return u.chatRepo.GetHistory(ctx, userID, 0)
}
