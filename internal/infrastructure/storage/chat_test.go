package storage_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/Berani354/Barang/internal/domain/repository"
	"github.com/Berani354/Barang/internal/infrastructure/storage"
)

func chatRepos(t *testing.T) map[string]repository.ChatRepository {
	t.Helper()
	sqliteRepo, err := storage.NewSQLiteChatRepository(filepath.Join(t.TempDir(), "data", "chat.db"), 3)
	if err != nil {
		t.Fatalf("NewSQLiteChatRepository: %v", err)
	}
	t.Cleanup(func() { sqliteRepo.Close() })
	return map[string]repository.ChatRepository{
		"memory": storage.NewMemoryChatRepository(3),
		"sqlite": sqliteRepo,
	}
}

func TestChatRepositories(t *testing.T) {
	for name, repo := range chatRepos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

			for i := 0; i < 5; i++ {
				msg := entity.Message{
					ID:        fmt.Sprintf("m%d", i),
					UserID:    7,
					Question:  fmt.Sprintf("q%d", i),
					Answer:    fmt.Sprintf("a%d", i),
					Timestamp: base.Add(time.Duration(i) * time.Minute),
				}
				if err := repo.SaveMessage(ctx, msg); err != nil {
					t.Fatalf("SaveMessage: %v", err)
				}
			}

			history, err := repo.GetHistory(ctx, 7, 0)
			if err != nil {
				t.Fatalf("GetHistory: %v", err)
			}
			if len(history) != 3 || history[0].Question != "q2" || history[2].Question != "q4" {
				t.Fatalf("history should keep the 3 newest oldest-first, got %+v", history)
			}

			limited, err := repo.GetHistory(ctx, 7, 2)
			if err != nil {
				t.Fatalf("GetHistory limit: %v", err)
			}
			if len(limited) != 2 || limited[1].Question != "q4" {
				t.Fatalf("unexpected limited history %+v", limited)
			}

			conv, err := repo.GetConversation(ctx, 7)
			if err != nil {
				t.Fatalf("GetConversation: %v", err)
			}
			if conv.UserID != 7 || len(conv.Messages) != 3 {
				t.Fatalf("unexpected conversation %+v", conv)
			}

			if err := repo.ClearHistory(ctx, 7); err != nil {
				t.Fatalf("ClearHistory: %v", err)
			}
			if _, err := repo.GetConversation(ctx, 7); !errors.Is(err, storage.ErrConversationNotFound) {
				t.Fatalf("expected ErrConversationNotFound, got %v", err)
			}
		})
	}
}
