package storage_test

import (
	"context"
	"testing"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/Berani354/Barang/internal/infrastructure/storage"
)

func TestAdminSessions(t *testing.T) {
	repo := storage.NewMemoryAdminRepository()
	ctx := context.Background()

	if ok, _ := repo.IsAdmin(ctx, 1); ok {
		t.Fatal("unknown user must not be admin")
	}
	if err := repo.CreateSession(ctx, entity.AdminSession{UserID: 1, IsAdmin: true}); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if ok, _ := repo.IsAdmin(ctx, 1); !ok {
		t.Fatal("expected admin after CreateSession")
	}
	if _, err := repo.GetSession(ctx, 1); err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if err := repo.DeleteSession(ctx, 1); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if ok, _ := repo.IsAdmin(ctx, 1); ok {
		t.Fatal("expected logout to revoke admin")
	}
}
