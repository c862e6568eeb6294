package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/Berani354/Barang/internal/domain/repository"
	"go.uber.org/zap"
)

// AdminUseCase guards the mutating bot commands
type AdminUseCase interface {
	// Login starts an admin session when the password matches
	Login(ctx context.Context, userID int64, password string) (bool, error)

	// Logout ends the admin session
	Logout(ctx context.Context, userID int64) error

	// IsAdmin reports whether the user may change the inventory
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

type adminUseCase struct {
	adminRepo repository.AdminRepository
	password  string
	logger    *zap.Logger
}

// NewAdminUseCase creates an AdminUseCase checking against password
func NewAdminUseCase(adminRepo repository.AdminRepository, password string, logger *zap.Logger) AdminUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &adminUseCase{adminRepo: adminRepo, password: password, logger: logger}
}

func (u *adminUseCase) Login(ctx context.Context, userID int64, password string) (bool, error) {
	if u.password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(u.password)) != 1 {
		u.logger.Warn("admin login rejected", zap.Int64("user_id", userID))
		return false, nil
	}

	now := time.Now()
	session := entity.AdminSession{
		UserID:       userID,
		IsAdmin:      true,
		LoginTime:    now,
		LastActivity: now,
	}
	if err := u.adminRepo.CreateSession(ctx, session); err != nil {
		return false, fmt.Errorf("failed to create session: %w", err)
	}

	u.logger.Info("admin logged in", zap.Int64("user_id", userID))
	return true, nil
}

func (u *adminUseCase) Logout(ctx context.Context, userID int64) error {
	return u.adminRepo.DeleteSession(ctx, userID)
}

func (u *adminUseCase) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return u.adminRepo.IsAdmin(ctx, userID)
}
