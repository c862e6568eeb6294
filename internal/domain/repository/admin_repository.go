package repository

import (
	"context"

	"github.com/Berani354/Barang/internal/domain/entity"
)

// AdminRepository keeps admin sessions
type AdminRepository interface {
	// CreateSession creates or refreshes a session
	CreateSession(ctx context.Context, session entity.AdminSession) error

	// GetSession returns the user's session
	GetSession(ctx context.Context, userID int64) (*entity.AdminSession, error)

	// DeleteSession logs the user out
	DeleteSession(ctx context.Context, userID int64) error

	// IsAdmin reports whether the user holds a live admin session
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}
