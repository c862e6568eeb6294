package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/Berani354/Barang/internal/domain/repository"
)

// AdminSessionTTL is how long an idle admin session stays valid.
const AdminSessionTTL = 24 * time.Hour

type memoryAdminRepository struct {
	mu       sync.RWMutex
	sessions map[int64]entity.AdminSession
	now      func() time.Time
}

// NewMemoryAdminRepository in-memory admin sessions
func NewMemoryAdminRepository() repository.AdminRepository {
	return &memoryAdminRepository{
		sessions: make(map[int64]entity.AdminSession),
		now:      time.Now,
	}
}

// CreateSession creates or refreshes a session
func (m *memoryAdminRepository) CreateSession(ctx context.Context, session entity.AdminSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.LastActivity = m.now()
	m.sessions[session.UserID] = session
	return nil
}

// GetSession returns the user's session
func (m *memoryAdminRepository) GetSession(ctx context.Context, userID int64) (*entity.AdminSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[userID]
	if !exists {
		return nil, fmt.Errorf("session not found for user %d", userID)
	}
	return &session, nil
}

// DeleteSession logs the user out
func (m *memoryAdminRepository) DeleteSession(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}

// IsAdmin reports whether the user holds a live admin session
func (m *memoryAdminRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[userID]
	if !exists {
		return false, nil
	}
	if m.now().Sub(session.LastActivity) > AdminSessionTTL {
		return false, nil
	}
	return session.IsAdmin, nil
}
