package entity

import "time"

// AdminSession grants access to the mutating bot commands.
type AdminSession struct {
	UserID       int64
	IsAdmin      bool
	LoginTime    time.Time
	LastActivity time.Time
}
