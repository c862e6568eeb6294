package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Berani354/Barang/internal/domain/entity"
	"github.com/Berani354/Barang/internal/domain/repository"
	_ "github.com/mattn/go-sqlite3"
)

type sqliteChatRepository struct {
	db      *sql.DB
	maxSize int
}

// NewSQLiteChatRepository SQLite backed assistant history
func NewSQLiteChatRepository(dbPath string, maxContextSize int) (repository.ChatRepository, error) {
	if dbPath == "" {
		return nil, errors.New("chat db path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	if err := createChatSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteChatRepository{db: db, maxSize: maxContextSize}, nil
}

func createChatSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS assistant_messages (
	id TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL,
	username TEXT,
	question TEXT,
	answer TEXT,
	ts TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assistant_messages_user_ts ON assistant_messages (user_id, ts);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveMessage stores one exchange and trims the user's history to maxSize
func (s *sqliteChatRepository) SaveMessage(ctx context.Context, message entity.Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO assistant_messages (id, user_id, username, question, answer, ts) VALUES (?, ?, ?, ?, ?, ?)`,
		message.ID, message.UserID, message.Username, message.Question, message.Answer, message.Timestamp)
	if err != nil {
		tx.Rollback()
		return err
	}

	if s.maxSize > 0 {
		_, err = tx.ExecContext(ctx, `
DELETE FROM assistant_messages
WHERE id IN (
  SELECT id FROM assistant_messages
  WHERE user_id = ?
  ORDER BY ts DESC
  LIMIT -1 OFFSET ?
)`, message.UserID, s.maxSize)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// GetHistory oldest-first history of a user
func (s *sqliteChatRepository) GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error) {
	query := `SELECT id, user_id, username, question, answer, ts FROM assistant_messages WHERE user_id = ? ORDER BY ts DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := []entity.Message{}
	for rows.Next() {
		var msg entity.Message
		var ts time.Time
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Username, &msg.Question, &msg.Answer, &ts); err != nil {
			return nil, err
		}
		msg.Timestamp = ts
		msgs = append(msgs, msg)
	}

	// newest-first from the query, callers want oldest-first
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	return msgs, rows.Err()
}

// ClearHistory forgets a user's exchanges
func (s *sqliteChatRepository) ClearHistory(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM assistant_messages WHERE user_id = ?`, userID)
	return err
}

// GetConversation the user's conversation
func (s *sqliteChatRepository) GetConversation(ctx context.Context, userID int64) (*entity.Conversation, error) {
	msgs, err := s.GetHistory(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("%w: user %d", ErrConversationNotFound, userID)
	}
	return &entity.Conversation{
		UserID:   userID,
		Messages: msgs,
		LastUsed: msgs[len(msgs)-1].Timestamp,
	}, nil
}

// Close closes the database
func (s *sqliteChatRepository) Close() error {
	return s.db.Close()
}
