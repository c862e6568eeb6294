package repository

import (
	"context"

	"github.com/Berani354/Barang/internal/domain/entity"
)

// AIRepository answers questions about the inventory
type AIRepository interface {
	// Answer replies to question given the inventory listing and the user's previous exchanges
	Answer(ctx context.Context, inventory string, question string, history []entity.Message) (string, error)
}
