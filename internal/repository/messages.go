package repository

import (
	"context"
	"fmt"

	"github.com/hamidrz1977-bot/jawab-bot/internal/domain"
)

func (r *Repository) LogMessage(ctx context.Context, chatID int64, text string, dir domain.Direction) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (chat_id, direction, text, ts) VALUES (?, ?, ?, ?)",
		chatID, string(dir), text, r.timestamp())
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}
