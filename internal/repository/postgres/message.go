package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abdo754/soccer-team-hub/internal/domain"
)

// MessageRepository реализует repository.MessageRepository для PostgreSQL.
// Порядок вставки фиксируется последовательностью seq.
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository создает новый экземпляр MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Append добавляет сообщение в конец последовательности
func (r *MessageRepository) Append(ctx context.Context, msg *domain.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (id, user_id, text, timestamp)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, msg.ID, msg.UserID, msg.Text, msg.Timestamp)
	return err
}

// List возвращает все сообщения в порядке вставки
func (r *MessageRepository) List(ctx context.Context) ([]*domain.ChatMessage, error) {
	query := `
		SELECT id, user_id, text, timestamp
		FROM chat_messages
		ORDER BY seq
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Text, &msg.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}

	return messages, rows.Err()
}
