package memory

import (
	"context"
	"sync"

	"github.com/abdo754/soccer-team-hub/internal/domain"
)

// MessageRepository реализует repository.MessageRepository в памяти.
// Последовательность сообщений append-only: записи не изменяются и не удаляются.
type MessageRepository struct {
	mu       sync.RWMutex
	messages []*domain.ChatMessage
}

// NewMessageRepository создает хранилище сообщений с начальными данными
func NewMessageRepository(seed []*domain.ChatMessage) *MessageRepository {
	messages := make([]*domain.ChatMessage, 0, len(seed))
	for _, m := range seed {
		cp := *m
		messages = append(messages, &cp)
	}
	return &MessageRepository{messages: messages}
}

// Append добавляет сообщение в конец последовательности
func (r *MessageRepository) Append(_ context.Context, msg *domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *msg
	r.messages = append(r.messages, &cp)
	return nil
}

// List возвращает все сообщения в порядке вставки
func (r *MessageRepository) List(_ context.Context) ([]*domain.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.ChatMessage, 0, len(r.messages))
	for _, m := range r.messages {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}
