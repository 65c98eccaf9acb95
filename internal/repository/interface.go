package repository

import (
	"context"

	"github.com/abdo754/soccer-team-hub/internal/domain"
)

// UserRepository определяет методы для работы с данными пользователей
type UserRepository interface {
	// Create добавляет нового пользователя
	Create(ctx context.Context, user *domain.User) error

	// Update заменяет пользователя с совпадающим ID
	Update(ctx context.Context, user *domain.User) error

	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, userID string) (*domain.User, error)

	// GetByName получает пользователя по имени без учета регистра
	GetByName(ctx context.Context, name string) (*domain.User, error)

	// List возвращает всех пользователей в порядке создания
	List(ctx context.Context) ([]*domain.User, error)
}

// EventRepository определяет методы для работы с расписанием событий
type EventRepository interface {
	// Create добавляет новое событие с пустым списком RSVP
	Create(ctx context.Context, event *domain.Event) error

	// Update заменяет событие с совпадающим ID; список RSVP заменяется целиком
	Update(ctx context.Context, event *domain.Event) error

	// Delete удаляет событие по ID; отсутствие события не является ошибкой
	Delete(ctx context.Context, eventID string) error

	// GetByID получает событие по ID
	GetByID(ctx context.Context, eventID string) (*domain.Event, error)

	// List возвращает все события в порядке создания
	List(ctx context.Context) ([]*domain.Event, error)

	// SetRSVP добавляет или заменяет отметку посещаемости пользователя.
	// Существующая отметка заменяется на месте с сохранением позиции в списке.
	SetRSVP(ctx context.Context, eventID, userID string, status domain.RSVPStatus) (*domain.Event, error)
}

// MessageRepository определяет методы для работы с сообщениями чата
type MessageRepository interface {
	// Append добавляет сообщение в конец последовательности
	Append(ctx context.Context, msg *domain.ChatMessage) error

	// List возвращает все сообщения в порядке вставки
	List(ctx context.Context) ([]*domain.ChatMessage, error)
}
