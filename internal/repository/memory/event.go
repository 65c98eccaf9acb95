package memory

import (
	"context"
	"sync"

	"github.com/abdo754/soccer-team-hub/internal/domain"
)

// EventRepository реализует repository.EventRepository в памяти
type EventRepository struct {
	mu     sync.RWMutex
	events []*domain.Event
}

// NewEventRepository создает хранилище событий с начальными данными
func NewEventRepository(seed []*domain.Event) *EventRepository {
	events := make([]*domain.Event, 0, len(seed))
	for _, e := range seed {
		events = append(events, copyEvent(e))
	}
	return &EventRepository{events: events}
}

// copyEvent возвращает глубокую копию события, включая список RSVP
func copyEvent(e *domain.Event) *domain.Event {
	cp := *e
	cp.RSVPs = make([]domain.RSVP, len(e.RSVPs))
	copy(cp.RSVPs, e.RSVPs)
	return &cp
}

// Create добавляет новое событие
func (r *EventRepository) Create(_ context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, copyEvent(event))
	return nil
}

// Update заменяет событие с совпадающим ID; список RSVP заменяется целиком
func (r *EventRepository) Update(_ context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.events {
		if e.ID == event.ID {
			r.events[i] = copyEvent(event)
			return nil
		}
	}
	return domain.ErrEventNotFound
}

// Delete удаляет событие по ID; отсутствие события не является ошибкой
func (r *EventRepository) Delete(_ context.Context, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.events {
		if e.ID == eventID {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return nil
}

// GetByID получает событие по ID
func (r *EventRepository) GetByID(_ context.Context, eventID string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.events {
		if e.ID == eventID {
			return copyEvent(e), nil
		}
	}
	return nil, domain.ErrEventNotFound
}

// List возвращает все события в порядке создания
func (r *EventRepository) List(_ context.Context) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, copyEvent(e))
	}
	return out, nil
}

// SetRSVP добавляет или заменяет отметку посещаемости пользователя
func (r *EventRepository) SetRSVP(_ context.Context, eventID, userID string, status domain.RSVPStatus) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.events {
		if e.ID == eventID {
			e.SetRSVP(userID, status)
			return copyEvent(e), nil
		}
	}
	return nil, domain.ErrEventNotFound
}
