package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abdo754/soccer-team-hub/internal/domain"
)

// EventRepository реализует repository.EventRepository для PostgreSQL.
// Порядок отметок RSVP внутри события хранится в колонке ordinal:
// замена статуса существующей отметки не меняет ее позицию в списке.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository создает новый экземпляр EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create добавляет новое событие
func (r *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, type, title, date, time, location, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		event.ID, string(event.Type), event.Title,
		event.Date, event.Time, event.Location, event.Details,
	)
	return err
}

// Update заменяет событие с совпадающим ID; список RSVP заменяется целиком
func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE events
		SET type = $1, title = $2, date = $3, time = $4,
		    location = $5, details = $6, updated_at = NOW()
		WHERE id = $7
	`

	result, err := tx.Exec(ctx, query,
		string(event.Type), event.Title, event.Date, event.Time,
		event.Location, event.Details, event.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM event_rsvps WHERE event_id = $1`, event.ID); err != nil {
		return err
	}

	for i, rsvp := range event.RSVPs {
		insert := `
			INSERT INTO event_rsvps (event_id, user_id, status, ordinal)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.Exec(ctx, insert, event.ID, rsvp.UserID, string(rsvp.Status), i); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete удаляет событие по ID; отсутствие события не является ошибкой
func (r *EventRepository) Delete(ctx context.Context, eventID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, eventID)
	return err
}

// GetByID получает событие по ID вместе со списком RSVP
func (r *EventRepository) GetByID(ctx context.Context, eventID string) (*domain.Event, error) {
	query := `
		SELECT id, type, title, date, time, location, details
		FROM events
		WHERE id = $1
	`

	var event domain.Event
	var eventType string
	err := r.db.QueryRow(ctx, query, eventID).Scan(
		&event.ID, &eventType, &event.Title,
		&event.Date, &event.Time, &event.Location, &event.Details,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	event.Type = domain.EventType(eventType)

	rsvps, err := r.loadRSVPs(ctx, eventID)
	if err != nil {
		return nil, err
	}
	event.RSVPs = rsvps

	return &event, nil
}

// List возвращает все события в порядке создания
func (r *EventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, type, title, date, time, location, details
		FROM events
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		var event domain.Event
		var eventType string
		if err := rows.Scan(&event.ID, &eventType, &event.Title,
			&event.Date, &event.Time, &event.Location, &event.Details); err != nil {
			return nil, err
		}
		event.Type = domain.EventType(eventType)
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, event := range events {
		rsvps, err := r.loadRSVPs(ctx, event.ID)
		if err != nil {
			return nil, err
		}
		event.RSVPs = rsvps
	}

	return events, nil
}

// SetRSVP добавляет или заменяет отметку посещаемости пользователя.
// Upsert сохраняет ordinal существующей записи, поэтому позиция в списке не меняется.
func (r *EventRepository) SetRSVP(ctx context.Context, eventID, userID string, status domain.RSVPStatus) (*domain.Event, error) {
	exists := false
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrEventNotFound
	}

	query := `
		INSERT INTO event_rsvps (event_id, user_id, status, ordinal)
		VALUES (
			$1, $2, $3,
			COALESCE((SELECT MAX(ordinal) + 1 FROM event_rsvps WHERE event_id = $1), 0)
		)
		ON CONFLICT (event_id, user_id) DO UPDATE
		SET status = EXCLUDED.status
	`

	if _, err := r.db.Exec(ctx, query, eventID, userID, string(status)); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, eventID)
}

// loadRSVPs читает отметки события в порядке ordinal
func (r *EventRepository) loadRSVPs(ctx context.Context, eventID string) ([]domain.RSVP, error) {
	query := `
		SELECT user_id, status
		FROM event_rsvps
		WHERE event_id = $1
		ORDER BY ordinal
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rsvps := make([]domain.RSVP, 0)
	for rows.Next() {
		var rsvp domain.RSVP
		var status string
		if err := rows.Scan(&rsvp.UserID, &status); err != nil {
			return nil, err
		}
		rsvp.Status = domain.RSVPStatus(status)
		rsvps = append(rsvps, rsvp)
	}

	return rsvps, rows.Err()
}
