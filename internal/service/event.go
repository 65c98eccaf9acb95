package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abdo754/soccer-team-hub/internal/domain"
	"github.com/abdo754/soccer-team-hub/internal/repository"
)

// EventService handles business logic for the event schedule.
// Coach-only checks on add/update/delete live here rather than in the
// presentation layer, so a caller that bypasses the UI still gets ErrForbidden.
type EventService struct {
	eventRepo repository.EventRepository
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{
		eventRepo: eventRepo,
	}
}

// EventParams carries the fields of an event supplied by the caller
type EventParams struct {
	Type     domain.EventType
	Title    string
	Date     string
	Time     string
	Location string
	Details  string
}

// validate rejects params with missing required fields or an unknown type
func (p EventParams) validate() error {
	if !p.Type.IsValid() {
		return fmt.Errorf("%w: type must be practice or game", domain.ErrValidation)
	}
	if p.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if p.Date == "" {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if p.Time == "" {
		return fmt.Errorf("%w: time is required", domain.ErrValidation)
	}
	if p.Location == "" {
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	}
	return nil
}

// Add creates an event with a generated id and an empty RSVP list.
// Only coaches may add events.
func (s *EventService) Add(ctx context.Context, actor *Claims, params EventParams) (*domain.Event, error) {
	if actor.Role != domain.RoleCoach {
		return nil, domain.ErrForbidden
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	event := &domain.Event{
		ID:       "evt-" + uuid.NewString(),
		Type:     params.Type,
		Title:    params.Title,
		Date:     params.Date,
		Time:     params.Time,
		Location: params.Location,
		Details:  params.Details,
		RSVPs:    []domain.RSVP{},
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// Update replaces an event by id. The supplied RSVP list fully replaces
// the stored one. Only coaches may update events.
func (s *EventService) Update(ctx context.Context, actor *Claims, event *domain.Event) (*domain.Event, error) {
	if actor.Role != domain.RoleCoach {
		return nil, domain.ErrForbidden
	}
	params := EventParams{
		Type:     event.Type,
		Title:    event.Title,
		Date:     event.Date,
		Time:     event.Time,
		Location: event.Location,
		Details:  event.Details,
	}
	if err := params.validate(); err != nil {
		return nil, err
	}
	for _, rsvp := range event.RSVPs {
		if !rsvp.Status.IsValid() {
			return nil, fmt.Errorf("%w: rsvp status must be yes, no or maybe", domain.ErrValidation)
		}
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return s.eventRepo.GetByID(ctx, event.ID)
}

// Delete removes an event by id. Deleting an absent event is a no-op.
// Only coaches may delete events.
func (s *EventService) Delete(ctx context.Context, actor *Claims, eventID string) error {
	if actor.Role != domain.RoleCoach {
		return domain.ErrForbidden
	}
	return s.eventRepo.Delete(ctx, eventID)
}

// SetRSVP upserts the caller's own attendance intent for an event.
// A repeated call replaces the status in place, so at most one record
// per (event, user) pair ever exists.
func (s *EventService) SetRSVP(ctx context.Context, actor *Claims, eventID string, status domain.RSVPStatus) (*domain.Event, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: rsvp status must be yes, no or maybe", domain.ErrValidation)
	}
	return s.eventRepo.SetRSVP(ctx, eventID, actor.UserID, status)
}

// GetByID retrieves an event by ID
func (s *EventService) GetByID(ctx context.Context, eventID string) (*domain.Event, error) {
	return s.eventRepo.GetByID(ctx, eventID)
}

// List returns the full schedule in creation order
func (s *EventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.eventRepo.List(ctx)
}
