package service

import (
	"context"

	"github.com/abdo754/soccer-team-hub/internal/domain"
	"github.com/abdo754/soccer-team-hub/internal/repository"
)

// EventStats represents attendance counts for a single event
type EventStats struct {
	EventID string           `json:"event_id"`
	Title   string           `json:"title"`
	Type    domain.EventType `json:"type"`
	Date    string           `json:"date"`
	Yes     int              `json:"yes"`
	No      int              `json:"no"`
	Maybe   int              `json:"maybe"`
}

// UserStats represents attendance activity for a single user
type UserStats struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Attending int    `json:"attending"` // События с отметкой yes
	Responses int    `json:"responses"` // Все отметки пользователя
}

// Stats represents combined attendance statistics
type Stats struct {
	EventStats  []EventStats `json:"event_stats"`
	UserStats   []UserStats  `json:"user_stats"`
	TotalEvents int          `json:"total_events"`
	TotalRSVPs  int          `json:"total_rsvps"`
}

// StatsService aggregates attendance statistics over the schedule.
// It works against the repository interfaces, so both store backends serve it.
type StatsService struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(eventRepo repository.EventRepository, userRepo repository.UserRepository) *StatsService {
	return &StatsService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

// GetStats returns attendance statistics for all events and users
func (s *StatsService) GetStats(ctx context.Context) (*Stats, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalEvents: len(events)}
	perUser := make(map[string]*UserStats, len(users))
	for _, u := range users {
		if u.ID == domain.AssistantUserID {
			continue
		}
		perUser[u.ID] = &UserStats{UserID: u.ID, Name: u.Name}
	}

	for _, event := range events {
		es := EventStats{
			EventID: event.ID,
			Title:   event.Title,
			Type:    event.Type,
			Date:    event.Date,
		}
		for _, rsvp := range event.RSVPs {
			stats.TotalRSVPs++
			switch rsvp.Status {
			case domain.RSVPYes:
				es.Yes++
			case domain.RSVPNo:
				es.No++
			case domain.RSVPMaybe:
				es.Maybe++
			}
			if us, ok := perUser[rsvp.UserID]; ok {
				us.Responses++
				if rsvp.Status == domain.RSVPYes {
					us.Attending++
				}
			}
		}
		stats.EventStats = append(stats.EventStats, es)
	}

	// Порядок пользователей повторяет порядок создания в хранилище
	for _, u := range users {
		if us, ok := perUser[u.ID]; ok {
			stats.UserStats = append(stats.UserStats, *us)
		}
	}

	return stats, nil
}
