// Package fixtures поставляет стартовое состояние хранилища.
// Сервис не имеет внешнего источника данных по умолчанию: коллекции
// заполняются отсюда при старте и теряются при перезапуске.
package fixtures

import (
	"time"

	"github.com/abdo754/soccer-team-hub/internal/domain"
	"github.com/abdo754/soccer-team-hub/internal/i18n"
)

// Seed представляет начальное состояние всех доменных коллекций
type Seed struct {
	Users    []*domain.User
	Events   []*domain.Event
	Messages []*domain.ChatMessage
}

// Provider возвращает начальное состояние хранилища.
// Абстракция позволяет подменить стартовые данные в тестах.
type Provider func() *Seed

// Default возвращает стандартный набор стартовых данных: тренер, четыре игрока,
// синтетический пользователь-ассистент, три ближайших события и короткая
// история чата с приветствием ассистента на языке tr.
func Default(tr *i18n.Translator) *Seed {
	now := time.Now()
	futureDate := func(days int) string {
		return now.AddDate(0, 0, days).Format("2006-01-02")
	}

	users := []*domain.User{
		{ID: "user-1", Name: "Coach Miller", Password: "password123", Role: domain.RoleCoach, Avatar: "https://i.pravatar.cc/150?u=coach-miller"},
		{ID: "user-2", Name: "Alex Johnson", Password: "password123", Role: domain.RolePlayer, Avatar: "https://i.pravatar.cc/150?u=alex-j", Position: "Forward", JerseyNumber: 10},
		{ID: "user-3", Name: "Maria Garcia", Password: "password123", Role: domain.RolePlayer, Avatar: "https://i.pravatar.cc/150?u=maria-g", Position: "Midfielder", JerseyNumber: 8},
		{ID: "user-4", Name: "Sam Chen", Password: "password123", Role: domain.RolePlayer, Avatar: "https://i.pravatar.cc/150?u=sam-c", Position: "Defender", JerseyNumber: 4},
		{ID: "user-5", Name: "Jessica Brown", Password: "password123", Role: domain.RolePlayer, Avatar: "https://i.pravatar.cc/150?u=jess-b", Position: "Goalkeeper", JerseyNumber: 1},
		{ID: domain.AssistantUserID, Name: "Team Assistant", Password: "N/A", Role: domain.RoleCoach, Avatar: "https://i.pravatar.cc/150?u=assistant"},
	}

	events := []*domain.Event{
		{
			ID:       "evt-1",
			Type:     domain.EventPractice,
			Title:    "Drills & Conditioning",
			Date:     futureDate(2),
			Time:     "18:00",
			Location: "North Park Field 3",
			Details:  "Focus on passing drills and stamina.",
			RSVPs: []domain.RSVP{
				{UserID: "user-3", Status: domain.RSVPYes},
				{UserID: "user-4", Status: domain.RSVPYes},
			},
		},
		{
			ID:       "evt-2",
			Type:     domain.EventGame,
			Title:    "Game vs. Eagles",
			Date:     futureDate(5),
			Time:     "14:00",
			Location: "City Stadium",
			Details:  "League match. Wear away kits.",
			RSVPs: []domain.RSVP{
				{UserID: "user-2", Status: domain.RSVPYes},
				{UserID: "user-3", Status: domain.RSVPMaybe},
				{UserID: "user-5", Status: domain.RSVPYes},
			},
		},
		{
			ID:       "evt-3",
			Type:     domain.EventPractice,
			Title:    "Scrimmage Match",
			Date:     futureDate(9),
			Time:     "17:30",
			Location: "North Park Field 2",
			RSVPs:    []domain.RSVP{},
		},
	}

	nowMs := now.UnixMilli()
	messages := []*domain.ChatMessage{
		{
			ID:        "msg-1",
			UserID:    "user-1",
			Text:      "Hey team, remember to bring both home and away kits for the game on Saturday!",
			Timestamp: nowMs - 2*time.Hour.Milliseconds(),
		},
		{
			ID:        "msg-2",
			UserID:    "user-2",
			Text:      "Got it, coach!",
			Timestamp: nowMs - 90*time.Minute.Milliseconds(),
		},
		{
			ID:        "msg-3",
			UserID:    domain.AssistantUserID,
			Text:      tr.Lookup(i18n.KeyAssistantGreeting, nil),
			Timestamp: nowMs - time.Hour.Milliseconds(),
		},
	}

	return &Seed{Users: users, Events: events, Messages: messages}
}

// Empty возвращает пустое начальное состояние
func Empty() *Seed {
	return &Seed{}
}
