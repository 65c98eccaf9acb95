package assistant

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/abdo754/soccer-team-hub/internal/domain"
)

// promptPlayer это срез полей игрока, попадающий в промпт
type promptPlayer struct {
	Name         string `json:"name"`
	Position     string `json:"position"`
	JerseyNumber int    `json:"jerseyNumber,omitempty"`
}

// BuildPrompt собирает единый промпт для генеративного сервиса.
// В промпт входят полный снимок расписания, игроки (пользователи с заполненной
// позицией), имя спрашивающего и дословный вопрос. Инструкции требуют отвечать
// только по приведенным данным; вопросы о посещаемости отвечаются перечислением
// пользователей со статусом RSVP "yes".
func BuildPrompt(teamName string, now time.Time, query, askerName string, events []*domain.Event, users []*domain.User) string {
	players := make([]promptPlayer, 0, len(users))
	for _, u := range users {
		if u.IsPlayer() {
			players = append(players, promptPlayer{
				Name:         u.Name,
				Position:     u.Position,
				JerseyNumber: u.JerseyNumber,
			})
		}
	}

	eventsJSON, _ := json.MarshalIndent(events, "", "  ")
	playersJSON, _ := json.MarshalIndent(players, "", "  ")

	return fmt.Sprintf(`You are a helpful, friendly, and concise assistant for the %q soccer team.
Your name is "Team Assistant".
The current date is %s.

Here is the current schedule of events:
%s

Here is the list of players on the team:
%s

A user named %q asked the following question: %q.

Answer their question based ONLY on the data provided above.
If the question is about who is attending an event, list the names of the players who have RSVP'd 'yes'.
If the question cannot be answered with the given data, politely say so.
Be friendly and use emojis where appropriate.`,
		teamName, now.Format("Mon Jan 2 2006"), eventsJSON, playersJSON, askerName, query)
}
