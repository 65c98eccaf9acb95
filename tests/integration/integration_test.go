package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тестовые структуры данных соответствующие API
type SignUpRequest struct {
	Name         string `json:"name"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	Avatar       string `json:"avatar"`
	Position     string `json:"position,omitempty"`
	JerseyNumber int    `json:"jersey_number,omitempty"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Position     string `json:"position"`
	JerseyNumber int    `json:"jersey_number"`
}

type SessionResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type AddEventRequest struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Details  string `json:"details"`
}

type RSVP struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

type Event struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	RSVPs    []RSVP `json:"rsvps"`
}

type EventResponse struct {
	Event Event `json:"event"`
}

type RSVPRequest struct {
	EventID string `json:"event_id"`
	Status  string `json:"status"`
}

type ChatMessage struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

type SendResult struct {
	Message          *ChatMessage `json:"message"`
	AssistantMessage *ChatMessage `json:"assistant_message"`
	Problem          string       `json:"problem"`
	Retryable        bool         `json:"retryable"`
	CanSelectKey     bool         `json:"can_select_key"`
}

// TestE2E_CompleteWorkflow тестирует полный workflow сервиса команды
func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	// Настраиваем тестовое окружение
	env := SetupTestEnvironment(t)
	defer env.Cleanup(t)

	// Ждем пока приложение будет готово
	env.WaitForHealthCheck(t)

	// Регистрируем тренера и получаем токен сессии
	var coachToken string
	var coach User
	t.Run("Sign Up Coach", func(t *testing.T) {
		body, _ := json.Marshal(SignUpRequest{
			Name:     "Coach Miller",
			Password: "password123",
			Role:     "Coach",
			Avatar:   "https://i.pravatar.cc/150?u=coach-miller",
		})

		resp := env.MakeRequest(t, http.MethodPost, "/auth/signup", bytes.NewReader(body), "")
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode, "Sign up should succeed")

		var session SessionResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
		require.NotEmpty(t, session.Token)
		assert.Equal(t, "Coach", session.User.Role)

		coachToken = session.Token
		coach = session.User
	})

	var playerToken string
	var player User
	t.Run("Sign Up Player", func(t *testing.T) {
		body, _ := json.Marshal(SignUpRequest{
			Name:         "Alex Johnson",
			Password:     "password123",
			Role:         "Player",
			Avatar:       "https://i.pravatar.cc/150?u=alex-j",
			Position:     "Forward",
			JerseyNumber: 10,
		})

		resp := env.MakeRequest(t, http.MethodPost, "/auth/signup", bytes.NewReader(body), "")
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var session SessionResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
		require.NotEmpty(t, session.Token)
		assert.Equal(t, "Forward", session.User.Position)

		playerToken = session.Token
		player = session.User
	})

	t.Run("Login Is Case Insensitive On Name", func(t *testing.T) {
		body, _ := json.Marshal(LoginRequest{Name: "coach miller", Password: "password123"})

		resp := env.MakeRequest(t, http.MethodPost, "/auth/login", bytes.NewReader(body), "")
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var session SessionResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&session))
		assert.Equal(t, coach.ID, session.User.ID)
	})

	t.Run("Login With Wrong Password Fails", func(t *testing.T) {
		body, _ := json.Marshal(LoginRequest{Name: "Coach Miller", Password: "wrong"})

		resp := env.MakeRequest(t, http.MethodPost, "/auth/login", bytes.NewReader(body), "")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Protected Endpoint Requires Token", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/events", nil, "")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Me Returns Current User", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/auth/me", nil, playerToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got struct {
			User User `json:"user"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, player.ID, got.User.ID)
		assert.Equal(t, "Alex Johnson", got.User.Name)
	})

	// Создание события доступно только тренеру
	var event Event
	t.Run("Coach Creates Event", func(t *testing.T) {
		body, _ := json.Marshal(AddEventRequest{
			Type:     "game",
			Title:    "Game vs. Eagles",
			Date:     "2026-09-05",
			Time:     "14:00",
			Location: "City Stadium",
			Details:  "Arrive 45 minutes early for warm-up.",
		})

		resp := env.MakeRequest(t, http.MethodPost, "/events/add", bytes.NewReader(body), coachToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusCreated, resp.StatusCode, "Event creation should succeed")

		var created EventResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		event = created.Event

		assert.NotEmpty(t, event.ID)
		assert.Equal(t, "Game vs. Eagles", event.Title)
		assert.Empty(t, event.RSVPs)
	})

	t.Run("Player Cannot Create Event", func(t *testing.T) {
		body, _ := json.Marshal(AddEventRequest{
			Type:     "practice",
			Title:    "Secret Practice",
			Date:     "2026-09-10",
			Time:     "17:00",
			Location: "City Park Field",
		})

		resp := env.MakeRequest(t, http.MethodPost, "/events/add", bytes.NewReader(body), playerToken)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("RSVP Replaces Instead Of Duplicating", func(t *testing.T) {
		// Игрок отмечается первым, затем тренер
		for _, step := range []struct {
			token  string
			status string
		}{
			{playerToken, "yes"},
			{coachToken, "yes"},
		} {
			body, _ := json.Marshal(RSVPRequest{EventID: event.ID, Status: step.status})
			resp := env.MakeRequest(t, http.MethodPost, "/events/rsvp", bytes.NewReader(body), step.token)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			resp.Body.Close()
		}

		// Игрок меняет ответ: запись заменяется на месте, позиция сохраняется
		body, _ := json.Marshal(RSVPRequest{EventID: event.ID, Status: "maybe"})
		resp := env.MakeRequest(t, http.MethodPost, "/events/rsvp", bytes.NewReader(body), playerToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated EventResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))

		require.Len(t, updated.Event.RSVPs, 2)
		assert.Equal(t, player.ID, updated.Event.RSVPs[0].UserID)
		assert.Equal(t, "maybe", updated.Event.RSVPs[0].Status)
		assert.Equal(t, coach.ID, updated.Event.RSVPs[1].UserID)
		assert.Equal(t, "yes", updated.Event.RSVPs[1].Status)

		// Прямой запрос в БД: на пользователя ровно одна строка отметки
		var rows int
		err := env.DB.QueryRow(env.ctx,
			"SELECT COUNT(*) FROM event_rsvps WHERE event_id = $1 AND user_id = $2",
			event.ID, player.ID,
		).Scan(&rows)
		require.NoError(t, err)
		assert.Equal(t, 1, rows)
	})

	t.Run("RSVP On Unknown Event Fails", func(t *testing.T) {
		body, _ := json.Marshal(RSVPRequest{EventID: "evt-missing", Status: "yes"})

		resp := env.MakeRequest(t, http.MethodPost, "/events/rsvp", bytes.NewReader(body), playerToken)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Send Plain Chat Message", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"text": "Looking forward to the game!"})

		resp := env.MakeRequest(t, http.MethodPost, "/chat/send", bytes.NewReader(body), playerToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result SendResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		require.NotNil(t, result.Message)
		assert.Equal(t, player.ID, result.Message.UserID)
		assert.Nil(t, result.AssistantMessage)
		assert.Empty(t, result.Problem)
	})

	t.Run("Assistant Without Key Reports Missing Credential", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"text": "@assistant who is coming to the game?"})

		resp := env.MakeRequest(t, http.MethodPost, "/chat/send", bytes.NewReader(body), playerToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result SendResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		require.NotNil(t, result.Message, "user message is still appended")
		assert.Nil(t, result.AssistantMessage)
		assert.Equal(t, "key_missing", result.Problem)
		assert.True(t, result.Retryable)
		assert.False(t, result.CanSelectKey)
	})

	t.Run("Retry Keeps Query And Does Not Duplicate Message", func(t *testing.T) {
		before := chatMessageCount(t, env, playerToken)

		resp := env.MakeRequest(t, http.MethodPost, "/chat/retry", nil, playerToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result SendResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Nil(t, result.Message, "retry must not re-append the user message")
		assert.Equal(t, "key_missing", result.Problem)
		assert.True(t, result.Retryable)

		assert.Equal(t, before, chatMessageCount(t, env, playerToken))
	})

	t.Run("Retry Without Pending Query Fails Validation", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodPost, "/chat/retry", nil, coachToken)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Chat History Is Ordered", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/chat/messages", nil, playerToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got struct {
			Messages []ChatMessage `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "Looking forward to the game!", got.Messages[0].Text)
		assert.Equal(t, "@assistant who is coming to the game?", got.Messages[1].Text)
	})

	t.Run("Stats Reflect RSVPs", func(t *testing.T) {
		resp := env.MakeRequest(t, http.MethodGet, "/stats", nil, coachToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var stats struct {
			TotalEvents int `json:"total_events"`
			TotalRSVPs  int `json:"total_rsvps"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
		assert.Equal(t, 1, stats.TotalEvents)
		assert.Equal(t, 2, stats.TotalRSVPs)
	})

	t.Run("Coach Deletes Event", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"event_id": event.ID})

		resp := env.MakeRequest(t, http.MethodPost, "/events/delete", bytes.NewReader(body), coachToken)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		// Повторное удаление того же события проходит без ошибки
		body, _ = json.Marshal(map[string]string{"event_id": event.ID})
		again := env.MakeRequest(t, http.MethodPost, "/events/delete", bytes.NewReader(body), coachToken)
		defer again.Body.Close()

		assert.Equal(t, http.StatusOK, again.StatusCode)
	})
}

// chatMessageCount возвращает текущую длину истории чата
func chatMessageCount(t *testing.T, env *TestEnvironment, token string) int {
	t.Helper()

	resp := env.MakeRequest(t, http.MethodGet, "/chat/messages", nil, token)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Messages []ChatMessage `json:"messages"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	return len(got.Messages)
}
