// Package assistant реализует шлюз к внешнему генеративному сервису.
// Шлюз отвечает на вопросы о расписании по снимку событий и пользователей
// и классифицирует отказы на четыре взаимоисключающих вида.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abdo754/soccer-team-hub/internal/domain"
)

// Query представляет запрос к ассистенту вместе со снимком данных.
// Снимки событий и пользователей только читаются.
type Query struct {
	Text      string
	AskerName string
	Events    []*domain.Event
	Users     []*domain.User
}

// Gateway определяет контракт шлюза ассистента
type Gateway interface {
	// Ask возвращает ответ на вопрос или одну из четырех ошибок пакета
	Ask(ctx context.Context, q Query) (string, error)
}

// GeminiGateway реализует Gateway поверх Generative Language REST API
type GeminiGateway struct {
	httpClient *http.Client
	creds      CredentialProvider
	baseURL    string
	model      string
	teamName   string
	now        func() time.Time
}

// NewGeminiGateway создает шлюз с ограниченным таймаутом внешнего вызова.
// Истечение таймаута классифицируется как ErrService.
func NewGeminiGateway(creds CredentialProvider, baseURL, model, teamName string, timeout time.Duration) *GeminiGateway {
	return &GeminiGateway{
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		teamName:   teamName,
		now:        time.Now,
	}
}

// Структуры запроса и ответа Generative Language API
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Ask строит промпт из снимка данных и делегирует его внешнему сервису.
// Проверки ключа выполняются до любого сетевого вызова.
func (g *GeminiGateway) Ask(ctx context.Context, q Query) (string, error) {
	key := g.creds.APIKey()
	if key == "" {
		return "", ErrCredentialMissing
	}

	if g.creds.SupportsSelection() {
		selected, err := g.creds.HasSelectedKey(ctx)
		// Сбой самой проверки трактуется как невыбранный ключ
		if err != nil || !selected {
			return "", ErrCredentialNotSelected
		}
	}

	prompt := BuildPrompt(g.teamName, g.now(), q.Text, q.AskerName, q.Events, q.Users)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrService, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", key)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrService, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", g.classifyFailure(resp.StatusCode, respBody)
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrService, err)
	}

	text := collectText(&parsed)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrService)
	}

	return text, nil
}

// classifyFailure относит неуспешный ответ сервиса к виду ошибки.
// Отклонение авторизации и ссылка на несуществующую сущность означают
// невалидный ключ; все остальное является ошибкой сервиса.
func (g *GeminiGateway) classifyFailure(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return ErrCredentialInvalid
	}
	if strings.Contains(string(body), "Requested entity was not found") {
		return ErrCredentialInvalid
	}
	return fmt.Errorf("%w: status %d", ErrService, status)
}

// collectText склеивает текстовые части первого кандидата и обрезает пробелы
func collectText(resp *generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}
