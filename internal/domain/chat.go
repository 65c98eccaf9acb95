package domain

// ChatMessage представляет запись в общем чате команды.
// Последовательность сообщений append-only: порядок вставки определяет порядок отображения.
type ChatMessage struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"` // Автор; для ответов ассистента равен AssistantUserID
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // Миллисекунды эпохи, достаточно монотонные для упорядочивания
}

// IsFromAssistant возвращает true если сообщение опубликовано ассистентом
func (m *ChatMessage) IsFromAssistant() bool {
	return m.UserID == AssistantUserID
}
