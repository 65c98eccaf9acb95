package handler

import (
	"encoding/json"
	"net/http"

	"github.com/abdo754/soccer-team-hub/internal/domain"
	"github.com/abdo754/soccer-team-hub/internal/i18n"
	"github.com/abdo754/soccer-team-hub/internal/middleware"
	"github.com/abdo754/soccer-team-hub/internal/service"
)

// ChatHandler обрабатывает эндпоинты чата и взаимодействия с ассистентом
type ChatHandler struct {
	chatService *service.ChatService
	defaultLang string
}

// NewChatHandler создает новый ChatHandler
func NewChatHandler(chatService *service.ChatService, defaultLang string) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		defaultLang: defaultLang,
	}
}

// translator выбирает язык служебных строк по заголовку Accept-Language
func (h *ChatHandler) translator(r *http.Request) *i18n.Translator {
	return i18n.FromAcceptLanguage(r.Header.Get("Accept-Language"), h.defaultLang)
}

// ListMessagesResponse представляет ответ с историей чата
type ListMessagesResponse struct {
	Messages []*domain.ChatMessage `json:"messages"`
}

// Messages обрабатывает GET /chat/messages
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatService.Messages(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, ListMessagesResponse{Messages: messages})
}

// SendRequest представляет тело запроса на отправку сообщения
type SendRequest struct {
	Text string `json:"text"`
}

// Send обрабатывает POST /chat/send.
// Ответ содержит добавленные сообщения и, при сбое ассистента, вид проблемы
// с ключом: клиент ветвится по нему, чтобы показать подсказку по исправлению
// и при необходимости предложить повтор запроса.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	userID := middleware.GetUserIDFromContext(r.Context())
	result, err := h.chatService.Send(r.Context(), userID, req.Text, h.translator(r))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, result)
}

// Retry обрабатывает POST /chat/retry: однократный повтор удержанного
// запроса к ассистенту после исправления ключа. Исходное сообщение
// пользователя в историю повторно не добавляется.
func (h *ChatHandler) Retry(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	result, err := h.chatService.Retry(r.Context(), userID, h.translator(r))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, result)
}
