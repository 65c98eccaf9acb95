package handler

import (
	"encoding/json"
	"net/http"

	"github.com/abdo754/soccer-team-hub/internal/domain"
	"github.com/abdo754/soccer-team-hub/internal/middleware"
	"github.com/abdo754/soccer-team-hub/internal/service"
)

// EventHandler обрабатывает эндпоинты расписания
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler создает новый EventHandler
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// ListEventsResponse представляет ответ со списком событий
type ListEventsResponse struct {
	Events []*domain.Event `json:"events"`
}

// List обрабатывает GET /events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.List(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, ListEventsResponse{Events: events})
}

// AddEventRequest представляет тело запроса на создание события
type AddEventRequest struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Details  string `json:"details"`
}

// EventResponse представляет ответ с одним событием
type EventResponse struct {
	Event *domain.Event `json:"event"`
}

// Add обрабатывает POST /events/add
func (h *EventHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	claims := middleware.GetClaimsFromContext(r.Context())
	event, err := h.eventService.Add(r.Context(), claims, service.EventParams{
		Type:     domain.EventType(req.Type),
		Title:    req.Title,
		Date:     req.Date,
		Time:     req.Time,
		Location: req.Location,
		Details:  req.Details,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, EventResponse{Event: event})
}

// Update обрабатывает POST /events/update
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var event domain.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if event.ID == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "id is required")
		return
	}

	claims := middleware.GetClaimsFromContext(r.Context())
	updated, err := h.eventService.Update(r.Context(), claims, &event)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, EventResponse{Event: updated})
}

// DeleteEventRequest представляет тело запроса на удаление события
type DeleteEventRequest struct {
	EventID string `json:"event_id"`
}

// Delete обрабатывает POST /events/delete
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if req.EventID == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "event_id is required")
		return
	}

	claims := middleware.GetClaimsFromContext(r.Context())
	if err := h.eventService.Delete(r.Context(), claims, req.EventID); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// RSVPRequest представляет тело запроса на отметку посещаемости
type RSVPRequest struct {
	EventID string `json:"event_id"`
	Status  string `json:"status"`
}

// SetRSVP обрабатывает POST /events/rsvp.
// Отметка всегда принадлежит вызывающему пользователю.
func (h *EventHandler) SetRSVP(w http.ResponseWriter, r *http.Request) {
	var req RSVPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if req.EventID == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "event_id is required")
		return
	}

	claims := middleware.GetClaimsFromContext(r.Context())
	event, err := h.eventService.SetRSVP(r.Context(), claims, req.EventID, domain.RSVPStatus(req.Status))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, EventResponse{Event: event})
}
