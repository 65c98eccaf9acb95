package handler

import (
	"encoding/json"
	"net/http"

	"github.com/abdo754/soccer-team-hub/internal/domain"
	"github.com/abdo754/soccer-team-hub/internal/middleware"
	"github.com/abdo754/soccer-team-hub/internal/service"
)

// UserHandler обрабатывает эндпоинты пользователей
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsersResponse представляет ответ со списком пользователей
type ListUsersResponse struct {
	Users []*domain.User `json:"users"`
}

// List обрабатывает GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, ListUsersResponse{Users: users})
}

// UserResponse представляет ответ с одним пользователем
type UserResponse struct {
	User *domain.User `json:"user"`
}

// Get обрабатывает GET /users/get?user_id=...
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "user_id query parameter is required")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, UserResponse{User: user})
}

// UpdateUserRequest представляет тело запроса на обновление профиля
type UpdateUserRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	Avatar       string `json:"avatar"`
	Position     string `json:"position"`
	JerseyNumber int    `json:"jersey_number"`
}

// Update обрабатывает POST /users/update
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if req.ID == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "id is required")
		return
	}

	claims := middleware.GetClaimsFromContext(r.Context())
	user, err := h.userService.Update(r.Context(), claims, &domain.User{
		ID:           req.ID,
		Name:         req.Name,
		Password:     req.Password,
		Role:         domain.Role(req.Role),
		Avatar:       req.Avatar,
		Position:     req.Position,
		JerseyNumber: req.JerseyNumber,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, UserResponse{User: user})
}
