package handler

import (
	"encoding/json"
	"net/http"

	"github.com/abdo754/soccer-team-hub/internal/domain"
	"github.com/abdo754/soccer-team-hub/internal/middleware"
	"github.com/abdo754/soccer-team-hub/internal/service"
)

// AuthHandler обрабатывает эндпоинты аутентификации
type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

// NewAuthHandler создает новый AuthHandler
func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// LoginRequest представляет тело запроса на логин
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// SessionResponse представляет ответ с активной сессией
type SessionResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login обрабатывает POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if req.Name == "" || req.Password == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "name and password are required")
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Name, req.Password)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, SessionResponse{Token: token, User: user})
}

// SignUpRequest представляет тело запроса на регистрацию
type SignUpRequest struct {
	Name         string `json:"name"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	Avatar       string `json:"avatar"`
	Position     string `json:"position"`
	JerseyNumber int    `json:"jersey_number"`
}

// SignUp обрабатывает POST /auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	user, token, err := h.authService.SignUp(r.Context(), service.SignUpParams{
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

	RespondWithJSON(w, r, http.StatusCreated, SessionResponse{Token: token, User: user})
}

// Logout обрабатывает POST /auth/logout.
// Сессии без состояния: сервер лишь подтверждает, что клиенту следует
// забыть токен и вернуться к представлению по умолчанию.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Me обрабатывает GET /auth/me: возвращает актуальную копию текущего
// пользователя из хранилища
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, UserResponse{User: user})
}
