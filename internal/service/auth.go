package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/abdo754/soccer-team-hub/internal/domain"
	"github.com/abdo754/soccer-team-hub/internal/metrics"
	"github.com/abdo754/soccer-team-hub/internal/repository"
)

// Claims represents JWT claims
type Claims struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles authentication and JWT operations
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

// Login matches the name case-insensitively and the password exactly.
// Both failure modes collapse into the same generic error so the response
// never reveals which field was wrong.
func (s *AuthService) Login(ctx context.Context, name, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		metrics.FailedLogins.Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	if user.Password != password {
		metrics.FailedLogins.Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	metrics.Logins.Inc()
	return user, token, nil
}

// SignUpParams carries the profile fields supplied at registration
type SignUpParams struct {
	Name         string
	Password     string
	Role         domain.Role
	Avatar       string
	Position     string
	JerseyNumber int
}

// SignUp creates a user with a fresh unique id and implicitly begins a
// session by issuing a token. Position and jersey number are only kept
// for the Player role.
func (s *AuthService) SignUp(ctx context.Context, params SignUpParams) (*domain.User, string, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, "", fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if params.Password == "" {
		return nil, "", fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	if !params.Role.IsValid() {
		return nil, "", fmt.Errorf("%w: role must be Coach or Player", domain.ErrValidation)
	}
	if params.Avatar == "" {
		return nil, "", fmt.Errorf("%w: avatar is required", domain.ErrValidation)
	}
	if params.JerseyNumber < 0 {
		return nil, "", fmt.Errorf("%w: jersey number must not be negative", domain.ErrValidation)
	}

	user := &domain.User{
		ID:       "user-" + uuid.NewString(),
		Name:     params.Name,
		Password: params.Password,
		Role:     params.Role,
		Avatar:   params.Avatar,
	}
	if params.Role == domain.RolePlayer {
		user.Position = params.Position
		user.JerseyNumber = params.JerseyNumber
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// issueToken signs an HS256 token carrying the user id and role
func (s *AuthService) issueToken(user *domain.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
