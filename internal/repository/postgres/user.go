package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abdo754/soccer-team-hub/internal/domain"
)

// UserRepository реализует repository.UserRepository для PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create добавляет нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, password, role, avatar, position, jersey_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID, user.Name, user.Password, string(user.Role),
		user.Avatar, user.Position, user.JerseyNumber,
	)
	return err
}

// Update заменяет пользователя с совпадающим ID
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $1, password = $2, role = $3, avatar = $4,
		    position = $5, jersey_number = $6, updated_at = NOW()
		WHERE id = $7
	`

	result, err := r.db.Exec(ctx, query,
		user.Name, user.Password, string(user.Role), user.Avatar,
		user.Position, user.JerseyNumber, user.ID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT id, name, password, role, avatar, position, jersey_number
		FROM users
		WHERE id = $1
	`

	return r.scanUser(r.db.QueryRow(ctx, query, userID))
}

// GetByName получает пользователя по имени без учета регистра
func (r *UserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	query := `
		SELECT id, name, password, role, avatar, position, jersey_number
		FROM users
		WHERE LOWER(name) = LOWER($1)
		ORDER BY created_at, id
		LIMIT 1
	`

	return r.scanUser(r.db.QueryRow(ctx, query, name))
}

// List возвращает всех пользователей в порядке создания
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, name, password, role, avatar, position, jersey_number
		FROM users
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		var role string
		if err := rows.Scan(&user.ID, &user.Name, &user.Password, &role,
			&user.Avatar, &user.Position, &user.JerseyNumber); err != nil {
			return nil, err
		}
		user.Role = domain.Role(role)
		users = append(users, &user)
	}

	return users, rows.Err()
}

// scanUser читает одну строку таблицы users
func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(&user.ID, &user.Name, &user.Password, &role,
		&user.Avatar, &user.Position, &user.JerseyNumber)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	user.Role = domain.Role(role)
	return &user, nil
}
