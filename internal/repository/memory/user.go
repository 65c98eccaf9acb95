// Package memory реализует хранилище доменных коллекций в памяти процесса.
// Коллекции заполняются стартовыми данными при создании и теряются при
// перезапуске. Все мутации проходят через методы репозиториев; каждая мутация
// атомарна относительно остальных благодаря мьютексу на коллекцию.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/abdo754/soccer-team-hub/internal/domain"
)

// UserRepository реализует repository.UserRepository в памяти
type UserRepository struct {
	mu    sync.RWMutex
	users []*domain.User
}

// NewUserRepository создает хранилище пользователей с начальными данными
func NewUserRepository(seed []*domain.User) *UserRepository {
	users := make([]*domain.User, 0, len(seed))
	for _, u := range seed {
		cp := *u
		users = append(users, &cp)
	}
	return &UserRepository{users: users}
}

// Create добавляет нового пользователя
func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

// Update заменяет пользователя с совпадающим ID
func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == user.ID {
			cp := *user
			r.users[i] = &cp
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == userID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetByName получает пользователя по имени без учета регистра
func (r *UserRepository) GetByName(_ context.Context, name string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Name, name) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// List возвращает всех пользователей в порядке создания
func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}
