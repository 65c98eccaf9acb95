package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdo754/soccer-team-hub/internal/domain"
)

func seedUsers() []*domain.User {
	return []*domain.User{
		{ID: "user-1", Name: "Coach Miller", Password: "password123", Role: domain.RoleCoach, Avatar: "a"},
		{ID: "user-2", Name: "Alex Johnson", Password: "password123", Role: domain.RolePlayer, Avatar: "a", Position: "Forward", JerseyNumber: 10},
	}
}

func TestUserRepository_GetByName_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(seedUsers())

	for _, name := range []string{"Alex Johnson", "alex johnson", "ALEX JOHNSON", "aLeX jOhNsOn"} {
		user, err := repo.GetByName(ctx, name)
		require.NoError(t, err, "lookup %q must succeed", name)
		assert.Equal(t, "user-2", user.ID)
	}
}

func TestUserRepository_GetByName_Unknown(t *testing.T) {
	repo := NewUserRepository(seedUsers())

	_, err := repo.GetByName(context.Background(), "Nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(seedUsers())

	updated := &domain.User{
		ID: "user-2", Name: "Alex Johnson", Password: "password123",
		Role: domain.RolePlayer, Avatar: "a", Position: "Midfielder", JerseyNumber: 7,
	}
	require.NoError(t, repo.Update(ctx, updated))

	got, err := repo.GetByID(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, "Midfielder", got.Position)
	assert.Equal(t, 7, got.JerseyNumber)
}

func TestUserRepository_Update_Unknown(t *testing.T) {
	repo := NewUserRepository(seedUsers())

	err := repo.Update(context.Background(), &domain.User{ID: "user-9", Name: "X", Avatar: "a", Role: domain.RolePlayer})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_List_PreservesOrder(t *testing.T) {
	repo := NewUserRepository(seedUsers())

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "user-1", users[0].ID)
	assert.Equal(t, "user-2", users[1].ID)
}
