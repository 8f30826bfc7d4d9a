package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayL96/user-management/models"
	"github.com/JayL96/user-management/repositories"
)

func newUser(forename string, active bool) *models.User {
	return &models.User{
		Forename:    forename,
		Surname:     "Test",
		Email:       forename + "@example.com",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:    active,
	}
}

func TestUserServiceCreateAssignsID(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repositories.NewMemoryUserRepository())

	user := newUser("jane", true)
	require.NoError(t, svc.Create(ctx, user))
	assert.NotZero(t, user.ID)

	got, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane", got.Forename)
}

func TestUserServiceFilterByActivePartition(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repositories.NewMemoryUserRepository())

	for i := 0; i < 6; i++ {
		require.NoError(t, svc.Create(ctx, newUser(fmt.Sprintf("user%d", i), i%3 == 0)))
	}

	active, err := svc.FilterByActive(ctx, true)
	require.NoError(t, err)
	inactive, err := svc.FilterByActive(ctx, false)
	require.NoError(t, err)
	all, err := svc.GetAll(ctx)
	require.NoError(t, err)

	// Active and inactive partition the full set and are disjoint
	assert.Len(t, all, 6)
	assert.Equal(t, len(all), len(active)+len(inactive))

	seen := make(map[int64]bool)
	for _, u := range append(active, inactive...) {
		assert.False(t, seen[u.ID], "user %d in both partitions", u.ID)
		seen[u.ID] = true
	}
	for _, u := range active {
		assert.True(t, u.IsActive)
	}
	for _, u := range inactive {
		assert.False(t, u.IsActive)
	}
}

func TestUserServiceUpdateOverwritesFields(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repositories.NewMemoryUserRepository())

	user := newUser("jane", false)
	require.NoError(t, svc.Create(ctx, user))

	patch := &models.User{
		ID:          user.ID,
		Forename:    "Janet",
		Surname:     "Smith",
		Email:       "janet@example.com",
		DateOfBirth: time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
	}
	require.NoError(t, svc.Update(ctx, patch))

	got, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Janet", got.Forename)
	assert.Equal(t, "Smith", got.Surname)
	assert.Equal(t, "janet@example.com", got.Email)
	assert.True(t, got.IsActive)
	assert.Equal(t, "1985-06-15", models.FormatDate(got.DateOfBirth))
}

func TestUserServiceUpdateMissingIsNoOp(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryUserRepository()
	svc := NewUserService(repo)

	user := newUser("jane", true)
	require.NoError(t, svc.Create(ctx, user))

	// Update with an unknown ID succeeds without touching the store
	ghost := &models.User{ID: 999, Forename: "Ghost", Surname: "User", Email: "ghost@example.com"}
	require.NoError(t, svc.Update(ctx, ghost))

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "jane", all[0].Forename)
}

func TestUserServiceDeleteMissingIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(repositories.NewMemoryUserRepository())

	user := newUser("jane", true)
	require.NoError(t, svc.Create(ctx, user))

	require.NoError(t, svc.Delete(ctx, 999))

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, svc.Delete(ctx, user.ID))
	_, err = svc.GetByID(ctx, user.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
