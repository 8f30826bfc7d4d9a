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

func TestLogServiceAppend(t *testing.T) {
	ctx := context.Background()
	svc := NewLogService(repositories.NewMemoryLogRepository())

	before := time.Now().UTC()
	entry, err := svc.Append(ctx, 7, models.ActionCreated, "Created user Jane Doe")
	require.NoError(t, err)

	assert.NotZero(t, entry.ID)
	assert.EqualValues(t, 7, entry.UserID)
	assert.Equal(t, models.ActionCreated, entry.Action)
	assert.False(t, entry.Created.Before(before))
	assert.Equal(t, time.UTC, entry.Created.Location())
}

func TestLogServiceListPagedWindows(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryLogRepository()
	svc := NewLogService(repo)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		entry := &models.LogEntry{
			UserID:  1,
			Action:  models.ActionViewed,
			Details: fmt.Sprintf("entry %d", i+1),
			Created: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, entry))
	}

	// Page 2 of 10 is IDs 20..11
	page, err := svc.ListPaged(ctx, 2, 10, nil, "")
	require.NoError(t, err)
	require.Len(t, page, 10)
	for i, e := range page {
		assert.EqualValues(t, 20-i, e.ID)
	}

	// The k-th entry of any page equals the (k + pageSize*(page-1))-th of
	// the full descending set
	full, err := svc.ListPaged(ctx, 1, 30, nil, "")
	require.NoError(t, err)
	require.Len(t, full, 30)
	for pageNo := 1; pageNo <= 3; pageNo++ {
		page, err := svc.ListPaged(ctx, pageNo, 10, nil, "")
		require.NoError(t, err)
		for k, e := range page {
			assert.Equal(t, full[k+10*(pageNo-1)].ID, e.ID)
		}
	}

	// Pages past the end are empty; page 0 clamps to page 1
	empty, err := svc.ListPaged(ctx, 4, 10, nil, "")
	require.NoError(t, err)
	assert.Empty(t, empty)

	clamped, err := svc.ListPaged(ctx, 0, 10, nil, "")
	require.NoError(t, err)
	require.Len(t, clamped, 10)
	assert.EqualValues(t, 30, clamped[0].ID)
}

func TestLogServiceCountMatchesListPaged(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryLogRepository()
	svc := NewLogService(repo)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seed := []models.LogEntry{
		{UserID: 1, Action: models.ActionCreated, Details: "Created user Alpha One", Created: base},
		{UserID: 1, Action: models.ActionUpdated, Details: "Updated user alpha", Created: base.Add(time.Minute)},
		{UserID: 2, Action: models.ActionUpdated, Details: "Updated user beta", Created: base.Add(2 * time.Minute)},
		{UserID: 2, Action: models.ActionDeleted, Details: "Deleted user 2", Created: base.Add(3 * time.Minute)},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	updated := models.ActionUpdated
	cases := []struct {
		action *models.LogAction
		search string
	}{
		{nil, ""},
		{&updated, ""},
		{nil, "alpha"},
		{&updated, "alpha"},
		{nil, "deleted"},
		{nil, "nothing matches this"},
	}
	for _, tc := range cases {
		count, err := svc.Count(ctx, tc.action, tc.search)
		require.NoError(t, err)
		listed, err := svc.ListPaged(ctx, 1, len(seed), tc.action, tc.search)
		require.NoError(t, err)
		assert.Equal(t, count, len(listed), "filter action=%v search=%q", tc.action, tc.search)
	}

	// The combined filter matches exactly the updated-alpha entry
	matched, err := svc.ListPaged(ctx, 1, 10, &updated, "Alpha")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Updated user alpha", matched[0].Details)
}

func TestLogServiceForUser(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryLogRepository()
	svc := NewLogService(repo)

	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		entry := &models.LogEntry{
			UserID:  int64(i%2 + 1),
			Action:  models.ActionViewed,
			Created: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, entry))
	}

	entries, err := svc.ListForUser(ctx, 1, 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.EqualValues(t, 1, e.UserID)
		if i > 0 {
			assert.False(t, entries[i].Created.After(entries[i-1].Created))
		}
	}

	count, err := svc.CountForUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	empty, err := svc.ListForUser(ctx, 1, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLogServiceGetByID(t *testing.T) {
	ctx := context.Background()
	svc := NewLogService(repositories.NewMemoryLogRepository())

	entry, err := svc.Append(ctx, 1, models.ActionDeleted, "Deleted user 1")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)

	_, err = svc.GetByID(ctx, 999)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
