package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/weekgrid/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertWorkspace(t, db, "w1", "user1")

	repo := NewActivityRepository(db)
	entry1 := &activity.ActivityEntry{
		WorkspaceID:  "w1",
		ActivityType: activity.TypeTimeBlockCreated,
		Summary:      "Created block",
		Details:      `{"id":"b1"}`,
		Tick:         1,
	}
	entry2 := &activity.ActivityEntry{
		WorkspaceID:  "w1",
		ActivityType: activity.TypeTimeBlockUpdated,
		Summary:      "Moved block",
		Details:      `{"id":"b1"}`,
		Tick:         2,
	}

	require.NoError(t, repo.Log(ctx, "user1", entry1))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Log(ctx, "user1", entry2))
	require.NotZero(t, entry2.ID)
	require.Equal(t, "user1", entry2.UserID)

	entries, err := repo.List(ctx, "user1", activity.ListActivityOptions{WorkspaceID: "w1"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ActivityType, entries[0].ActivityType)
	require.Equal(t, entry1.ActivityType, entries[1].ActivityType)

	entries, err = repo.List(ctx, "user1", activity.ListActivityOptions{WorkspaceID: "w1", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, entry1.ActivityType, entries[0].ActivityType)
}

func TestActivityRepository_FiltersAndUserIsolation(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertWorkspace(t, db, "w1", "user1")
	insertWorkspace(t, db, "w2", "user2")

	repo := NewActivityRepository(db)
	blockID := "b1"
	require.NoError(t, repo.Log(ctx, "user1", &activity.ActivityEntry{
		WorkspaceID:  "w1",
		BlockID:      &blockID,
		ActivityType: activity.TypeTimeBlockDuplicated,
		Summary:      "Duplicated block",
		Tick:         3,
	}))
	require.NoError(t, repo.Log(ctx, "user1", &activity.ActivityEntry{
		WorkspaceID:  "w1",
		ActivityType: activity.TypeWorkspaceCreated,
		Summary:      "Created workspace",
		Tick:         0,
	}))

	activityType := activity.TypeTimeBlockDuplicated
	entries, err := repo.List(ctx, "user1", activity.ListActivityOptions{
		WorkspaceID:  "w1",
		BlockID:      &blockID,
		ActivityType: &activityType,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "b1", *entries[0].BlockID)

	entries, err = repo.List(ctx, "user2", activity.ListActivityOptions{WorkspaceID: "w2"})
	require.NoError(t, err)
	require.Len(t, entries, 0)
}
