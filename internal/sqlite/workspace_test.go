package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/weekgrid/internal/domain/workspace"
	"github.com/rpggio/weekgrid/internal/repository"
	"github.com/stretchr/testify/require"
)

func newWorkspace(id, name string) *workspace.Workspace {
	return &workspace.Workspace{
		ID:          id,
		Name:        name,
		Description: "Blocks for " + name,
		CreatedAt:   time.Now(),
	}
}

func TestWorkspaceRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewWorkspaceRepository(db)
	ctx := context.Background()

	ws := newWorkspace("w1", "Planning")
	require.NoError(t, repo.Create(ctx, "user1", ws))

	retrieved, err := repo.Get(ctx, "user1", "w1")
	require.NoError(t, err)
	require.Equal(t, "w1", retrieved.ID)
	require.Equal(t, "user1", retrieved.UserID)
	require.Equal(t, "Planning", retrieved.Name)
	require.Equal(t, "Blocks for Planning", retrieved.Description)

	_, err = repo.Get(ctx, "user1", "nonexistent")
	require.Equal(t, repository.ErrNotFound, err)

	err = repo.Create(ctx, "user1", newWorkspace("w1", "Again"))
	require.Equal(t, repository.ErrDuplicate, err)
}

func TestWorkspaceRepository_UserIsolation(t *testing.T) {
	db := NewTestDB(t)
	repo := NewWorkspaceRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "user1", newWorkspace("w1", "Mine")))

	_, err := repo.Get(ctx, "user2", "w1")
	require.Equal(t, repository.ErrNotFound, err)

	_, err = repo.IncrementTick(ctx, "user2", "w1")
	require.Equal(t, repository.ErrNotFound, err)
}

func TestWorkspaceRepository_GetDefault(t *testing.T) {
	db := NewTestDB(t)
	repo := NewWorkspaceRepository(db)
	ctx := context.Background()

	_, err := repo.GetDefault(ctx, "user1")
	require.Equal(t, repository.ErrNotFound, err)

	first := newWorkspace("w1", "First")
	first.CreatedAt = time.Now().Add(-time.Minute)
	require.NoError(t, repo.Create(ctx, "user1", first))
	require.NoError(t, repo.Create(ctx, "user1", newWorkspace("w2", "Second")))

	def, err := repo.GetDefault(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, "w1", def.ID)
}

func TestWorkspaceRepository_List(t *testing.T) {
	db := NewTestDB(t)
	repo := NewWorkspaceRepository(db)
	blocks := NewTimeBlockRepository(db)
	ctx := context.Background()

	older := newWorkspace("w1", "Older")
	older.CreatedAt = time.Now().Add(-time.Minute)
	require.NoError(t, repo.Create(ctx, "user1", older))
	require.NoError(t, repo.Create(ctx, "user1", newWorkspace("w2", "Newer")))
	require.NoError(t, blocks.Create(ctx, "user1", testBlock("b1", "w1", nine)))
	require.NoError(t, blocks.Create(ctx, "user1", testBlock("b2", "w1", nine.Add(3*time.Hour))))

	summaries, err := repo.List(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	require.Equal(t, "w2", summaries[0].ID)
	require.Equal(t, 0, summaries[0].BlockCount)
	require.Equal(t, "w1", summaries[1].ID)
	require.Equal(t, 2, summaries[1].BlockCount)

	summaries, err = repo.List(ctx, "user2")
	require.NoError(t, err)
	require.Empty(t, summaries)
}

func TestWorkspaceRepository_IncrementTick(t *testing.T) {
	db := NewTestDB(t)
	repo := NewWorkspaceRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "user1", newWorkspace("w1", "Planning")))

	for i := 1; i <= 10; i++ {
		newTick, err := repo.IncrementTick(ctx, "user1", "w1")
		require.NoError(t, err)
		require.Equal(t, int64(i), newTick)
	}

	retrieved, err := repo.Get(ctx, "user1", "w1")
	require.NoError(t, err)
	require.Equal(t, int64(10), retrieved.Tick)

	_, err = repo.IncrementTick(ctx, "user1", "nonexistent")
	require.Equal(t, repository.ErrNotFound, err)
}
