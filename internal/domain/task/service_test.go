package task_test

import (
	"context"
	"testing"

	"github.com/rpggio/weekgrid/internal/domain/activity"
	"github.com/rpggio/weekgrid/internal/domain/task"
	"github.com/rpggio/weekgrid/internal/domain/workspace"
	"github.com/rpggio/weekgrid/internal/repository"
	"github.com/rpggio/weekgrid/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService() (*task.Service, *mocks.TaskRepository, *mocks.WorkspaceRepository, *mocks.SearchRepository, *mocks.ActivityRepository) {
	tasks := &mocks.TaskRepository{}
	workspaces := &mocks.WorkspaceRepository{}
	search := &mocks.SearchRepository{}
	activities := &mocks.ActivityRepository{}
	activities.On("Log", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return task.NewService(tasks, workspaces, activities, search, nil), tasks, workspaces, search, activities
}

func existingTask() *task.Task {
	return &task.Task{
		ID:          "t1",
		UserID:      "user1",
		WorkspaceID: "ws1",
		Title:       "Write report",
		Status:      task.StatusPending,
	}
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	svc, tasks, workspaces, _, activities := newService()

	workspaces.On("IncrementTick", ctx, "user1", "ws1").Return(int64(2), nil)
	tasks.On("Create", ctx, "user1", mock.Anything).Return(nil)

	category := "  writing "
	created, err := svc.Create(ctx, "user1", task.CreateRequest{WorkspaceID: "ws1", Title: " Draft ", Category: &category})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Draft", created.Title)
	require.Equal(t, task.StatusPending, created.Status)
	require.Equal(t, "writing", *created.Category)
	require.Equal(t, int64(2), created.Tick)

	activities.AssertCalled(t, "Log", ctx, "user1", mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeTaskCreated && *e.TaskID == created.ID
	}))
}

func TestTaskService_BulkCreate(t *testing.T) {
	ctx := context.Background()
	svc, tasks, workspaces, _, _ := newService()

	workspaces.On("IncrementTick", ctx, "user1", "ws1").Return(int64(4), nil).Once()
	tasks.On("Create", ctx, "user1", mock.MatchedBy(func(batch []*task.Task) bool {
		return len(batch) == 3
	})).Return(nil)

	created, err := svc.BulkCreate(ctx, "user1", task.BulkCreateRequest{
		WorkspaceID: "ws1",
		Titles:      []string{"one", "two", "three"},
	})
	require.NoError(t, err)
	require.Len(t, created, 3)
	for _, c := range created {
		require.Equal(t, int64(4), c.Tick)
		require.Nil(t, c.Category)
	}
	workspaces.AssertNumberOfCalls(t, "IncrementTick", 1)
}

func TestTaskService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newService()

	_, err := svc.Create(ctx, "user1", task.CreateRequest{Title: "x"})
	require.ErrorIs(t, err, task.ErrInvalidInput)

	_, err = svc.BulkCreate(ctx, "user1", task.BulkCreateRequest{WorkspaceID: "ws1", Titles: []string{"ok", " "}})
	require.ErrorIs(t, err, task.ErrInvalidInput)

	_, err = svc.BulkCreate(ctx, "user1", task.BulkCreateRequest{WorkspaceID: "ws1"})
	require.ErrorIs(t, err, task.ErrInvalidInput)
}

func TestTaskService_CreateUnknownWorkspace(t *testing.T) {
	ctx := context.Background()
	svc, _, workspaces, _, _ := newService()

	workspaces.On("IncrementTick", ctx, "user1", "missing").Return(int64(0), repository.ErrNotFound)

	_, err := svc.Create(ctx, "user1", task.CreateRequest{WorkspaceID: "missing", Title: "x"})
	require.ErrorIs(t, err, workspace.ErrWorkspaceNotFound)
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()
	svc, tasks, workspaces, _, _ := newService()

	tasks.On("Get", ctx, "user1", "t1").Return(existingTask(), nil)
	workspaces.On("IncrementTick", ctx, "user1", "ws1").Return(int64(6), nil)
	tasks.On("Update", ctx, "user1", mock.Anything).Return(nil)

	done := task.StatusCompleted
	blank := ""
	updated, err := svc.Update(ctx, "user1", task.UpdateRequest{ID: "t1", Status: &done, Category: &blank})
	require.NoError(t, err)
	require.Equal(t, task.StatusCompleted, updated.Status)
	require.Nil(t, updated.Category)
	require.Equal(t, "Write report", updated.Title)
	require.Equal(t, int64(6), updated.Tick)
}

func TestTaskService_UpdateValidation(t *testing.T) {
	ctx := context.Background()
	svc, tasks, _, _, _ := newService()

	tasks.On("Get", ctx, "user1", "t1").Return(existingTask(), nil)
	tasks.On("Get", ctx, "user1", "nope").Return(nil, repository.ErrNotFound)

	bad := task.Status("Open")
	_, err := svc.Update(ctx, "user1", task.UpdateRequest{ID: "t1", Status: &bad})
	require.ErrorIs(t, err, task.ErrInvalidStatus)

	empty := " "
	_, err = svc.Update(ctx, "user1", task.UpdateRequest{ID: "t1", Title: &empty})
	require.ErrorIs(t, err, task.ErrInvalidInput)

	_, err = svc.Update(ctx, "user1", task.UpdateRequest{ID: "nope"})
	require.ErrorIs(t, err, task.ErrTaskNotFound)

	tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskService_SetCategory(t *testing.T) {
	ctx := context.Background()
	svc, tasks, workspaces, _, _ := newService()

	ids := []string{"t1", "t2"}
	workspaces.On("IncrementTick", ctx, "user1", "ws1").Return(int64(8), nil)
	tasks.On("SetCategory", ctx, "user1", "ws1", ids, mock.MatchedBy(func(c *string) bool {
		return c != nil && *c == "ops"
	}), int64(8)).Return(int64(2), nil)

	category := "ops"
	n, err := svc.SetCategory(ctx, "user1", "ws1", ids, &category)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	_, err = svc.SetCategory(ctx, "user1", "ws1", nil, &category)
	require.ErrorIs(t, err, task.ErrInvalidInput)
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, tasks, workspaces, _, activities := newService()

	tasks.On("Get", ctx, "user1", "t1").Return(existingTask(), nil)
	tasks.On("Delete", ctx, "user1", "ws1", []string{"t1"}).Return(int64(1), nil)
	workspaces.On("IncrementTick", ctx, "user1", "ws1").Return(int64(3), nil)

	require.NoError(t, svc.Delete(ctx, "user1", "t1"))
	activities.AssertCalled(t, "Log", ctx, "user1", mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeTaskDeleted && *e.TaskID == "t1"
	}))
}

func TestTaskService_BulkDelete(t *testing.T) {
	ctx := context.Background()
	svc, tasks, workspaces, _, _ := newService()

	tasks.On("Delete", ctx, "user1", "ws1", []string{"t1", "t9"}).Return(int64(1), nil)
	tasks.On("Delete", ctx, "user1", "ws1", []string{"gone"}).Return(int64(0), nil)
	workspaces.On("IncrementTick", ctx, "user1", "ws1").Return(int64(3), nil)

	n, err := svc.BulkDelete(ctx, "user1", "ws1", []string{"t1", "t9"})
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	n, err = svc.BulkDelete(ctx, "user1", "ws1", []string{"gone"})
	require.NoError(t, err)
	require.Zero(t, n)
	workspaces.AssertNumberOfCalls(t, "IncrementTick", 1)
}

func TestTaskService_Search(t *testing.T) {
	ctx := context.Background()
	svc, tasks, _, search, _ := newService()

	hit := task.SearchResult{Task: *existingTask(), Rank: -1.5}
	search.On("Search", ctx, "user1", "ws1", "rep", task.SearchOptions{Limit: 20}).
		Return([]task.SearchResult{hit}, nil)

	results, err := svc.Search(ctx, "user1", "ws1", "rep", task.SearchOptions{})
	require.NoError(t, err)
	require.Equal(t, []task.SearchResult{hit}, results)

	tasks.On("List", ctx, "user1", task.ListOptions{WorkspaceID: "ws1", Limit: 5}).
		Return([]task.Task{*existingTask()}, nil)

	results, err = svc.Search(ctx, "user1", "ws1", "  ", task.SearchOptions{Limit: 5})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "t1", results[0].Task.ID)
	search.AssertNumberOfCalls(t, "Search", 1)

	_, err = svc.Search(ctx, "user1", "", "rep", task.SearchOptions{})
	require.ErrorIs(t, err, task.ErrInvalidInput)
}

func TestTaskService_ListRequiresWorkspace(t *testing.T) {
	svc, _, _, _, _ := newService()

	_, err := svc.List(context.Background(), "user1", task.ListOptions{})
	require.ErrorIs(t, err, task.ErrInvalidInput)
}
