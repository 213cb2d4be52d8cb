package mocks

import (
	"context"

	"github.com/rpggio/weekgrid/internal/domain/activity"
	"github.com/rpggio/weekgrid/internal/domain/task"
	"github.com/rpggio/weekgrid/internal/domain/timeblock"
	"github.com/rpggio/weekgrid/internal/domain/workspace"
	"github.com/stretchr/testify/mock"
)

// WorkspaceRepository is a mock for workspace.Repository.
type WorkspaceRepository struct {
	mock.Mock
}

func (m *WorkspaceRepository) Create(ctx context.Context, userID string, ws *workspace.Workspace) error {
	args := m.Called(ctx, userID, ws)
	return args.Error(0)
}

func (m *WorkspaceRepository) Get(ctx context.Context, userID, id string) (*workspace.Workspace, error) {
	args := m.Called(ctx, userID, id)
	if ws, ok := args.Get(0).(*workspace.Workspace); ok {
		return ws, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorkspaceRepository) GetDefault(ctx context.Context, userID string) (*workspace.Workspace, error) {
	args := m.Called(ctx, userID)
	if ws, ok := args.Get(0).(*workspace.Workspace); ok {
		return ws, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorkspaceRepository) List(ctx context.Context, userID string) ([]workspace.WorkspaceSummary, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]workspace.WorkspaceSummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorkspaceRepository) IncrementTick(ctx context.Context, userID, workspaceID string) (int64, error) {
	args := m.Called(ctx, userID, workspaceID)
	return args.Get(0).(int64), args.Error(1)
}

// TimeBlockRepository is a mock for timeblock.Repository.
type TimeBlockRepository struct {
	mock.Mock
}

func (m *TimeBlockRepository) Create(ctx context.Context, userID string, block *timeblock.TimeBlock) error {
	args := m.Called(ctx, userID, block)
	return args.Error(0)
}

func (m *TimeBlockRepository) Get(ctx context.Context, userID, id string) (*timeblock.TimeBlock, error) {
	args := m.Called(ctx, userID, id)
	if block, ok := args.Get(0).(*timeblock.TimeBlock); ok {
		return block, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimeBlockRepository) Update(ctx context.Context, userID string, block *timeblock.TimeBlock) error {
	args := m.Called(ctx, userID, block)
	return args.Error(0)
}

func (m *TimeBlockRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *TimeBlockRepository) List(ctx context.Context, userID string, opts timeblock.ListOptions) ([]timeblock.TimeBlock, error) {
	args := m.Called(ctx, userID, opts)
	if list, ok := args.Get(0).([]timeblock.TimeBlock); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, userID string, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, userID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, userID, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// TaskRepository is a mock for task.Repository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, userID string, tasks []*task.Task) error {
	args := m.Called(ctx, userID, tasks)
	return args.Error(0)
}

func (m *TaskRepository) Get(ctx context.Context, userID, id string) (*task.Task, error) {
	args := m.Called(ctx, userID, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, userID string, t *task.Task) error {
	args := m.Called(ctx, userID, t)
	return args.Error(0)
}

func (m *TaskRepository) Delete(ctx context.Context, userID, workspaceID string, ids []string) (int64, error) {
	args := m.Called(ctx, userID, workspaceID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TaskRepository) SetCategory(ctx context.Context, userID, workspaceID string, ids []string, category *string, tick int64) (int64, error) {
	args := m.Called(ctx, userID, workspaceID, ids, category, tick)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TaskRepository) List(ctx context.Context, userID string, opts task.ListOptions) ([]task.Task, error) {
	args := m.Called(ctx, userID, opts)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Categories(ctx context.Context, userID, workspaceID string) ([]string, error) {
	args := m.Called(ctx, userID, workspaceID)
	if list, ok := args.Get(0).([]string); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// SearchRepository is a mock for task.SearchRepository.
type SearchRepository struct {
	mock.Mock
}

func (m *SearchRepository) Search(ctx context.Context, userID, workspaceID, query string, opts task.SearchOptions) ([]task.SearchResult, error) {
	args := m.Called(ctx, userID, workspaceID, query, opts)
	if list, ok := args.Get(0).([]task.SearchResult); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
