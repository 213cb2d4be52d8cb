package timeblock_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/weekgrid/internal/domain/activity"
	"github.com/rpggio/weekgrid/internal/domain/task"
	"github.com/rpggio/weekgrid/internal/domain/timeblock"
	"github.com/rpggio/weekgrid/internal/domain/workspace"
	"github.com/rpggio/weekgrid/internal/repository"
	"github.com/rpggio/weekgrid/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var nine = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

func newService() (*timeblock.Service, *mocks.TimeBlockRepository, *mocks.WorkspaceRepository, *mocks.ActivityRepository) {
	svc, blocks, workspaces, _, activities := newServiceWithTasks()
	return svc, blocks, workspaces, activities
}

func newServiceWithTasks() (*timeblock.Service, *mocks.TimeBlockRepository, *mocks.WorkspaceRepository, *mocks.TaskRepository, *mocks.ActivityRepository) {
	blocks := &mocks.TimeBlockRepository{}
	workspaces := &mocks.WorkspaceRepository{}
	tasks := &mocks.TaskRepository{}
	activities := &mocks.ActivityRepository{}
	activities.On("Log", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return timeblock.NewService(blocks, workspaces, tasks, activities, nil), blocks, workspaces, tasks, activities
}

func existingBlock() *timeblock.TimeBlock {
	return &timeblock.TimeBlock{
		ID:          "b1",
		UserID:      "user1",
		WorkspaceID: "ws1",
		Title:       "Deep work",
		Color:       "#3366cc",
		StartTime:   nine,
		EndTime:     nine.Add(2 * time.Hour),
		DayOfWeek:   int(nine.Weekday()),
	}
}

func TestTimeBlockService_Create(t *testing.T) {
	ctx := context.Background()
	svc, blocks, workspaces, activities := newService()

	workspaces.On("IncrementTick", ctx, "user1", "ws1").Return(int64(3), nil)
	blocks.On("Create", ctx, "user1", mock.Anything).Return(nil)

	block, err := svc.Create(ctx, "user1", timeblock.CreateRequest{
		WorkspaceID: "ws1",
		Title:       " Focus ",
		StartTime:   nine,
		EndTime:     nine.Add(time.Hour),
	})
	require.NoError(t, err)
	require.NotEmpty(t, block.ID)
	require.Equal(t, "Focus", block.Title)
	require.Equal(t, int(time.Tuesday), block.DayOfWeek)
	require.Equal(t, int64(3), block.Tick)
	require.True(t, strings.HasPrefix(block.Color, "#"))
	require.Len(t, block.Color, 7)

	activities.AssertCalled(t, "Log", ctx, "user1", mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeTimeBlockCreated && *e.BlockID == block.ID
	}))
}

func TestTimeBlockService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newService()

	_, err := svc.Create(ctx, "user1", timeblock.CreateRequest{Title: "x", StartTime: nine, EndTime: nine.Add(time.Hour)})
	require.ErrorIs(t, err, timeblock.ErrInvalidInput)

	_, err = svc.Create(ctx, "user1", timeblock.CreateRequest{WorkspaceID: "ws1", StartTime: nine, EndTime: nine.Add(time.Hour)})
	require.ErrorIs(t, err, timeblock.ErrInvalidInput)

	_, err = svc.Create(ctx, "user1", timeblock.CreateRequest{WorkspaceID: "ws1", Title: "x", StartTime: nine, EndTime: nine})
	require.ErrorIs(t, err, timeblock.ErrInvalidRange)
}

func TestTimeBlockService_CreateUnknownWorkspace(t *testing.T) {
	ctx := context.Background()
	svc, _, workspaces, _ := newService()
	workspaces.On("IncrementTick", ctx, "user1", "nope").Return(int64(0), repository.ErrNotFound)

	_, err := svc.Create(ctx, "user1", timeblock.CreateRequest{
		WorkspaceID: "nope",
		Title:       "x",
		StartTime:   nine,
		EndTime:     nine.Add(time.Hour),
	})
	require.ErrorIs(t, err, workspace.ErrWorkspaceNotFound)
}

func TestTimeBlockService_UpdateSingleEdge(t *testing.T) {
	ctx := context.Background()
	svc, blocks, workspaces, _ := newService()

	blocks.On("Get", ctx, "user1", "b1").Return(existingBlock(), nil)
	workspaces.On("IncrementTick", ctx, "user1", "ws1").Return(int64(8), nil)
	blocks.On("Update", ctx, "user1", mock.Anything).Return(nil)

	newEnd := nine.Add(3 * time.Hour)
	updated, err := svc.Update(ctx, "user1", timeblock.UpdateRequest{ID: "b1", EndTime: &newEnd})
	require.NoError(t, err)
	require.Equal(t, nine, updated.StartTime)
	require.Equal(t, newEnd, updated.EndTime)
	require.Equal(t, "Deep work", updated.Title)
	require.Equal(t, int64(8), updated.Tick)
}

func TestTimeBlockService_UpdateRejectsInvertedRange(t *testing.T) {
	ctx := context.Background()
	svc, blocks, _, _ := newService()
	blocks.On("Get", ctx, "user1", "b1").Return(existingBlock(), nil)

	newStart := nine.Add(2 * time.Hour)
	_, err := svc.Update(ctx, "user1", timeblock.UpdateRequest{ID: "b1", StartTime: &newStart})
	require.ErrorIs(t, err, timeblock.ErrInvalidRange)
	blocks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTimeBlockService_UpdateNotFound(t *testing.T) {
	ctx := context.Background()
	svc, blocks, _, _ := newService()
	blocks.On("Get", ctx, "user1", "gone").Return(nil, repository.ErrNotFound)

	title := "x"
	_, err := svc.Update(ctx, "user1", timeblock.UpdateRequest{ID: "gone", Title: &title})
	require.ErrorIs(t, err, timeblock.ErrTimeBlockNotFound)
}

func TestTimeBlockService_UpdateNoChanges(t *testing.T) {
	ctx := context.Background()
	svc, blocks, workspaces, _ := newService()
	blocks.On("Get", ctx, "user1", "b1").Return(existingBlock(), nil)

	block, err := svc.Update(ctx, "user1", timeblock.UpdateRequest{ID: "b1"})
	require.NoError(t, err)
	require.Equal(t, "b1", block.ID)
	workspaces.AssertNotCalled(t, "IncrementTick", mock.Anything, mock.Anything, mock.Anything)
}

func TestTimeBlockService_DuplicateLeavesSourceUntouched(t *testing.T) {
	ctx := context.Background()
	svc, blocks, workspaces, _ := newService()

	source := existingBlock()
	blocks.On("Get", ctx, "user1", "b1").Return(source, nil)
	workspaces.On("IncrementTick", ctx, "user1", "ws1").Return(int64(4), nil)
	blocks.On("Create", ctx, "user1", mock.Anything).Return(nil)

	start := nine.Add(24 * time.Hour)
	copied, err := svc.Duplicate(ctx, "user1", timeblock.DuplicateRequest{
		ID:        "b1",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	require.NotEqual(t, "b1", copied.ID)
	require.Equal(t, source.Title, copied.Title)
	require.Equal(t, source.Color, copied.Color)
	require.Equal(t, start, copied.StartTime)
	require.Equal(t, int(time.Wednesday), copied.DayOfWeek)

	require.Equal(t, nine, source.StartTime)
	blocks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTimeBlockService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, blocks, workspaces, activities := newService()

	blocks.On("Get", ctx, "user1", "b1").Return(existingBlock(), nil)
	blocks.On("Delete", ctx, "user1", "b1").Return(nil)
	workspaces.On("IncrementTick", ctx, "user1", "ws1").Return(int64(9), nil)

	require.NoError(t, svc.Delete(ctx, "user1", "b1"))
	activities.AssertCalled(t, "Log", ctx, "user1", mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeTimeBlockDeleted && e.Tick == 9
	}))
}

func TestTimeBlockService_AssignTask(t *testing.T) {
	ctx := context.Background()
	svc, blocks, workspaces, tasks, _ := newServiceWithTasks()

	blocks.On("Get", ctx, "user1", "b1").Return(existingBlock(), nil)
	workspaces.On("IncrementTick", ctx, "user1", "ws1").Return(int64(2), nil)
	blocks.On("Update", ctx, "user1", mock.Anything).Return(nil)
	tasks.On("Get", ctx, "user1", "42").Return(&task.Task{ID: "42", WorkspaceID: "ws1"}, nil)

	taskID := "42"
	block, err := svc.AssignTask(ctx, "user1", "b1", &taskID)
	require.NoError(t, err)
	require.Equal(t, "42", *block.TaskID)

	empty := " "
	block, err = svc.AssignTask(ctx, "user1", "b1", &empty)
	require.NoError(t, err)
	require.Nil(t, block.TaskID)
}

func TestTimeBlockService_AssignTaskValidatesTask(t *testing.T) {
	ctx := context.Background()
	svc, blocks, _, tasks, _ := newServiceWithTasks()

	blocks.On("Get", ctx, "user1", "b1").Return(existingBlock(), nil)
	tasks.On("Get", ctx, "user1", "missing").Return(nil, repository.ErrNotFound)
	tasks.On("Get", ctx, "user1", "foreign").Return(&task.Task{ID: "foreign", WorkspaceID: "ws2"}, nil)

	missing := "missing"
	_, err := svc.AssignTask(ctx, "user1", "b1", &missing)
	require.ErrorIs(t, err, task.ErrTaskNotFound)

	foreign := "foreign"
	_, err = svc.AssignTask(ctx, "user1", "b1", &foreign)
	require.ErrorIs(t, err, timeblock.ErrInvalidInput)

	blocks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTimeBlockService_CreateValidatesTask(t *testing.T) {
	ctx := context.Background()
	svc, blocks, _, tasks, _ := newServiceWithTasks()
	tasks.On("Get", ctx, "user1", "missing").Return(nil, repository.ErrNotFound)

	missing := "missing"
	_, err := svc.Create(ctx, "user1", timeblock.CreateRequest{
		WorkspaceID: "ws1",
		Title:       "x",
		StartTime:   nine,
		EndTime:     nine.Add(time.Hour),
		TaskID:      &missing,
	})
	require.ErrorIs(t, err, task.ErrTaskNotFound)
	blocks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestTimeBlockService_DayOfWeekFollowsCallerLocation(t *testing.T) {
	ctx := context.Background()
	svc, blocks, workspaces, _ := newService()

	// 08:00 Tuesday in UTC+10 is 22:00 Monday in UTC, as storage returns it.
	zone := time.FixedZone("UTC+10", 10*60*60)
	tuesday := time.Date(2024, 1, 2, 8, 0, 0, 0, zone)
	stored := existingBlock()
	stored.StartTime = tuesday.UTC()
	stored.EndTime = tuesday.Add(time.Hour).UTC()
	stored.DayOfWeek = int(time.Tuesday)

	blocks.On("Get", ctx, "user1", "b1").Return(stored, nil)
	workspaces.On("IncrementTick", ctx, "user1", "ws1").Return(int64(2), nil)
	blocks.On("Update", ctx, "user1", mock.Anything).Return(nil)

	end := tuesday.Add(2 * time.Hour)
	updated, err := svc.Update(ctx, "user1", timeblock.UpdateRequest{ID: "b1", EndTime: &end})
	require.NoError(t, err)
	require.Equal(t, int(time.Tuesday), updated.DayOfWeek)

	wednesday := tuesday.AddDate(0, 0, 1)
	wednesdayEnd := wednesday.Add(time.Hour)
	updated, err = svc.Update(ctx, "user1", timeblock.UpdateRequest{ID: "b1", StartTime: &wednesday, EndTime: &wednesdayEnd})
	require.NoError(t, err)
	require.Equal(t, int(time.Wednesday), updated.DayOfWeek)
}

func TestTimeBlockService_ListRange(t *testing.T) {
	ctx := context.Background()
	svc, blocks, _, _ := newService()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	blocks.On("List", ctx, "user1", timeblock.ListOptions{WorkspaceID: "ws1", From: &from, To: &to}).
		Return([]timeblock.TimeBlock{*existingBlock()}, nil)

	list, err := svc.ListRange(ctx, "user1", "ws1", from, to)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.ListRange(ctx, "user1", "ws1", to, from)
	require.ErrorIs(t, err, timeblock.ErrInvalidRange)

	_, err = svc.List(ctx, "user1", "")
	require.ErrorIs(t, err, timeblock.ErrInvalidInput)
}

func TestSet_Lookup(t *testing.T) {
	set := timeblock.NewSet([]timeblock.TimeBlock{*existingBlock()})

	b, ok := set.Lookup("b1")
	require.True(t, ok)
	require.Equal(t, 2*time.Hour, b.Duration())

	_, ok = set.Lookup("missing")
	require.False(t, ok)
}

func TestColors(t *testing.T) {
	for i := 0; i < 20; i++ {
		c := timeblock.RandomColor()
		require.Len(t, c, 7)
		require.True(t, strings.HasPrefix(c, "#"))
	}
	require.Equal(t, "#ff0000", timeblock.NormalizeColor("#FF0000"))
	require.Equal(t, "hsl(1, 2%, 3%)", timeblock.NormalizeColor("hsl(1, 2%, 3%)"))
}
