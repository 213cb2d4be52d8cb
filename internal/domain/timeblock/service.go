package timeblock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/weekgrid/internal/domain/activity"
	"github.com/rpggio/weekgrid/internal/domain/task"
	"github.com/rpggio/weekgrid/internal/domain/workspace"
	"github.com/rpggio/weekgrid/internal/repository"
)

// Service handles time block business logic.
type Service struct {
	blocks     Repository
	workspaces WorkspaceRepository
	tasks      TaskRepository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new time block service.
func NewService(
	blocks Repository,
	workspaces WorkspaceRepository,
	tasks TaskRepository,
	activities ActivityRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		blocks:     blocks,
		workspaces: workspaces,
		tasks:      tasks,
		activities: activities,
		logger:     logger,
	}
}

// CreateRequest describes a block creation request. An empty Color gets a
// random one.
type CreateRequest struct {
	WorkspaceID string
	Title       string
	StartTime   time.Time
	EndTime     time.Time
	Color       string
	TaskID      *string
}

// UpdateRequest describes a partial block update. Nil fields are left as is.
type UpdateRequest struct {
	ID        string
	StartTime *time.Time
	EndTime   *time.Time
	Title     *string
	Color     *string
}

// DuplicateRequest copies a block to a new time range.
type DuplicateRequest struct {
	ID        string
	StartTime time.Time
	EndTime   time.Time
}

// List returns every block in a workspace ordered by start time.
func (s *Service) List(ctx context.Context, userID, workspaceID string) ([]TimeBlock, error) {
	if strings.TrimSpace(workspaceID) == "" {
		return nil, ErrInvalidInput
	}
	blocks, err := s.blocks.List(ctx, userID, ListOptions{WorkspaceID: workspaceID})
	if err != nil {
		return nil, fmt.Errorf("listing time blocks: %w", err)
	}
	return blocks, nil
}

// ListRange returns blocks in a workspace overlapping [from, to).
func (s *Service) ListRange(ctx context.Context, userID, workspaceID string, from, to time.Time) ([]TimeBlock, error) {
	if strings.TrimSpace(workspaceID) == "" {
		return nil, ErrInvalidInput
	}
	if err := ValidateRange(from, to); err != nil {
		return nil, err
	}
	blocks, err := s.blocks.List(ctx, userID, ListOptions{
		WorkspaceID: workspaceID,
		From:        &from,
		To:          &to,
	})
	if err != nil {
		return nil, fmt.Errorf("listing time blocks: %w", err)
	}
	return blocks, nil
}

// Get fetches a block by ID.
func (s *Service) Get(ctx context.Context, userID, id string) (*TimeBlock, error) {
	block, err := s.blocks.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTimeBlockNotFound
		}
		return nil, fmt.Errorf("getting time block: %w", err)
	}
	return block, nil
}

// Create validates and stores a new block.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*TimeBlock, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = RandomColor()
	}
	taskID, err := s.checkTask(ctx, userID, req.WorkspaceID, req.TaskID)
	if err != nil {
		return nil, err
	}

	tick, err := s.tick(ctx, userID, req.WorkspaceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	block := &TimeBlock{
		ID:          uuid.NewString(),
		UserID:      userID,
		WorkspaceID: req.WorkspaceID,
		Title:       strings.TrimSpace(req.Title),
		Color:       NormalizeColor(color),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		DayOfWeek:   DayOfWeek(req.StartTime),
		TaskID:      taskID,
		Tick:        tick,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.blocks.Create(ctx, userID, block); err != nil {
		return nil, fmt.Errorf("creating time block: %w", err)
	}

	s.logActivity(ctx, userID, block, activity.TypeTimeBlockCreated,
		fmt.Sprintf("created %q", block.Title), nil)

	return block, nil
}

// Update applies a partial update. The merged range must stay ordered.
func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (*TimeBlock, error) {
	block, err := s.Get(ctx, userID, req.ID)
	if err != nil {
		return nil, err
	}

	changed := make(map[string]any)
	if req.StartTime != nil {
		block.StartTime = *req.StartTime
		block.DayOfWeek = DayOfWeek(*req.StartTime)
		changed["start_time"] = req.StartTime
	}
	if req.EndTime != nil {
		block.EndTime = *req.EndTime
		changed["end_time"] = req.EndTime
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrInvalidInput
		}
		block.Title = title
		changed["title"] = title
	}
	if req.Color != nil {
		if strings.TrimSpace(*req.Color) == "" {
			return nil, ErrInvalidInput
		}
		block.Color = NormalizeColor(strings.TrimSpace(*req.Color))
		changed["color"] = block.Color
	}
	if len(changed) == 0 {
		return block, nil
	}
	if err := ValidateRange(block.StartTime, block.EndTime); err != nil {
		return nil, err
	}

	tick, err := s.tick(ctx, userID, block.WorkspaceID)
	if err != nil {
		return nil, err
	}
	block.Tick = tick
	block.UpdatedAt = time.Now()

	if err := s.blocks.Update(ctx, userID, block); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTimeBlockNotFound
		}
		return nil, fmt.Errorf("updating time block: %w", err)
	}

	s.logActivity(ctx, userID, block, activity.TypeTimeBlockUpdated,
		fmt.Sprintf("updated %q", block.Title), changed)

	return block, nil
}

// Duplicate stores a copy of a block at a new time range. The source block is
// left untouched.
func (s *Service) Duplicate(ctx context.Context, userID string, req DuplicateRequest) (*TimeBlock, error) {
	if err := ValidateRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	source, err := s.Get(ctx, userID, req.ID)
	if err != nil {
		return nil, err
	}

	tick, err := s.tick(ctx, userID, source.WorkspaceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	copied := &TimeBlock{
		ID:          uuid.NewString(),
		UserID:      userID,
		WorkspaceID: source.WorkspaceID,
		Title:       source.Title,
		Color:       source.Color,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		DayOfWeek:   DayOfWeek(req.StartTime),
		TaskID:      source.TaskID,
		Tick:        tick,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.blocks.Create(ctx, userID, copied); err != nil {
		return nil, fmt.Errorf("duplicating time block: %w", err)
	}

	s.logActivity(ctx, userID, copied, activity.TypeTimeBlockDuplicated,
		fmt.Sprintf("duplicated %q", copied.Title), map[string]any{"source_id": source.ID})

	return copied, nil
}

// Delete removes a block.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	block, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.blocks.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTimeBlockNotFound
		}
		return fmt.Errorf("deleting time block: %w", err)
	}

	tick, err := s.tick(ctx, userID, block.WorkspaceID)
	if err != nil {
		return err
	}
	block.Tick = tick

	s.logActivity(ctx, userID, block, activity.TypeTimeBlockDeleted,
		fmt.Sprintf("deleted %q", block.Title), nil)

	return nil
}

// AssignTask links a block to a task of the same workspace, or unlinks it
// when taskID is nil or blank.
func (s *Service) AssignTask(ctx context.Context, userID, id string, taskID *string) (*TimeBlock, error) {
	block, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	taskID, err = s.checkTask(ctx, userID, block.WorkspaceID, taskID)
	if err != nil {
		return nil, err
	}

	tick, err := s.tick(ctx, userID, block.WorkspaceID)
	if err != nil {
		return nil, err
	}
	block.TaskID = taskID
	block.Tick = tick
	block.UpdatedAt = time.Now()

	if err := s.blocks.Update(ctx, userID, block); err != nil {
		return nil, fmt.Errorf("assigning task: %w", err)
	}

	s.logActivity(ctx, userID, block, activity.TypeTaskAssigned,
		fmt.Sprintf("linked %q to a task", block.Title), map[string]any{"task_id": taskID})

	return block, nil
}

// checkTask resolves an optional task reference. Blank references mean no
// task; others must name an existing task in the workspace.
func (s *Service) checkTask(ctx context.Context, userID, workspaceID string, taskID *string) (*string, error) {
	if taskID == nil || strings.TrimSpace(*taskID) == "" {
		return nil, nil
	}
	id := strings.TrimSpace(*taskID)
	if s.tasks == nil {
		return nil, task.ErrTaskNotFound
	}
	t, err := s.tasks.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, task.ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	if t.WorkspaceID != workspaceID {
		return nil, fmt.Errorf("%w: task belongs to another workspace", ErrInvalidInput)
	}
	return &id, nil
}

func (s *Service) tick(ctx context.Context, userID, workspaceID string) (int64, error) {
	tick, err := s.workspaces.IncrementTick(ctx, userID, workspaceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, workspace.ErrWorkspaceNotFound
		}
		return 0, fmt.Errorf("incrementing tick: %w", err)
	}
	return tick, nil
}

func (s *Service) logActivity(ctx context.Context, userID string, block *TimeBlock, kind activity.ActivityType, summary string, details map[string]any) {
	if s.logger != nil {
		s.logger.Debug("time block write", "type", kind, "block_id", block.ID, "workspace_id", block.WorkspaceID, "tick", block.Tick)
	}
	if s.activities == nil {
		return
	}

	entry := &activity.ActivityEntry{
		WorkspaceID:  block.WorkspaceID,
		BlockID:      &block.ID,
		ActivityType: kind,
		Summary:      summary,
		CreatedAt:    time.Now(),
		Tick:         block.Tick,
	}
	if len(details) > 0 {
		if data, err := json.Marshal(details); err == nil {
			entry.Details = string(data)
		}
	}
	_ = s.activities.Log(ctx, userID, entry)
}
