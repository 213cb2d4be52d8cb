package task

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
	"github.com/rpggio/weekgrid/internal/domain/workspace"
	"github.com/rpggio/weekgrid/internal/repository"
)

const defaultSearchLimit = 20

// Service handles task business logic.
type Service struct {
	tasks      Repository
	workspaces WorkspaceRepository
	activities ActivityRepository
	search     SearchRepository
	logger     *slog.Logger
}

// NewService creates a new task service.
func NewService(
	tasks Repository,
	workspaces WorkspaceRepository,
	activities ActivityRepository,
	search SearchRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		tasks:      tasks,
		workspaces: workspaces,
		activities: activities,
		search:     search,
		logger:     logger,
	}
}

// CreateRequest describes a task creation request.
type CreateRequest struct {
	WorkspaceID string
	Title       string
	Category    *string
}

// BulkCreateRequest creates one pending task per title.
type BulkCreateRequest struct {
	WorkspaceID string
	Titles      []string
	Category    *string
}

// UpdateRequest describes a partial task update. Nil fields are left as is;
// a blank Category clears it.
type UpdateRequest struct {
	ID       string
	Title    *string
	Status   *Status
	Category *string
}

// Create stores a new pending task.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Task, error) {
	created, err := s.BulkCreate(ctx, userID, BulkCreateRequest{
		WorkspaceID: req.WorkspaceID,
		Titles:      []string{req.Title},
		Category:    req.Category,
	})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// BulkCreate stores several pending tasks under one tick.
func (s *Service) BulkCreate(ctx context.Context, userID string, req BulkCreateRequest) ([]Task, error) {
	if err := ValidateCreateInput(req.WorkspaceID, req.Titles); err != nil {
		return nil, err
	}

	tick, err := s.tick(ctx, userID, req.WorkspaceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	category := normalizeCategory(req.Category)
	batch := make([]*Task, len(req.Titles))
	for i, title := range req.Titles {
		batch[i] = &Task{
			ID:          uuid.NewString(),
			UserID:      userID,
			WorkspaceID: req.WorkspaceID,
			Title:       strings.TrimSpace(title),
			Status:      StatusPending,
			Category:    category,
			Tick:        tick,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	if err := s.tasks.Create(ctx, userID, batch); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, workspace.ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("creating tasks: %w", err)
	}

	out := make([]Task, len(batch))
	for i, t := range batch {
		out[i] = *t
	}

	var taskID *string
	summary := fmt.Sprintf("created %d tasks", len(out))
	if len(out) == 1 {
		taskID = &out[0].ID
		summary = fmt.Sprintf("created task %q", out[0].Title)
	}
	s.logActivity(ctx, userID, req.WorkspaceID, taskID, activity.TypeTaskCreated, summary, tick, nil)

	return out, nil
}

// Get fetches a task by ID.
func (s *Service) Get(ctx context.Context, userID, id string) (*Task, error) {
	t, err := s.tasks.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

// List returns the tasks of a workspace in creation order.
func (s *Service) List(ctx context.Context, userID string, opts ListOptions) ([]Task, error) {
	if strings.TrimSpace(opts.WorkspaceID) == "" {
		return nil, ErrInvalidInput
	}
	tasks, err := s.tasks.List(ctx, userID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// Search matches query words as prefixes against task titles and
// categories. A blank query lists tasks instead.
func (s *Service) Search(ctx context.Context, userID, workspaceID, query string, opts SearchOptions) ([]SearchResult, error) {
	if strings.TrimSpace(workspaceID) == "" {
		return nil, ErrInvalidInput
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultSearchLimit
	}

	if strings.TrimSpace(query) == "" {
		tasks, err := s.List(ctx, userID, ListOptions{
			WorkspaceID:   workspaceID,
			ShowCompleted: opts.ShowCompleted,
			Limit:         opts.Limit,
		})
		if err != nil {
			return nil, err
		}
		results := make([]SearchResult, len(tasks))
		for i, t := range tasks {
			results[i] = SearchResult{Task: t}
		}
		return results, nil
	}

	if s.search == nil {
		return nil, fmt.Errorf("search repository not configured")
	}
	results, err := s.search.Search(ctx, userID, workspaceID, query, opts)
	if err != nil {
		return nil, fmt.Errorf("searching tasks: %w", err)
	}
	return results, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (*Task, error) {
	t, err := s.Get(ctx, userID, req.ID)
	if err != nil {
		return nil, err
	}

	changed := make(map[string]any)
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrInvalidInput
		}
		t.Title = title
		changed["title"] = title
	}
	if req.Status != nil {
		if err := ValidateStatus(*req.Status); err != nil {
			return nil, err
		}
		t.Status = *req.Status
		changed["status"] = t.Status
	}
	if req.Category != nil {
		t.Category = normalizeCategory(req.Category)
		changed["category"] = t.Category
	}
	if len(changed) == 0 {
		return t, nil
	}

	tick, err := s.tick(ctx, userID, t.WorkspaceID)
	if err != nil {
		return nil, err
	}
	t.Tick = tick
	t.UpdatedAt = time.Now()

	if err := s.tasks.Update(ctx, userID, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("updating task: %w", err)
	}

	s.logActivity(ctx, userID, t.WorkspaceID, &t.ID, activity.TypeTaskUpdated,
		fmt.Sprintf("updated task %q", t.Title), tick, changed)

	return t, nil
}

// SetCategory sets or clears the category of several tasks in a workspace.
// Tasks of other workspaces or users are skipped. It returns the number of
// tasks changed.
func (s *Service) SetCategory(ctx context.Context, userID, workspaceID string, ids []string, category *string) (int64, error) {
	if strings.TrimSpace(workspaceID) == "" || len(ids) == 0 {
		return 0, ErrInvalidInput
	}

	tick, err := s.tick(ctx, userID, workspaceID)
	if err != nil {
		return 0, err
	}
	category = normalizeCategory(category)
	n, err := s.tasks.SetCategory(ctx, userID, workspaceID, ids, category, tick)
	if err != nil {
		return 0, fmt.Errorf("setting task category: %w", err)
	}

	s.logActivity(ctx, userID, workspaceID, nil, activity.TypeTaskUpdated,
		fmt.Sprintf("recategorized %d tasks", n), tick, map[string]any{"ids": ids, "category": category})

	return n, nil
}

// Delete removes a task. Blocks linked to it lose the link.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	t, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	n, err := s.tasks.Delete(ctx, userID, t.WorkspaceID, []string{id})
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if n == 0 {
		return ErrTaskNotFound
	}

	tick, err := s.tick(ctx, userID, t.WorkspaceID)
	if err != nil {
		return err
	}
	s.logActivity(ctx, userID, t.WorkspaceID, &t.ID, activity.TypeTaskDeleted,
		fmt.Sprintf("deleted task %q", t.Title), tick, nil)

	return nil
}

// BulkDelete removes several tasks of a workspace. Tasks of other workspaces
// or users are skipped. It returns the number of tasks removed.
func (s *Service) BulkDelete(ctx context.Context, userID, workspaceID string, ids []string) (int64, error) {
	if strings.TrimSpace(workspaceID) == "" || len(ids) == 0 {
		return 0, ErrInvalidInput
	}
	n, err := s.tasks.Delete(ctx, userID, workspaceID, ids)
	if err != nil {
		return 0, fmt.Errorf("deleting tasks: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	tick, err := s.tick(ctx, userID, workspaceID)
	if err != nil {
		return 0, err
	}
	s.logActivity(ctx, userID, workspaceID, nil, activity.TypeTaskDeleted,
		fmt.Sprintf("deleted %d tasks", n), tick, map[string]any{"ids": ids})

	return n, nil
}

// Categories lists the distinct categories in use in a workspace.
func (s *Service) Categories(ctx context.Context, userID, workspaceID string) ([]string, error) {
	if strings.TrimSpace(workspaceID) == "" {
		return nil, ErrInvalidInput
	}
	categories, err := s.tasks.Categories(ctx, userID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
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

func (s *Service) logActivity(ctx context.Context, userID, workspaceID string, taskID *string, kind activity.ActivityType, summary string, tick int64, details map[string]any) {
	if s.logger != nil {
		s.logger.Debug("task write", "type", kind, "workspace_id", workspaceID, "tick", tick)
	}
	if s.activities == nil {
		return
	}

	entry := &activity.ActivityEntry{
		WorkspaceID:  workspaceID,
		TaskID:       taskID,
		ActivityType: kind,
		Summary:      summary,
		CreatedAt:    time.Now(),
		Tick:         tick,
	}
	if len(details) > 0 {
		if data, err := json.Marshal(details); err == nil {
			entry.Details = string(data)
		}
	}
	_ = s.activities.Log(ctx, userID, entry)
}
