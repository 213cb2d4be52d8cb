package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/weekgrid/internal/domain/activity"
	"github.com/rpggio/weekgrid/internal/repository"
)

// DefaultName is the name given to a workspace created on demand.
const DefaultName = "Default Workspace"

// Service handles workspace operations.
type Service struct {
	repo       Repository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new workspace service. activities may be nil.
func NewService(repo Repository, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, activities: activities, logger: logger}
}

// CreateRequest defines workspace creation inputs.
type CreateRequest struct {
	ID          string
	Name        string
	Description string
}

// Create creates a new workspace.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Workspace, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	ws := &Workspace{
		ID:          id,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Tick:        0,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, userID, ws); err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	if s.activities != nil {
		_ = s.activities.Log(ctx, userID, &activity.ActivityEntry{
			WorkspaceID:  ws.ID,
			ActivityType: activity.TypeWorkspaceCreated,
			Summary:      fmt.Sprintf("created workspace %q", ws.Name),
			CreatedAt:    ws.CreatedAt,
		})
	}
	if s.logger != nil {
		s.logger.Debug("workspace created", "workspace_id", ws.ID, "user_id", userID)
	}

	return ws, nil
}

// Get fetches a workspace by ID.
func (s *Service) Get(ctx context.Context, userID, id string) (*Workspace, error) {
	ws, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("getting workspace: %w", err)
	}
	return ws, nil
}

// GetDefault returns the default workspace, creating one if missing.
func (s *Service) GetDefault(ctx context.Context, userID string) (*Workspace, error) {
	ws, err := s.repo.GetDefault(ctx, userID)
	if err == nil {
		return ws, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("getting default workspace: %w", err)
	}

	return s.Create(ctx, userID, CreateRequest{
		Name:        DefaultName,
		Description: "",
	})
}

// Resolve returns the named workspace, or the default one when id is empty.
func (s *Service) Resolve(ctx context.Context, userID, id string) (*Workspace, error) {
	if strings.TrimSpace(id) == "" {
		return s.GetDefault(ctx, userID)
	}
	return s.Get(ctx, userID, id)
}

// List returns workspace summaries.
func (s *Service) List(ctx context.Context, userID string) ([]WorkspaceSummary, error) {
	return s.repo.List(ctx, userID)
}
