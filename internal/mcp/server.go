package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/weekgrid/internal/domain/activity"
	"github.com/rpggio/weekgrid/internal/domain/task"
	"github.com/rpggio/weekgrid/internal/domain/timeblock"
	"github.com/rpggio/weekgrid/internal/domain/workspace"
)

// WorkspaceService defines workspace operations needed by MCP.
type WorkspaceService interface {
	Create(ctx context.Context, userID string, req workspace.CreateRequest) (*workspace.Workspace, error)
	List(ctx context.Context, userID string) ([]workspace.WorkspaceSummary, error)
	Get(ctx context.Context, userID, id string) (*workspace.Workspace, error)
	Resolve(ctx context.Context, userID, id string) (*workspace.Workspace, error)
}

// TimeBlockService defines time block operations needed by MCP.
type TimeBlockService interface {
	List(ctx context.Context, userID, workspaceID string) ([]timeblock.TimeBlock, error)
	ListRange(ctx context.Context, userID, workspaceID string, from, to time.Time) ([]timeblock.TimeBlock, error)
	Get(ctx context.Context, userID, id string) (*timeblock.TimeBlock, error)
	Create(ctx context.Context, userID string, req timeblock.CreateRequest) (*timeblock.TimeBlock, error)
	Update(ctx context.Context, userID string, req timeblock.UpdateRequest) (*timeblock.TimeBlock, error)
	Duplicate(ctx context.Context, userID string, req timeblock.DuplicateRequest) (*timeblock.TimeBlock, error)
	Delete(ctx context.Context, userID, id string) error
	AssignTask(ctx context.Context, userID, id string, taskID *string) (*timeblock.TimeBlock, error)
}

// TaskService defines task operations needed by MCP.
type TaskService interface {
	Create(ctx context.Context, userID string, req task.CreateRequest) (*task.Task, error)
	BulkCreate(ctx context.Context, userID string, req task.BulkCreateRequest) ([]task.Task, error)
	Get(ctx context.Context, userID, id string) (*task.Task, error)
	List(ctx context.Context, userID string, opts task.ListOptions) ([]task.Task, error)
	Search(ctx context.Context, userID, workspaceID, query string, opts task.SearchOptions) ([]task.SearchResult, error)
	Update(ctx context.Context, userID string, req task.UpdateRequest) (*task.Task, error)
	SetCategory(ctx context.Context, userID, workspaceID string, ids []string, category *string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
	BulkDelete(ctx context.Context, userID, workspaceID string, ids []string) (int64, error)
	Categories(ctx context.Context, userID, workspaceID string) ([]string, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, userID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Workspaces WorkspaceService
	TimeBlocks TimeBlockService
	Tasks      TaskService
	Activity   ActivityService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      UserResolver
	AuthEnabled   bool
	TransportMode string // "stdio" or "http"
	DefaultUser   string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "weekgrid",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	defaultUser := cfg.DefaultUser
	if defaultUser == "" {
		defaultUser = "local"
	}

	// Stdio is always single-user.
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(noAuthMiddleware(defaultUser))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	handler := NewHandler(cfg.Services.Workspaces, cfg.Services.TimeBlocks, cfg.Services.Tasks, cfg.Services.Activity)
	registerTools(server, handler, cfg.Logger)

	return server
}
