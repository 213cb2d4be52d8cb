// Package app opens the database and wires repositories into services for
// the weekgrid commands.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/weekgrid/internal/domain/activity"
	"github.com/rpggio/weekgrid/internal/domain/task"
	"github.com/rpggio/weekgrid/internal/domain/timeblock"
	"github.com/rpggio/weekgrid/internal/domain/workspace"
	"github.com/rpggio/weekgrid/internal/sqlite"
)

// App holds the opened database and the services built on it.
type App struct {
	DB         *sqlite.DB
	APIKeys    *sqlite.APIKeyRepository
	Workspaces *workspace.Service
	TimeBlocks *timeblock.Service
	Tasks      *task.Service
	Activity   *activity.Service
}

// Open opens the database at dbPath, applies the schema and wires services.
func Open(dbPath string, logger *slog.Logger) (*App, error) {
	if err := ensureDBDir(dbPath); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	workspaceRepo := sqlite.NewWorkspaceRepository(db)
	blockRepo := sqlite.NewTimeBlockRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	return &App{
		DB:         db,
		APIKeys:    sqlite.NewAPIKeyRepository(db),
		Workspaces: workspace.NewService(workspaceRepo, activityRepo, logger),
		TimeBlocks: timeblock.NewService(blockRepo, workspaceRepo, taskRepo, activityRepo, logger),
		Tasks:      task.NewService(taskRepo, workspaceRepo, activityRepo, sqlite.NewSearchRepository(db), logger),
		Activity:   activity.NewService(activityRepo, logger),
	}, nil
}

// Close closes the database.
func (a *App) Close() error {
	return a.DB.Close()
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
