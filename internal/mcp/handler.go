package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpggio/weekgrid/internal/domain/activity"
	"github.com/rpggio/weekgrid/internal/domain/task"
	"github.com/rpggio/weekgrid/internal/domain/timeblock"
	"github.com/rpggio/weekgrid/internal/domain/workspace"
	"github.com/rpggio/weekgrid/internal/ics"
)

// Handler dispatches MCP commands.
type Handler struct {
	workspaces WorkspaceService
	blocks     TimeBlockService
	tasks      TaskService
	activity   ActivityService
}

// NewHandler creates a new MCP handler.
func NewHandler(workspaces WorkspaceService, blocks TimeBlockService, tasks TaskService, activitySvc ActivityService) *Handler {
	return &Handler{
		workspaces: workspaces,
		blocks:     blocks,
		tasks:      tasks,
		activity:   activitySvc,
	}
}

// Handle dispatches MCP requests to domain services.
func (h *Handler) Handle(ctx context.Context, userID, method string, params json.RawMessage) (any, error) {
	switch method {
	case "create_workspace":
		var req CreateWorkspaceParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ws, err := h.workspaces.Create(ctx, userID, workspace.CreateRequest{
			ID:          req.ID,
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return ws, nil

	case "list_workspaces":
		list, err := h.workspaces.List(ctx, userID)
		if err != nil {
			return nil, mapError(err)
		}
		if list == nil {
			list = []workspace.WorkspaceSummary{}
		}
		return list, nil

	case "get_workspace":
		var req GetWorkspaceParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ws, err := h.workspaces.Resolve(ctx, userID, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return ws, nil

	case "list_time_blocks":
		var req ListTimeBlocksParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ws, err := h.workspaces.Resolve(ctx, userID, req.WorkspaceID)
		if err != nil {
			return nil, mapError(err)
		}
		blocks, err := h.listBlocks(ctx, userID, ws.ID, req.From, req.To)
		if err != nil {
			return nil, err
		}
		return ListTimeBlocksResponse{WorkspaceID: ws.ID, Tick: ws.Tick, Blocks: blocks}, nil

	case "get_time_block":
		var req GetTimeBlockParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		block, err := h.blocks.Get(ctx, userID, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return block, nil

	case "create_time_block":
		var req CreateTimeBlockParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ws, err := h.workspaces.Resolve(ctx, userID, req.WorkspaceID)
		if err != nil {
			return nil, mapError(err)
		}
		block, err := h.blocks.Create(ctx, userID, timeblock.CreateRequest{
			WorkspaceID: ws.ID,
			Title:       req.Title,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Color:       req.Color,
			TaskID:      req.TaskID,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return block, nil

	case "update_time_block":
		var req UpdateTimeBlockParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		block, err := h.blocks.Update(ctx, userID, timeblock.UpdateRequest{
			ID:        req.ID,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Title:     req.Title,
			Color:     req.Color,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return block, nil

	case "duplicate_time_block":
		var req DuplicateTimeBlockParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		block, err := h.blocks.Duplicate(ctx, userID, timeblock.DuplicateRequest{
			ID:        req.ID,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return block, nil

	case "delete_time_block":
		var req DeleteTimeBlockParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.blocks.Delete(ctx, userID, req.ID); err != nil {
			return nil, mapError(err)
		}
		return DeleteTimeBlockResponse{ID: req.ID, Status: "deleted"}, nil

	case "assign_task":
		var req AssignTaskParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		block, err := h.blocks.AssignTask(ctx, userID, req.ID, req.TaskID)
		if err != nil {
			return nil, mapError(err)
		}
		return block, nil

	case "create_task":
		var req CreateTaskParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ws, err := h.workspaces.Resolve(ctx, userID, req.WorkspaceID)
		if err != nil {
			return nil, mapError(err)
		}
		t, err := h.tasks.Create(ctx, userID, task.CreateRequest{
			WorkspaceID: ws.ID,
			Title:       req.Title,
			Category:    req.Category,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return t, nil

	case "create_tasks":
		var req CreateTasksParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ws, err := h.workspaces.Resolve(ctx, userID, req.WorkspaceID)
		if err != nil {
			return nil, mapError(err)
		}
		created, err := h.tasks.BulkCreate(ctx, userID, task.BulkCreateRequest{
			WorkspaceID: ws.ID,
			Titles:      req.Titles,
			Category:    req.Category,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return ListTasksResponse{WorkspaceID: ws.ID, Tasks: created}, nil

	case "list_tasks":
		var req ListTasksParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ws, err := h.workspaces.Resolve(ctx, userID, req.WorkspaceID)
		if err != nil {
			return nil, mapError(err)
		}
		tasks, err := h.tasks.List(ctx, userID, task.ListOptions{
			WorkspaceID:   ws.ID,
			ShowCompleted: req.ShowCompleted,
			Category:      req.Category,
			Limit:         req.Limit,
			Offset:        req.Offset,
		})
		if err != nil {
			return nil, mapError(err)
		}
		if tasks == nil {
			tasks = []task.Task{}
		}
		return ListTasksResponse{WorkspaceID: ws.ID, Tasks: tasks}, nil

	case "search_tasks":
		var req SearchTasksParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ws, err := h.workspaces.Resolve(ctx, userID, req.WorkspaceID)
		if err != nil {
			return nil, mapError(err)
		}
		results, err := h.tasks.Search(ctx, userID, ws.ID, req.Query, task.SearchOptions{
			ShowCompleted: req.ShowCompleted,
			Limit:         req.Limit,
		})
		if err != nil {
			return nil, mapError(err)
		}
		if results == nil {
			results = []task.SearchResult{}
		}
		return SearchTasksResponse{WorkspaceID: ws.ID, Results: results}, nil

	case "get_task":
		var req TaskIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		t, err := h.tasks.Get(ctx, userID, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return t, nil

	case "update_task":
		var req UpdateTaskParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		t, err := h.tasks.Update(ctx, userID, task.UpdateRequest{
			ID:       req.ID,
			Title:    req.Title,
			Status:   req.Status,
			Category: req.Category,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return t, nil

	case "set_task_category":
		var req SetTaskCategoryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ws, err := h.workspaces.Resolve(ctx, userID, req.WorkspaceID)
		if err != nil {
			return nil, mapError(err)
		}
		n, err := h.tasks.SetCategory(ctx, userID, ws.ID, req.IDs, &req.Category)
		if err != nil {
			return nil, mapError(err)
		}
		return BulkTaskResponse{WorkspaceID: ws.ID, Affected: n}, nil

	case "delete_task":
		var req TaskIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.tasks.Delete(ctx, userID, req.ID); err != nil {
			return nil, mapError(err)
		}
		return DeleteTimeBlockResponse{ID: req.ID, Status: "deleted"}, nil

	case "delete_tasks":
		var req DeleteTasksParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ws, err := h.workspaces.Resolve(ctx, userID, req.WorkspaceID)
		if err != nil {
			return nil, mapError(err)
		}
		n, err := h.tasks.BulkDelete(ctx, userID, ws.ID, req.IDs)
		if err != nil {
			return nil, mapError(err)
		}
		return BulkTaskResponse{WorkspaceID: ws.ID, Affected: n}, nil

	case "list_task_categories":
		var req ListTaskCategoriesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ws, err := h.workspaces.Resolve(ctx, userID, req.WorkspaceID)
		if err != nil {
			return nil, mapError(err)
		}
		categories, err := h.tasks.Categories(ctx, userID, ws.ID)
		if err != nil {
			return nil, mapError(err)
		}
		if categories == nil {
			categories = []string{}
		}
		return categories, nil

	case "export_ics":
		var req ExportICSParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ws, err := h.workspaces.Resolve(ctx, userID, req.WorkspaceID)
		if err != nil {
			return nil, mapError(err)
		}
		blocks, err := h.listBlocks(ctx, userID, ws.ID, req.From, req.To)
		if err != nil {
			return nil, err
		}
		return ExportICSResponse{
			WorkspaceID: ws.ID,
			EventCount:  len(blocks),
			Calendar:    ics.Export(blocks, ics.Options{Name: ws.Name}),
		}, nil

	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		ws, err := h.workspaces.Resolve(ctx, userID, req.WorkspaceID)
		if err != nil {
			return nil, mapError(err)
		}
		entries, err := h.activity.GetRecentActivity(ctx, userID, activity.ListActivityOptions{
			WorkspaceID:  ws.ID,
			BlockID:      req.BlockID,
			TaskID:       req.TaskID,
			ActivityType: req.Type,
			Limit:        req.Limit,
		})
		if err != nil {
			return nil, mapError(err)
		}
		resp := make([]ActivityEntryResponse, 0, len(entries))
		for _, entry := range entries {
			resp = append(resp, ActivityEntryResponse{
				Timestamp: entry.CreatedAt,
				Type:      entry.ActivityType,
				BlockID:   entry.BlockID,
				TaskID:    entry.TaskID,
				Summary:   entry.Summary,
				Details:   entry.Details,
				Tick:      entry.Tick,
			})
		}
		return resp, nil

	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func (h *Handler) listBlocks(ctx context.Context, userID, workspaceID string, from, to *time.Time) ([]timeblock.TimeBlock, error) {
	var (
		blocks []timeblock.TimeBlock
		err    error
	)
	switch {
	case from != nil && to != nil:
		blocks, err = h.blocks.ListRange(ctx, userID, workspaceID, *from, *to)
	case from == nil && to == nil:
		blocks, err = h.blocks.List(ctx, userID, workspaceID)
	default:
		return nil, invalidInput("from and to must be given together")
	}
	if err != nil {
		return nil, mapError(err)
	}
	if blocks == nil {
		blocks = []timeblock.TimeBlock{}
	}
	return blocks, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return invalidInput("malformed arguments: %v", err)
	}
	return nil
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
