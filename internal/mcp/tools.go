package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition describes an MCP tool.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func timeProp(description string) map[string]any {
	return map[string]any{"type": "string", "format": "date-time", "description": description}
}

func intProp(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

func boolProp(description string) map[string]any {
	return map[string]any{"type": "boolean", "description": description}
}

func stringListProp(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": description,
	}
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	workspaceID := stringProp("Workspace ID (omit to use the default workspace)")

	return []ToolDefinition{
		// Workspaces
		{
			Name:        "create_workspace",
			Description: "Create a new workspace to hold time blocks",
			InputSchema: objectSchema(map[string]any{
				"id":          stringProp("Unique workspace identifier (optional, will be generated if not provided)"),
				"name":        stringProp("Workspace display name"),
				"description": stringProp("Workspace description"),
			}, "name"),
		},
		{
			Name:        "list_workspaces",
			Description: "List all workspaces for the current user with block counts",
			InputSchema: objectSchema(map[string]any{}),
		},
		{
			Name:        "get_workspace",
			Description: "Get a workspace, or the default workspace when no ID is given",
			InputSchema: objectSchema(map[string]any{
				"id": stringProp("Workspace ID (omit to get the default workspace)"),
			}),
		},

		// Time blocks
		{
			Name:        "list_time_blocks",
			Description: "List time blocks in a workspace, optionally limited to those overlapping [from, to)",
			InputSchema: objectSchema(map[string]any{
				"workspace_id": workspaceID,
				"from":         timeProp("Range start, RFC 3339 (requires to)"),
				"to":           timeProp("Range end, RFC 3339 (requires from)"),
			}),
		},
		{
			Name:        "get_time_block",
			Description: "Get a single time block",
			InputSchema: objectSchema(map[string]any{
				"id": stringProp("Time block ID"),
			}, "id"),
		},
		{
			Name:        "create_time_block",
			Description: "Create a time block. A color is picked when none is given",
			InputSchema: objectSchema(map[string]any{
				"workspace_id": workspaceID,
				"title":        stringProp("Block title"),
				"start_time":   timeProp("Block start, RFC 3339"),
				"end_time":     timeProp("Block end, RFC 3339, after start_time"),
				"color":        stringProp("Hex color such as #3366cc"),
				"task_id":      stringProp("Optional task reference"),
			}, "title", "start_time", "end_time"),
		},
		{
			Name:        "update_time_block",
			Description: "Change any of a block's start, end, title or color. Omitted fields are left as they are",
			InputSchema: objectSchema(map[string]any{
				"id":         stringProp("Time block ID"),
				"start_time": timeProp("New start, RFC 3339"),
				"end_time":   timeProp("New end, RFC 3339"),
				"title":      stringProp("New title"),
				"color":      stringProp("New hex color"),
			}, "id"),
		},
		{
			Name:        "duplicate_time_block",
			Description: "Copy a block's title, color and task to a new range",
			InputSchema: objectSchema(map[string]any{
				"id":         stringProp("Source time block ID"),
				"start_time": timeProp("Start of the copy, RFC 3339"),
				"end_time":   timeProp("End of the copy, RFC 3339"),
			}, "id", "start_time", "end_time"),
		},
		{
			Name:        "delete_time_block",
			Description: "Delete a time block",
			InputSchema: objectSchema(map[string]any{
				"id": stringProp("Time block ID"),
			}, "id"),
		},
		{
			Name:        "assign_task",
			Description: "Attach an existing task from the same workspace to a block, or detach it by sending a null task_id",
			InputSchema: objectSchema(map[string]any{
				"id":      stringProp("Time block ID"),
				"task_id": stringProp("Task ID; send null or omit to clear"),
			}, "id"),
		},

		// Tasks
		{
			Name:        "create_task",
			Description: "Create a pending task in a workspace",
			InputSchema: objectSchema(map[string]any{
				"workspace_id": workspaceID,
				"title":        stringProp("Task title"),
				"category":     stringProp("Optional category"),
			}, "title"),
		},
		{
			Name:        "create_tasks",
			Description: "Create several pending tasks at once. Either all are created or none",
			InputSchema: objectSchema(map[string]any{
				"workspace_id": workspaceID,
				"titles":       stringListProp("Task titles"),
				"category":     stringProp("Category applied to every task"),
			}, "titles"),
		},
		{
			Name:        "list_tasks",
			Description: "List tasks in a workspace, oldest first. Completed tasks are hidden unless show_completed is set",
			InputSchema: objectSchema(map[string]any{
				"workspace_id":   workspaceID,
				"show_completed": boolProp("Include completed tasks"),
				"category":       stringProp("Only tasks in this category"),
				"limit":          intProp("Maximum tasks to return"),
				"offset":         intProp("Tasks to skip"),
			}),
		},
		{
			Name:        "search_tasks",
			Description: "Full-text search over task titles and categories. Words match as prefixes",
			InputSchema: objectSchema(map[string]any{
				"workspace_id":   workspaceID,
				"query":          stringProp("Search words"),
				"show_completed": boolProp("Include completed tasks"),
				"limit":          intProp("Maximum results (default 20)"),
			}, "query"),
		},
		{
			Name:        "get_task",
			Description: "Get a single task",
			InputSchema: objectSchema(map[string]any{
				"id": stringProp("Task ID"),
			}, "id"),
		},
		{
			Name:        "update_task",
			Description: "Change a task's title, status or category. An empty category clears it",
			InputSchema: objectSchema(map[string]any{
				"id":       stringProp("Task ID"),
				"title":    stringProp("New title"),
				"status":   map[string]any{"type": "string", "enum": []string{"pending", "completed"}},
				"category": stringProp("New category"),
			}, "id"),
		},
		{
			Name:        "set_task_category",
			Description: "Set the category on several tasks in one workspace. An empty category clears it",
			InputSchema: objectSchema(map[string]any{
				"workspace_id": workspaceID,
				"ids":          stringListProp("Task IDs"),
				"category":     stringProp("Category to apply"),
			}, "ids", "category"),
		},
		{
			Name:        "delete_task",
			Description: "Delete a task. Blocks linked to it keep their time and lose the link",
			InputSchema: objectSchema(map[string]any{
				"id": stringProp("Task ID"),
			}, "id"),
		},
		{
			Name:        "delete_tasks",
			Description: "Delete several tasks in one workspace. Unknown IDs are skipped",
			InputSchema: objectSchema(map[string]any{
				"workspace_id": workspaceID,
				"ids":          stringListProp("Task IDs"),
			}, "ids"),
		},
		{
			Name:        "list_task_categories",
			Description: "List the distinct task categories in a workspace",
			InputSchema: objectSchema(map[string]any{
				"workspace_id": workspaceID,
			}),
		},

		// Export and history
		{
			Name:        "export_ics",
			Description: "Export a workspace's blocks as an iCalendar document",
			InputSchema: objectSchema(map[string]any{
				"workspace_id": workspaceID,
				"from":         timeProp("Range start, RFC 3339 (requires to)"),
				"to":           timeProp("Range end, RFC 3339 (requires from)"),
			}),
		},
		{
			Name:        "get_recent_activity",
			Description: "Get recent changes in a workspace, newest first",
			InputSchema: objectSchema(map[string]any{
				"workspace_id": workspaceID,
				"block_id":     stringProp("Only activity for this block"),
				"task_id":      stringProp("Only activity for this task"),
				"type":         stringProp("Only this activity type, e.g. time_block_updated"),
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum entries to return (default 50)",
				},
			}),
		},
	}
}

// registerTools exposes every catalog entry on the server, routing calls
// through the handler.
func registerTools(server *sdkmcp.Server, handler *Handler, logger *slog.Logger) {
	for _, def := range buildToolCatalog() {
		name := def.Name
		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			result, err := handler.Handle(ctx, getUserID(ctx), name, args)
			if err != nil {
				if logger != nil {
					logger.Debug("tool call failed", "tool", name, "error", err)
				}
				return errorResult(err), nil
			}
			return jsonResult(result)
		})
	}
}

func jsonResult(v any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

func errorResult(err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	if apiErr == nil {
		apiErr = &APIError{Code: "INTERNAL", Message: err.Error()}
	}
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		IsError: true,
	}
}
