package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `weekgrid stores a weekly calendar as Workspaces containing Time Blocks and Tasks.

Core concepts:
- Workspace: a container with a monotonic tick. Every block write advances it.
- Time block: a titled, colored interval with start_time < end_time. Times are RFC 3339.
- Task: a titled unit of work, pending or completed, with an optional category. Blocks can link to one task.
- Default workspace: omit workspace_id and the user's default workspace is used (created on first use).

Typical workflow:
1) Orient: list_time_blocks with from/to set to the week you care about.
2) Plan: create_time_block, or duplicate_time_block to repeat a block on another day.
3) Adjust: update_time_block with only the fields that change (e.g. end_time to extend).
4) Link work: create_task or search_tasks, then assign_task with the task id; send task_id null to clear it.
5) Review: get_recent_activity shows what changed and at which tick.
6) Share: export_ics returns an iCalendar document for calendar apps.

Docs:
- weekgrid://docs/index
- weekgrid://docs/time-blocks
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "weekgrid://docs/index",
		Name:        "docs_index",
		Title:       "weekgrid docs index",
		Description: "Entry point: what the server stores and which tools to use.",
		Content: `# weekgrid: Docs Index

## Tools by task

- Look at a week: list_time_blocks (from, to)
- Add: create_time_block
- Repeat: duplicate_time_block
- Change: update_time_block, assign_task
- Remove: delete_time_block
- Tasks: create_task, create_tasks, list_tasks, search_tasks, get_task, update_task
- Task housekeeping: set_task_category, list_task_categories, delete_task, delete_tasks
- History: get_recent_activity
- Export: export_ics

## Errors

Tool errors come back as JSON with code, message and recovery_hint.

- TIME_BLOCK_NOT_FOUND, WORKSPACE_NOT_FOUND, TASK_NOT_FOUND: list first to find a valid ID.
- INVALID_STATUS: task status must be pending or completed.
- INVALID_RANGE: end_time must be strictly after start_time.
- INVALID_INPUT: a required field is missing or malformed.
- ALREADY_EXISTS: a workspace with that ID exists.
`,
	},
	{
		URI:         "weekgrid://docs/time-blocks",
		Name:        "docs_time_blocks",
		Title:       "Time block rules",
		Description: "Field semantics and edge cases for time blocks.",
		Content: `# Time blocks

- start_time and end_time are stored in UTC. Send any offset; it is normalized.
- day_of_week is derived from start_time in the offset it was sent with (0 = Sunday), so a Tuesday 08:00 +10:00 block stays on Tuesday.
- task_id must name an existing task in the same workspace. Deleting the task clears the link.
- Range listing returns blocks overlapping [from, to), so a block spanning the boundary appears in both weeks.
- Colors are hex strings like #3366cc. When omitted on create a random palette color is used.
- update_time_block leaves omitted fields untouched. Changing only end_time is a resize.
- duplicate_time_block copies title, color and task_id. The source block is unchanged.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
