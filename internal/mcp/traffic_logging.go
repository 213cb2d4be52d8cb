package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			rawParams := safeParams(req)
			attrs := []any{"direction", direction, "method", method, "session_id", safeSessionID(req), "user_id", getUserID(ctx)}
			if tool, workspaceID := toolCallFields(rawParams); tool != "" {
				attrs = append(attrs, "tool", tool, "workspace_id", workspaceID)
			}
			logger.Debug("mcp traffic", append(attrs, "stage", "request", "params", formatPayload(rawParams))...)

			result, err := next(ctx, method, req)
			if !strings.HasPrefix(method, "notifications/") {
				attrs = append(attrs, "stage", "response", "result", formatPayload(result))
				if err != nil {
					attrs = append(attrs, "error", err)
				}
				logger.Debug("mcp traffic", attrs...)
			}

			return result, err
		}
	}
}

// toolCallFields pulls the tool name and workspace out of tools/call params.
// workspace_id is empty when the call relies on the default workspace.
func toolCallFields(params any) (tool, workspaceID string) {
	var args json.RawMessage
	switch p := params.(type) {
	case *sdkmcp.CallToolParamsRaw:
		if p == nil {
			return "", ""
		}
		tool, args = p.Name, p.Arguments
	case *sdkmcp.CallToolParams:
		if p == nil {
			return "", ""
		}
		tool = p.Name
		args, _ = json.Marshal(p.Arguments)
	default:
		return "", ""
	}

	var scope struct {
		WorkspaceID string `json:"workspace_id"`
	}
	if len(args) > 0 {
		_ = json.Unmarshal(args, &scope)
	}
	return tool, scope.WorkspaceID
}

func safeSessionID(req sdkmcp.Request) string {
	if req == nil {
		return ""
	}
	defer func() { recover() }()
	session := req.GetSession()
	if session == nil {
		return ""
	}
	defer func() { recover() }()
	return session.ID()
}

func safeParams(req sdkmcp.Request) any {
	if req == nil {
		return nil
	}
	defer func() { recover() }()
	return req.GetParams()
}

func formatPayload(payload any) string {
	if payload == nil {
		return "<nil>"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%T", payload)
	}
	return string(data)
}
