// Package testserver runs the full HTTP stack against an in-memory database
// for end-to-end tests.
package testserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/weekgrid/internal/app"
	"github.com/rpggio/weekgrid/internal/mcp"
	"github.com/rpggio/weekgrid/internal/transport"
)

type TestServer struct {
	Server *httptest.Server
	App    *app.App
	Token  string
	UserID string
}

// New starts an authenticated server and registers token for userID.
func New(t *testing.T, token, userID string) *TestServer {
	t.Helper()

	a, err := app.Open(":memory:", nil)
	require.NoError(t, err)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Workspaces: a.Workspaces,
			TimeBlocks: a.TimeBlocks,
			Tasks:      a.Tasks,
			Activity:   a.Activity,
		},
		Resolver:      a.APIKeys,
		AuthEnabled:   true,
		TransportMode: "http",
	})
	handler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)
	server := httptest.NewServer(transport.NewServer(handler, transport.AuthMiddleware(a.APIKeys), nil))

	ts := &TestServer{
		Server: server,
		App:    a,
		Token:  token,
		UserID: userID,
	}
	require.NoError(t, ts.AddAPIKey(token, userID))

	t.Cleanup(func() {
		server.Close()
		_ = a.Close()
	})

	return ts
}

func (ts *TestServer) AddAPIKey(token, userID string) error {
	return ts.App.APIKeys.Add(context.Background(), userID, token, "test")
}

// Connect opens an MCP client session that authenticates with token.
func (ts *TestServer) Connect(t *testing.T, token string) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "testserver-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearer{token: token}},
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

// Call invokes a tool and decodes its JSON text result into out. It returns
// whether the tool reported an error.
func Call(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any, out any) bool {
	t.Helper()

	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(text.Text), out))
	}
	return res.IsError
}

type bearer struct {
	token string
}

func (b bearer) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return http.DefaultTransport.RoundTrip(req)
}
