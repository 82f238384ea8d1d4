package functional_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// stdioSession wraps an MCP client session talking to the real binary
// over stdio
type stdioSession struct {
	session *sdkmcp.ClientSession
	cancel  context.CancelFunc
}

func newStdioSession(t *testing.T) *stdioSession {
	t.Helper()

	binaryPath := "./bin/messbook"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/messbook"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("Server binary not found. Run 'make build' first.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(os.Environ(),
		"MESSBOOK_TRANSPORT=stdio",
		"MESSBOOK_DB_PATH=:memory:",
	)

	transport := &sdkmcp.CommandTransport{Command: cmd}

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		cancel()
		t.Fatalf("Failed to connect: %v", err)
	}

	t.Cleanup(func() {
		session.Close()
		cancel()
	})

	return &stdioSession{session: session, cancel: cancel}
}

func (s *stdioSession) callTool(t *testing.T, name string, args map[string]any) json.RawMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", name)
	require.False(t, result.IsError, "Tool %s returned error", name)
	require.NotEmpty(t, result.Content, "Tool %s returned no content", name)

	for _, content := range result.Content {
		if textContent, ok := content.(*sdkmcp.TextContent); ok {
			return json.RawMessage(textContent.Text)
		}
	}
	t.Fatalf("Tool %s returned no text content", name)
	return nil
}

func TestStdioFunctional_LedgerWorkflow(t *testing.T) {
	s := newStdioSession(t)

	memberResp := s.callTool(t, "add_member", map[string]any{"name": "rahim", "role": "admin"})
	var m struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(memberResp, &m))
	require.NotEmpty(t, m.ID)

	_ = s.callTool(t, "add_deposit", map[string]any{"member_id": m.ID, "amount": 500})
	_ = s.callTool(t, "add_expense", map[string]any{
		"amount": 100, "description": "groceries", "type": "meal", "paid_by": m.ID,
	})
	_ = s.callTool(t, "log_meal", map[string]any{"member_id": m.ID, "count": 2, "date": "2025-03-01"})

	statsResp := s.callTool(t, "get_stats", nil)
	var stats struct {
		CurrentMealRate decimal.Decimal `json:"current_meal_rate"`
		RemainingCash   decimal.Decimal `json:"remaining_cash"`
	}
	require.NoError(t, json.Unmarshal(statsResp, &stats))
	require.True(t, decimal.NewFromInt(50).Equal(stats.CurrentMealRate), "got %s", stats.CurrentMealRate)
	require.True(t, decimal.NewFromInt(400).Equal(stats.RemainingCash), "got %s", stats.RemainingCash)

	closeResp := s.callTool(t, "close_cycle", nil)
	require.NotEmpty(t, closeResp)

	archivesResp := s.callTool(t, "list_archives", nil)
	require.Contains(t, string(archivesResp), "archives")
}

func TestStdioFunctional_MCPProtocolCompliance(t *testing.T) {
	s := newStdioSession(t)

	initResult := s.session.InitializeResult()
	require.NotNil(t, initResult)
	require.NotNil(t, initResult.ServerInfo)
	require.Equal(t, "messbook", initResult.ServerInfo.Name)
	require.Equal(t, "0.1.0", initResult.ServerInfo.Version)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tools, err := s.session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 14)

	toolMap := make(map[string]*sdkmcp.Tool)
	for _, tool := range tools.Tools {
		toolMap[tool.Name] = tool
	}
	require.Contains(t, toolMap, "add_member")
	require.Contains(t, toolMap, "close_cycle")
	require.NotEmpty(t, toolMap["add_member"].Description)
}
