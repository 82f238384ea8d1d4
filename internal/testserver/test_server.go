// Package testserver wires the full service stack over an in-memory
// database and connects an in-process MCP client to it, for functional
// tests that exercise the tool surface end to end.
package testserver

import (
	"context"
	"fmt"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rahat/messbook/internal/domain/archive"
	"github.com/rahat/messbook/internal/domain/cycle"
	"github.com/rahat/messbook/internal/domain/ledger"
	"github.com/rahat/messbook/internal/mcp"
	"github.com/rahat/messbook/internal/sqlite"
)

type TestServer struct {
	DB      *sqlite.DB
	Ledger  *ledger.Service
	Archive *archive.Service
	Cycle   *cycle.Service
	Session *sdkmcp.ClientSession
}

func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	memberRepo := sqlite.NewMemberRepository(db)
	expenseRepo := sqlite.NewExpenseRepository(db)
	mealLogRepo := sqlite.NewMealLogRepository(db)
	archiveRepo := sqlite.NewArchiveRepository(db)

	ledgerSvc := ledger.NewService(memberRepo, expenseRepo, mealLogRepo, nil)
	archiveSvc := archive.NewService(archiveRepo, nil)
	cycleSvc := cycle.NewService(ledgerSvc, archiveRepo, nil)

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Ledger:   ledgerSvc,
			Archives: archiveSvc,
			Cycles:   cycleSvc,
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		clientSession.Close()
		serverSession.Close()
		cancel()
		_ = db.Close()
	})

	return &TestServer{
		DB:      db,
		Ledger:  ledgerSvc,
		Archive: archiveSvc,
		Cycle:   cycleSvc,
		Session: clientSession,
	}
}
