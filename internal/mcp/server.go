// Package mcp exposes the ledger operation set as MCP tools.
package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"

	"github.com/rahat/messbook/internal/domain/archive"
	"github.com/rahat/messbook/internal/domain/expense"
	"github.com/rahat/messbook/internal/domain/ledger"
	"github.com/rahat/messbook/internal/domain/meallog"
	"github.com/rahat/messbook/internal/domain/member"
)

// LedgerService defines ledger operations needed by MCP.
type LedgerService interface {
	AddMember(ctx context.Context, name string, role member.Role) (*member.Member, error)
	UpdateMember(ctx context.Context, id string, upd member.Update) error
	RemoveMember(ctx context.Context, id string) error
	AddExpense(ctx context.Context, amount decimal.Decimal, description string, typ expense.Type, paidBy string) (*expense.Expense, error)
	AddDeposit(ctx context.Context, memberID string, amount decimal.Decimal) error
	LogMeal(ctx context.Context, memberID string, count decimal.Decimal, date string) error
	Members(ctx context.Context) ([]member.Member, error)
	Expenses(ctx context.Context) ([]expense.Expense, error)
	MealLogs(ctx context.Context) ([]meallog.MealLog, error)
	Snapshot(ctx context.Context) (*ledger.Snapshot, error)
}

// ArchiveService defines archive operations needed by MCP.
type ArchiveService interface {
	List(ctx context.Context) ([]archive.Cycle, error)
	Delete(ctx context.Context, id string) error
}

// CycleService defines cycle lifecycle operations needed by MCP.
type CycleService interface {
	CloseCycle(ctx context.Context) (*archive.Cycle, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Ledger   LedgerService
	Archives ArchiveService
	Cycles   CycleService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

const serverInstructions = `Messbook tracks a shared household meal-expense cycle.
Members deposit money, expenses land in a "meal" pool (divided by meals
eaten) or a "fixed" pool (split evenly across active members), and daily
meal counts are logged per member. get_stats and get_member_stats derive
rates and balances from live state; close_cycle archives the final figures
and resets the ledger for the next cycle.`

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "messbook",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
