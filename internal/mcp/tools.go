package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"

	"github.com/rahat/messbook/internal/domain/archive"
	"github.com/rahat/messbook/internal/domain/expense"
	"github.com/rahat/messbook/internal/domain/meallog"
	"github.com/rahat/messbook/internal/domain/member"
	"github.com/rahat/messbook/internal/domain/settlement"
)

type AddMemberParams struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type UpdateMemberParams struct {
	ID       string   `json:"id"`
	Name     *string  `json:"name,omitempty"`
	Role     *string  `json:"role,omitempty"`
	Avatar   *string  `json:"avatar,omitempty"`
	Deposit  *float64 `json:"deposit,omitempty"`
	IsActive *bool    `json:"is_active,omitempty"`
}

type RemoveMemberParams struct {
	ID string `json:"id"`
}

type AddExpenseParams struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	PaidBy      string  `json:"paid_by,omitempty"`
}

type AddDepositParams struct {
	MemberID string  `json:"member_id"`
	Amount   float64 `json:"amount"`
}

type LogMealParams struct {
	MemberID string  `json:"member_id"`
	Count    float64 `json:"count"`
	Date     string  `json:"date"`
}

type GetMemberStatsParams struct {
	MemberID string `json:"member_id"`
}

type DeleteArchiveParams struct {
	ID string `json:"id"`
}

type EmptyParams struct{}

// StatusResult acknowledges a mutation with no payload.
type StatusResult struct {
	Status string `json:"status"`
}

// MemberView is a member plus their derived meal total.
type MemberView struct {
	member.Member
	MealsEaten decimal.Decimal `json:"meals_eaten"`
}

type ListMembersResult struct {
	Members []MemberView `json:"members"`
}

type ListExpensesResult struct {
	Expenses []expense.Expense `json:"expenses"`
}

type ListMealLogsResult struct {
	MealLogs []meallog.MealLog `json:"meal_logs"`
}

type ListArchivesResult struct {
	Archives []archive.Cycle `json:"archives"`
}

var okResult = StatusResult{Status: "ok"}

// registerTools binds one tool per ledger operation.
func registerTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_member",
		Description: "Add a mess member with a display name and role (admin or viewer)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in AddMemberParams) (*sdkmcp.CallToolResult, *member.Member, error) {
		m, err := svcs.Ledger.AddMember(ctx, in.Name, member.Role(in.Role))
		if err != nil {
			return nil, nil, MapError(err)
		}
		return nil, m, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_member",
		Description: "Update fields of an existing member; omitted fields are left unchanged",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in UpdateMemberParams) (*sdkmcp.CallToolResult, StatusResult, error) {
		upd := member.Update{
			Name:     in.Name,
			Avatar:   in.Avatar,
			IsActive: in.IsActive,
		}
		if in.Role != nil {
			role := member.Role(*in.Role)
			upd.Role = &role
		}
		if in.Deposit != nil {
			deposit := decimal.NewFromFloat(*in.Deposit)
			upd.Deposit = &deposit
		}
		if err := svcs.Ledger.UpdateMember(ctx, in.ID, upd); err != nil {
			return nil, StatusResult{}, MapError(err)
		}
		return nil, okResult, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_member",
		Description: "Remove a member and all their meal logs; their paid expenses stay on record",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in RemoveMemberParams) (*sdkmcp.CallToolResult, StatusResult, error) {
		if err := svcs.Ledger.RemoveMember(ctx, in.ID); err != nil {
			return nil, StatusResult{}, MapError(err)
		}
		return nil, okResult, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_expense",
		Description: "Record an expense in the meal pool (per-meal cost) or the fixed pool (shared cost)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in AddExpenseParams) (*sdkmcp.CallToolResult, *expense.Expense, error) {
		e, err := svcs.Ledger.AddExpense(ctx, decimal.NewFromFloat(in.Amount), in.Description, expense.Type(in.Type), in.PaidBy)
		if err != nil {
			return nil, nil, MapError(err)
		}
		return nil, e, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_deposit",
		Description: "Add money to a member's cumulative deposit",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in AddDepositParams) (*sdkmcp.CallToolResult, StatusResult, error) {
		if err := svcs.Ledger.AddDeposit(ctx, in.MemberID, decimal.NewFromFloat(in.Amount)); err != nil {
			return nil, StatusResult{}, MapError(err)
		}
		return nil, okResult, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "log_meal",
		Description: "Set a member's meal count for a day (YYYY-MM-DD); half meals allowed, count 0 clears the entry",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in LogMealParams) (*sdkmcp.CallToolResult, StatusResult, error) {
		if err := svcs.Ledger.LogMeal(ctx, in.MemberID, decimal.NewFromFloat(in.Count), in.Date); err != nil {
			return nil, StatusResult{}, MapError(err)
		}
		return nil, okResult, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_stats",
		Description: "Get current cycle statistics: totals, meal rate, fixed share and remaining cash",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, settlement.Stats, error) {
		snap, err := svcs.Ledger.Snapshot(ctx)
		if err != nil {
			return nil, settlement.Stats{}, MapError(err)
		}
		return nil, settlement.Compute(snap.Members, snap.Expenses, snap.MealLogs), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_member_stats",
		Description: "Get one member's derived figures: meals eaten, costs and balance",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in GetMemberStatsParams) (*sdkmcp.CallToolResult, settlement.MemberStats, error) {
		snap, err := svcs.Ledger.Snapshot(ctx)
		if err != nil {
			return nil, settlement.MemberStats{}, MapError(err)
		}
		for _, m := range snap.Members {
			if m.ID == in.MemberID {
				stats := settlement.Compute(snap.Members, snap.Expenses, snap.MealLogs)
				return nil, settlement.ComputeMember(m, snap.MealLogs, stats), nil
			}
		}
		return nil, settlement.MemberStats{}, MapError(member.ErrMemberNotFound)
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_members",
		Description: "List all members with their derived meal totals, in creation order",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, ListMembersResult, error) {
		snap, err := svcs.Ledger.Snapshot(ctx)
		if err != nil {
			return nil, ListMembersResult{}, MapError(err)
		}
		views := make([]MemberView, 0, len(snap.Members))
		for _, m := range snap.Members {
			view := MemberView{Member: m}
			for _, l := range snap.MealLogs {
				if l.MemberID == m.ID {
					view.MealsEaten = view.MealsEaten.Add(l.Count)
				}
			}
			views = append(views, view)
		}
		return nil, ListMembersResult{Members: views}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_expenses",
		Description: "List all expenses for the current cycle, most recent first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, ListExpensesResult, error) {
		expenses, err := svcs.Ledger.Expenses(ctx)
		if err != nil {
			return nil, ListExpensesResult{}, MapError(err)
		}
		return nil, ListExpensesResult{Expenses: expenses}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_meal_logs",
		Description: "List all meal logs for the current cycle, most recent day first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, ListMealLogsResult, error) {
		logs, err := svcs.Ledger.MealLogs(ctx)
		if err != nil {
			return nil, ListMealLogsResult{}, MapError(err)
		}
		return nil, ListMealLogsResult{MealLogs: logs}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "close_cycle",
		Description: "Archive the current cycle's final balances and reset the ledger for a new cycle",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, *archive.Cycle, error) {
		arch, err := svcs.Cycles.CloseCycle(ctx)
		if err != nil {
			return nil, nil, MapError(err)
		}
		return nil, arch, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_archives",
		Description: "List archived cycles, most recent first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in EmptyParams) (*sdkmcp.CallToolResult, ListArchivesResult, error) {
		archives, err := svcs.Archives.List(ctx)
		if err != nil {
			return nil, ListArchivesResult{}, MapError(err)
		}
		return nil, ListArchivesResult{Archives: archives}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_archive",
		Description: "Permanently delete an archived cycle",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in DeleteArchiveParams) (*sdkmcp.CallToolResult, StatusResult, error) {
		if err := svcs.Archives.Delete(ctx, in.ID); err != nil {
			return nil, StatusResult{}, MapError(err)
		}
		return nil, okResult, nil
	})
}
