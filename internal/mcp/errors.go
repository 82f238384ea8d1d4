package mcp

import (
	"errors"
	"fmt"

	"github.com/rahat/messbook/internal/domain/archive"
	"github.com/rahat/messbook/internal/domain/cycle"
	"github.com/rahat/messbook/internal/domain/expense"
	"github.com/rahat/messbook/internal/domain/meallog"
	"github.com/rahat/messbook/internal/domain/member"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to stable MCP error codes. Anything without
// a sentinel mapping is a persistence failure surfaced verbatim.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, member.ErrInvalidInput),
		errors.Is(err, expense.ErrInvalidInput),
		errors.Is(err, meallog.ErrInvalidInput):
		return &APIError{Code: "VALIDATION_ERROR", Message: err.Error(), RecoveryHint: "Fix the input and retry"}
	case errors.Is(err, member.ErrMemberNotFound):
		return &APIError{Code: "MEMBER_NOT_FOUND", Message: "member not found", RecoveryHint: "Check the member id"}
	case errors.Is(err, archive.ErrArchiveNotFound):
		return &APIError{Code: "ARCHIVE_NOT_FOUND", Message: "archive not found", RecoveryHint: "Check the archive id"}
	case errors.Is(err, cycle.ErrInconsistentState):
		return &APIError{Code: "INCONSISTENT_STATE", Message: err.Error(), RecoveryHint: "The archive persisted; retry close_cycle to finish the ledger reset"}
	default:
		return &APIError{Code: "PERSISTENCE_ERROR", Message: err.Error()}
	}
}
