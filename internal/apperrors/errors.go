package apperrors

import (
	"errors"
	"fmt"
)

// Error codes shared by the engine and the host UI.
const (
	CodeUnknown             = 1000
	CodeAuthRequired        = 1001
	CodeSessionNotStarted   = 2001
	CodeInsufficientBalance = 2002
	CodeBetTooLow           = 2003
	CodeBetTooHigh          = 2004
	CodeUpdateInFlight      = 2005
	CodeInvalidAmount       = 2006
	CodeUpstreamFetch       = 3001
	CodeUpstreamUpdate      = 3002
)

// EconomyError is a coded error returned by economy operations.
type EconomyError struct {
	Code    int
	Message string
}

func (e *EconomyError) Error() string {
	return e.Message
}

// Predefined errors.
var (
	ErrAuthRequired          = &EconomyError{Code: CodeAuthRequired, Message: "authentication required"}
	ErrSessionNotInitialized = &EconomyError{Code: CodeSessionNotStarted, Message: "session not initialized"}
	ErrInsufficientBalance   = &EconomyError{Code: CodeInsufficientBalance, Message: "insufficient balance"}
	ErrBetTooLow             = &EconomyError{Code: CodeBetTooLow, Message: "bet below minimum"}
	ErrBetTooHigh            = &EconomyError{Code: CodeBetTooHigh, Message: "bet above maximum"}
	ErrUpdateInFlight        = &EconomyError{Code: CodeUpdateInFlight, Message: "balance update already in flight"}
	ErrInvalidAmount         = &EconomyError{Code: CodeInvalidAmount, Message: "invalid amount"}
	ErrUpstreamFetch         = &EconomyError{Code: CodeUpstreamFetch, Message: "failed to fetch player data"}
	ErrUpstreamUpdate        = &EconomyError{Code: CodeUpstreamUpdate, Message: "failed to update balance"}
)

// Upstream operations.
const (
	OpFetch  = "fetch"
	OpUpdate = "update"
)

// UpstreamError reports a non-success HTTP response from a required call.
type UpstreamError struct {
	Op         string
	Path       string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Op, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Op, e.Path, e.StatusCode, e.Body)
}

// Is maps the error onto ErrUpstreamFetch or ErrUpstreamUpdate.
func (e *UpstreamError) Is(target error) bool {
	switch e.Op {
	case OpFetch:
		return target == ErrUpstreamFetch
	case OpUpdate:
		return target == ErrUpstreamUpdate
	}
	return false
}

// Code returns the code carried by err, or CodeUnknown.
func Code(err error) int {
	var ee *EconomyError
	if errors.As(err, &ee) {
		return ee.Code
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		if ue.Op == OpUpdate {
			return CodeUpstreamUpdate
		}
		return CodeUpstreamFetch
	}
	return CodeUnknown
}
