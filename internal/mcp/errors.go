// Package mcp implements the Model Context Protocol server for repoindex.
package mcp

import (
	"fmt"

	coreerrors "github.com/repoindex/core/internal/errors"
)

// MCP error codes. The taxonomy below takes one code per internal/errors.Kind,
// -32001 through -32009, from the implementation-defined server-error range
// (-32099..-32000) of JSON-RPC; the standard JSON-RPC codes further down are
// used for protocol-level failures.
const (
	ErrCodeInvalidArgument    = -32001
	ErrCodeNotFound           = -32002
	ErrCodeChunkRefAmbiguous  = -32003
	ErrCodeIOError            = -32004
	ErrCodeCorruptState       = -32005
	ErrCodeBackendUnavailable = -32006
	ErrCodeCancelled          = -32007
	ErrCodeDeadlineExceeded   = -32008
	ErrCodeInternal           = -32009

	// Standard JSON-RPC error codes, used for protocol-shaped failures that
	// never reach internal/errors (unknown tool name, malformed arguments).
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

var kindToCode = map[coreerrors.Kind]int{
	coreerrors.KindInvalidArgument:    ErrCodeInvalidArgument,
	coreerrors.KindNotFound:           ErrCodeNotFound,
	coreerrors.KindChunkRefAmbiguous:  ErrCodeChunkRefAmbiguous,
	coreerrors.KindIOError:            ErrCodeIOError,
	coreerrors.KindCorruptState:       ErrCodeCorruptState,
	coreerrors.KindBackendUnavailable: ErrCodeBackendUnavailable,
	coreerrors.KindCancelled:          ErrCodeCancelled,
	coreerrors.KindDeadlineExceeded:   ErrCodeDeadlineExceeded,
	coreerrors.KindInternal:           ErrCodeInternal,
}

// MCPError represents an MCP protocol error with a code and message.
type MCPError struct {
	Code       int      `json:"code"`
	Message    string   `json:"message"`
	Kind       string   `json:"kind,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts a core error into the MCP wire shape. Every error
// returned by internal/handlers carries a Kind from internal/errors; this is
// the single place that kind gets turned into a protocol code.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var ce *coreerrors.CoreError
	if coreerrors.As(err, &ce) {
		code, ok := kindToCode[ce.Kind]
		if !ok {
			code = ErrCodeInternal
		}
		return &MCPError{
			Code:       code,
			Message:    ce.Message,
			Kind:       string(ce.Kind),
			Candidates: ce.Candidates,
		}
	}

	return &MCPError{
		Code:    ErrCodeInternalError,
		Message: err.Error(),
		Kind:    string(coreerrors.KindInternal),
	}
}

// NewInvalidParamsError creates an error for a malformed tool call (wrong
// argument shape), distinct from internal/errors.KindInvalidArgument which
// covers valid-shape-but-semantically-wrong input.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{Code: ErrCodeInvalidParams, Message: msg}
}

// NewMethodNotFoundError creates an error for an unknown tool name.
func NewMethodNotFoundError(name string) *MCPError {
	return &MCPError{Code: ErrCodeMethodNotFound, Message: fmt.Sprintf("tool %q not found", name)}
}
