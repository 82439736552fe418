package registry

import "errors"

// Sentinel errors for consistent error handling.
var (
	ErrToolNotFound    = errors.New("tool not found")
	ErrToolExists      = errors.New("tool already registered")
	ErrInvalidArgs     = errors.New("invalid tool arguments")
	ErrReadOnly        = errors.New("server is in read-only mode")
	ErrSearchDisabled  = errors.New("search index not configured")
	ErrExecutionFailed = errors.New("tool execution failed")
)

// MCP JSON-RPC 2.0 error codes as per the spec.
const (
	ErrCodeParseError       = -32700
	ErrCodeInvalidRequest   = -32600
	ErrCodeMethodNotFound   = -32601
	ErrCodeInvalidParams    = -32602
	ErrCodeInternal         = -32603
	ErrCodeToolNotFound     = -32001
	ErrCodeToolExecFailed   = -32002
	ErrCodePermissionDenied = -32003
)
