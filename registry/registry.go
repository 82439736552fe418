// Package registry exposes the documentation-management tool surface over
// the MCP JSON-RPC protocol. It registers the built-in apidoc tools,
// gates mutating tools behind the read-only mode, and serves requests
// over stdio, HTTP, or SSE.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/apidock/apidock/search"
	"github.com/apidock/apidock/store"
)

// DocStore is the document-service boundary the tools operate against.
// *store.Client implements it; tests substitute fakes.
type DocStore interface {
	CreateDoc(ctx context.Context, doc store.Document) (store.Document, error)
	GetDoc(ctx context.Context, id string) (store.Document, error)
	UpdateDoc(ctx context.Context, doc store.Document) (store.Document, error)
	DeleteDoc(ctx context.Context, id string) error
	ListNodes(ctx context.Context) (store.NodeList, error)
}

// ServerInfo describes this MCP server for the initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

// Config configures a Registry.
type Config struct {
	ServerInfo ServerInfo

	// Store is the remote documentation service. Required.
	Store DocStore

	// Index backs the apidoc_search tool. Optional; when nil the search
	// tool reports ErrSearchDisabled.
	Index *search.Index

	// Annotate enables comment-annotated body rendering in synthesized
	// documents and responses.
	Annotate bool

	// ReadOnly rejects all mutating tools with a permission error.
	ReadOnly bool

	// KeepEmptyResponses honors an explicitly empty response list
	// instead of substituting the synthesized default.
	KeepEmptyResponses bool

	// Logger overrides the default logrus standard logger.
	Logger *logrus.Logger
}

// Registry is the MCP tool registry for the documentation tools.
type Registry struct {
	mu       sync.RWMutex
	config   Config
	log      *logrus.Logger
	tools    []mcp.Tool
	handlers map[string]ToolHandler
	mutating map[string]bool
}

// New creates a Registry with the built-in apidoc tools registered.
func New(cfg Config) *Registry {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := &Registry{
		config:   cfg,
		log:      log,
		handlers: make(map[string]ToolHandler),
		mutating: make(map[string]bool),
	}
	r.registerBuiltins()
	return r
}

// Register adds a tool with its handler. The tool name must be unique.
func (r *Registry) Register(tool mcp.Tool, handler ToolHandler, opts ...ToolOption) error {
	if tool.Name == "" {
		return fmt.Errorf("%w: tool name required", ErrInvalidArgs)
	}

	cfg := applyToolOptions(opts)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[tool.Name]; exists {
		return fmt.Errorf("%w: %s", ErrToolExists, tool.Name)
	}
	r.tools = append(r.tools, tool)
	r.handlers[tool.Name] = handler
	r.mutating[tool.Name] = cfg.mutating
	return nil
}

// Tools returns the tool descriptors in registration order.
func (r *Registry) Tools() []mcp.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]mcp.Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Execute runs a tool by name with the given arguments, applying the
// read-only gate to mutating tools.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	r.mu.RLock()
	handler, ok := r.handlers[name]
	mutating := r.mutating[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	if mutating && r.config.ReadOnly {
		return nil, fmt.Errorf("%w: %s", ErrReadOnly, name)
	}

	result, err := handler(ctx, args)
	if err != nil {
		r.log.WithFields(logrus.Fields{"tool": name, "error": err}).Warn("tool failed")
		return nil, err
	}
	return result, nil
}
