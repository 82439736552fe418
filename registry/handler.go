package registry

import "context"

// ToolHandler executes a tool with the given arguments.
// It receives a context for cancellation and a map of arguments parsed
// from the MCP request. It returns the result as any (typically a map)
// and an error if execution fails.
type ToolHandler func(ctx context.Context, args map[string]any) (any, error)

// ToolOption configures tool registration.
type ToolOption func(*toolConfig)

type toolConfig struct {
	mutating bool
}

// WithMutating marks a tool as one that writes to the document store.
// Mutating tools are rejected when the registry runs read-only.
func WithMutating() ToolOption {
	return func(c *toolConfig) {
		c.mutating = true
	}
}

func applyToolOptions(opts []ToolOption) toolConfig {
	cfg := toolConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
