package registry

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// ServeStdio runs the registry as an MCP server over stdio.
// Blocks until stdin is closed or the context is cancelled. Nothing but
// JSON-RPC frames may be written to stdout; all logging goes to stderr.
func ServeStdio(ctx context.Context, r *Registry) error {
	return serveStream(ctx, r, os.Stdin, os.Stdout)
}

func serveStream(ctx context.Context, r *Registry, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var req MCPRequest
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			if err := encoder.Encode(parseErrorResponse(err)); err != nil {
				return fmt.Errorf("encode error response: %w", err)
			}
			continue
		}

		resp := r.HandleRequest(ctx, req)
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request stream: %w", err)
	}
	return nil
}

// ServeHTTP returns an http.Handler for the plain HTTP transport: each
// POST body carries one JSON-RPC request and the matching response is
// returned as the JSON body. Non-POST methods are rejected.
func ServeHTTP(r *Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var mcpReq MCPRequest
		if err := json.NewDecoder(req.Body).Decode(&mcpReq); err != nil {
			writeJSON(w, parseErrorResponse(err))
			return
		}

		writeJSON(w, r.HandleRequest(req.Context(), mcpReq))
	})
}

// ServeSSE returns an http.Handler for the Server-Sent Events transport.
// The client POSTs one JSON-RPC request and receives the response as an
// SSE "message" event (or an "error" event for unparseable input).
func ServeSSE(r *Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		var mcpReq MCPRequest
		if err := json.NewDecoder(req.Body).Decode(&mcpReq); err != nil {
			writeSSEEvent(w, flusher, "error", parseErrorResponse(err))
			return
		}

		writeSSEEvent(w, flusher, "message", r.HandleRequest(req.Context(), mcpReq))
	})
}

// parseErrorResponse wraps a decode failure as the JSON-RPC parse error.
// The id is left unset since the request never parsed far enough to
// yield one.
func parseErrorResponse(err error) MCPResponse {
	return MCPResponse{
		JSONRPC: "2.0",
		Error:   &MCPError{Code: ErrCodeParseError, Message: err.Error()},
	}
}

func writeJSON(w http.ResponseWriter, resp MCPResponse) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func writeSSEEvent(w http.ResponseWriter, f http.Flusher, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return
	}
	f.Flush()
}
