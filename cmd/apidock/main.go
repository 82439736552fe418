// Command apidock runs the API documentation MCP server. It connects the
// remote documentation service to an MCP transport (stdio by default, or
// HTTP/SSE) and exposes the apidoc tool surface.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/apidock/apidock/registry"
	"github.com/apidock/apidock/search"
	"github.com/apidock/apidock/store"
)

// version is set at build time via ldflags.
var version = "dev"

type options struct {
	baseURL    string
	token      string
	pathPrefix string
	transport  string
	listenAddr string
	annotate   bool
	readOnly   bool
	keepEmpty  bool
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "apidock",
		Short:         "MCP server for API endpoint documentation",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.baseURL, "store-url", os.Getenv("APIDOCK_STORE_URL"), "documentation service base URL")
	flags.StringVar(&opts.token, "token", os.Getenv("APIDOCK_TOKEN"), "documentation service access token")
	flags.StringVar(&opts.pathPrefix, "path-prefix", os.Getenv("APIDOCK_PATH_PREFIX"), "prefix prepended to endpoint paths before writing")
	flags.StringVar(&opts.transport, "transport", "stdio", "transport: stdio, http, or sse")
	flags.StringVar(&opts.listenAddr, "listen", ":8733", "listen address for http/sse transports")
	flags.BoolVar(&opts.annotate, "annotate", true, "render body examples with inline field comments")
	flags.BoolVar(&opts.readOnly, "read-only", false, "reject tools that write to the store")
	flags.BoolVar(&opts.keepEmpty, "keep-empty-responses", false, "honor explicitly empty response lists")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	log := logrus.New()
	log.SetOutput(os.Stderr) // stdout belongs to the stdio transport
	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	client, err := store.NewClient(store.ClientOptions{
		BaseURL:    opts.baseURL,
		Token:      opts.token,
		PathPrefix: opts.pathPrefix,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	idx, err := search.NewIndex()
	if err != nil {
		return err
	}
	defer func() {
		_ = idx.Close()
	}()

	reg := registry.New(registry.Config{
		ServerInfo:         registry.ServerInfo{Name: "apidock", Version: version},
		Store:              client,
		Index:              idx,
		Annotate:           opts.annotate,
		ReadOnly:           opts.readOnly,
		KeepEmptyResponses: opts.keepEmpty,
		Logger:             log,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch opts.transport {
	case "stdio":
		log.WithField("version", version).Info("serving MCP over stdio")
		return registry.ServeStdio(ctx, reg)
	case "http", "sse":
		handler := registry.ServeHTTP(reg)
		if opts.transport == "sse" {
			handler = registry.ServeSSE(reg)
		}
		srv := &http.Server{
			Addr:              opts.listenAddr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.WithFields(logrus.Fields{"addr": opts.listenAddr, "transport": opts.transport}).Info("serving MCP over HTTP")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown transport %q", opts.transport)
	}
}
