package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	var (
		transport string
		baseURL   string
	)

	cmd := &cobra.Command{
		Use:   "mcp [machine]",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Exposes turing machines to MCP clients as the tools simulate, validate,
encode, decode, get_table and get_graph, plus the turing://machine resource.

Transports:
- stdio (default): standard input and output, for local process integration.
- sse: Server-Sent Events over HTTP on --addr.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries JSON-RPC; keep every log line on stderr.
			log.SetOutput(os.Stderr)
			logger := logging.New(logging.Level(a.cfg.Debug))

			var eng *turing.Engine
			if len(args) == 1 {
				var err error
				if eng, err = cli.LoadEngine(args[0], a.cfg, logger); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			backend, err := cli.OpenBackend(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			srv := mcp.NewServer(eng, backend.Store, logger)
			switch transport {
			case "stdio":
				logger.Info("mcp server starting (stdio)")
				return srv.ServeStdio()
			case "sse":
				url := baseURL
				if url == "" {
					url = "http://localhost" + a.cfg.Addr
				}
				return srv.ServeSSE(ctx, a.cfg.Addr, url)
			default:
				return fmt.Errorf("unknown transport %q (want stdio or sse)", transport)
			}
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport: stdio or sse")
	cmd.Flags().String("addr", cli.DefaultConfig().Addr, "Address to listen on (sse only)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Public base URL of the SSE endpoint")
	return cmd
}
