package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/trade-overlay/internal/logging"
	"github.com/mj1618/trade-overlay/internal/metrics"
	"github.com/mj1618/trade-overlay/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the overlay engine and expose it as an MCP server",
	Long: `Start the overlay engine and a Model Context Protocol (MCP) server exposing
trade actions as tools: status, offers, select, ignore, remove, trade_request,
party_invite, whisper, kick, highlight, clear_highlight, grid_demo and
grid_position.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  trade-overlay serve
  trade-overlay serve --transport streamable-http --port 8080
  trade-overlay serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", server.TransportStdio, "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Bool("dry-run", false, "Log chat commands instead of typing them into the game")
	serveCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	ctx, stop := signalContext(cmd.Context(), 0)
	defer stop()

	m := metrics.New()
	eng, err := newEngine(ctx, dryRun, m)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	log := logging.NewLogger("serve")

	if metricsAddr != "" {
		srv := startMetricsServer(metricsAddr, m, log)
		defer srv.Close()
	}
	if w := startSettingsWatcher(ctx, eng, log); w != nil {
		defer w.Close()
	}

	go func() {
		if err := eng.Run(ctx); err != nil {
			log.WithError(err).Error("Engine stopped")
		}
	}()

	return server.New(eng).Serve(ctx, server.Config{Transport: transport, Port: port})
}
