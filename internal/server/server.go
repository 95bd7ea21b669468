// Package server exposes a running overlay engine as MCP tools.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/mj1618/trade-overlay/internal/engine"
	"github.com/mj1618/trade-overlay/internal/logging"
	"github.com/mj1618/trade-overlay/internal/version"
)

// Transports accepted by Serve.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "streamable-http"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the MCP server around an engine.
type Server struct {
	engine *engine.Engine
	mcp    *mcpserver.MCPServer
	log    *logrus.Entry
}

// New creates an MCP server with every trade tool registered.
func New(e *engine.Engine) *Server {
	s := &Server{
		engine: e,
		mcp:    mcpserver.NewMCPServer("trade-overlay", version.Version),
		log:    logging.NewLogger("server"),
	}
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// Serve runs the configured transport. The HTTP transport shuts down when
// ctx is cancelled; stdio returns when its input closes.
func (s *Server) Serve(ctx context.Context, cfg Config) error {
	switch cfg.Transport {
	case TransportStdio, "":
		s.log.Info("Serving MCP over stdio")
		return mcpserver.ServeStdio(s.mcp)
	case TransportHTTP:
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		go func() {
			<-ctx.Done()
			if err := httpServer.Shutdown(context.Background()); err != nil {
				s.log.WithError(err).Warn("Shutting down MCP HTTP server")
			}
		}()
		addr := fmt.Sprintf(":%d", cfg.Port)
		s.log.WithField("addr", addr).Info("Serving MCP over streamable HTTP")
		if err := httpServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) registerTools() {
	offerRef := []mcp.ToolOption{
		mcp.WithNumber("index", mcp.Description("Position of the offer in the pending list, starting at 0")),
		mcp.WithString("buyer", mcp.Description("Buyer name, used when index is not given")),
		mcp.WithString("item", mcp.Description("Item name to disambiguate offers from the same buyer")),
	}
	withRef := func(opts ...mcp.ToolOption) []mcp.ToolOption {
		return append(opts, offerRef...)
	}

	s.mcp.AddTool(
		mcp.NewTool("status",
			mcp.WithDescription("Show the game state, chat log path, pending offers and highlight state"),
		),
		s.handleStatus,
	)
	s.mcp.AddTool(
		mcp.NewTool("focus",
			mcp.WithDescription("Bring the game window to the foreground"),
		),
		s.handleFocus,
	)
	s.mcp.AddTool(
		mcp.NewTool("offers",
			mcp.WithDescription("List pending trade offers in arrival order"),
		),
		s.handleOffers,
	)
	s.mcp.AddTool(
		mcp.NewTool("select", withRef(
			mcp.WithDescription("Select an offer as the current one"),
		)...),
		s.handleSelect,
	)
	s.mcp.AddTool(
		mcp.NewTool("ignore", withRef(
			mcp.WithDescription("Drop an offer without messaging the buyer"),
		)...),
		s.handleIgnore,
	)
	s.mcp.AddTool(
		mcp.NewTool("remove", withRef(
			mcp.WithDescription("Kick the buyer from the party and drop the offer"),
		)...),
		s.handleRemove,
	)
	s.mcp.AddTool(
		mcp.NewTool("trade_request", withRef(
			mcp.WithDescription("Send a trade request to the buyer"),
		)...),
		s.handleTradeRequest,
	)
	s.mcp.AddTool(
		mcp.NewTool("party_invite", withRef(
			mcp.WithDescription("Invite the buyer to the party and select the offer"),
		)...),
		s.handlePartyInvite,
	)
	s.mcp.AddTool(
		mcp.NewTool("whisper", withRef(
			mcp.WithDescription("Whisper the buyer. A sold whisper also drops the offer."),
			mcp.WithString("kind", mcp.Required(), mcp.Description("Whisper kind: thanks, still_interested, busy, sold")),
		)...),
		s.handleWhisper,
	)
	s.mcp.AddTool(
		mcp.NewTool("kick",
			mcp.WithDescription("Kick a player from the party"),
			mcp.WithString("name", mcp.Required(), mcp.Description("Player name")),
		),
		s.handleKick,
	)
	s.mcp.AddTool(
		mcp.NewTool("highlight",
			mcp.WithDescription("Toggle highlighting of the selected offer's item"),
		),
		s.handleHighlight,
	)
	s.mcp.AddTool(
		mcp.NewTool("clear_highlight",
			mcp.WithDescription("Hide the grid and cancel the in-game search"),
		),
		s.handleClearHighlight,
	)
	s.mcp.AddTool(
		mcp.NewTool("grid_demo",
			mcp.WithDescription("Toggle grid calibration mode, which shows every cell"),
			mcp.WithBoolean("show_grid", mcp.Description("Make grid visibility follow the demo flag (default: true)")),
		),
		s.handleGridDemo,
	)
	s.mcp.AddTool(
		mcp.NewTool("grid_position",
			mcp.WithDescription("Move the highlight grid along one axis and save the offset"),
			mcp.WithString("axis", mcp.Required(), mcp.Description("Axis: top or left")),
			mcp.WithNumber("px", mcp.Required(), mcp.Description("Offset in pixels")),
		),
		s.handleGridPosition,
	)
}
