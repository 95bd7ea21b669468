package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/trade-overlay/internal/command"
	overlayerrors "github.com/mj1618/trade-overlay/internal/errors"
	"github.com/mj1618/trade-overlay/internal/model"
	"github.com/mj1618/trade-overlay/internal/trade"
)

// ActionResult is the outcome of one tool call.
type ActionResult struct {
	OK        bool                  `yaml:"ok" json:"ok"`
	Action    string                `yaml:"action" json:"action"`
	Offer     *model.Offer          `yaml:"offer,omitempty" json:"offer,omitempty"`
	Highlight *trade.HighlightState `yaml:"highlight,omitempty" json:"highlight,omitempty"`
	Error     string                `yaml:"error,omitempty" json:"error,omitempty"`
}

// resultToText serializes an ActionResult to YAML for the MCP response.
func resultToText(result ActionResult) string {
	b, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Sprintf("ok: %v\naction: %s\nerror: %s", result.OK, result.Action, result.Error)
	}
	return string(b)
}

func toolResult(result ActionResult, err error) *mcp.CallToolResult {
	if err != nil {
		result.OK = false
		result.Error = err.Error()
		return mcp.NewToolResultError(resultToText(result))
	}
	result.OK = true
	return mcp.NewToolResultText(resultToText(result))
}

// offerRef identifies an offer by list position or by buyer and item.
type offerRef struct {
	index int
	buyer string
	item  string
}

func parseOfferRef(params map[string]interface{}) (offerRef, error) {
	ref := offerRef{
		index: intParam(params, "index", -1),
		buyer: stringParam(params, "buyer", ""),
		item:  stringParam(params, "item", ""),
	}
	if ref.index < 0 && ref.buyer == "" {
		return ref, overlayerrors.InvalidInput("specify the offer by index or buyer")
	}
	return ref, nil
}

// resolve finds the referenced offer. It must run on the engine loop.
func (r offerRef) resolve(store *trade.Store) (*model.Offer, error) {
	if r.index >= 0 {
		o := store.At(r.index)
		if o == nil {
			return nil, overlayerrors.InvalidInput(fmt.Sprintf("no offer at index %d (%d pending)", r.index, store.Len()))
		}
		return o, nil
	}
	for i := 0; i < store.Len(); i++ {
		o := store.At(i)
		if !strings.EqualFold(o.BuyerName, r.buyer) {
			continue
		}
		if r.item != "" && !strings.EqualFold(o.ItemName, r.item) {
			continue
		}
		return o, nil
	}
	return nil, overlayerrors.InvalidInput(fmt.Sprintf("no offer from %q", r.buyer))
}

// offerAction resolves the referenced offer on the engine loop and applies fn
// to it.
func (s *Server) offerAction(
	ctx context.Context,
	request mcp.CallToolRequest,
	action string,
	fn func(*trade.Manager, context.Context, model.OfferKey) error,
) (*mcp.CallToolResult, error) {
	result := ActionResult{Action: action}
	ref, err := parseOfferRef(request.GetArguments())
	if err != nil {
		return toolResult(result, err), nil
	}

	err = s.engine.Do(ctx, func(ctx context.Context, m *trade.Manager) error {
		o, err := ref.resolve(m.Store())
		if err != nil {
			return err
		}
		offer := *o
		result.Offer = &offer
		return fn(m, ctx, o.Key())
	})
	return toolResult(result, err), nil
}

// highlightAction applies fn on the engine loop and reports the resulting
// highlight state.
func (s *Server) highlightAction(
	ctx context.Context,
	action string,
	fn func(*trade.Highlighter, context.Context) error,
) (*mcp.CallToolResult, error) {
	result := ActionResult{Action: action}
	err := s.engine.Do(ctx, func(ctx context.Context, m *trade.Manager) error {
		h := m.Highlighter()
		err := fn(h, ctx)
		state := h.State()
		result.Highlight = &state
		return err
	})
	return toolResult(result, err), nil
}

func (s *Server) handleStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.engine.Snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, _ := yaml.Marshal(snap)
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) handleFocus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(ActionResult{Action: "focus"}, s.engine.Tracker().Focus()), nil
}

func (s *Server) handleOffers(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := s.engine.Snapshot(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, _ := yaml.Marshal(snap.Offers)
	return mcp.NewToolResultText(string(b)), nil
}

func (s *Server) handleSelect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.offerAction(ctx, request, "select", (*trade.Manager).Select)
}

func (s *Server) handleIgnore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.offerAction(ctx, request, "ignore", (*trade.Manager).Ignore)
}

func (s *Server) handleRemove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.offerAction(ctx, request, "remove", (*trade.Manager).RemoveOffer)
}

func (s *Server) handleTradeRequest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.offerAction(ctx, request, "trade_request", (*trade.Manager).SendTradeRequest)
}

func (s *Server) handlePartyInvite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.offerAction(ctx, request, "party_invite", (*trade.Manager).SendPartyInvite)
}

func (s *Server) handleWhisper(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, err := command.ParseWhisperKind(stringParam(request.GetArguments(), "kind", ""))
	if err != nil {
		return toolResult(ActionResult{Action: "whisper"}, err), nil
	}
	return s.offerAction(ctx, request, "whisper", func(m *trade.Manager, ctx context.Context, key model.OfferKey) error {
		return m.SendWhisper(ctx, kind, key)
	})
}

func (s *Server) handleKick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := ActionResult{Action: "kick"}
	name := strings.TrimSpace(stringParam(request.GetArguments(), "name", ""))
	if name == "" {
		return toolResult(result, overlayerrors.InvalidInput("name is required")), nil
	}
	err := s.engine.Do(ctx, func(ctx context.Context, m *trade.Manager) error {
		return m.KickBuyer(ctx, name)
	})
	return toolResult(result, err), nil
}

func (s *Server) handleHighlight(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.highlightAction(ctx, "highlight", (*trade.Highlighter).Toggle)
}

func (s *Server) handleClearHighlight(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.highlightAction(ctx, "clear_highlight", (*trade.Highlighter).Clear)
}

func (s *Server) handleGridDemo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	showGrid := boolParam(request.GetArguments(), "show_grid", true)
	return s.highlightAction(ctx, "grid_demo", func(h *trade.Highlighter, ctx context.Context) error {
		return h.SetGridDemo(ctx, showGrid)
	})
}

func (s *Server) handleGridPosition(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	axis, err := trade.ParseAxis(stringParam(params, "axis", ""))
	if err != nil {
		return toolResult(ActionResult{Action: "grid_position"}, err), nil
	}
	px := intParam(params, "px", 0)
	return s.highlightAction(ctx, "grid_position", func(h *trade.Highlighter, ctx context.Context) error {
		return h.UpdateGridPosition(ctx, axis, px)
	})
}
