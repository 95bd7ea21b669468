package server

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/trade-overlay/internal/command"
	"github.com/mj1618/trade-overlay/internal/engine"
	"github.com/mj1618/trade-overlay/internal/model"
	"github.com/mj1618/trade-overlay/internal/settings"
	"github.com/mj1618/trade-overlay/internal/trade"
)

type noWindow struct{}

func (noWindow) ForegroundWindow() (*model.Window, error) { return nil, nil }

type fixture struct {
	srv   *Server
	eng   *engine.Engine
	rec   *command.Recorder
	store *settings.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := settings.Default()
	s.Game.PollInterval = settings.Duration(10 * time.Millisecond)
	f := &fixture{
		rec:   command.NewRecorder(),
		store: settings.NewMemoryStore(s),
	}
	eng, err := engine.New(engine.Config{
		Reader:   noWindow{},
		Settings: f.store,
		Dispatcher: func(command.Focuser) (command.Dispatcher, error) {
			return f.rec, nil
		},
	})
	require.NoError(t, err)
	f.eng = eng
	f.srv = New(eng)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = eng.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return f
}

func (f *fixture) addOffer(t *testing.T, sec int64, item, buyer string) {
	t.Helper()
	o := &model.Offer{
		Time:      time.Unix(sec, 0),
		ItemName:  item,
		BuyerName: buyer,
		Price:     model.Price{Value: 3, Currency: "divine"},
	}
	err := f.eng.Do(context.Background(), func(_ context.Context, m *trade.Manager) error {
		m.HandleNewOffer(o)
		return nil
	})
	require.NoError(t, err)
}

func (f *fixture) offers(t *testing.T) []model.Offer {
	t.Helper()
	snap, err := f.eng.Snapshot(context.Background())
	require.NoError(t, err)
	return snap.Offers.Offers
}

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(t *testing.T, h handler, args map[string]interface{}) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestTradeRequestByIndex(t *testing.T) {
	f := newFixture(t)
	f.addOffer(t, 1, "Headhunter", "First")
	f.addOffer(t, 2, "Mageblood", "Second")

	text, isErr := call(t, f.srv.handleTradeRequest, map[string]interface{}{"index": float64(1)})
	assert.False(t, isErr, text)
	assert.Contains(t, text, "ok: true")
	assert.Contains(t, text, "buyer: Second")
	assert.Equal(t, []string{"/tradewith Second"}, f.rec.Commands())
	assert.True(t, f.offers(t)[1].TradeRequestSent)
}

func TestIndexResolvesDuplicateByPosition(t *testing.T) {
	f := newFixture(t)
	for _, price := range []float64{3, 5} {
		o := &model.Offer{
			Time:      time.Unix(1, 0),
			ItemName:  "Headhunter",
			BuyerName: "Buyer",
			Price:     model.Price{Value: price, Currency: "divine"},
		}
		err := f.eng.Do(context.Background(), func(_ context.Context, m *trade.Manager) error {
			m.HandleNewOffer(o)
			return nil
		})
		require.NoError(t, err)
	}

	text, isErr := call(t, f.srv.handleSelect, map[string]interface{}{"index": float64(1)})
	assert.False(t, isErr, text)
	assert.Contains(t, text, "value: 5")
	assert.NotContains(t, text, "value: 3")
}

func TestWhisperSoldByBuyer(t *testing.T) {
	f := newFixture(t)
	f.addOffer(t, 1, "Headhunter", "Buyer")

	text, isErr := call(t, f.srv.handleWhisper, map[string]interface{}{"buyer": "buyer", "kind": "sold"})
	assert.False(t, isErr, text)
	assert.Equal(t, []string{"@Buyer Sorry, my Headhunter is already sold."}, f.rec.Commands())
	assert.Empty(t, f.offers(t))
}

func TestWhisperRejectsUnknownKind(t *testing.T) {
	f := newFixture(t)
	f.addOffer(t, 1, "Headhunter", "Buyer")

	text, isErr := call(t, f.srv.handleWhisper, map[string]interface{}{"buyer": "Buyer", "kind": "rude"})
	assert.True(t, isErr)
	assert.Contains(t, text, "unknown whisper kind")
	assert.Empty(t, f.rec.Sent())
}

func TestOfferReferenceErrors(t *testing.T) {
	f := newFixture(t)
	f.addOffer(t, 1, "Headhunter", "Buyer")

	text, isErr := call(t, f.srv.handleIgnore, map[string]interface{}{})
	assert.True(t, isErr)
	assert.Contains(t, text, "specify the offer")

	text, isErr = call(t, f.srv.handleIgnore, map[string]interface{}{"index": float64(5)})
	assert.True(t, isErr)
	assert.Contains(t, text, "no offer at index 5")

	text, isErr = call(t, f.srv.handleIgnore, map[string]interface{}{"buyer": "Buyer", "item": "Mageblood"})
	assert.True(t, isErr)
	assert.Contains(t, text, `no offer from "Buyer"`)

	assert.Len(t, f.offers(t), 1)
}

func TestRemoveKicksBuyer(t *testing.T) {
	f := newFixture(t)
	f.addOffer(t, 1, "Headhunter", "Buyer")

	_, isErr := call(t, f.srv.handleRemove, map[string]interface{}{"index": float64(0)})
	assert.False(t, isErr)
	assert.Equal(t, []string{"/kick Buyer"}, f.rec.Commands())
	assert.Empty(t, f.offers(t))
}

func TestPartyInviteSelectsAndHighlight(t *testing.T) {
	f := newFixture(t)
	f.addOffer(t, 1, "Headhunter", "Buyer")

	_, isErr := call(t, f.srv.handlePartyInvite, map[string]interface{}{"buyer": "Buyer"})
	require.False(t, isErr)

	text, isErr := call(t, f.srv.handleHighlight, nil)
	assert.False(t, isErr, text)
	assert.Contains(t, text, "show_grid: true")

	text, _ = call(t, f.srv.handleClearHighlight, nil)
	assert.Contains(t, text, "show_grid: false")
}

func TestKickRequiresName(t *testing.T) {
	f := newFixture(t)

	_, isErr := call(t, f.srv.handleKick, map[string]interface{}{"name": "  "})
	assert.True(t, isErr)

	_, isErr = call(t, f.srv.handleKick, map[string]interface{}{"name": "Griefer"})
	assert.False(t, isErr)
	assert.Equal(t, []string{"/kick Griefer"}, f.rec.Commands())
}

func TestGridPositionSaves(t *testing.T) {
	f := newFixture(t)

	text, isErr := call(t, f.srv.handleGridPosition, map[string]interface{}{"axis": "top", "px": float64(42)})
	assert.False(t, isErr, text)
	assert.Equal(t, 1, f.store.Saves())

	s, err := f.store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, s.Trade.OverlayHighlightTop)

	_, isErr = call(t, f.srv.handleGridPosition, map[string]interface{}{"axis": "diagonal", "px": float64(1)})
	assert.True(t, isErr)
}

func TestGridDemo(t *testing.T) {
	f := newFixture(t)

	text, _ := call(t, f.srv.handleGridDemo, nil)
	assert.Contains(t, text, "grid_demo: true")
	assert.Contains(t, text, "show_grid: true")
}

func TestStatusAndOffers(t *testing.T) {
	f := newFixture(t)
	f.addOffer(t, 1, "Headhunter", "Buyer")

	text, isErr := call(t, f.srv.handleStatus, nil)
	assert.False(t, isErr)
	assert.Contains(t, text, "highlight:")
	assert.Contains(t, text, "item: Headhunter")

	text, _ = call(t, f.srv.handleOffers, nil)
	assert.Contains(t, text, "buyer: Buyer")
}

func TestFocusWithoutGame(t *testing.T) {
	f := newFixture(t)
	text, isErr := call(t, f.srv.handleFocus, nil)
	assert.False(t, isErr, text)
}

func TestParams(t *testing.T) {
	params := map[string]interface{}{
		"s": "x", "f": float64(3), "n": "7", "b": true, "bs": "false",
	}
	assert.Equal(t, "x", stringParam(params, "s", ""))
	assert.Equal(t, "d", stringParam(params, "missing", "d"))
	assert.Equal(t, 3, intParam(params, "f", 0))
	assert.Equal(t, 7, intParam(params, "n", 0))
	assert.Equal(t, -1, intParam(params, "s", -1))
	assert.True(t, boolParam(params, "b", false))
	assert.False(t, boolParam(params, "bs", true))
	assert.True(t, boolParam(params, "missing", true))
}
