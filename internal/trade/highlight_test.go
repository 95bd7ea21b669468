package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/trade-overlay/internal/command"
	overlayerrors "github.com/mj1618/trade-overlay/internal/errors"
	"github.com/mj1618/trade-overlay/internal/model"
	"github.com/mj1618/trade-overlay/internal/settings"
)

type highlightFixture struct {
	store    *Store
	rec      *command.Recorder
	settings *settings.MemoryStore
	h        *Highlighter
}

func newHighlightFixture(configure func(*settings.Settings)) *highlightFixture {
	s := settings.Default()
	if configure != nil {
		configure(s)
	}
	f := &highlightFixture{
		store:    NewStore(nil),
		rec:      command.NewRecorder(),
		settings: settings.NewMemoryStore(s),
	}
	f.h = NewHighlighter(f.store, f.rec, f.settings)
	return f
}

func (f *highlightFixture) selectOffer() *model.Offer {
	o := offerAt(1, "Headhunter Leather Belt", "Buyer")
	f.store.Add(o)
	f.store.Select(o)
	return o
}

func TestToggle_OverlayMode(t *testing.T) {
	f := newHighlightFixture(func(s *settings.Settings) {
		s.Trade.OverlayHighlight = true
		s.Trade.OverlayHighlightDropShadow = false
		s.Trade.InGameHighlight = false
	})
	f.selectOffer()
	ctx := context.Background()

	require.NoError(t, f.h.Toggle(ctx))
	st := f.h.State()
	assert.True(t, st.Highlight)
	assert.True(t, st.ShowGrid)
	assert.False(t, st.DropShadow)
	assert.True(t, st.DarkerShadow, "darker shadow when the in-game search is off")
	assert.False(t, st.Searching)
	assert.Empty(t, f.rec.Sent())

	require.NoError(t, f.h.Toggle(ctx))
	assert.False(t, f.h.State().ShowGrid)
	assert.False(t, f.h.State().Highlight)
}

func TestToggle_InGameMode(t *testing.T) {
	f := newHighlightFixture(func(s *settings.Settings) {
		s.Trade.OverlayHighlight = false
		s.Trade.InGameHighlight = true
	})
	f.selectOffer()
	ctx := context.Background()

	require.NoError(t, f.h.Toggle(ctx))
	st := f.h.State()
	assert.True(t, st.Searching)
	assert.False(t, st.DarkerShadow)
	assert.False(t, st.ShowGrid)

	require.NoError(t, f.h.Toggle(ctx))
	assert.False(t, f.h.State().Searching)

	assert.Equal(t, []command.Sent{
		{Kind: command.SentSearch, Text: "Headhunter Leather Belt"},
		{Kind: command.SentClearSearch},
	}, f.rec.Sent())
}

func TestToggle_SearchFailureLeavesSearchOff(t *testing.T) {
	f := newHighlightFixture(func(s *settings.Settings) { s.Trade.InGameHighlight = true })
	f.selectOffer()
	f.rec.Err = errors.New("game not focused")

	assert.Error(t, f.h.Toggle(context.Background()))
	assert.False(t, f.h.State().Searching)
}

func TestToggle_WithoutOfferClearsFlags(t *testing.T) {
	f := newHighlightFixture(func(s *settings.Settings) { s.Trade.InGameHighlight = true })
	o := f.selectOffer()
	ctx := context.Background()
	require.NoError(t, f.h.Toggle(ctx))

	f.store.Ignore(o.Key())
	f.rec.Reset()
	require.NoError(t, f.h.Toggle(ctx))

	st := f.h.State()
	assert.False(t, st.Highlight)
	assert.False(t, st.Searching)
	assert.False(t, st.ShowGrid)
	assert.Equal(t, []command.Sent{{Kind: command.SentClearSearch}}, f.rec.Sent())
}

func TestToggle_WithoutOfferAndNothingSetIsNoop(t *testing.T) {
	f := newHighlightFixture(nil)
	require.NoError(t, f.h.Toggle(context.Background()))
	assert.Equal(t, HighlightState{DropShadow: true}, f.h.State())
	assert.Empty(t, f.rec.Sent())
}

func TestToggle_HidingGridEndsDemo(t *testing.T) {
	f := newHighlightFixture(func(s *settings.Settings) { s.Trade.OverlayHighlight = true })
	f.selectOffer()
	ctx := context.Background()

	require.NoError(t, f.h.SetGridDemo(ctx, true))
	require.True(t, f.h.State().GridDemo)

	require.NoError(t, f.h.Toggle(ctx)) // highlight on, grid shown
	require.NoError(t, f.h.Toggle(ctx)) // highlight off, grid hidden
	assert.False(t, f.h.State().GridDemo)
}

func TestToggle_ModeDisabledWhileHighlighted(t *testing.T) {
	f := newHighlightFixture(func(s *settings.Settings) {
		s.Trade.OverlayHighlight = true
		s.Trade.InGameHighlight = true
	})
	f.selectOffer()
	ctx := context.Background()
	require.NoError(t, f.h.Toggle(ctx))
	require.True(t, f.h.State().ShowGrid)
	require.True(t, f.h.State().Searching)

	s, err := f.settings.Get(ctx)
	require.NoError(t, err)
	s.Trade.OverlayHighlight = false
	s.Trade.InGameHighlight = false
	require.NoError(t, f.settings.Save(ctx, s))

	require.NoError(t, f.h.Toggle(ctx))
	st := f.h.State()
	assert.False(t, st.Highlight)
	assert.False(t, st.ShowGrid)
	assert.False(t, st.Searching)
	assert.Equal(t, []command.Sent{
		{Kind: command.SentSearch, Text: "Headhunter Leather Belt"},
		{Kind: command.SentClearSearch},
	}, f.rec.Sent())
}

func TestToggle_OverlayDisabledWhileHighlighted(t *testing.T) {
	f := newHighlightFixture(func(s *settings.Settings) {
		s.Trade.OverlayHighlight = true
		s.Trade.InGameHighlight = false
	})
	f.selectOffer()
	ctx := context.Background()
	require.NoError(t, f.h.Toggle(ctx))

	s, err := f.settings.Get(ctx)
	require.NoError(t, err)
	s.Trade.OverlayHighlight = false
	require.NoError(t, f.settings.Save(ctx, s))

	require.NoError(t, f.h.Toggle(ctx))
	assert.False(t, f.h.State().ShowGrid)
	assert.Empty(t, f.rec.Sent())
}

func TestToggle_SettingsUnavailableUsesDefaults(t *testing.T) {
	store := NewStore(nil)
	o := offerAt(1, "A", "X")
	store.Add(o)
	store.Select(o)
	h := NewHighlighter(store, command.NewRecorder(), failingSource{})

	require.NoError(t, h.Toggle(context.Background()))
	assert.True(t, h.State().ShowGrid, "overlay highlight is on by default")
}

func TestClear_Idempotent(t *testing.T) {
	f := newHighlightFixture(func(s *settings.Settings) {
		s.Trade.OverlayHighlight = true
		s.Trade.InGameHighlight = true
	})
	f.selectOffer()
	ctx := context.Background()
	require.NoError(t, f.h.Toggle(ctx))
	f.rec.Reset()

	require.NoError(t, f.h.Clear(ctx))
	once := f.h.State()
	require.NoError(t, f.h.Clear(ctx))

	assert.Equal(t, once, f.h.State())
	assert.False(t, once.ShowGrid)
	assert.False(t, once.Searching)
	assert.Equal(t, []command.Sent{{Kind: command.SentClearSearch}}, f.rec.Sent(), "search is cancelled only once")
}

func TestClear_NothingActive(t *testing.T) {
	f := newHighlightFixture(nil)
	require.NoError(t, f.h.Clear(context.Background()))
	assert.Empty(t, f.rec.Sent())
}

func TestSetGridDemo(t *testing.T) {
	f := newHighlightFixture(func(s *settings.Settings) { s.Trade.InGameHighlight = true })
	f.selectOffer()
	ctx := context.Background()
	require.NoError(t, f.h.Toggle(ctx))
	f.rec.Reset()

	require.NoError(t, f.h.SetGridDemo(ctx, true))
	st := f.h.State()
	assert.True(t, st.GridDemo)
	assert.True(t, st.ShowGrid)
	assert.False(t, st.Searching)
	assert.Equal(t, []command.Sent{{Kind: command.SentClearSearch}}, f.rec.Sent())

	require.NoError(t, f.h.SetGridDemo(ctx, true))
	assert.False(t, f.h.State().GridDemo)
	assert.False(t, f.h.State().ShowGrid)
}

func TestSetGridDemo_WithoutShowGrid(t *testing.T) {
	f := newHighlightFixture(nil)
	require.NoError(t, f.h.SetGridDemo(context.Background(), false))
	assert.True(t, f.h.State().GridDemo)
	assert.False(t, f.h.State().ShowGrid)
}

func TestCheckDemo(t *testing.T) {
	f := newHighlightFixture(nil)
	ctx := context.Background()
	require.NoError(t, f.h.SetGridDemo(ctx, true))

	f.h.CheckDemo()
	assert.False(t, f.h.State().ShowGrid)
	assert.False(t, f.h.State().GridDemo)
}

func TestCheckDemo_KeepsGridWithOffer(t *testing.T) {
	f := newHighlightFixture(nil)
	f.selectOffer()
	require.NoError(t, f.h.SetGridDemo(context.Background(), true))

	f.h.CheckDemo()
	assert.True(t, f.h.State().ShowGrid)
}

func TestUpdateGridPosition(t *testing.T) {
	f := newHighlightFixture(nil)
	ctx := context.Background()

	require.NoError(t, f.h.UpdateGridPosition(ctx, AxisTop, 42))
	require.NoError(t, f.h.UpdateGridPosition(ctx, AxisLeft, -7))

	assert.Equal(t, model.GridLocation{Top: 42, Left: -7}, f.h.State().Grid)
	assert.Equal(t, 2, f.settings.Saves())

	s, _ := f.settings.Get(ctx)
	assert.Equal(t, 42, s.Trade.OverlayHighlightTop)
	assert.Equal(t, -7, s.Trade.OverlayHighlightLeft)
}

func TestUpdateGridPosition_BadAxis(t *testing.T) {
	f := newHighlightFixture(nil)
	err := f.h.UpdateGridPosition(context.Background(), Axis("diagonal"), 1)
	assert.True(t, overlayerrors.Is(err, overlayerrors.ErrCodeInvalidInput))
	assert.Equal(t, 0, f.settings.Saves())
}

func TestLoadGridLocation(t *testing.T) {
	f := newHighlightFixture(func(s *settings.Settings) {
		s.Trade.OverlayHighlightTop = 11
		s.Trade.OverlayHighlightLeft = 22
	})
	f.h.LoadGridLocation(context.Background())
	assert.Equal(t, model.GridLocation{Top: 11, Left: 22}, f.h.State().Grid)
}

func TestParseAxis(t *testing.T) {
	a, err := ParseAxis("top")
	require.NoError(t, err)
	assert.Equal(t, AxisTop, a)
	_, err = ParseAxis("bottom")
	assert.Error(t, err)
}

type failingSource struct{}

func (failingSource) Get(ctx context.Context) (*settings.Settings, error) {
	return nil, errors.New("settings unavailable")
}

func (failingSource) Save(ctx context.Context, s *settings.Settings) error {
	return errors.New("settings unavailable")
}
