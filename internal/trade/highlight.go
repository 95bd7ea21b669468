package trade

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mj1618/trade-overlay/internal/command"
	overlayerrors "github.com/mj1618/trade-overlay/internal/errors"
	"github.com/mj1618/trade-overlay/internal/logging"
	"github.com/mj1618/trade-overlay/internal/model"
	"github.com/mj1618/trade-overlay/internal/settings"
)

// Axis names a grid coordinate.
type Axis string

const (
	AxisTop  Axis = "top"
	AxisLeft Axis = "left"
)

// ParseAxis validates an axis name.
func ParseAxis(s string) (Axis, error) {
	switch Axis(s) {
	case AxisTop, AxisLeft:
		return Axis(s), nil
	}
	return "", overlayerrors.InvalidInput(fmt.Sprintf("unknown grid axis %q (expected top or left)", s))
}

// HighlightState is what the overlay renders for the highlight grid.
type HighlightState struct {
	Highlight    bool               `json:"highlight"     yaml:"highlight"`
	Searching    bool               `json:"searching"     yaml:"searching"`
	ShowGrid     bool               `json:"show_grid"     yaml:"show_grid"`
	DropShadow   bool               `json:"drop_shadow"   yaml:"drop_shadow"`
	DarkerShadow bool               `json:"darker_shadow" yaml:"darker_shadow"`
	GridDemo     bool               `json:"grid_demo"     yaml:"grid_demo"`
	Grid         model.GridLocation `json:"grid"          yaml:"grid"`
}

// Highlighter keeps the highlight grid and the in-game search in step with
// the selected offer.
type Highlighter struct {
	store      *Store
	dispatcher command.Dispatcher
	settings   settings.Source
	log        *logrus.Entry

	state HighlightState
}

// NewHighlighter creates a highlighter for the store's selected offer.
func NewHighlighter(store *Store, dispatcher command.Dispatcher, source settings.Source) *Highlighter {
	return &Highlighter{
		store:      store,
		dispatcher: dispatcher,
		settings:   source,
		log:        logging.NewLogger("highlight"),
		state:      HighlightState{DropShadow: true},
	}
}

// State returns the current highlight state.
func (h *Highlighter) State() HighlightState {
	return h.state
}

// Toggle flips highlighting of the selected offer's item using the
// highlight modes from settings. Turning the highlight off hides the grid and
// cancels the search even when their mode has since been disabled. Without a
// selected offer it clears every highlight flag.
func (h *Highlighter) Toggle(ctx context.Context) error {
	s := snapshot(ctx, h.settings, h.log)

	var err error
	if cur := h.store.Current(); cur != nil {
		h.state.Highlight = !h.state.Highlight

		if s.Trade.OverlayHighlight {
			h.state.DropShadow = s.Trade.OverlayHighlightDropShadow
		}
		h.state.DarkerShadow = !s.Trade.InGameHighlight

		switch {
		case h.state.Highlight:
			if s.Trade.OverlayHighlight {
				h.state.ShowGrid = true
			}
			if s.Trade.InGameHighlight {
				err = h.dispatcher.Search(ctx, cur.ItemName)
				h.state.Searching = err == nil
			}
		case h.state.Searching || s.Trade.InGameHighlight:
			h.state.ShowGrid = false
			h.state.Searching = false
			err = h.dispatcher.ClearSearch(ctx)
		default:
			h.state.ShowGrid = false
		}
	} else if h.state.ShowGrid || h.state.Searching || h.state.Highlight {
		err = h.Clear(ctx)
	}

	if !h.state.ShowGrid && h.state.GridDemo {
		h.state.GridDemo = false
	}
	return err
}

// Clear hides the grid and cancels the in-game search. Calling it when
// nothing is highlighted does nothing.
func (h *Highlighter) Clear(ctx context.Context) error {
	h.state.ShowGrid = false
	h.state.Highlight = false
	if !h.state.Searching {
		return nil
	}
	h.state.Searching = false
	return h.dispatcher.ClearSearch(ctx)
}

// SetGridDemo flips calibration mode, which shows every grid cell. When
// showGrid is set the grid visibility follows the demo flag. An active
// search is cancelled since it darkens the stash.
func (h *Highlighter) SetGridDemo(ctx context.Context, showGrid bool) error {
	h.state.GridDemo = !h.state.GridDemo
	if showGrid {
		h.state.ShowGrid = h.state.GridDemo
	}
	if !h.state.Searching {
		return nil
	}
	h.state.Searching = false
	return h.dispatcher.ClearSearch(ctx)
}

// CheckDemo hides a grid left visible without a selected offer.
func (h *Highlighter) CheckDemo() {
	if h.store.Current() == nil && h.state.ShowGrid {
		h.state.ShowGrid = false
	}
	if !h.state.ShowGrid && h.state.GridDemo {
		h.state.GridDemo = false
	}
}

// UpdateGridPosition moves the grid along one axis and persists the offset.
func (h *Highlighter) UpdateGridPosition(ctx context.Context, axis Axis, px int) error {
	s, err := h.settings.Get(ctx)
	if err != nil {
		return err
	}
	switch axis {
	case AxisTop:
		h.state.Grid.Top = px
		s.Trade.OverlayHighlightTop = px
	case AxisLeft:
		h.state.Grid.Left = px
		s.Trade.OverlayHighlightLeft = px
	default:
		return overlayerrors.InvalidInput(fmt.Sprintf("unknown grid axis %q", axis))
	}
	return h.settings.Save(ctx, s)
}

// LoadGridLocation reads the persisted grid offset.
func (h *Highlighter) LoadGridLocation(ctx context.Context) {
	h.ApplySettings(snapshot(ctx, h.settings, h.log))
}

// ApplySettings takes the grid offset from a settings snapshot.
func (h *Highlighter) ApplySettings(s *settings.Settings) {
	h.state.Grid = s.Trade.GridLocation()
}

// snapshot fetches settings for one decision, falling back to defaults.
func snapshot(ctx context.Context, source settings.Source, log *logrus.Entry) *settings.Settings {
	if source == nil {
		return settings.Default()
	}
	s, err := source.Get(ctx)
	if err != nil || s == nil {
		log.WithError(err).Warn("Settings unavailable, using defaults")
		return settings.Default()
	}
	return s
}
