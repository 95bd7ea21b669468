package engine

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/mj1618/trade-overlay/internal/model"
	"github.com/mj1618/trade-overlay/internal/trade"
)

// UpdateKind names what an Update carries.
type UpdateKind string

const (
	UpdateGame      UpdateKind = "game"
	UpdateLogFile   UpdateKind = "log_file"
	UpdateOffers    UpdateKind = "offers"
	UpdateHighlight UpdateKind = "highlight"
)

// OfferList is the pending offers and the selected one.
type OfferList struct {
	Offers  []model.Offer   `json:"offers"            yaml:"offers"`
	Current *model.OfferKey `json:"current,omitempty" yaml:"current,omitempty"`
}

// Update is one change published to subscribers.
type Update struct {
	Kind      UpdateKind            `json:"kind"                yaml:"kind"`
	TS        int64                 `json:"ts"                  yaml:"ts"`
	Game      *model.StateChange    `json:"game,omitempty"      yaml:"game,omitempty"`
	LogFile   string                `json:"log_file,omitempty"  yaml:"log_file,omitempty"`
	Offers    *OfferList            `json:"offers,omitempty"    yaml:"offers,omitempty"`
	Highlight *trade.HighlightState `json:"highlight,omitempty" yaml:"highlight,omitempty"`
}

// SubscriberBuffer is the number of updates a slow subscriber may fall
// behind before updates to it are dropped.
const SubscriberBuffer = 64

type hub struct {
	mu   sync.Mutex
	subs map[chan Update]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[chan Update]struct{})}
}

// Subscribe returns a channel receiving every future update. Updates are
// dropped for a subscriber whose buffer is full.
func (e *Engine) Subscribe() <-chan Update {
	ch := make(chan Update, SubscriberBuffer)
	e.hub.mu.Lock()
	e.hub.subs[ch] = struct{}{}
	e.hub.mu.Unlock()
	return ch
}

// Unsubscribe stops delivery to ch and closes it.
func (e *Engine) Unsubscribe(ch <-chan Update) {
	e.hub.mu.Lock()
	defer e.hub.mu.Unlock()
	for c := range e.hub.subs {
		if c == ch {
			delete(e.hub.subs, c)
			close(c)
			return
		}
	}
}

func (e *Engine) queue(u Update) {
	u.TS = time.Now().Unix()
	e.pending = append(e.pending, u)
}

// flush delivers queued updates without blocking the loop.
func (e *Engine) flush() {
	if len(e.pending) == 0 {
		return
	}
	pending := e.pending
	e.pending = nil

	e.hub.mu.Lock()
	defer e.hub.mu.Unlock()
	for _, u := range pending {
		for ch := range e.hub.subs {
			select {
			case ch <- u:
			default:
				e.log.WithField("kind", u.Kind).Debug("Subscriber full, dropping update")
			}
		}
	}
}

// publishTrade queues offer and highlight updates when they differ from the
// last published ones.
func (e *Engine) publishTrade() {
	store := e.manager.Store()
	offers := store.Offers()
	var current *model.OfferKey
	if cur := store.Current(); cur != nil {
		key := cur.Key()
		current = &key
	}
	if !reflect.DeepEqual(offers, e.lastOffers) || !reflect.DeepEqual(current, e.lastCurrent) {
		e.lastOffers = offers
		e.lastCurrent = current
		e.queue(Update{Kind: UpdateOffers, Offers: &OfferList{Offers: offers, Current: current}})
	}

	hl := e.manager.Highlighter().State()
	if hl != e.lastHL {
		e.lastHL = hl
		e.queue(Update{Kind: UpdateHighlight, Highlight: &hl})
	}
}

// Snapshot is the full overlay state at one instant.
type Snapshot struct {
	Game      model.GameState      `json:"game"               yaml:"game"`
	LogFile   string               `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	Offers    OfferList            `json:"offers"             yaml:"offers"`
	Highlight trade.HighlightState `json:"highlight"          yaml:"highlight"`
}

// Snapshot reads the current state through the loop.
func (e *Engine) Snapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	err := e.Do(ctx, func(ctx context.Context, m *trade.Manager) error {
		snap.Offers.Offers = m.Store().Offers()
		if cur := m.Store().Current(); cur != nil {
			key := cur.Key()
			snap.Offers.Current = &key
		}
		snap.Highlight = m.Highlighter().State()
		snap.LogFile = e.logFile()
		return nil
	})
	if err != nil {
		return nil, err
	}
	snap.Game = e.tracker.State()
	return &snap, nil
}
