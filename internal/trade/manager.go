package trade

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/mj1618/trade-overlay/internal/command"
	"github.com/mj1618/trade-overlay/internal/logging"
	"github.com/mj1618/trade-overlay/internal/metrics"
	"github.com/mj1618/trade-overlay/internal/model"
	"github.com/mj1618/trade-overlay/internal/settings"
)

// Manager applies chat events and user actions to the offer store, sending
// the matching game commands. Every command is preceded by clearing the
// highlight, so a pending search never swallows chat input.
type Manager struct {
	store      *Store
	highlight  *Highlighter
	dispatcher command.Dispatcher
	settings   settings.Source
	log        *logrus.Entry
}

// NewManager wires a manager and its store and highlighter.
func NewManager(dispatcher command.Dispatcher, source settings.Source, m *metrics.Metrics) *Manager {
	store := NewStore(m)
	return &Manager{
		store:      store,
		highlight:  NewHighlighter(store, dispatcher, source),
		dispatcher: dispatcher,
		settings:   source,
		log:        logging.NewLogger("trade"),
	}
}

// Store returns the offer store.
func (m *Manager) Store() *Store {
	return m.store
}

// Highlighter returns the highlight controller.
func (m *Manager) Highlighter() *Highlighter {
	return m.highlight
}

// HandleNewOffer appends an offer parsed from chat.
func (m *Manager) HandleNewOffer(o *model.Offer) {
	if m.store.Add(o) {
		m.log.WithFields(logrus.Fields{
			"buyer": o.BuyerName,
			"item":  o.ItemName,
			"price": o.Price.String(),
		}).Info("New trade offer")
	}
}

// HandleTradeCancelled resets every trade request. The chat message does not
// say which trade was cancelled.
func (m *Manager) HandleTradeCancelled() {
	m.store.ResetAll()
}

// HandleTradeAccepted completes the trade-requested offer: it optionally
// thanks and kicks the buyer, then removes the offer. Both options are read
// from one settings snapshot.
func (m *Manager) HandleTradeAccepted(ctx context.Context) error {
	_, o := m.store.FindTradeRequested()
	if o == nil {
		return nil
	}
	s := snapshot(ctx, m.settings, m.log)

	var errs []error
	if s.Trade.AutoWhisper {
		errs = append(errs, m.whisper(ctx, command.WhisperThanks, o, s))
	}
	if s.Trade.AutoKick {
		errs = append(errs, m.KickBuyer(ctx, o.BuyerName))
	}
	errs = append(errs, m.RemoveAccepted(ctx))
	m.log.WithField("buyer", o.BuyerName).Info("Trade accepted")
	return errors.Join(errs...)
}

// RemoveAccepted removes the trade-requested offer and tears down the
// highlight.
func (m *Manager) RemoveAccepted(ctx context.Context) error {
	if m.store.RemoveAccepted() == nil {
		return nil
	}
	return m.highlight.Clear(ctx)
}

// Ignore drops an offer without telling the buyer.
func (m *Manager) Ignore(ctx context.Context, key model.OfferKey) error {
	var err error
	if cur := m.store.Current(); cur != nil && cur.Key() == key {
		err = m.highlight.Clear(ctx)
	}
	m.store.Ignore(key)
	return err
}

// RemoveOffer kicks the buyer and drops the offer.
func (m *Manager) RemoveOffer(ctx context.Context, key model.OfferKey) error {
	o := m.store.Find(key)
	if o == nil {
		return nil
	}
	err := m.KickBuyer(ctx, o.BuyerName)
	m.store.Remove(key, metrics.ReasonRemoved)
	return err
}

// KickBuyer removes a player from the party.
func (m *Manager) KickBuyer(ctx context.Context, name string) error {
	return m.send(ctx, command.Kick(name))
}

// SendWhisper whispers the buyer of an offer. A sold whisper also drops the
// offer.
func (m *Manager) SendWhisper(ctx context.Context, kind command.WhisperKind, key model.OfferKey) error {
	o := m.store.Find(key)
	if o == nil {
		return nil
	}
	err := m.whisper(ctx, kind, o, snapshot(ctx, m.settings, m.log))
	if kind == command.WhisperSold {
		m.store.Remove(key, metrics.ReasonSold)
	}
	return err
}

// SendTradeRequest asks the buyer to trade and flags the offer.
func (m *Manager) SendTradeRequest(ctx context.Context, key model.OfferKey) error {
	o := m.store.Find(key)
	if o == nil {
		return nil
	}
	if err := m.send(ctx, command.TradeWith(o.BuyerName)); err != nil {
		return err
	}
	o.TradeRequestSent = true
	return nil
}

// SendPartyInvite invites the buyer, flags the offer, and selects it.
func (m *Manager) SendPartyInvite(ctx context.Context, key model.OfferKey) error {
	o := m.store.Find(key)
	if o == nil {
		return nil
	}
	if err := m.send(ctx, command.Invite(o.BuyerName)); err != nil {
		return err
	}
	o.PartyInviteSent = true
	m.store.Select(o)
	return nil
}

// Select makes an offer current. Selecting an unknown offer is a no-op.
func (m *Manager) Select(ctx context.Context, key model.OfferKey) error {
	o := m.store.Find(key)
	if o == nil || o == m.store.Current() {
		return nil
	}
	err := m.highlight.Clear(ctx)
	m.store.Select(o)
	return err
}

// CheckDemo hides a grid left over without a selected offer.
func (m *Manager) CheckDemo() {
	m.highlight.CheckDemo()
}

func (m *Manager) whisper(ctx context.Context, kind command.WhisperKind, o *model.Offer, s *settings.Settings) error {
	return m.send(ctx, command.BuildWhisper(kind, o, s))
}

func (m *Manager) send(ctx context.Context, text string) error {
	clearErr := m.highlight.Clear(ctx)
	if err := m.dispatcher.Command(ctx, text); err != nil {
		return err
	}
	return clearErr
}
