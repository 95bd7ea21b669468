// Package trade holds the offer lifecycle: the ordered offer store, the
// highlight controller, and the manager turning user actions and chat events
// into store mutations and game commands.
//
// None of the types here are safe for concurrent use. They are owned by a
// single event loop that serializes every call.
package trade

import (
	"github.com/sirupsen/logrus"

	"github.com/mj1618/trade-overlay/internal/logging"
	"github.com/mj1618/trade-overlay/internal/metrics"
	"github.com/mj1618/trade-overlay/internal/model"
)

// Store is the ordered collection of pending offers. Insertion order is
// display order and is never re-sorted.
type Store struct {
	offers  []*model.Offer
	current *model.Offer
	metrics *metrics.Metrics
	log     *logrus.Entry
}

// NewStore creates an empty store.
func NewStore(m *metrics.Metrics) *Store {
	return &Store{
		metrics: m,
		log:     logging.NewLogger("offers"),
	}
}

// Add appends an offer. A nil offer is ignored. Offers sharing an identity
// with a pending one are kept; each is removed separately.
func (s *Store) Add(o *model.Offer) bool {
	if o == nil {
		return false
	}
	s.offers = append(s.offers, o)
	s.metrics.OfferAdded(len(s.offers))
	return true
}

// Find returns the first offer with the given identity, or nil.
func (s *Store) Find(key model.OfferKey) *model.Offer {
	if i := s.index(key); i >= 0 {
		return s.offers[i]
	}
	return nil
}

// Ignore removes the first offer with the given identity. Removing an
// offer that is not there is a no-op.
func (s *Store) Ignore(key model.OfferKey) bool {
	return s.Remove(key, metrics.ReasonIgnored)
}

// Remove removes the first offer with the given identity, recording reason.
// The selection is cleared when the removed offer was selected.
func (s *Store) Remove(key model.OfferKey, reason string) bool {
	i := s.index(key)
	if i < 0 {
		return false
	}
	if s.current == s.offers[i] {
		s.current = nil
	}
	s.removeAt(i, reason)
	return true
}

// RemoveAccepted removes the first offer with a trade request sent and clears
// the selection. It returns the removed offer, or nil.
func (s *Store) RemoveAccepted() *model.Offer {
	i, o := s.FindTradeRequested()
	if o == nil {
		return nil
	}
	s.current = nil
	s.removeAt(i, metrics.ReasonAccepted)
	return o
}

// FindTradeRequested returns the first offer with a trade request sent. If
// several are flagged the first one wins, and a warning is logged since the
// accepted trade may belong to another one.
func (s *Store) FindTradeRequested() (int, *model.Offer) {
	found := -1
	flagged := 0
	for i, o := range s.offers {
		if o.TradeRequestSent {
			if found < 0 {
				found = i
			}
			flagged++
		}
	}
	if found < 0 {
		return -1, nil
	}
	if flagged > 1 {
		s.log.WithField("flagged", flagged).Warn("Several offers have a pending trade request, assuming the oldest")
	}
	return found, s.offers[found]
}

// ResetAll clears the trade request flag on every offer.
func (s *Store) ResetAll() {
	for _, o := range s.offers {
		o.TradeRequestSent = false
	}
}

// Select makes o the current offer. o must be in the store or nil.
func (s *Store) Select(o *model.Offer) {
	s.current = o
}

// Current returns the selected offer, or nil.
func (s *Store) Current() *model.Offer {
	return s.current
}

// At returns the offer at position i in display order, or nil when i is out
// of range.
func (s *Store) At(i int) *model.Offer {
	if i < 0 || i >= len(s.offers) {
		return nil
	}
	return s.offers[i]
}

// Len returns the number of pending offers.
func (s *Store) Len() int {
	return len(s.offers)
}

// Offers returns copies of the pending offers in order.
func (s *Store) Offers() []model.Offer {
	out := make([]model.Offer, len(s.offers))
	for i, o := range s.offers {
		out[i] = *o
	}
	return out
}

func (s *Store) index(key model.OfferKey) int {
	for i, o := range s.offers {
		if o.Key() == key {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(i int, reason string) {
	s.offers = append(s.offers[:i], s.offers[i+1:]...)
	s.metrics.OfferRemoved(reason, len(s.offers))
}
