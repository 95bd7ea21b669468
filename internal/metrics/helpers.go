package metrics

import "strconv"

// ObservePoll records one poll tick and whether its query failed.
func (m *Metrics) ObservePoll(err error) {
	if m == nil {
		return
	}
	m.PollTicks.Inc()
	if err != nil {
		m.PollErrors.Inc()
	}
}

// ObserveStateChange records an observable game state change.
func (m *Metrics) ObserveStateChange(active bool) {
	if m == nil {
		return
	}
	m.StateChanges.WithLabelValues(strconv.FormatBool(active)).Inc()
	if active {
		m.GameActive.Set(1)
	} else {
		m.GameActive.Set(0)
	}
}

// ObserveLogFile records that the chat log was located.
func (m *Metrics) ObserveLogFile() {
	if m == nil {
		return
	}
	m.LogFiles.Inc()
}

// OfferAdded records an offer entering the store.
func (m *Metrics) OfferAdded(pending int) {
	if m == nil {
		return
	}
	m.OffersAdded.Inc()
	m.OffersPending.Set(float64(pending))
}

// OfferRemoved records an offer leaving the store.
func (m *Metrics) OfferRemoved(reason string, pending int) {
	if m == nil {
		return
	}
	m.OffersRemoved.WithLabelValues(reason).Inc()
	m.OffersPending.Set(float64(pending))
}

// ObserveCommand records a dispatched command and its outcome.
func (m *Metrics) ObserveCommand(kind string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.CommandsFailed.WithLabelValues(kind).Inc()
		return
	}
	m.CommandsSent.WithLabelValues(kind).Inc()
}

// ObserveChatLine records a chat line and, when recognized, its event kind.
func (m *Metrics) ObserveChatLine(kind string) {
	if m == nil {
		return
	}
	m.ChatLines.Inc()
	if kind != "" {
		m.ChatEvents.WithLabelValues(kind).Inc()
	}
}
