package engine

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mj1618/trade-overlay/internal/chat"
)

// follow switches the chat source to path.
func (e *Engine) follow(path string) {
	if e.tail != nil && e.tail.Path() == path {
		return
	}
	e.stopTail()

	src, err := e.cfg.Follow(path)
	if err != nil {
		e.log.WithError(err).WithField("path", path).Warn("Cannot follow chat log")
		return
	}
	e.tail = src
}

func (e *Engine) stopTail() {
	if e.tail == nil {
		return
	}
	if err := e.tail.Stop(); err != nil {
		e.log.WithError(err).Debug("Stopping chat log follower")
	}
	e.tail = nil
}

// logFile is the chat log currently in use: the settings override, or the
// path located from the game executable.
func (e *Engine) logFile() string {
	if e.current.Game.LogFile != "" {
		return e.current.Game.LogFile
	}
	return e.located
}

func (e *Engine) handleLine(ctx context.Context, line string) {
	ev, ok := e.parser.Parse(line)
	if !ok {
		e.cfg.Metrics.ObserveChatLine("")
		return
	}
	e.cfg.Metrics.ObserveChatLine(string(ev.Kind))

	switch ev.Kind {
	case chat.EventOffer:
		e.manager.HandleNewOffer(ev.Offer)
	case chat.EventAccepted:
		if err := e.manager.HandleTradeAccepted(ctx); err != nil {
			e.log.WithError(err).Warn("Completing accepted trade")
		}
	case chat.EventCancelled:
		e.manager.HandleTradeCancelled()
	default:
		e.log.WithFields(logrus.Fields{"kind": ev.Kind}).Debug("Unhandled chat event")
	}
	e.publishTrade()
}
