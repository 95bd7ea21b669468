// Package engine runs the overlay: it polls the game window, follows the chat
// log, applies trade events and user actions, and publishes updates. All
// trade state is owned by a single loop goroutine.
package engine

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mj1618/trade-overlay/internal/chat"
	"github.com/mj1618/trade-overlay/internal/command"
	"github.com/mj1618/trade-overlay/internal/game"
	"github.com/mj1618/trade-overlay/internal/logging"
	"github.com/mj1618/trade-overlay/internal/metrics"
	"github.com/mj1618/trade-overlay/internal/model"
	"github.com/mj1618/trade-overlay/internal/platform"
	"github.com/mj1618/trade-overlay/internal/settings"
	"github.com/mj1618/trade-overlay/internal/trade"
)

// ErrStopped is returned by Do once the loop has exited.
var ErrStopped = errors.New("engine stopped")

// LineSource is a followed chat log.
type LineSource interface {
	Path() string
	Lines() <-chan string
	Stop() error
}

// FollowFunc starts following the chat log at path.
type FollowFunc func(path string) (LineSource, error)

// DispatcherFunc builds the command dispatcher once the game focuser exists.
type DispatcherFunc func(focuser command.Focuser) (command.Dispatcher, error)

// Config wires an Engine.
type Config struct {
	Reader        platform.WindowReader
	WindowManager platform.WindowManager
	Settings      settings.Source
	Metrics       *metrics.Metrics

	// Dispatcher builds the command dispatcher. Defaults to a dry run.
	Dispatcher DispatcherFunc
	// Follow opens chat logs. Defaults to chat.Follow from the end of file.
	Follow FollowFunc
	// Parser classifies chat lines. Defaults to a RegexParser built from
	// settings and rebuilt on every settings change.
	Parser chat.Parser
}

// reconfigurable is implemented by dispatchers whose pacing follows settings.
type reconfigurable interface {
	Configure(command.KeyboardConfig) error
}

type action struct {
	fn   func(ctx context.Context, m *trade.Manager) error
	errc chan error
}

// Engine is the overlay runtime.
type Engine struct {
	cfg        Config
	log        *logrus.Entry
	tracker    *game.Tracker
	manager    *trade.Manager
	dispatcher command.Dispatcher

	actions  chan action
	settings chan *settings.Settings
	done     chan struct{}

	hub *hub

	// Loop-owned state.
	current     *settings.Settings
	parser      chat.Parser
	tail        LineSource
	interval    time.Duration
	prevGame    model.GameState
	located     string
	pending     []Update
	lastOffers  []model.Offer
	lastCurrent *model.OfferKey
	lastHL      trade.HighlightState
}

// New builds an engine. It does not start polling until Run.
func New(cfg Config) (*Engine, error) {
	if cfg.Settings == nil {
		cfg.Settings = settings.NewMemoryStore(settings.Default())
	}
	if cfg.Follow == nil {
		cfg.Follow = func(path string) (LineSource, error) {
			return chat.Follow(path, chat.FollowOptions{})
		}
	}

	e := &Engine{
		cfg:      cfg,
		log:      logging.NewLogger("engine"),
		actions:  make(chan action),
		settings: make(chan *settings.Settings, 1),
		done:     make(chan struct{}),
		hub:      newHub(),
	}

	s, err := cfg.Settings.Get(context.Background())
	if err != nil || s == nil {
		e.log.WithError(err).Warn("Settings unavailable, using defaults")
		s = settings.Default()
	}
	e.current = s

	e.tracker = game.NewTracker(game.TrackerConfig{
		Reader:        cfg.Reader,
		WindowManager: cfg.WindowManager,
		Matcher:       game.NewMatcher(s.Game.ExtraExecutables, s.Game.ExtraTitles),
		Metrics:       cfg.Metrics,
		OnChange:      e.onGameChange,
		OnLogFile:     e.onLogFile,
	})

	if cfg.Dispatcher == nil {
		e.dispatcher = command.NewDryRun()
	} else if e.dispatcher, err = cfg.Dispatcher(e.tracker); err != nil {
		return nil, err
	}
	e.manager = trade.NewManager(e.dispatcher, cfg.Settings, cfg.Metrics)

	e.parser = cfg.Parser
	if e.parser == nil {
		if e.parser, err = chat.NewRegexParser(s.Chat); err != nil {
			return nil, err
		}
	}
	e.interval = pollInterval(s)
	e.lastOffers = e.manager.Store().Offers()
	e.lastHL = e.manager.Highlighter().State()
	return e, nil
}

// Tracker returns the game tracker. Its accessors are safe from any goroutine.
func (e *Engine) Tracker() *game.Tracker {
	return e.tracker
}

// GameState returns the latest game state.
func (e *Engine) GameState() model.GameState {
	return e.tracker.State()
}

// Run polls and processes events until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.done)
	defer e.stopTail()

	e.manager.Highlighter().LoadGridLocation(ctx)
	e.publishTrade()
	if e.current.Game.LogFile != "" {
		e.follow(e.current.Game.LogFile)
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.log.WithField("interval", e.interval).Info("Engine started")
	e.tick()

	for {
		var lines <-chan string
		if e.tail != nil {
			lines = e.tail.Lines()
		}

		select {
		case <-ctx.Done():
			e.log.Info("Engine stopped")
			return nil

		case <-ticker.C:
			e.tick()

		case line, ok := <-lines:
			if !ok {
				e.log.WithField("path", e.tail.Path()).Warn("Chat log closed")
				e.stopTail()
				continue
			}
			e.handleLine(ctx, line)

		case a := <-e.actions:
			a.errc <- a.fn(ctx, e.manager)
			e.publishTrade()

		case s := <-e.settings:
			if d := e.applySettings(s); d > 0 {
				ticker.Reset(d)
			}
		}
		e.flush()
	}
}

func (e *Engine) tick() {
	e.tracker.Update()
	e.flush()
}

// Do runs fn on the loop goroutine with exclusive access to the trade
// manager, and publishes the resulting offer and highlight updates.
func (e *Engine) Do(ctx context.Context, fn func(ctx context.Context, m *trade.Manager) error) error {
	a := action{fn: fn, errc: make(chan error, 1)}
	select {
	case e.actions <- a:
	case <-e.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-a.errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SettingsChanged hands new settings to the loop. Only the latest pending
// settings are kept.
func (e *Engine) SettingsChanged(s *settings.Settings) {
	if s == nil {
		return
	}
	for {
		select {
		case e.settings <- s:
			return
		default:
		}
		select {
		case <-e.settings:
		default:
		}
	}
}

// applySettings reconfigures every component from s and returns the new poll
// interval when it changed.
func (e *Engine) applySettings(s *settings.Settings) time.Duration {
	prev := e.current
	e.current = s

	e.tracker.SetMatcher(game.NewMatcher(s.Game.ExtraExecutables, s.Game.ExtraTitles))
	e.manager.Highlighter().ApplySettings(s)

	if e.cfg.Parser == nil {
		if p, err := chat.NewRegexParser(s.Chat); err != nil {
			e.log.WithError(err).Warn("Keeping previous chat patterns")
		} else {
			e.parser = p
		}
	}

	if rc, ok := e.dispatcher.(reconfigurable); ok {
		if err := rc.Configure(KeyboardConfig(s)); err != nil {
			e.log.WithError(err).Warn("Keeping previous command pacing")
		}
	}

	if s.Game.LogFile != prev.Game.LogFile {
		switch {
		case s.Game.LogFile != "":
			e.follow(s.Game.LogFile)
		case e.located != "":
			e.follow(e.located)
		default:
			e.stopTail()
		}
	}

	e.publishTrade()
	e.log.Info("Settings applied")

	d := pollInterval(s)
	if d == e.interval {
		return 0
	}
	e.interval = d
	return d
}

// KeyboardConfig derives keyboard pacing from settings.
func KeyboardConfig(s *settings.Settings) command.KeyboardConfig {
	return command.KeyboardConfig{
		KeyDelay:      s.Commands.KeyDelay.Std(),
		RatePerSecond: s.Commands.RatePerSecond,
		Burst:         s.Commands.Burst,
		ChatKey:       s.Commands.ChatKey,
	}
}

func pollInterval(s *settings.Settings) time.Duration {
	if d := s.Game.PollInterval.Std(); d > 0 {
		return d
	}
	return settings.DefaultPollInterval
}

func (e *Engine) onGameChange(state model.GameState) {
	change := model.DiffGameState(e.prevGame, state)
	e.prevGame = state
	if change == nil {
		return
	}
	e.queue(Update{Kind: UpdateGame, Game: change})
}

func (e *Engine) onLogFile(path string) {
	e.located = path
	e.queue(Update{Kind: UpdateLogFile, LogFile: path})
	if e.current.Game.LogFile != "" {
		e.log.WithField("path", path).Debug("Chat log overridden by settings")
		return
	}
	e.follow(path)
}
