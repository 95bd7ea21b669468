package game

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mj1618/trade-overlay/internal/logging"
	"github.com/mj1618/trade-overlay/internal/metrics"
	"github.com/mj1618/trade-overlay/internal/model"
	"github.com/mj1618/trade-overlay/internal/platform"
)

// TrackerConfig wires a Tracker to its collaborators.
type TrackerConfig struct {
	Reader        platform.WindowReader
	WindowManager platform.WindowManager
	Matcher       *Matcher
	Metrics       *metrics.Metrics

	// OnChange is called after a poll that changed the observable state.
	OnChange func(model.GameState)
	// OnLogFile is called when the game is freshly detected, with the
	// derived chat log path.
	OnLogFile func(path string)
}

// Tracker owns the game state. Update must be called from a single goroutine;
// the read accessors are safe from any goroutine.
type Tracker struct {
	cfg TrackerConfig
	log *logrus.Entry

	mu          sync.RWMutex
	matcher     *Matcher
	state       model.GameState
	window      *model.Window
	logFile     string
	fingerprint string
	failing     bool
}

// NewTracker creates a tracker in the unknown state.
func NewTracker(cfg TrackerConfig) *Tracker {
	if cfg.Matcher == nil {
		cfg.Matcher = NewMatcher(nil, nil)
	}
	t := &Tracker{
		cfg:     cfg,
		log:     logging.NewLogger("game"),
		matcher: cfg.Matcher,
	}
	t.fingerprint = t.state.Fingerprint()
	return t
}

// SetMatcher replaces the classifier used from the next poll on.
func (t *Tracker) SetMatcher(m *Matcher) {
	if m == nil {
		return
	}
	t.mu.Lock()
	t.matcher = m
	t.mu.Unlock()
}

// Update runs one poll: query the foreground window, classify it, and notify
// when the observable state differs from the previous poll. It reports
// whether the state changed.
func (t *Tracker) Update() bool {
	win, err := t.query()
	t.cfg.Metrics.ObservePoll(err)

	t.mu.Lock()
	wasActive := t.state.IsActive()
	active := t.matcher.Matches(win)

	var located string
	if active {
		bounds := win.Bounds
		t.window = win
		t.state.Bounds = &bounds
		t.state.ProcessID = win.PID

		path := LogFilePath(win.Path)
		if path != "" && (!wasActive || path != t.logFile) {
			located = path
			t.logFile = path
		}
	}
	t.state.Active = &active

	fp := t.state.Fingerprint()
	changed := fp != t.fingerprint
	t.fingerprint = fp
	state := t.state.Clone()
	t.mu.Unlock()

	if located != "" {
		t.log.WithField("path", located).Info("Game log file located")
		t.cfg.Metrics.ObserveLogFile()
		if t.cfg.OnLogFile != nil {
			t.cfg.OnLogFile(located)
		}
	}
	if changed {
		t.log.WithFields(logrus.Fields{
			"active": active,
			"pid":    state.ProcessID,
		}).Debug("Game state changed")
		t.cfg.Metrics.ObserveStateChange(active)
		if t.cfg.OnChange != nil {
			t.cfg.OnChange(state)
		}
	}
	return changed
}

// query reads the foreground window. Errors and panics in the backend count
// as "no window" for this poll.
func (t *Tracker) query() (win *model.Window, err error) {
	defer func() {
		if r := recover(); r != nil {
			win, err = nil, fmt.Errorf("window query panicked: %v", r)
		}
		t.noteQueryResult(err)
	}()
	if t.cfg.Reader == nil {
		return nil, nil
	}
	win, err = t.cfg.Reader.ForegroundWindow()
	if err != nil {
		return nil, err
	}
	if win != nil {
		cp := *win
		win = &cp
	}
	return win, nil
}

// noteQueryResult logs the first failure of a run of failing polls at warn
// level and the rest at debug, so a missing backend tool does not flood logs.
func (t *Tracker) noteQueryResult(err error) {
	switch {
	case err != nil && !t.failing:
		t.failing = true
		t.log.WithError(err).Warn("Foreground window query failed, treating game as inactive")
	case err != nil:
		t.log.WithError(err).Debug("Foreground window query failed")
	case t.failing:
		t.failing = false
		t.log.Info("Foreground window query recovered")
	}
}

// Focus raises the last detected game window. It is a no-op when no window
// has been detected.
func (t *Tracker) Focus() error {
	t.mu.RLock()
	win := t.window
	t.mu.RUnlock()
	if win == nil || t.cfg.WindowManager == nil {
		return nil
	}
	return t.cfg.WindowManager.FocusWindow(platform.FocusOptions{
		WindowID: win.ID,
		PID:      win.PID,
	})
}

// State returns a copy of the current game state.
func (t *Tracker) State() model.GameState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Clone()
}

// Window returns a copy of the last detected game window, or nil.
func (t *Tracker) Window() *model.Window {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.window == nil {
		return nil
	}
	cp := *t.window
	return &cp
}

// LogFile returns the last located chat log path.
func (t *Tracker) LogFile() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.logFile
}
