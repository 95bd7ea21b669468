package command

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/mj1618/trade-overlay/internal/logging"
	"github.com/mj1618/trade-overlay/internal/metrics"
	"github.com/mj1618/trade-overlay/internal/platform"
)

// Focuser raises the game window before keys are sent.
type Focuser interface {
	Focus() error
}

// KeyboardConfig tunes a KeyboardDispatcher.
type KeyboardConfig struct {
	// KeyDelay is the pause between key combos.
	KeyDelay time.Duration
	// RatePerSecond and Burst limit how fast commands reach the game, which
	// throttles chat spam.
	RatePerSecond float64
	Burst         int
	// ChatKey opens the chat input, e.g. "enter".
	ChatKey string
}

// KeyboardDispatcher types commands into the game through the platform
// inputter. Text is pasted through the clipboard, whose previous content is
// restored afterwards.
type KeyboardDispatcher struct {
	input     platform.Inputter
	clipboard platform.ClipboardManager
	focuser   Focuser
	metrics   *metrics.Metrics
	log       *logrus.Entry

	// primary is the platform's shortcut modifier: cmd on macOS, ctrl elsewhere.
	primary string

	mu       sync.Mutex
	limiter  *rate.Limiter
	delay    time.Duration
	chatKeys []string
}

// NewKeyboardDispatcher creates a dispatcher on the given platform.
func NewKeyboardDispatcher(p *platform.Provider, focuser Focuser, cfg KeyboardConfig, m *metrics.Metrics) (*KeyboardDispatcher, error) {
	k := &KeyboardDispatcher{
		input:     p.Inputter,
		clipboard: p.ClipboardManager,
		focuser:   focuser,
		metrics:   m,
		log:       logging.NewLogger("command"),
		primary:   platform.KeyCtrl,
		limiter:   rate.NewLimiter(rate.Inf, 1),
	}
	if runtime.GOOS == "darwin" {
		k.primary = platform.KeyCmd
	}
	if err := k.Configure(cfg); err != nil {
		return nil, err
	}
	return k, nil
}

// Configure applies new pacing. It is safe to call while commands are sent.
func (k *KeyboardDispatcher) Configure(cfg KeyboardConfig) error {
	chatKey := cfg.ChatKey
	if chatKey == "" {
		chatKey = platform.KeyEnter
	}
	keys, err := platform.ParseKeyCombo(chatKey)
	if err != nil {
		return err
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.limiter.SetLimit(limit)
	k.limiter.SetBurst(burst)
	k.delay = cfg.KeyDelay
	k.chatKeys = keys
	return nil
}

func (k *KeyboardDispatcher) Command(ctx context.Context, text string) error {
	err := k.run(ctx, func(chatKeys []string) error {
		return k.withClipboard(text, func() error {
			return k.press(ctx,
				chatKeys,
				[]string{k.primary, "a"},
				[]string{k.primary, "v"},
				[]string{platform.KeyEnter},
			)
		})
	})
	k.metrics.ObserveCommand(Kind(text), err)
	if err != nil {
		k.log.WithError(err).WithField("command", text).Warn("Failed to send command")
		return err
	}
	k.log.WithField("command", text).Debug("Command sent")
	return nil
}

func (k *KeyboardDispatcher) Search(ctx context.Context, text string) error {
	err := k.run(ctx, func([]string) error {
		return k.withClipboard(text, func() error {
			return k.press(ctx,
				[]string{k.primary, "f"},
				[]string{k.primary, "a"},
				[]string{k.primary, "v"},
				[]string{platform.KeyEnter},
			)
		})
	})
	k.metrics.ObserveCommand("search", err)
	return err
}

func (k *KeyboardDispatcher) ClearSearch(ctx context.Context) error {
	err := k.run(ctx, func([]string) error {
		return k.press(ctx,
			[]string{k.primary, "f"},
			[]string{k.primary, "a"},
			[]string{platform.KeyBackspace},
			[]string{platform.KeyEnter},
		)
	})
	k.metrics.ObserveCommand("clear_search", err)
	return err
}

// run serializes key sequences, waits for the rate limiter, and focuses the
// game before fn types anything.
func (k *KeyboardDispatcher) run(ctx context.Context, fn func(chatKeys []string) error) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.limiter.Wait(ctx); err != nil {
		return err
	}
	if k.focuser != nil {
		if err := k.focuser.Focus(); err != nil {
			return err
		}
	}
	return fn(k.chatKeys)
}

func (k *KeyboardDispatcher) press(ctx context.Context, combos ...[]string) error {
	for i, combo := range combos {
		if i > 0 {
			if err := sleep(ctx, k.delay); err != nil {
				return err
			}
		}
		if err := k.input.KeyCombo(combo); err != nil {
			return err
		}
	}
	return nil
}

// withClipboard puts text on the clipboard for the duration of fn.
func (k *KeyboardDispatcher) withClipboard(text string, fn func() error) error {
	prev, readErr := k.clipboard.GetText()
	if err := k.clipboard.SetText(text); err != nil {
		return err
	}
	err := fn()

	if readErr != nil {
		return err
	}
	var restoreErr error
	if prev == "" {
		restoreErr = k.clipboard.Clear()
	} else {
		restoreErr = k.clipboard.SetText(prev)
	}
	if restoreErr != nil {
		k.log.WithError(restoreErr).Debug("Failed to restore clipboard")
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
