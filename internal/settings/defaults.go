package settings

import (
	"fmt"
	"regexp"
	"time"

	overlayerrors "github.com/mj1618/trade-overlay/internal/errors"
	"github.com/mj1618/trade-overlay/internal/platform"
)

// Default values applied by SetDefaults.
const (
	DefaultPollInterval  = 500 * time.Millisecond
	DefaultKeyDelay      = 10 * time.Millisecond
	DefaultRatePerSecond = 4
	DefaultBurst         = 2
	DefaultChatKey       = "enter"
)

// Default returns settings with every default applied.
func Default() *Settings {
	s := &Settings{
		Trade: TradeSettings{
			OverlayHighlight:           true,
			OverlayHighlightDropShadow: true,
		},
	}
	s.SetDefaults()
	return s
}

// SetDefaults fills zero values that have a non-zero default.
func (s *Settings) SetDefaults() {
	if s.Game.PollInterval == 0 {
		s.Game.PollInterval = Duration(DefaultPollInterval)
	}
	if s.Commands.KeyDelay == 0 {
		s.Commands.KeyDelay = Duration(DefaultKeyDelay)
	}
	if s.Commands.RatePerSecond == 0 {
		s.Commands.RatePerSecond = DefaultRatePerSecond
	}
	if s.Commands.Burst == 0 {
		s.Commands.Burst = DefaultBurst
	}
	if s.Commands.ChatKey == "" {
		s.Commands.ChatKey = DefaultChatKey
	}
}

// Validate checks the settings for values that cannot be used.
func (s *Settings) Validate() error {
	if s.Game.PollInterval < 0 {
		return overlayerrors.SettingsInvalid("game.poll_interval cannot be negative").
			WithDetail("value", s.Game.PollInterval.String())
	}
	if s.Commands.KeyDelay < 0 {
		return overlayerrors.SettingsInvalid("commands.key_delay cannot be negative").
			WithDetail("value", s.Commands.KeyDelay.String())
	}
	if s.Commands.RatePerSecond < 0 {
		return overlayerrors.SettingsInvalid("commands.rate_per_second cannot be negative")
	}
	if s.Commands.Burst < 0 {
		return overlayerrors.SettingsInvalid("commands.burst cannot be negative")
	}
	if s.Commands.ChatKey != "" {
		if _, err := platform.ParseKeyCombo(s.Commands.ChatKey); err != nil {
			return overlayerrors.Wrap(err, overlayerrors.ErrCodeSettingsInvalid, "commands.chat_key is not a valid key combo")
		}
	}

	patterns := map[string]string{
		"chat.offer_pattern":     s.Chat.OfferPattern,
		"chat.accepted_pattern":  s.Chat.AcceptedPattern,
		"chat.cancelled_pattern": s.Chat.CancelledPattern,
	}
	for field, p := range patterns {
		if p == "" {
			continue
		}
		if _, err := regexp.Compile(p); err != nil {
			return overlayerrors.Wrap(err, overlayerrors.ErrCodeSettingsInvalid,
				fmt.Sprintf("%s is not a valid regular expression", field)).
				WithDetail("field", field)
		}
	}
	return nil
}
