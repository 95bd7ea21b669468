// Package settings holds the user settings of the overlay and the stores that
// load and persist them.
package settings

import (
	"github.com/mj1618/trade-overlay/internal/logging"
	"github.com/mj1618/trade-overlay/internal/model"
)

// Settings is the full user configuration.
type Settings struct {
	Trade    TradeSettings   `yaml:"trade" toml:"trade" json:"trade"`
	Game     GameSettings    `yaml:"game" toml:"game" json:"game"`
	Commands CommandSettings `yaml:"commands" toml:"commands" json:"commands"`
	Chat     ChatSettings    `yaml:"chat,omitempty" toml:"chat,omitempty" json:"chat,omitempty"`
	Logging  logging.Config  `yaml:"logging,omitempty" toml:"logging,omitempty" json:"logging,omitempty"`
}

// TradeSettings controls whispers, automation on accepted trades, and item
// highlighting.
type TradeSettings struct {
	// Whisper templates. {item} and {price} are substituted; an empty
	// template falls back to the built-in phrasing.
	ThanksWhisper          string `yaml:"thanks_whisper,omitempty" toml:"thanks_whisper,omitempty" json:"thanks_whisper,omitempty"`
	StillInterestedWhisper string `yaml:"still_interested_whisper,omitempty" toml:"still_interested_whisper,omitempty" json:"still_interested_whisper,omitempty"`
	BusyWhisper            string `yaml:"busy_whisper,omitempty" toml:"busy_whisper,omitempty" json:"busy_whisper,omitempty"`
	SoldWhisper            string `yaml:"sold_whisper,omitempty" toml:"sold_whisper,omitempty" json:"sold_whisper,omitempty"`

	AutoWhisper bool `yaml:"auto_whisper" toml:"auto_whisper" json:"auto_whisper"`
	AutoKick    bool `yaml:"auto_kick" toml:"auto_kick" json:"auto_kick"`

	OverlayHighlight           bool `yaml:"overlay_highlight" toml:"overlay_highlight" json:"overlay_highlight"`
	OverlayHighlightDropShadow bool `yaml:"overlay_highlight_drop_shadow" toml:"overlay_highlight_drop_shadow" json:"overlay_highlight_drop_shadow"`
	InGameHighlight            bool `yaml:"in_game_highlight" toml:"in_game_highlight" json:"in_game_highlight"`
	OverlayHighlightTop        int  `yaml:"overlay_highlight_top" toml:"overlay_highlight_top" json:"overlay_highlight_top"`
	OverlayHighlightLeft       int  `yaml:"overlay_highlight_left" toml:"overlay_highlight_left" json:"overlay_highlight_left"`
}

// GameSettings controls game window detection.
type GameSettings struct {
	PollInterval     Duration `yaml:"poll_interval,omitempty" toml:"poll_interval,omitempty" json:"poll_interval,omitempty"`
	ExtraExecutables []string `yaml:"extra_executables,omitempty" toml:"extra_executables,omitempty" json:"extra_executables,omitempty"`
	ExtraTitles      []string `yaml:"extra_titles,omitempty" toml:"extra_titles,omitempty" json:"extra_titles,omitempty"`
	// LogFile overrides the chat log path derived from the game executable.
	LogFile string `yaml:"log_file,omitempty" toml:"log_file,omitempty" json:"log_file,omitempty"`
}

// CommandSettings controls how commands are typed into the game.
type CommandSettings struct {
	KeyDelay      Duration `yaml:"key_delay,omitempty" toml:"key_delay,omitempty" json:"key_delay,omitempty"`
	RatePerSecond float64  `yaml:"rate_per_second,omitempty" toml:"rate_per_second,omitempty" json:"rate_per_second,omitempty"`
	Burst         int      `yaml:"burst,omitempty" toml:"burst,omitempty" json:"burst,omitempty"`
	DryRun        bool     `yaml:"dry_run,omitempty" toml:"dry_run,omitempty" json:"dry_run,omitempty"`
	// ChatKey is the in-game key opening the chat input, e.g. "enter".
	ChatKey string `yaml:"chat_key,omitempty" toml:"chat_key,omitempty" json:"chat_key,omitempty"`
}

// ChatSettings overrides the chat line patterns. Empty means built-in.
type ChatSettings struct {
	OfferPattern     string `yaml:"offer_pattern,omitempty" toml:"offer_pattern,omitempty" json:"offer_pattern,omitempty"`
	AcceptedPattern  string `yaml:"accepted_pattern,omitempty" toml:"accepted_pattern,omitempty" json:"accepted_pattern,omitempty"`
	CancelledPattern string `yaml:"cancelled_pattern,omitempty" toml:"cancelled_pattern,omitempty" json:"cancelled_pattern,omitempty"`
}

// GridLocation returns the persisted highlight grid offset.
func (t TradeSettings) GridLocation() model.GridLocation {
	return model.GridLocation{Top: t.OverlayHighlightTop, Left: t.OverlayHighlightLeft}
}

// Clone returns a deep copy. Stores hand out clones so a caller's snapshot
// never changes underneath it.
func (s *Settings) Clone() *Settings {
	if s == nil {
		return nil
	}
	out := *s
	out.Game.ExtraExecutables = append([]string(nil), s.Game.ExtraExecutables...)
	out.Game.ExtraTitles = append([]string(nil), s.Game.ExtraTitles...)
	return &out
}
