// Package command builds the chat commands sent to the game and dispatches
// them through the keyboard.
package command

import (
	"fmt"
	"strings"

	overlayerrors "github.com/mj1618/trade-overlay/internal/errors"
	"github.com/mj1618/trade-overlay/internal/model"
	"github.com/mj1618/trade-overlay/internal/settings"
)

// WhisperKind selects one of the configurable whisper messages.
type WhisperKind string

const (
	WhisperThanks          WhisperKind = "thanks"
	WhisperStillInterested WhisperKind = "still_interested"
	WhisperBusy            WhisperKind = "busy"
	WhisperSold            WhisperKind = "sold"
)

// WhisperKinds lists every kind, in display order.
var WhisperKinds = []WhisperKind{WhisperThanks, WhisperStillInterested, WhisperBusy, WhisperSold}

// Built-in whisper phrasing used when no template is configured.
const (
	DefaultThanksWhisper          = "Thanks!"
	DefaultStillInterestedWhisper = "Are you still interested in my {item} listed for {price}?"
	DefaultBusyWhisper            = "I'm busy right now, I will send you party invite when I'm ready."
	DefaultSoldWhisper            = "Sorry, my {item} is already sold."
)

// ParseWhisperKind validates a whisper kind name.
func ParseWhisperKind(s string) (WhisperKind, error) {
	for _, k := range WhisperKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", overlayerrors.InvalidInput(fmt.Sprintf("unknown whisper kind %q (expected thanks, still_interested, busy or sold)", s))
}

// Kick builds the command removing a player from the party.
func Kick(name string) string {
	return "/kick " + name
}

// Invite builds the party invite command.
func Invite(name string) string {
	return "/invite " + name
}

// TradeWith builds the trade request command.
func TradeWith(name string) string {
	return "/tradewith " + name
}

// Whisper builds a private message line.
func Whisper(name, message string) string {
	return "@" + name + " " + message
}

// RenderTemplate substitutes {item} and {price} in a whisper template.
func RenderTemplate(tmpl string, offer *model.Offer) string {
	return strings.NewReplacer(
		"{item}", offer.ItemName,
		"{price}", offer.Price.String(),
	).Replace(tmpl)
}

// WhisperTemplate returns the configured template for kind, or the built-in
// phrasing when none is configured. A nil settings value means defaults.
func WhisperTemplate(kind WhisperKind, s *settings.Settings) string {
	var configured, fallback string
	switch kind {
	case WhisperThanks:
		fallback = DefaultThanksWhisper
		if s != nil {
			configured = s.Trade.ThanksWhisper
		}
	case WhisperStillInterested:
		fallback = DefaultStillInterestedWhisper
		if s != nil {
			configured = s.Trade.StillInterestedWhisper
		}
	case WhisperBusy:
		fallback = DefaultBusyWhisper
		if s != nil {
			configured = s.Trade.BusyWhisper
		}
	case WhisperSold:
		fallback = DefaultSoldWhisper
		if s != nil {
			configured = s.Trade.SoldWhisper
		}
	}
	if strings.TrimSpace(configured) == "" {
		return fallback
	}
	return configured
}

// BuildWhisper renders the whisper of the given kind addressed to the buyer
// of offer.
func BuildWhisper(kind WhisperKind, offer *model.Offer, s *settings.Settings) string {
	return Whisper(offer.BuyerName, RenderTemplate(WhisperTemplate(kind, s), offer))
}

// Kind classifies a command line for logs and metrics.
func Kind(text string) string {
	switch {
	case strings.HasPrefix(text, "@"):
		return "whisper"
	case strings.HasPrefix(text, "/"):
		name, _, _ := strings.Cut(text[1:], " ")
		return name
	}
	return "chat"
}
