// Package chat turns lines of the game's chat log into trade events.
package chat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	overlayerrors "github.com/mj1618/trade-overlay/internal/errors"
	"github.com/mj1618/trade-overlay/internal/model"
	"github.com/mj1618/trade-overlay/internal/settings"
)

// EventKind classifies a chat line.
type EventKind string

const (
	EventOffer     EventKind = "offer"
	EventAccepted  EventKind = "accepted"
	EventCancelled EventKind = "cancelled"
)

// Built-in patterns. The offer pattern must name the buyer and item groups;
// price and currency are optional.
const (
	DefaultOfferPattern     = `@From (?:<[^>]+> )?(?P<buyer>[^:]+): Hi, I would like to buy your (?P<item>.+?) listed for (?P<price>[\d.]+) (?P<currency>.+?) in `
	DefaultAcceptedPattern  = `: Trade accepted\.`
	DefaultCancelledPattern = `: Trade cancelled\.`
)

// TimeLayout is the timestamp prefix of every chat log line.
const TimeLayout = "2006/01/02 15:04:05"

// Event is one trade-relevant chat line.
type Event struct {
	Kind  EventKind    `json:"kind" yaml:"kind"`
	Time  time.Time    `json:"time" yaml:"time"`
	Offer *model.Offer `json:"offer,omitempty" yaml:"offer,omitempty"`
}

// Parser classifies chat lines. Lines that are not trade events return false.
type Parser interface {
	Parse(line string) (*Event, bool)
}

// RegexParser is a Parser driven by regular expressions.
type RegexParser struct {
	offer     *regexp.Regexp
	accepted  *regexp.Regexp
	cancelled *regexp.Regexp

	// Now stamps lines without a leading timestamp.
	Now func() time.Time
}

// NewRegexParser compiles the configured patterns, using the built-in pattern
// for any that is empty.
func NewRegexParser(cfg settings.ChatSettings) (*RegexParser, error) {
	offer, err := compile("chat.offer_pattern", cfg.OfferPattern, DefaultOfferPattern)
	if err != nil {
		return nil, err
	}
	for _, group := range []string{"buyer", "item"} {
		if offer.SubexpIndex(group) < 0 {
			return nil, overlayerrors.SettingsInvalid(fmt.Sprintf("chat.offer_pattern must define a (?P<%s>...) group", group))
		}
	}
	accepted, err := compile("chat.accepted_pattern", cfg.AcceptedPattern, DefaultAcceptedPattern)
	if err != nil {
		return nil, err
	}
	cancelled, err := compile("chat.cancelled_pattern", cfg.CancelledPattern, DefaultCancelledPattern)
	if err != nil {
		return nil, err
	}
	return &RegexParser{
		offer:     offer,
		accepted:  accepted,
		cancelled: cancelled,
		Now:       time.Now,
	}, nil
}

func compile(name, pattern, fallback string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = fallback
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, overlayerrors.Wrap(err, overlayerrors.ErrCodeSettingsInvalid, name+" is not a valid regular expression")
	}
	return re, nil
}

// Parse implements Parser.
func (p *RegexParser) Parse(line string) (*Event, bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil, false
	}
	at := p.lineTime(line)

	if m := p.offer.FindStringSubmatch(line); m != nil {
		offer := &model.Offer{
			Time:      at,
			BuyerName: strings.TrimSpace(group(p.offer, m, "buyer")),
			ItemName:  strings.TrimSpace(group(p.offer, m, "item")),
			Price:     model.Price{Currency: strings.TrimSpace(group(p.offer, m, "currency"))},
		}
		if offer.BuyerName == "" || offer.ItemName == "" {
			return nil, false
		}
		if raw := group(p.offer, m, "price"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, false
			}
			offer.Price.Value = v
		}
		return &Event{Kind: EventOffer, Time: at, Offer: offer}, true
	}
	if p.accepted.MatchString(line) {
		return &Event{Kind: EventAccepted, Time: at}, true
	}
	if p.cancelled.MatchString(line) {
		return &Event{Kind: EventCancelled, Time: at}, true
	}
	return nil, false
}

func (p *RegexParser) lineTime(line string) time.Time {
	if len(line) >= len(TimeLayout) {
		if t, err := time.ParseInLocation(TimeLayout, line[:len(TimeLayout)], time.Local); err == nil {
			return t
		}
	}
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func group(re *regexp.Regexp, match []string, name string) string {
	i := re.SubexpIndex(name)
	if i < 0 || i >= len(match) {
		return ""
	}
	return match[i]
}
