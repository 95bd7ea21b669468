package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	overlayerrors "github.com/mj1618/trade-overlay/internal/errors"
	"github.com/mj1618/trade-overlay/internal/settings"
)

func newParser(t *testing.T, cfg settings.ChatSettings) *RegexParser {
	t.Helper()
	p, err := NewRegexParser(cfg)
	require.NoError(t, err)
	p.Now = func() time.Time { return time.Unix(100, 0) }
	return p
}

func TestParse_Offer(t *testing.T) {
	p := newParser(t, settings.ChatSettings{})
	line := `2024/03/01 18:22:05 17036656 cffb0734 [INFO Client 1234] @From <GUILD> SomeBuyer: Hi, I would like to buy your Tabula Rasa Simple Robe listed for 2.5 divine in Affliction (stash tab "~price"; position: left 3, top 7)`

	ev, ok := p.Parse(line)
	require.True(t, ok)
	assert.Equal(t, EventOffer, ev.Kind)
	require.NotNil(t, ev.Offer)
	assert.Equal(t, "SomeBuyer", ev.Offer.BuyerName)
	assert.Equal(t, "Tabula Rasa Simple Robe", ev.Offer.ItemName)
	assert.Equal(t, 2.5, ev.Offer.Price.Value)
	assert.Equal(t, "divine", ev.Offer.Price.Currency)

	want := time.Date(2024, 3, 1, 18, 22, 5, 0, time.Local)
	assert.True(t, want.Equal(ev.Time))
	assert.True(t, want.Equal(ev.Offer.Time))
}

func TestParse_OfferWithoutGuild(t *testing.T) {
	p := newParser(t, settings.ChatSettings{})
	ev, ok := p.Parse(`@From Buyer: Hi, I would like to buy your Headhunter listed for 40 divine in Standard`)
	require.True(t, ok)
	assert.Equal(t, "Buyer", ev.Offer.BuyerName)
	assert.Equal(t, "Headhunter", ev.Offer.ItemName)
	assert.Equal(t, "40 divine", ev.Offer.Price.String())
	assert.True(t, time.Unix(100, 0).Equal(ev.Time), "lines without timestamp use Now")
}

func TestParse_TradeAcceptedAndCancelled(t *testing.T) {
	p := newParser(t, settings.ChatSettings{})

	ev, ok := p.Parse("2024/03/01 18:25:00 1 2 [INFO Client 1234] : Trade accepted.\r\n")
	require.True(t, ok)
	assert.Equal(t, EventAccepted, ev.Kind)
	assert.Nil(t, ev.Offer)

	ev, ok = p.Parse("2024/03/01 18:26:00 1 2 [INFO Client 1234] : Trade cancelled.")
	require.True(t, ok)
	assert.Equal(t, EventCancelled, ev.Kind)
}

func TestParse_IgnoresOtherLines(t *testing.T) {
	p := newParser(t, settings.ChatSettings{})
	lines := []string{
		"",
		"2024/03/01 18:22:05 1 2 [INFO Client 1234] Connecting to instance server",
		"@To Buyer: Hi, I would like to buy your Headhunter listed for 40 divine in Standard",
		"#Trader: WTS Headhunter",
	}
	for _, l := range lines {
		_, ok := p.Parse(l)
		assert.False(t, ok, l)
	}
}

func TestParse_CustomOfferPattern(t *testing.T) {
	p := newParser(t, settings.ChatSettings{
		OfferPattern: `@De (?P<buyer>\S+): Hola, quiero comprar tu (?P<item>.+?) por (?P<price>\d+) (?P<currency>\S+)`,
	})
	ev, ok := p.Parse("@De Comprador: Hola, quiero comprar tu Mageblood por 150 divine en Standard")
	require.True(t, ok)
	assert.Equal(t, "Comprador", ev.Offer.BuyerName)
	assert.Equal(t, "Mageblood", ev.Offer.ItemName)
	assert.Equal(t, 150.0, ev.Offer.Price.Value)
}

func TestParse_PriceIsOptional(t *testing.T) {
	p := newParser(t, settings.ChatSettings{
		OfferPattern: `@From (?P<buyer>[^:]+): I want your (?P<item>.+)$`,
	})
	ev, ok := p.Parse("@From Buyer: I want your Goldrim")
	require.True(t, ok)
	assert.Equal(t, "Goldrim", ev.Offer.ItemName)
	assert.Zero(t, ev.Offer.Price.Value)
}

func TestNewRegexParser_Invalid(t *testing.T) {
	_, err := NewRegexParser(settings.ChatSettings{OfferPattern: "("})
	require.Error(t, err)
	assert.True(t, overlayerrors.Is(err, overlayerrors.ErrCodeSettingsInvalid))

	_, err = NewRegexParser(settings.ChatSettings{OfferPattern: `@From (?P<buyer>\S+)`})
	require.Error(t, err, "pattern without an item group")

	_, err = NewRegexParser(settings.ChatSettings{CancelledPattern: "[oops"})
	require.Error(t, err)
}
