package model

import (
	"strconv"
	"time"
)

// Price is the listed price of an item.
type Price struct {
	Value    float64 `json:"value"    yaml:"value"`
	Currency string  `json:"currency" yaml:"currency"`
}

// String renders the price the way it is substituted into whispers: "<value> <currency>".
func (p Price) String() string {
	return strconv.FormatFloat(p.Value, 'f', -1, 64) + " " + p.Currency
}

// Offer is a pending trade proposal from a buyer, derived from chat.
type Offer struct {
	Time      time.Time `json:"time"      yaml:"time"`
	ItemName  string    `json:"item"      yaml:"item"`
	BuyerName string    `json:"buyer"     yaml:"buyer"`
	Price     Price     `json:"price"     yaml:"price"`

	TradeRequestSent bool `json:"trade_request_sent" yaml:"trade_request_sent"`
	PartyInviteSent  bool `json:"party_invite_sent"  yaml:"party_invite_sent"`
}

// OfferKey is the identity of an offer. There is no surrogate id.
type OfferKey struct {
	Time      int64  `json:"time"`
	ItemName  string `json:"item"`
	BuyerName string `json:"buyer"`
}

// Key returns the identity triple of the offer.
func (o *Offer) Key() OfferKey {
	return OfferKey{
		Time:      o.Time.UnixNano(),
		ItemName:  o.ItemName,
		BuyerName: o.BuyerName,
	}
}

// GridLocation is the pixel offset of the highlight grid overlay.
type GridLocation struct {
	Top  int `json:"top"  yaml:"top"`
	Left int `json:"left" yaml:"left"`
}
