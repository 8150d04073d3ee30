package payload

import (
	"encoding/json"
	"errors"
	"strings"
)

// Message bodies carrying a structured payload are tagged JSON: a constant
// prefix followed by the payload object. The three prefixes are mutually
// exclusive so a body can never classify as two kinds at once.
const (
	offerTag          = "__OFFER__:"
	offerResponseTag  = "__OFFER_RESPONSE__:"
	productContextTag = "__PRODUCT_CONTEXT__:"
)

type Kind int

const (
	KindText Kind = iota
	KindOffer
	KindOfferResponse
	KindProductContext
)

var ErrInvalidOffer = errors.New("offer amount must be greater than zero")

func EncodeOffer(o Offer) (string, error) {
	if o.Amount <= 0 {
		return "", ErrInvalidOffer
	}
	data, err := json.Marshal(o)
	if err != nil {
		return "", err
	}
	return offerTag + string(data), nil
}

func EncodeOfferResponse(r OfferResponse) (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return offerResponseTag + string(data), nil
}

func EncodeProductContext(c ProductContext) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return productContextTag + string(data), nil
}

// DecodeOffer returns nil for anything that is not a well formed offer body.
// It is called on every rendered message on every poll tick, so it must never
// propagate a parse error up to the caller.
func DecodeOffer(content string) *Offer {
	raw, ok := strip(content, offerTag)
	if !ok {
		return nil
	}
	var o Offer
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		return nil
	}
	return &o
}

func DecodeOfferResponse(content string) *OfferResponse {
	raw, ok := strip(content, offerResponseTag)
	if !ok {
		return nil
	}
	var r OfferResponse
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return nil
	}
	return &r
}

func DecodeProductContext(content string) *ProductContext {
	raw, ok := strip(content, productContextTag)
	if !ok {
		return nil
	}
	var c ProductContext
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil
	}
	return &c
}

// Classify checks the tags in a fixed order. Plain chat text always comes back
// as KindText, including truncated or hand-typed lookalikes.
func Classify(content string) Kind {
	switch {
	case DecodeOfferResponse(content) != nil:
		return KindOfferResponse
	case DecodeOffer(content) != nil:
		return KindOffer
	case DecodeProductContext(content) != nil:
		return KindProductContext
	default:
		return KindText
	}
}

func strip(content, tag string) (string, bool) {
	if !strings.HasPrefix(content, tag) {
		return "", false
	}
	return content[len(tag):], true
}
