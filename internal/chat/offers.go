package chat

import (
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/payload"
)

// Banner shown on an accepted offer, on both sides of the thread.
const AcceptedBanner = "Oferta aceita! Venda confirmada."

type OfferState int

const (
	OfferPending OfferState = iota
	OfferAccepted
	OfferDeclined
)

func (s OfferState) String() string {
	switch s {
	case OfferAccepted:
		return "accepted"
	case OfferDeclined:
		return "declined"
	default:
		return "pending"
	}
}

// OfferView is the per-offer state the thread screen renders. It is derived
// from the message feed on every poll, never stored.
type OfferView struct {
	MessageKey string
	Offer      payload.Offer
	State      OfferState
	Response   *payload.OfferResponse
	// CanRespond: viewer owns the product, did not send the offer themselves,
	// and the product has not been sold already.
	CanRespond bool
	// AwaitingSeller: viewer sent this offer and no response exists yet.
	AwaitingSeller bool
}

// ResolveOffers walks a thread and pairs every offer message with the latest
// response that targets it. Duplicate responses are not prevented anywhere, so
// the last one in feed order wins; repeated polling over an unchanged feed
// yields the same states.
func ResolveOffers(msgs []models.Message, viewerID, ownerID uint, productSold bool) []OfferView {
	responses := make(map[string]*payload.OfferResponse)
	for _, m := range msgs {
		r := payload.DecodeOfferResponse(m.Content)
		if r == nil {
			continue
		}
		prev, ok := responses[r.TargetMessageID]
		if !ok || !r.CreatedAt.Before(prev.CreatedAt) {
			responses[r.TargetMessageID] = r
		}
	}

	var views []OfferView
	for _, m := range msgs {
		o := payload.DecodeOffer(m.Content)
		if o == nil {
			continue
		}
		key := MessageKey(m)
		view := OfferView{MessageKey: key, Offer: *o, State: OfferPending}
		if r, ok := responses[key]; ok {
			view.Response = r
			switch r.Status {
			case payload.StatusAccepted:
				view.State = OfferAccepted
			case payload.StatusDeclined:
				view.State = OfferDeclined
			}
		}
		if view.State == OfferPending {
			view.CanRespond = viewerID == ownerID && m.SenderID != viewerID && !productSold
			view.AwaitingSeller = m.SenderID == viewerID
		}
		views = append(views, view)
	}
	return views
}

// OfferFor finds the view for a given message key.
func OfferFor(views []OfferView, key string) (OfferView, bool) {
	for _, v := range views {
		if v.MessageKey == key {
			return v, true
		}
	}
	return OfferView{}, false
}
