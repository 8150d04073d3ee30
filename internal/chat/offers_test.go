package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/payload"
)

const (
	buyerID  = 1
	sellerID = 2
)

func offerRow(t *testing.T, id uint, amount float64, minute int) models.Message {
	t.Helper()
	content, err := payload.EncodeOffer(payload.Offer{Amount: amount, Currency: "BRL", ProductID: 9, CreatedAt: at(minute)})
	require.NoError(t, err)
	return models.Message{ID: id, SenderID: buyerID, ReceiverID: sellerID, Content: content, CreatedAt: at(minute)}
}

func responseRow(t *testing.T, id uint, target string, status string, minute int) models.Message {
	t.Helper()
	content, err := payload.EncodeOfferResponse(payload.OfferResponse{
		TargetMessageID: target,
		Status:          status,
		ResponderID:     sellerID,
		CreatedAt:       at(minute),
	})
	require.NoError(t, err)
	return models.Message{ID: id, SenderID: sellerID, ReceiverID: buyerID, Content: content, CreatedAt: at(minute)}
}

func TestResolveOffersPendingAffordances(t *testing.T) {
	msgs := []models.Message{offerRow(t, 10, 150, 1)}

	asSeller := ResolveOffers(msgs, sellerID, sellerID, false)
	require.Len(t, asSeller, 1)
	assert.Equal(t, OfferPending, asSeller[0].State)
	assert.True(t, asSeller[0].CanRespond)
	assert.False(t, asSeller[0].AwaitingSeller)

	asBuyer := ResolveOffers(msgs, buyerID, sellerID, false)
	require.Len(t, asBuyer, 1)
	assert.False(t, asBuyer[0].CanRespond)
	assert.True(t, asBuyer[0].AwaitingSeller)
}

func TestResolveOffersAccepted(t *testing.T) {
	msgs := []models.Message{
		offerRow(t, 10, 150, 1),
		responseRow(t, 11, "10", payload.StatusAccepted, 2),
	}

	views := ResolveOffers(msgs, sellerID, sellerID, true)
	require.Len(t, views, 1)
	assert.Equal(t, OfferAccepted, views[0].State)
	require.NotNil(t, views[0].Response)
	assert.Equal(t, payload.StatusAccepted, views[0].Response.Status)
	// Resolved offers carry no affordances on either side.
	assert.False(t, views[0].CanRespond)
	assert.False(t, views[0].AwaitingSeller)
}

func TestResolveOffersSoldProductBlocksResponding(t *testing.T) {
	msgs := []models.Message{offerRow(t, 10, 150, 1)}

	views := ResolveOffers(msgs, sellerID, sellerID, true)
	require.Len(t, views, 1)
	assert.Equal(t, OfferPending, views[0].State)
	assert.False(t, views[0].CanRespond)
}

func TestResolveOffersLastResponseWins(t *testing.T) {
	msgs := []models.Message{
		offerRow(t, 10, 150, 1),
		responseRow(t, 11, "10", payload.StatusDeclined, 2),
		responseRow(t, 12, "10", payload.StatusAccepted, 3),
	}

	views := ResolveOffers(msgs, buyerID, sellerID, false)
	require.Len(t, views, 1)
	assert.Equal(t, OfferAccepted, views[0].State)
}

func TestResolveOffersStableAcrossPolls(t *testing.T) {
	msgs := []models.Message{
		offerRow(t, 10, 150, 1),
		offerRow(t, 20, 175, 2),
		responseRow(t, 21, "20", payload.StatusDeclined, 3),
	}

	first := ResolveOffers(msgs, sellerID, sellerID, false)
	second := ResolveOffers(msgs, sellerID, sellerID, false)
	assert.Equal(t, first, second)

	// Untargeted responses change nothing.
	msgs = append(msgs, responseRow(t, 30, "999", payload.StatusAccepted, 4))
	third := ResolveOffers(msgs, sellerID, sellerID, false)
	assert.Equal(t, first, third)
}

func TestOfferFor(t *testing.T) {
	views := []OfferView{{MessageKey: "10"}, {MessageKey: "20", State: OfferDeclined}}

	v, ok := OfferFor(views, "20")
	require.True(t, ok)
	assert.Equal(t, OfferDeclined, v.State)

	_, ok = OfferFor(views, "30")
	assert.False(t, ok)
}
