package payload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferRoundTrip(t *testing.T) {
	offer := Offer{
		Amount:       120.50,
		Currency:     "BRL",
		ProductID:    9,
		ProductTitle: "Mountain bike",
		SenderName:   "alice",
		Message:      "final offer",
		CreatedAt:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	encoded, err := EncodeOffer(offer)
	require.NoError(t, err)
	assert.Contains(t, encoded, "__OFFER__:")

	decoded := DecodeOffer(encoded)
	require.NotNil(t, decoded)
	assert.Equal(t, offer.Amount, decoded.Amount)
	assert.Equal(t, offer.ProductID, decoded.ProductID)
	assert.Equal(t, offer.SenderName, decoded.SenderName)
	assert.True(t, offer.CreatedAt.Equal(decoded.CreatedAt))
}

func TestEncodeOfferRejectsNonPositiveAmount(t *testing.T) {
	_, err := EncodeOffer(Offer{Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidOffer)

	_, err = EncodeOffer(Offer{Amount: -10})
	assert.ErrorIs(t, err, ErrInvalidOffer)
}

func TestDecodeReturnsNilForForeignContent(t *testing.T) {
	cases := []string{
		"",
		"hello there",
		"OFFER: 100",
		"__OFFER__",                    // tag without colon
		"__OFFER__:{not json",          // truncated payload
		"__OFFER_RESPONSE__:[1,2,3]..", // wrong shape
	}
	for _, c := range cases {
		assert.Nil(t, DecodeOffer(c), "content %q", c)
		assert.Nil(t, DecodeOfferResponse(c), "content %q", c)
		assert.Nil(t, DecodeProductContext(c), "content %q", c)
	}
}

func TestDecodeIgnoresOtherTags(t *testing.T) {
	ctx, err := EncodeProductContext(ProductContext{ProductID: 4, Title: "Sofa"})
	require.NoError(t, err)

	assert.Nil(t, DecodeOffer(ctx))
	assert.Nil(t, DecodeOfferResponse(ctx))
	assert.NotNil(t, DecodeProductContext(ctx))
}

func TestClassify(t *testing.T) {
	offer, err := EncodeOffer(Offer{Amount: 50})
	require.NoError(t, err)
	response, err := EncodeOfferResponse(OfferResponse{TargetMessageID: "12", Status: StatusAccepted})
	require.NoError(t, err)
	ctx, err := EncodeProductContext(ProductContext{ProductID: 2})
	require.NoError(t, err)

	assert.Equal(t, KindOffer, Classify(offer))
	assert.Equal(t, KindOfferResponse, Classify(response))
	assert.Equal(t, KindProductContext, Classify(ctx))
	assert.Equal(t, KindText, Classify("just words"))
	assert.Equal(t, KindText, Classify("__OFFER__:{broken"))
}
