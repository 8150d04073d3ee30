package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/bus"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/chat"
	appmodels "github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
)

func TestOfferModalClosesOnPanelSignal(t *testing.T) {
	deps := testSession(t)
	parent := NewThreadModel(deps, 2, 5, false)
	modal := NewOfferModal(parent)

	next, _ := modal.Update(BusEventMsg{Topic: bus.TopicClosePanel})
	thread, ok := next.(ThreadModel)
	require.True(t, ok)
	assert.True(t, thread.flashError)
	assert.NotEmpty(t, thread.flash)
}

func TestOfferModalRequestsCloseWhenListingSells(t *testing.T) {
	deps := testSession(t)
	events, cancel := deps.Bus.Subscribe(bus.TopicClosePanel)
	defer cancel()

	parent := NewThreadModel(deps, 2, 5, false)
	modal := NewOfferModal(parent)

	sold := appmodels.Product{ID: 5, SellerID: 2, Title: "Guitar", Status: appmodels.ProductSold}
	update := chat.ThreadUpdate{
		Target:  chat.Target{CounterpartID: 2, ProductID: 5},
		Product: &sold,
	}
	next, cmd := modal.Update(BusEventMsg{Topic: bus.TopicThreadUpdated, Data: update})
	modal, ok := next.(OfferModal)
	require.True(t, ok, "the modal stays up until the close signal loops back")
	runCmd(cmd)

	select {
	case ev := <-events:
		next, _ = modal.Update(BusEventMsg(ev))
	case <-time.After(time.Second):
		t.Fatal("close was never requested")
	}
	_, ok = next.(ThreadModel)
	require.True(t, ok)
}
