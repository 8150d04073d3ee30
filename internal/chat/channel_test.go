package chat

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/bus"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/payload"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/store"
)

type fakeThreadAPI struct {
	mu         sync.Mutex
	threads    map[uint][]models.Message
	products   map[uint]models.Product
	sent       []string
	nextID     uint
	statusErr  error
	statusSets []string
}

func newFakeThreadAPI() *fakeThreadAPI {
	return &fakeThreadAPI{
		threads:  make(map[uint][]models.Message),
		products: make(map[uint]models.Product),
		nextID:   100,
	}
}

func (f *fakeThreadAPI) GetThread(counterpartID, productID uint) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Message(nil), f.threads[counterpartID]...), nil
}

func (f *fakeThreadAPI) SendMessage(receiverID, productID uint, content string) (models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	msg := models.Message{ID: f.nextID, ReceiverID: receiverID, Content: content, CreatedAt: time.Now()}
	f.sent = append(f.sent, content)
	f.threads[receiverID] = append(f.threads[receiverID], msg)
	return msg, nil
}

func (f *fakeThreadAPI) SendDirectMessage(receiverID uint, content string) (models.Message, error) {
	return f.SendMessage(receiverID, 0, content)
}

func (f *fakeThreadAPI) GetProduct(id uint) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return models.Product{}, fmt.Errorf("product %d not found", id)
	}
	return p, nil
}

func (f *fakeThreadAPI) UpdateProductStatus(id uint, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statusSets = append(f.statusSets, fmt.Sprintf("%d:%s", id, status))
	return nil
}

func (f *fakeThreadAPI) sentContents() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func newTestChannel(api ThreadAPI) (*Channel, *bus.Bus) {
	b := bus.New()
	// An hour-long interval keeps the tick out of the way; tests drive fetches.
	return NewChannel(api, b, store.InMemory(), 1, "alice", time.Hour), b
}

func waitForUpdate(t *testing.T, events <-chan bus.Event) ThreadUpdate {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if update, ok := ev.Data.(ThreadUpdate); ok {
				return update
			}
		case <-deadline:
			t.Fatal("no thread update arrived")
		}
	}
}

func expectNoUpdate(t *testing.T, events <-chan bus.Event) {
	t.Helper()
	select {
	case ev := <-events:
		if _, ok := ev.Data.(ThreadUpdate); ok {
			t.Fatalf("unexpected thread update: %+v", ev.Data)
		}
	case <-time.After(150 * time.Millisecond):
	}
}

func TestChannelDropsStaleResults(t *testing.T) {
	api := newFakeThreadAPI()
	api.threads[10] = []models.Message{{ID: 1, SenderID: 10, ReceiverID: 1, Content: "oi", CreatedAt: at(1)}}
	api.threads[20] = []models.Message{{ID: 2, SenderID: 20, ReceiverID: 1, Content: "hello", CreatedAt: at(2)}}

	ch, b := newTestChannel(api)
	events, cancel := b.Subscribe(bus.TopicThreadUpdated)
	defer cancel()

	ch.Open(10, 0, false)
	first := waitForUpdate(t, events)
	assert.Equal(t, uint(10), first.Target.CounterpartID)

	ch.mu.Lock()
	staleEpoch := ch.epoch
	ch.mu.Unlock()

	ch.Open(20, 0, false)
	second := waitForUpdate(t, events)
	assert.Equal(t, uint(20), second.Target.CounterpartID)

	// A response for the old thread arriving late is dropped on the floor.
	ch.apply(staleEpoch, Target{CounterpartID: 10}, api.threads[10])
	expectNoUpdate(t, events)

	msgs, _, target := ch.Snapshot()
	assert.Equal(t, uint(20), target.CounterpartID)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hello", msgs[0].Content)
}

func TestChannelColdStartNeverChimes(t *testing.T) {
	api := newFakeThreadAPI()
	api.threads[10] = []models.Message{
		{ID: 1, SenderID: 10, ReceiverID: 1, Content: "one", CreatedAt: at(1)},
		{ID: 2, SenderID: 10, ReceiverID: 1, Content: "two", CreatedAt: at(2)},
	}

	ch, b := newTestChannel(api)
	events, cancel := b.Subscribe(bus.TopicThreadUpdated)
	defer cancel()

	ch.Open(10, 0, false)
	first := waitForUpdate(t, events)
	assert.False(t, first.PlaySound, "history on open is not new mail")

	ch.mu.Lock()
	epoch := ch.epoch
	target := ch.target
	ch.mu.Unlock()

	// Same count again: still quiet.
	ch.fetch(epoch, target)
	assert.False(t, waitForUpdate(t, events).PlaySound)

	api.mu.Lock()
	api.threads[10] = append(api.threads[10], models.Message{ID: 3, SenderID: 10, ReceiverID: 1, Content: "three", CreatedAt: at(3)})
	api.mu.Unlock()

	ch.fetch(epoch, target)
	assert.True(t, waitForUpdate(t, events).PlaySound)
}

func TestChannelSendsQueuedContextFirst(t *testing.T) {
	api := newFakeThreadAPI()
	api.products[5] = models.Product{ID: 5, SellerID: 2, Title: "Guitar", Price: 900, Currency: "BRL"}

	ch, b := newTestChannel(api)
	events, cancel := b.Subscribe(bus.TopicThreadUpdated)
	defer cancel()

	ch.Open(2, 5, true)
	waitForUpdate(t, events)

	// resolveProduct runs in the background; wait for the queued preview.
	require.Eventually(t, func() bool {
		ch.mu.Lock()
		defer ch.mu.Unlock()
		return ch.pendingCtx != nil
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, ch.SendMessage("ainda está disponível?"))

	sent := api.sentContents()
	require.Len(t, sent, 2)
	assert.True(t, strings.HasPrefix(sent[0], "__PRODUCT_CONTEXT__:"))
	assert.Equal(t, "ainda está disponível?", sent[1])

	// The preview goes out once, not before every message.
	require.NoError(t, ch.SendMessage("posso buscar hoje"))
	sent = api.sentContents()
	require.Len(t, sent, 3)
	assert.Equal(t, "posso buscar hoje", sent[2])
}

func TestChannelNoContextForOwnListing(t *testing.T) {
	api := newFakeThreadAPI()
	api.products[5] = models.Product{ID: 5, SellerID: 1, Title: "Guitar"}

	ch, b := newTestChannel(api)
	events, cancel := b.Subscribe(bus.TopicThreadUpdated)
	defer cancel()

	ch.Open(2, 5, true)
	waitForUpdate(t, events)

	require.Eventually(t, func() bool {
		ch.mu.Lock()
		defer ch.mu.Unlock()
		return ch.product != nil
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, ch.SendMessage("obrigado pelo interesse"))
	sent := api.sentContents()
	require.Len(t, sent, 1)
	assert.Equal(t, "obrigado pelo interesse", sent[0])
}

func TestAcceptOfferAbortsWhenMarkSoldFails(t *testing.T) {
	api := newFakeThreadAPI()
	api.products[5] = models.Product{ID: 5, SellerID: 1, Title: "Guitar", Status: models.ProductAvailable}
	api.statusErr = fmt.Errorf("boom")

	ch, b := newTestChannel(api)
	events, cancel := b.Subscribe(bus.TopicThreadUpdated)
	defer cancel()

	ch.Open(2, 5, false)
	waitForUpdate(t, events)

	require.Eventually(t, func() bool {
		ch.mu.Lock()
		defer ch.mu.Unlock()
		return ch.product != nil
	}, 2*time.Second, 10*time.Millisecond)

	view := OfferView{MessageKey: "10", Offer: payload.Offer{Amount: 100}}
	err := ch.AcceptOffer(view)
	require.Error(t, err)

	// No acceptance message went out and the local product is untouched.
	assert.Empty(t, api.sentContents())
	_, product, _ := ch.Snapshot()
	require.NotNil(t, product)
	assert.Equal(t, models.ProductAvailable, product.Status)
}

func TestAcceptOfferMarksSoldThenResponds(t *testing.T) {
	api := newFakeThreadAPI()
	api.products[5] = models.Product{ID: 5, SellerID: 1, Title: "Guitar", Status: models.ProductAvailable}

	ch, b := newTestChannel(api)
	events, cancel := b.Subscribe(bus.TopicThreadUpdated)
	defer cancel()

	ch.Open(2, 5, false)
	waitForUpdate(t, events)

	require.Eventually(t, func() bool {
		ch.mu.Lock()
		defer ch.mu.Unlock()
		return ch.product != nil
	}, 2*time.Second, 10*time.Millisecond)

	view := OfferView{MessageKey: "10", Offer: payload.Offer{Amount: 100}}
	require.NoError(t, ch.AcceptOffer(view))

	api.mu.Lock()
	statusSets := append([]string(nil), api.statusSets...)
	api.mu.Unlock()
	require.Equal(t, []string{"5:sold"}, statusSets)

	sent := api.sentContents()
	require.Len(t, sent, 1)
	r := payload.DecodeOfferResponse(sent[0])
	require.NotNil(t, r)
	assert.Equal(t, payload.StatusAccepted, r.Status)
	assert.Equal(t, "10", r.TargetMessageID)

	_, product, _ := ch.Snapshot()
	require.NotNil(t, product)
	assert.Equal(t, models.ProductSold, product.Status)
}

func TestUpdatesDetachListingFromChannel(t *testing.T) {
	api := newFakeThreadAPI()
	api.products[5] = models.Product{ID: 5, SellerID: 1, Title: "Guitar", Status: models.ProductAvailable}

	ch, b := newTestChannel(api)
	events, cancel := b.Subscribe(bus.TopicThreadUpdated)
	defer cancel()

	ch.Open(2, 5, false)
	waitForUpdate(t, events)

	require.Eventually(t, func() bool {
		ch.mu.Lock()
		defer ch.mu.Unlock()
		return ch.product != nil
	}, 2*time.Second, 10*time.Millisecond)

	ch.mu.Lock()
	epoch := ch.epoch
	target := ch.target
	ch.mu.Unlock()

	ch.fetch(epoch, target)
	update := waitForUpdate(t, events)
	require.NotNil(t, update.Product)

	_, snapped, _ := ch.Snapshot()
	require.NotNil(t, snapped)

	view := OfferView{MessageKey: "10", Offer: payload.Offer{Amount: 100}}
	require.NoError(t, ch.AcceptOffer(view))

	// Structs already handed out keep the status they were rendered with;
	// the renderer goroutine never shares memory with the channel.
	assert.Equal(t, models.ProductAvailable, update.Product.Status)
	assert.Equal(t, models.ProductAvailable, snapped.Status)

	_, current, _ := ch.Snapshot()
	require.NotNil(t, current)
	assert.Equal(t, models.ProductSold, current.Status)
}

func TestChannelRequiresActiveConversation(t *testing.T) {
	api := newFakeThreadAPI()
	ch, _ := newTestChannel(api)

	assert.Error(t, ch.SendMessage("hello"))
	assert.Error(t, ch.SendOffer(50, ""))
}
