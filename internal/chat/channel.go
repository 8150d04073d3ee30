package chat

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/bus"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/payload"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/store"
)

// ThreadAPI is the slice of the HTTP client the channel needs.
type ThreadAPI interface {
	GetThread(counterpartID, productID uint) ([]models.Message, error)
	SendMessage(receiverID, productID uint, content string) (models.Message, error)
	SendDirectMessage(receiverID uint, content string) (models.Message, error)
	GetProduct(id uint) (models.Product, error)
	UpdateProductStatus(id uint, status string) error
}

// Target identifies the active thread: counterpart plus optional product.
type Target struct {
	CounterpartID uint
	ProductID     uint
}

// ThreadOpened is published when a thread becomes active, so the conversation
// list can mark it read without waiting for the server.
type ThreadOpened struct {
	Target Target
	Key    string
}

// ThreadUpdate carries a freshly applied poll result to the UI.
type ThreadUpdate struct {
	Target   Target
	Key      string
	Messages []models.Message
	Product  *models.Product
	// PlaySound is set when the message count grew and the previous count was
	// known; the cold-start fetch never chimes.
	PlaySound bool
	// NewResponses are offer responses seen for the first time ever (persisted
	// set), for one-shot toasts.
	NewResponses []payload.OfferResponse
}

// Channel owns the active-conversation fetch loop. Exactly one thread is
// active at a time; results for anything else are stale and dropped. The epoch
// counter is the staleness guard: every Open/Close bumps it and every in-flight
// result re-checks it before touching state.
type Channel struct {
	api      ThreadAPI
	bus      *bus.Bus
	st       *store.Store
	myID     uint
	myName   string
	interval time.Duration

	mu         sync.Mutex
	epoch      uint64
	target     Target
	key        string
	product    *models.Product
	pendingCtx *payload.ProductContext
	prevCount  int
	messages   []models.Message
	seenResp   map[string]bool
	stopLoop   chan struct{}
}

func NewChannel(api ThreadAPI, b *bus.Bus, st *store.Store, myID uint, myName string, interval time.Duration) *Channel {
	c := &Channel{
		api:       api,
		bus:       b,
		st:        st,
		myID:      myID,
		myName:    myName,
		interval:  interval,
		prevCount: -1,
		seenResp:  make(map[string]bool),
	}
	st.Get(c.seenRespKey(), &c.seenResp)
	if c.seenResp == nil {
		c.seenResp = make(map[string]bool)
	}
	return c
}

func (c *Channel) seenRespKey() string {
	return fmt.Sprintf("seen_offer_responses:%d", c.myID)
}

// Open activates a thread and starts its poll loop. withContext queues a
// listing preview to be auto-sent ahead of the first user message when the
// sender is not the listing owner.
func (c *Channel) Open(counterpartID, productID uint, withContext bool) {
	c.mu.Lock()
	c.epoch++
	epoch := c.epoch
	if c.stopLoop != nil {
		close(c.stopLoop)
	}
	stop := make(chan struct{})
	c.stopLoop = stop
	c.target = Target{CounterpartID: counterpartID, ProductID: productID}
	c.key = threadKey(c.myID, counterpartID, productID)
	c.messages = nil
	c.prevCount = -1
	c.product = nil
	c.pendingCtx = nil
	target := c.target
	key := c.key
	c.mu.Unlock()

	c.bus.Publish(bus.TopicThreadOpened, ThreadOpened{Target: target, Key: key})

	if productID != 0 {
		go c.resolveProduct(epoch, productID, withContext)
	}

	go c.loop(epoch, target, stop)
}

// Close deactivates the thread. In-flight results keep their old epoch and
// fall on the floor when they land.
func (c *Channel) Close() {
	c.mu.Lock()
	c.epoch++
	if c.stopLoop != nil {
		close(c.stopLoop)
		c.stopLoop = nil
	}
	c.target = Target{}
	c.key = ""
	c.messages = nil
	c.prevCount = -1
	c.product = nil
	c.pendingCtx = nil
	c.mu.Unlock()
}

func (c *Channel) loop(epoch uint64, target Target, stop chan struct{}) {
	c.fetch(epoch, target) // cold start, no sound

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.fetch(epoch, target)
		}
	}
}

func (c *Channel) fetch(epoch uint64, target Target) {
	msgs, err := c.api.GetThread(target.CounterpartID, target.ProductID)
	if err != nil {
		// Transient: buffer unchanged, next tick retries.
		log.Printf("thread poll failed: %v", err)
		return
	}
	c.apply(epoch, target, msgs)
}

func (c *Channel) apply(epoch uint64, target Target, msgs []models.Message) {
	c.mu.Lock()
	if epoch != c.epoch || target != c.target {
		// Stale: the user moved on while this response was in flight.
		c.mu.Unlock()
		return
	}

	playSound := c.prevCount >= 0 && len(msgs) > c.prevCount
	c.prevCount = len(msgs)
	c.messages = msgs

	var fresh []payload.OfferResponse
	changedSeen := false
	for _, m := range msgs {
		r := payload.DecodeOfferResponse(m.Content)
		if r == nil {
			continue
		}
		k := MessageKey(m)
		if !c.seenResp[k] {
			c.seenResp[k] = true
			changedSeen = true
			fresh = append(fresh, *r)
		}
	}
	if changedSeen {
		c.st.Set(c.seenRespKey(), c.seenResp)
	}

	update := ThreadUpdate{
		Target:       target,
		Key:          c.key,
		Messages:     msgs,
		Product:      c.productCopyLocked(),
		PlaySound:    playSound,
		NewResponses: fresh,
	}
	c.mu.Unlock()

	c.bus.Publish(bus.TopicThreadUpdated, update)
}

func (c *Channel) resolveProduct(epoch uint64, productID uint, withContext bool) {
	product, err := c.api.GetProduct(productID)
	if err != nil {
		log.Printf("product %d lookup failed: %v", productID, err)
		return
	}
	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	c.product = &product
	if withContext && product.SellerID != c.myID {
		c.pendingCtx = &payload.ProductContext{
			ProductID: product.ID,
			Title:     product.Title,
			Image:     product.ImageURL,
			Price:     product.Price,
			Location:  product.Location,
			Timestamp: time.Now(),
		}
	}
	c.mu.Unlock()
}

// SendMessage sends the user's text. A queued listing preview goes out first
// so the counterpart always sees product context ahead of the first real
// message in a new thread.
func (c *Channel) SendMessage(text string) error {
	c.mu.Lock()
	epoch := c.epoch
	target := c.target
	pending := c.pendingCtx
	c.mu.Unlock()

	if target.CounterpartID == 0 {
		return fmt.Errorf("no active conversation")
	}

	if pending != nil {
		encoded, err := payload.EncodeProductContext(*pending)
		if err == nil {
			if _, err := c.api.SendMessage(target.CounterpartID, target.ProductID, encoded); err != nil {
				return fmt.Errorf("failed to send product context: %w", err)
			}
			c.mu.Lock()
			if epoch == c.epoch {
				c.pendingCtx = nil
			}
			c.mu.Unlock()
		}
	}

	var err error
	if target.ProductID != 0 {
		_, err = c.api.SendMessage(target.CounterpartID, target.ProductID, text)
	} else {
		_, err = c.api.SendDirectMessage(target.CounterpartID, text)
	}
	if err != nil {
		return err
	}

	go c.fetch(epoch, target)
	return nil
}

// SendOffer sends a price proposal on the active product thread.
func (c *Channel) SendOffer(amount float64, note string) error {
	c.mu.Lock()
	epoch := c.epoch
	target := c.target
	product := c.product
	c.mu.Unlock()

	if product == nil {
		return fmt.Errorf("offers need a product conversation")
	}

	encoded, err := payload.EncodeOffer(payload.Offer{
		Amount:       amount,
		Currency:     product.Currency,
		ProductID:    product.ID,
		ProductTitle: product.Title,
		ProductImage: product.ImageURL,
		SenderName:   c.myName,
		Message:      note,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return err
	}
	if _, err := c.api.SendMessage(target.CounterpartID, target.ProductID, encoded); err != nil {
		return err
	}
	go c.fetch(epoch, target)
	return nil
}

// AcceptOffer marks the listing sold, then sends the acceptance. If marking
// sold fails nothing is sent and the offer stays pending — no partial state.
func (c *Channel) AcceptOffer(view OfferView) error {
	c.mu.Lock()
	epoch := c.epoch
	target := c.target
	product := c.product
	c.mu.Unlock()

	if product == nil {
		return fmt.Errorf("no product on this conversation")
	}
	if err := c.api.UpdateProductStatus(product.ID, models.ProductSold); err != nil {
		return fmt.Errorf("could not mark the listing sold: %w", err)
	}

	c.mu.Lock()
	if epoch == c.epoch && c.product != nil {
		c.product.Status = models.ProductSold
	}
	c.mu.Unlock()

	return c.respond(epoch, target, view, payload.StatusAccepted)
}

// DeclineOffer sends a decline; the listing is untouched.
func (c *Channel) DeclineOffer(view OfferView) error {
	c.mu.Lock()
	epoch := c.epoch
	target := c.target
	c.mu.Unlock()
	return c.respond(epoch, target, view, payload.StatusDeclined)
}

func (c *Channel) respond(epoch uint64, target Target, view OfferView, status string) error {
	encoded, err := payload.EncodeOfferResponse(payload.OfferResponse{
		TargetMessageID: view.MessageKey,
		Status:          status,
		Offer:           view.Offer,
		ResponderID:     c.myID,
		ResponderName:   c.myName,
		CreatedAt:       time.Now(),
	})
	if err != nil {
		return err
	}
	if _, err := c.api.SendMessage(target.CounterpartID, target.ProductID, encoded); err != nil {
		return err
	}
	go c.fetch(epoch, target)
	return nil
}

// Snapshot returns the current buffer for a screen that just attached.
func (c *Channel) Snapshot() ([]models.Message, *models.Product, Target) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := append([]models.Message(nil), c.messages...)
	return msgs, c.productCopyLocked(), c.target
}

// productCopyLocked detaches the listing struct handed to the UI goroutine
// from the one AcceptOffer mutates under the mutex.
func (c *Channel) productCopyLocked() *models.Product {
	if c.product == nil {
		return nil
	}
	p := *c.product
	return &p
}

func threadKey(myID, counterpartID, productID uint) string {
	key := ConversationKey(models.Message{SenderID: myID, ReceiverID: counterpartID}, myID)
	if productID != 0 {
		key = fmt.Sprintf("%s-p%d", key, productID)
	}
	return key
}
