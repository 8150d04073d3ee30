package notify

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/bus"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/chat"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/store"
)

// FeedAPI is the slice of the HTTP client the aggregator polls.
type FeedAPI interface {
	GetConversations() ([]models.Message, error)
	GetUnreadCount() (int, error)
	GetProductQuestions() (models.QuestionFeed, error)
	GetSellerOrders() ([]models.Order, error)
}

// Cadences are the three feed intervals. They are independent on purpose:
// conversations move fastest, Q&A slowest.
type Cadences struct {
	Conversations time.Duration
	Badge         time.Duration
	Questions     time.Duration
}

// Aggregator merges three polled feeds into one notification state. Each feed
// has its own loop; one feed failing never stalls the others. Everything it
// badges is deduplicated against persisted seen/cleared markers so re-polling
// and restarts stay quiet.
type Aggregator struct {
	api      FeedAPI
	bus      *bus.Bus
	relay    *bus.Relay
	st       *store.Store
	userID   uint
	cadences Cadences

	mu            sync.Mutex
	conversations []chat.ConversationSummary
	qaEntries     []Entry
	prevAnswered  map[uint]bool
	seen          map[string]bool
	baseline      int
	serverCount   int
	dot           bool
	pendingOrders int

	inFlightConv  bool
	inFlightBadge bool
	inFlightQA    bool

	stop   chan struct{}
	cancel func()
}

func NewAggregator(api FeedAPI, b *bus.Bus, relay *bus.Relay, st *store.Store, userID uint, cadences Cadences) *Aggregator {
	a := &Aggregator{
		api:          api,
		bus:          b,
		relay:        relay,
		st:           st,
		userID:       userID,
		cadences:     cadences,
		prevAnswered: make(map[uint]bool),
		seen:         make(map[string]bool),
	}
	st.Get(a.baselineKey(), &a.baseline)
	st.Get(a.seenKey(), &a.seen)
	if a.seen == nil {
		a.seen = make(map[string]bool)
	}
	return a
}

func (a *Aggregator) baselineKey() string {
	return fmt.Sprintf("unread_baseline:%d", a.userID)
}

func (a *Aggregator) seenKey() string {
	return fmt.Sprintf("seen_questions:%d", a.userID)
}

func (a *Aggregator) Start() {
	if a.stop != nil {
		return
	}
	stop := make(chan struct{})
	a.stop = stop

	go a.loop(stop, a.cadences.Conversations, a.pollConversations)
	go a.loop(stop, a.cadences.Badge, a.pollBadgeAndOrders)
	go a.loop(stop, a.cadences.Questions, a.pollQuestions)

	events, cancel := a.bus.Subscribe(bus.TopicThreadOpened, bus.TopicQuestionReceived)
	a.cancel = cancel
	go a.consume(events)
}

func (a *Aggregator) Stop() {
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *Aggregator) loop(stop <-chan struct{}, interval time.Duration, poll func()) {
	poll()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			poll()
		}
	}
}

// begin reserves a feed slot so a slow request and the next tick never
// overlap; returns false when a fetch is already in flight.
func (a *Aggregator) begin(flag *bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if *flag {
		return false
	}
	*flag = true
	return true
}

func (a *Aggregator) end(flag *bool) {
	a.mu.Lock()
	*flag = false
	a.mu.Unlock()
}

func (a *Aggregator) pollConversations() {
	if !a.begin(&a.inFlightConv) {
		return
	}
	defer a.end(&a.inFlightConv)

	rows, err := a.api.GetConversations()
	if err != nil {
		log.Printf("conversation feed failed: %v", err)
		return
	}
	list := chat.DedupeAndSort(rows, a.userID)

	a.mu.Lock()
	a.conversations = list
	a.mu.Unlock()
	a.publish()
}

func (a *Aggregator) pollBadgeAndOrders() {
	if !a.begin(&a.inFlightBadge) {
		return
	}
	defer a.end(&a.inFlightBadge)

	count, err := a.api.GetUnreadCount()
	if err != nil {
		log.Printf("unread count feed failed: %v", err)
	} else {
		a.mu.Lock()
		a.serverCount = count
		a.mu.Unlock()
	}

	orders, err := a.api.GetSellerOrders()
	if err != nil {
		log.Printf("orders feed failed: %v", err)
	} else {
		pending := 0
		for _, o := range orders {
			if o.Status == models.OrderPending {
				pending++
			}
		}
		a.mu.Lock()
		changed := pending != a.pendingOrders
		a.pendingOrders = pending
		a.mu.Unlock()
		if changed {
			a.bus.Publish(bus.TopicOrdersChanged, pending)
		}
	}
	a.publish()
}

// PollQuestionsNow runs the Q&A feed out of band, used when the bell opens.
func (a *Aggregator) PollQuestionsNow() {
	a.pollQuestions()
}

func (a *Aggregator) pollQuestions() {
	if !a.begin(&a.inFlightQA) {
		return
	}
	defer a.end(&a.inFlightQA)

	feed, err := a.api.GetProductQuestions()
	if err != nil {
		log.Printf("question feed failed: %v", err)
		return
	}
	a.reduceQuestions(feed)
	a.publish()
}

// reduceQuestions is the pure part of the Q&A feed: same input twice, same
// output, one badge. A question fires once per persisted seen-key; an answer
// fires only on the unanswered-to-answered transition against the previous
// poll's snapshot.
func (a *Aggregator) reduceQuestions(feed models.QuestionFeed) {
	var entries []Entry
	var broadcasts []QuestionEvent
	answered := make(map[uint]bool)

	a.mu.Lock()
	seenChanged := false

	for _, q := range feed.AsSeller {
		if q.Answer != nil {
			continue
		}
		entries = append(entries, Entry{
			Type:          EntryQuestion,
			Timestamp:     q.CreatedAt,
			Title:         q.ProductTitle,
			Body:          q.Question,
			ProductID:     q.ProductID,
			QuestionID:    q.ID,
			CounterpartID: q.AskerID,
			Unread:        !a.seen[questionKey(q.ID, EntryQuestion)],
		})
		key := questionKey(q.ID, EntryQuestion)
		if !a.seen[key] {
			a.seen[key] = true
			seenChanged = true
			a.dot = true
			broadcasts = append(broadcasts, QuestionEvent{
				QuestionID:   q.ID,
				ProductID:    q.ProductID,
				ProductTitle: q.ProductTitle,
				Kind:         string(EntryQuestion),
			})
		}
	}

	for _, q := range feed.AsAsker {
		answered[q.ID] = q.Answer != nil
		if q.Answer == nil {
			continue
		}
		ts := q.CreatedAt
		if q.AnsweredAt != nil {
			ts = *q.AnsweredAt
		}
		entries = append(entries, Entry{
			Type:          EntryResponse,
			Timestamp:     ts,
			Title:         q.ProductTitle,
			Body:          *q.Answer,
			ProductID:     q.ProductID,
			QuestionID:    q.ID,
			CounterpartID: q.SellerID,
			Unread:        !a.seen[questionKey(q.ID, EntryResponse)],
		})
		key := questionKey(q.ID, EntryResponse)
		if !a.prevAnswered[q.ID] && !a.seen[key] {
			a.seen[key] = true
			seenChanged = true
			a.dot = true
		}
	}

	a.prevAnswered = answered
	a.qaEntries = entries
	if seenChanged {
		a.st.Set(a.seenKey(), a.seen)
	}
	a.mu.Unlock()

	for _, ev := range broadcasts {
		if a.relay != nil {
			a.relay.Broadcast(bus.TopicQuestionReceived, ev)
		} else {
			a.bus.Publish(bus.TopicQuestionReceived, ev)
		}
	}
}

// OpenDrawer snaps the cleared baseline to the current server count, zeroing
// the badge regardless of how high it was, and kicks an out-of-band Q&A poll.
func (a *Aggregator) OpenDrawer() {
	a.mu.Lock()
	a.baseline = a.serverCount
	a.dot = false
	a.st.Set(a.baselineKey(), a.baseline)
	a.mu.Unlock()

	a.publish()
	go a.PollQuestionsNow()
}

// MarkRead flips a conversation read locally, ahead of the server.
func (a *Aggregator) MarkRead(key string) {
	a.mu.Lock()
	for i := range a.conversations {
		if a.conversations[i].Key == key {
			a.conversations[i].Unread = false
			a.conversations[i].Last.IsRead = true
		}
	}
	a.mu.Unlock()
	a.publish()
}

// Current builds the snapshot under the lock.
func (a *Aggregator) Current() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *Aggregator) snapshotLocked() Snapshot {
	entries := make([]Entry, 0, len(a.conversations)+len(a.qaEntries))
	for _, c := range a.conversations {
		entries = append(entries, Entry{
			Type:            EntryMessage,
			Timestamp:       c.Last.CreatedAt,
			Title:           fmt.Sprintf("Message from user %d", c.CounterpartID),
			Body:            c.Last.Content,
			CounterpartID:   c.CounterpartID,
			ProductID:       c.ProductID,
			ConversationKey: c.Key,
			Unread:          c.Unread,
		})
	}
	entries = append(entries, a.qaEntries...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	badge := 0
	if a.serverCount > a.baseline {
		badge = a.serverCount
	}
	return Snapshot{
		Badge:         badge,
		Dot:           a.dot,
		Entries:       entries,
		Conversations: append([]chat.ConversationSummary(nil), a.conversations...),
		PendingOrders: a.pendingOrders,
	}
}

func (a *Aggregator) publish() {
	a.bus.Publish(bus.TopicNotifications, a.Current())
}

func (a *Aggregator) consume(events <-chan bus.Event) {
	for ev := range events {
		switch ev.Topic {
		case bus.TopicThreadOpened:
			if opened, ok := ev.Data.(chat.ThreadOpened); ok {
				a.MarkRead(opened.Key)
			}
		case bus.TopicQuestionReceived:
			// Relayed from another running instance: light the dot, the next
			// Q&A poll fills in the entry. Our own broadcasts come back here
			// too; marking an already-set dot is harmless.
			if _, ok := DecodeQuestionEvent(ev.Data); ok {
				a.mu.Lock()
				a.dot = true
				a.mu.Unlock()
				a.publish()
			}
		}
	}
}

// DecodeQuestionEvent normalizes a bus payload that may be typed (in-process)
// or raw JSON (relayed from another instance).
func DecodeQuestionEvent(data any) (QuestionEvent, bool) {
	switch v := data.(type) {
	case QuestionEvent:
		return v, true
	case json.RawMessage:
		var ev QuestionEvent
		if err := json.Unmarshal(v, &ev); err != nil {
			return QuestionEvent{}, false
		}
		return ev, true
	default:
		return QuestionEvent{}, false
	}
}

func questionKey(id uint, t EntryType) string {
	return fmt.Sprintf("%d#%s", id, t)
}
