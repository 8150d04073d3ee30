package bus

import (
	"sync"
)

// Cross-component signal topics. Question and order events are additionally
// relayed to other running instances, the rest stay in-process.
const (
	TopicThreadOpened     = "chat:thread_opened"
	TopicThreadUpdated    = "chat:thread_updated"
	TopicNotifications    = "notify:updated"
	TopicQuestionReceived = "product:question_received"
	TopicOrdersChanged    = "orders:changed"
	TopicClosePanel       = "ui:close_panel"
	TopicToggleSearch     = "ui:toggle_search"
)

type Event struct {
	Topic string
	Data  any
}

type subscriber struct {
	topics map[string]bool
	ch     chan Event
}

// Bus is the in-process publish/subscribe layer. Publishing never blocks: a
// subscriber that stopped draining just misses events, the next poll tick
// re-derives whatever state they carried.
type Bus struct {
	mu   sync.Mutex
	subs map[int]*subscriber
	next int
}

func New() *Bus {
	return &Bus{subs: make(map[int]*subscriber)}
}

// Subscribe returns a channel delivering events on the given topics (all
// topics when none are named) and a cancel func that must be called when the
// consumer goes away.
func (b *Bus) Subscribe(topics ...string) (<-chan Event, func()) {
	sub := &subscriber{ch: make(chan Event, 16)}
	if len(topics) > 0 {
		sub.topics = make(map[string]bool, len(topics))
		for _, t := range topics {
			sub.topics[t] = true
		}
	}

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = sub
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub.ch)
		}
		b.mu.Unlock()
	}
	return sub.ch, cancel
}

func (b *Bus) Publish(topic string, data any) {
	ev := Event{Topic: topic, Data: data}
	b.mu.Lock()
	for _, sub := range b.subs {
		if sub.topics != nil && !sub.topics[topic] {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
	b.mu.Unlock()
}
