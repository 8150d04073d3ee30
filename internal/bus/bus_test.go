package bus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event arrived")
		return Event{}
	}
}

func expectSilence(t *testing.T, ch <-chan Event) {
	t.Helper()
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeFiltersTopics(t *testing.T) {
	b := New()
	orders, cancel := b.Subscribe(TopicOrdersChanged)
	defer cancel()

	b.Publish(TopicNotifications, "noise")
	b.Publish(TopicOrdersChanged, 2)

	ev := recv(t, orders)
	assert.Equal(t, TopicOrdersChanged, ev.Topic)
	assert.Equal(t, 2, ev.Data)
	expectSilence(t, orders)
}

func TestSubscribeAllTopics(t *testing.T) {
	b := New()
	all, cancel := b.Subscribe()
	defer cancel()

	b.Publish(TopicThreadUpdated, nil)
	b.Publish(TopicClosePanel, nil)

	assert.Equal(t, TopicThreadUpdated, recv(t, all).Topic)
	assert.Equal(t, TopicClosePanel, recv(t, all).Topic)
}

func TestPublishNeverBlocksOnFullSubscriber(t *testing.T) {
	b := New()
	_, cancelStalled := b.Subscribe(TopicNotifications)
	defer cancelStalled()
	healthy, cancelHealthy := b.Subscribe(TopicNotifications)
	defer cancelHealthy()

	// Overflow the stalled subscriber's buffer without draining it.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			b.Publish(TopicNotifications, i)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a stalled subscriber")
	}

	// The healthy subscriber still got the head of the stream.
	assert.Equal(t, 0, recv(t, healthy).Data)
}

func TestCancelClosesChannel(t *testing.T) {
	b := New()
	events, cancel := b.Subscribe(TopicThreadOpened)

	cancel()
	cancel() // idempotent

	_, open := <-events
	require.False(t, open)

	// Publishing after cancel reaches nobody and does not panic.
	b.Publish(TopicThreadOpened, nil)
}
