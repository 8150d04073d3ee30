package notify

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/bus"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/store"
)

type fakeFeedAPI struct {
	mu        sync.Mutex
	rows      []models.Message
	unread    int
	unreadErr error
	feed      models.QuestionFeed
	feedErr   error
	orders    []models.Order
	ordersErr error

	// convGate, when set, holds GetConversations open until closed.
	convGate  chan struct{}
	convCalls int
}

func (f *fakeFeedAPI) GetConversations() ([]models.Message, error) {
	f.mu.Lock()
	f.convCalls++
	gate := f.convGate
	rows := append([]models.Message(nil), f.rows...)
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return rows, nil
}

func (f *fakeFeedAPI) conversationCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.convCalls
}

func (f *fakeFeedAPI) GetUnreadCount() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread, f.unreadErr
}

func (f *fakeFeedAPI) GetProductQuestions() (models.QuestionFeed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.feed, f.feedErr
}

func (f *fakeFeedAPI) GetSellerOrders() ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Order(nil), f.orders...), f.ordersErr
}

func newTestAggregator(api FeedAPI, st *store.Store) (*Aggregator, *bus.Bus) {
	b := bus.New()
	cadences := Cadences{Conversations: time.Hour, Badge: time.Hour, Questions: time.Hour}
	return NewAggregator(api, b, nil, st, 7, cadences), b
}

func answeredQuestion(id uint, answer string) models.ProductQuestion {
	answeredAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return models.ProductQuestion{
		ID:           id,
		ProductID:    3,
		ProductTitle: "Ar condicionado",
		AskerID:      7,
		SellerID:     12,
		Question:     "faz frio mesmo?",
		Answer:       &answer,
		AnsweredAt:   &answeredAt,
		CreatedAt:    time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestQuestionNotifiesExactlyOnce(t *testing.T) {
	api := &fakeFeedAPI{feed: models.QuestionFeed{
		AsSeller: []models.ProductQuestion{{
			ID: 41, ProductID: 3, ProductTitle: "Bike", AskerID: 9, SellerID: 7,
			Question: "aceita troca?", CreatedAt: time.Now(),
		}},
	}}
	a, b := newTestAggregator(api, store.InMemory())

	events, cancel := b.Subscribe(bus.TopicQuestionReceived)
	defer cancel()

	a.pollQuestions()
	assert.True(t, a.Current().Dot)

	select {
	case ev := <-events:
		q, ok := DecodeQuestionEvent(ev.Data)
		require.True(t, ok)
		assert.Equal(t, uint(41), q.QuestionID)
	case <-time.After(time.Second):
		t.Fatal("expected a question event")
	}

	// Re-polling the unchanged feed stays silent.
	a.pollQuestions()
	select {
	case ev := <-events:
		t.Fatalf("duplicate question event: %+v", ev.Data)
	case <-time.After(100 * time.Millisecond):
	}

	snap := a.Current()
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, EntryQuestion, snap.Entries[0].Type)
	assert.False(t, snap.Entries[0].Unread, "already seen after the first poll")
}

func TestQuestionSeenSurvivesRestart(t *testing.T) {
	st := store.InMemory()
	api := &fakeFeedAPI{feed: models.QuestionFeed{
		AsSeller: []models.ProductQuestion{{
			ID: 41, ProductID: 3, SellerID: 7, Question: "ainda tem?", CreatedAt: time.Now(),
		}},
	}}

	a, _ := newTestAggregator(api, st)
	a.pollQuestions()

	// Same store, fresh process.
	restarted, b2 := newTestAggregator(api, st)
	events, cancel := b2.Subscribe(bus.TopicQuestionReceived)
	defer cancel()

	restarted.pollQuestions()
	select {
	case ev := <-events:
		t.Fatalf("question re-fired after restart: %+v", ev.Data)
	case <-time.After(100 * time.Millisecond):
	}
	assert.False(t, restarted.Current().Dot)
}

func TestAnswerNotifiesOnTransitionOnly(t *testing.T) {
	unansweredFeed := models.QuestionFeed{
		AsAsker: []models.ProductQuestion{{
			ID: 55, ProductID: 3, AskerID: 7, SellerID: 12, Question: "faz frio?", CreatedAt: time.Now(),
		}},
	}
	api := &fakeFeedAPI{feed: unansweredFeed}
	a, _ := newTestAggregator(api, store.InMemory())

	a.pollQuestions()
	assert.False(t, a.Current().Dot, "own unanswered question is not news")
	assert.Empty(t, a.Current().Entries)

	api.mu.Lock()
	api.feed = models.QuestionFeed{AsAsker: []models.ProductQuestion{answeredQuestion(55, "sim, gela bem")}}
	api.mu.Unlock()

	a.pollQuestions()
	snap := a.Current()
	assert.True(t, snap.Dot)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, EntryResponse, snap.Entries[0].Type)
	assert.Equal(t, "sim, gela bem", snap.Entries[0].Body)

	// The answer stays in the drawer but never re-raises the dot.
	a.OpenDrawer()
	a.pollQuestions()
	assert.False(t, a.Current().Dot)
}

func TestBadgeClearsAndComesBack(t *testing.T) {
	api := &fakeFeedAPI{unread: 3}
	a, _ := newTestAggregator(api, store.InMemory())

	a.pollBadgeAndOrders()
	assert.Equal(t, 3, a.Current().Badge)

	a.OpenDrawer()
	assert.Equal(t, 0, a.Current().Badge)

	// Same count again: stays cleared.
	a.pollBadgeAndOrders()
	assert.Equal(t, 0, a.Current().Badge)

	// New mail: full server count shows, not the delta.
	api.mu.Lock()
	api.unread = 5
	api.mu.Unlock()
	a.pollBadgeAndOrders()
	assert.Equal(t, 5, a.Current().Badge)
}

func TestBadgeBaselineSurvivesRestart(t *testing.T) {
	st := store.InMemory()
	api := &fakeFeedAPI{unread: 3}

	a, _ := newTestAggregator(api, st)
	a.pollBadgeAndOrders()
	a.OpenDrawer()

	restarted, _ := newTestAggregator(api, st)
	restarted.pollBadgeAndOrders()
	assert.Equal(t, 0, restarted.Current().Badge)
}

func TestFeedFailuresAreIsolated(t *testing.T) {
	api := &fakeFeedAPI{
		unreadErr: fmt.Errorf("unread feed down"),
		orders:    []models.Order{{ID: 1, Status: models.OrderPending}, {ID: 2, Status: models.OrderConfirmed}},
		rows: []models.Message{{
			ID: 9, SenderID: 3, ReceiverID: 7, Content: "oi", CreatedAt: time.Now(),
		}},
	}
	a, _ := newTestAggregator(api, store.InMemory())

	a.pollBadgeAndOrders()
	a.pollConversations()

	snap := a.Current()
	assert.Equal(t, 0, snap.Badge, "failed feed leaves the badge alone")
	assert.Equal(t, 1, snap.PendingOrders)
	require.Len(t, snap.Conversations, 1)
	assert.Equal(t, uint(3), snap.Conversations[0].CounterpartID)
}

func TestMarkReadFlipsConversation(t *testing.T) {
	api := &fakeFeedAPI{rows: []models.Message{{
		ID: 9, SenderID: 3, ReceiverID: 7, Content: "oi", IsRead: false, CreatedAt: time.Now(),
	}}}
	a, _ := newTestAggregator(api, store.InMemory())

	a.pollConversations()
	snap := a.Current()
	require.Len(t, snap.Conversations, 1)
	require.True(t, snap.Conversations[0].Unread)

	a.MarkRead(snap.Conversations[0].Key)
	assert.False(t, a.Current().Conversations[0].Unread)
}

func TestOverlappingPollsCoalesce(t *testing.T) {
	api := &fakeFeedAPI{convGate: make(chan struct{})}
	a, _ := newTestAggregator(api, store.InMemory())

	done := make(chan struct{})
	go func() {
		a.pollConversations()
		close(done)
	}()

	require.Eventually(t, func() bool {
		return api.conversationCalls() == 1
	}, time.Second, 5*time.Millisecond)

	// A tick landing while the request is still in flight returns without
	// fetching again.
	a.pollConversations()
	assert.Equal(t, 1, api.conversationCalls())

	close(api.convGate)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("in-flight poll never finished")
	}

	// The slot frees once the slow request completes.
	a.pollConversations()
	assert.Equal(t, 2, api.conversationCalls())
}

func TestSnapshotMergesNewestFirst(t *testing.T) {
	api := &fakeFeedAPI{
		rows: []models.Message{{
			ID: 9, SenderID: 3, ReceiverID: 7, Content: "oi",
			CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		}},
		feed: models.QuestionFeed{AsSeller: []models.ProductQuestion{{
			ID: 41, SellerID: 7, Question: "aceita troca?",
			CreatedAt: time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
		}}},
	}
	a, _ := newTestAggregator(api, store.InMemory())

	a.pollConversations()
	a.pollQuestions()

	snap := a.Current()
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, EntryQuestion, snap.Entries[0].Type)
	assert.Equal(t, EntryMessage, snap.Entries[1].Type)
}
