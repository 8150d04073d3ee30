package notify

import (
	"time"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/chat"
)

type EntryType string

const (
	EntryMessage  EntryType = "message"
	EntryQuestion EntryType = "question"
	EntryResponse EntryType = "response"
)

// Entry is one row of the notification drawer, normalized across the three
// feeds so they can be merge-sorted. Key spaces are disjoint by construction:
// message entries key on conversation, Q&A entries on question id.
type Entry struct {
	Type            EntryType
	Timestamp       time.Time
	Title           string
	Body            string
	CounterpartID   uint
	ProductID       uint
	ConversationKey string
	QuestionID      uint
	Unread          bool
}

// Snapshot is what the bell and drawer render.
type Snapshot struct {
	// Badge is the visible unread-mail count: the server count unless the
	// user already cleared the drawer at that count.
	Badge int
	// Dot marks fresh Q&A activity since the drawer was last opened.
	Dot           bool
	Entries       []Entry
	Conversations []chat.ConversationSummary
	PendingOrders int
}

// QuestionEvent is the payload relayed across running instances when a new
// public question lands on one of the user's listings.
type QuestionEvent struct {
	QuestionID   uint   `json:"question_id"`
	ProductID    uint   `json:"product_id"`
	ProductTitle string `json:"product_title"`
	Kind         string `json:"kind"`
}
