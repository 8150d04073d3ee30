package chat

import (
	"fmt"
	"sort"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
)

// ConversationSummary is one entry of the deduplicated conversation list: the
// latest record of a counterpart+product group.
type ConversationSummary struct {
	Key           string
	CounterpartID uint
	ProductID     uint
	Last          models.Message
	Unread        bool
}

// CounterpartOf returns the other participant of a record relative to myID.
// ok is false when neither side matches, which only happens on rows the server
// should never have handed us.
func CounterpartOf(m models.Message, myID uint) (uint, bool) {
	switch myID {
	case m.SenderID:
		return m.ReceiverID, true
	case m.ReceiverID:
		return m.SenderID, true
	default:
		return 0, false
	}
}

// ConversationKey builds a symmetric identity for the two-party thread, so the
// same pair of users maps to one key no matter who sent the row.
func ConversationKey(m models.Message, myID uint) string {
	counterpart, ok := CounterpartOf(m, myID)
	if !ok || counterpart == 0 {
		return fmt.Sprintf("conv-r%d", m.ID)
	}
	if myID == 0 {
		return fmt.Sprintf("conv-%d", counterpart)
	}
	lo, hi := myID, counterpart
	if lo > hi {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("conv-%d-%d", lo, hi)
}

// MessageKey is the stable identity of a single row: the record id when the
// server gave us one, otherwise a composite of the fields that cannot repeat
// within a thread. Used to correlate context previews and to remember which
// rows already triggered effects.
func MessageKey(m models.Message) string {
	if m.ID != 0 {
		return fmt.Sprintf("%d", m.ID)
	}
	return fmt.Sprintf("p%d-s%d-r%d-%d", m.ProductIDValue(), m.SenderID, m.ReceiverID, m.CreatedAt.UnixNano())
}

// DedupeAndSort groups raw feed rows into conversations. Rows with the same
// counterpart but different products stay separate threads; within a group
// only the newest row survives. The result is ordered newest first and the
// function is idempotent: feeding its output back in changes nothing.
func DedupeAndSort(rows []models.Message, myID uint) []ConversationSummary {
	groups := make(map[string]ConversationSummary)
	for _, row := range rows {
		counterpart, _ := CounterpartOf(row, myID)
		key := ConversationKey(row, myID)
		if pid := row.ProductIDValue(); pid != 0 {
			key = fmt.Sprintf("%s-p%d", key, pid)
		}
		current, exists := groups[key]
		if !exists || row.CreatedAt.After(current.Last.CreatedAt) {
			groups[key] = ConversationSummary{
				Key:           key,
				CounterpartID: counterpart,
				ProductID:     row.ProductIDValue(),
				Last:          row,
				Unread:        row.ReceiverID == myID && !row.IsRead,
			}
		}
	}

	list := make([]ConversationSummary, 0, len(groups))
	for _, g := range groups {
		list = append(list, g)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Last.CreatedAt.Equal(list[j].Last.CreatedAt) {
			return list[i].Last.CreatedAt.After(list[j].Last.CreatedAt)
		}
		return list[i].Key < list[j].Key
	})
	return list
}
