package models

import (
	"fmt"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/bus"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/chat"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/config"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/notify"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/store"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/tui/client"
	tea "github.com/charmbracelet/bubbletea"
)

// Deps carries everything the screens share: the HTTP client, the signal bus,
// persisted state, and the per-session channel and alert aggregator. The
// session half is nil until the user is signed in.
type Deps struct {
	Client *client.APIClient
	Cfg    config.Client
	Store  *store.Store
	Bus    *bus.Bus
	Relay  *bus.Relay

	Channel *chat.Channel
	Alerts  *notify.Aggregator

	UserID   uint
	Username string
}

// NewSession builds the signed-in half of Deps and starts the alert feeds.
func NewSession(base Deps, userID uint, username string) Deps {
	d := base
	d.UserID = userID
	d.Username = username
	d.Channel = chat.NewChannel(d.Client, d.Bus, d.Store, userID, username, d.Cfg.ThreadPollInterval)
	d.Alerts = notify.NewAggregator(d.Client, d.Bus, d.Relay, d.Store, userID, notify.Cadences{
		Conversations: d.Cfg.ThreadPollInterval,
		Badge:         d.Cfg.BadgePollInterval,
		Questions:     d.Cfg.QuestionPollInterval,
	})
	d.Alerts.Start()
	return d
}

// PendingTargetKey is the storage slot a storefront page writes before
// launching the app, naming the conversation it wants opened first.
func PendingTargetKey(userID uint) string {
	return fmt.Sprintf("pending_chat_target:%d", userID)
}

// BusEventMsg wraps a bus event for delivery through the tea runtime.
type BusEventMsg bus.Event

// WaitForEvent blocks on the subscription and hands the next event to the
// program. The root model re-arms it after every delivery.
func WaitForEvent(events <-chan bus.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return BusEventMsg(ev)
	}
}
