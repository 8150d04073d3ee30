package models

import (
	"fmt"
	"log"
	"strings"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/bus"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/chat"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/notify"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/payload"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MainChatModel is the conversation list: one row per counterpart+product
// group, with the notification bell in the header.
type MainChatModel struct {
	deps        Deps
	snapshot    notify.Snapshot
	selectedIdx int
	search      textinput.Model
	searching   bool
	width       int
	height      int
}

type pendingTargetMsg struct {
	target chat.Target
}

type signedOutMsg struct{}

func NewMainChatModel(deps Deps) MainChatModel {
	search := textinput.New()
	search.Placeholder = "Filter conversations"
	search.Prompt = "/ "
	search.CharLimit = 60
	search.Width = 32

	return MainChatModel{
		deps:     deps,
		snapshot: deps.Alerts.Current(),
		search:   search,
	}
}

func (m MainChatModel) Init() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		// A storefront page may have queued a conversation to open. The slot is
		// consumed on read so relaunching the app lands on the list.
		var target chat.Target
		if deps.Store.TakeOnce(PendingTargetKey(deps.UserID), &target) && target.CounterpartID != 0 {
			return pendingTargetMsg{target: target}
		}
		return nil
	}
}

func (m MainChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case pendingTargetMsg:
		next := NewThreadModel(m.deps, msg.target.CounterpartID, msg.target.ProductID, true)
		return next, next.Init()

	case signedOutMsg:
		base := m.deps
		base.Channel = nil
		base.Alerts = nil
		base.UserID = 0
		base.Username = ""
		next := NewLoginModel(base)
		return next, next.Init()

	case BusEventMsg:
		switch msg.Topic {
		case bus.TopicNotifications:
			if snap, ok := msg.Data.(notify.Snapshot); ok {
				m.snapshot = snap
				if m.selectedIdx >= len(snap.Conversations) {
					m.selectedIdx = max(0, len(snap.Conversations)-1)
				}
			}
		case bus.TopicToggleSearch:
			m.searching = !m.searching
			m.selectedIdx = 0
			if m.searching {
				m.search.Reset()
				return m, m.search.Focus()
			}
			m.search.Blur()
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "esc":
				return m, toggleSearchCmd(m.deps.Bus)
			case "enter":
				return m.openSelected()
			case "up":
				if m.selectedIdx > 0 {
					m.selectedIdx--
				}
				return m, nil
			case "down":
				if m.selectedIdx < len(m.visible())-1 {
					m.selectedIdx++
				}
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			default:
				var cmd tea.Cmd
				m.search, cmd = m.search.Update(msg)
				if m.selectedIdx >= len(m.visible()) {
					m.selectedIdx = max(0, len(m.visible())-1)
				}
				return m, cmd
			}
		}

		switch msg.String() {
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}

		case "down", "j":
			if m.selectedIdx < len(m.snapshot.Conversations)-1 {
				m.selectedIdx++
			}

		case "enter":
			return m.openSelected()

		case "/":
			return m, toggleSearchCmd(m.deps.Bus)

		case "n":
			next := NewNotificationsModel(m.deps)
			return next, next.Init()

		case "ctrl+l":
			deps := m.deps
			return m, func() tea.Msg {
				if err := deps.Client.Logout(); err != nil {
					log.Printf("sign-out: %v", err)
				}
				deps.Channel.Close()
				deps.Alerts.Stop()
				// Seen-sets and baselines belong to the account, not the machine.
				deps.Store.Clear()
				return signedOutMsg{}
			}

		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

// openSelected opens the highlighted row, against the filtered view when the
// search bar is active.
func (m MainChatModel) openSelected() (tea.Model, tea.Cmd) {
	rows := m.visible()
	if len(rows) == 0 {
		return m, nil
	}
	conv := rows[min(m.selectedIdx, len(rows)-1)]
	next := NewThreadModel(m.deps, conv.CounterpartID, conv.ProductID, false)
	return next, next.Init()
}

// visible applies the search filter. Rows match on the counterpart, the
// listing id and the last message text.
func (m MainChatModel) visible() []chat.ConversationSummary {
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if !m.searching || query == "" {
		return m.snapshot.Conversations
	}
	var rows []chat.ConversationSummary
	for _, conv := range m.snapshot.Conversations {
		hay := strings.ToLower(fmt.Sprintf("user %d listing %d %s", conv.CounterpartID, conv.ProductID, conv.Last.Content))
		if strings.Contains(hay, query) {
			rows = append(rows, conv)
		}
	}
	return rows
}

// toggleSearchCmd goes through the bus rather than flipping local state, the
// same signal the storefront header search rides on.
func toggleSearchCmd(b *bus.Bus) tea.Cmd {
	return func() tea.Msg {
		b.Publish(bus.TopicToggleSearch, nil)
		return nil
	}
}

func (m MainChatModel) View() string {
	var sb strings.Builder

	header := fmt.Sprintf("Saleday — %s", m.deps.Username)
	sb.WriteString(styles.TitleStyle.Render(header))
	sb.WriteString("  " + renderBell(m.snapshot) + "\n\n")

	sb.WriteString("Your conversations\n")
	sb.WriteString(strings.Repeat("-", 24) + "\n")

	if m.searching {
		sb.WriteString(styles.InputFieldFocusedStyle.Render(m.search.View()) + "\n")
	}

	rows := m.visible()
	if len(rows) == 0 {
		empty := "No conversations yet."
		if m.searching {
			empty = "No conversations match."
		}
		sb.WriteString(styles.MutedTextStyle.Render(empty) + "\n")
	}

	for i, conv := range rows {
		line := conversationLine(conv.CounterpartID, conv.ProductID, previewText(conv.Last.Content))
		if conv.Unread {
			line = "● " + line
		}
		if i == m.selectedIdx {
			sb.WriteString(styles.SelectedItemStyle.Render("> "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}

	if m.searching {
		sb.WriteString("\n[Up/Down] Navigate | [Enter] Open | [Esc] Close search")
	} else {
		sb.WriteString("\n[Up/Down] Navigate | [Enter] Open | [/] Search | [n] Notifications | [Ctrl+L] Sign out | [q] Quit")
	}

	return styles.ContainerStyle.Render(sb.String())
}

func renderBell(snap notify.Snapshot) string {
	out := ""
	if snap.Badge > 0 {
		out = styles.BadgeStyle.Render(fmt.Sprintf("✉ %d", snap.Badge))
	}
	if snap.Dot {
		out += styles.DotStyle.Render(" •")
	}
	if snap.PendingOrders > 0 {
		out += styles.NavStyle.Render(fmt.Sprintf("  %d pending orders", snap.PendingOrders))
	}
	return out
}

func conversationLine(counterpartID, productID uint, preview string) string {
	line := fmt.Sprintf("User %d", counterpartID)
	if productID != 0 {
		line += fmt.Sprintf(" · listing %d", productID)
	}
	if preview != "" {
		line += "  " + styles.MutedTextStyle.Render(preview)
	}
	return line
}

// previewText flattens a record into one list-row line; tagged payloads get a
// short label instead of their raw JSON.
func previewText(content string) string {
	switch payload.Classify(content) {
	case payload.KindOffer:
		if o := payload.DecodeOffer(content); o != nil {
			return fmt.Sprintf("[offer %s %.2f]", o.Currency, o.Amount)
		}
		return "[offer]"
	case payload.KindOfferResponse:
		if r := payload.DecodeOfferResponse(content); r != nil {
			return fmt.Sprintf("[offer %s]", r.Status)
		}
		return "[offer reply]"
	case payload.KindProductContext:
		return "[listing shared]"
	}
	if len(content) > 42 {
		return content[:42] + "…"
	}
	return content
}
