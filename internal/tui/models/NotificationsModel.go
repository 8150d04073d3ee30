package models

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/bus"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/notify"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/tui/styles"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/utils"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NotificationsModel is the drawer: unread conversations and Q&A activity
// merged into one list, newest first. Opening it clears the bell badge and
// the activity dot.
type NotificationsModel struct {
	deps         Deps
	alerts       list.Model
	width        int
	height       int
	flashMessage string
	flashStyle   lipgloss.Style
}

func NewNotificationsModel(deps Deps) NotificationsModel {
	alertDelegate := newAlertDelegate()
	alertList := list.New([]list.Item{}, alertDelegate, 80, 18)
	alertList.SetShowHelp(false)
	alertList.SetShowTitle(false)
	alertList.SetShowStatusBar(false)
	alertList.SetShowPagination(false)
	alertList.DisableQuitKeybindings()

	return NotificationsModel{
		deps:         deps,
		alerts:       alertList,
		flashMessage: "Loading notifications...",
		flashStyle:   styles.StatusInfoStyle,
	}
}

func (m NotificationsModel) Init() tea.Cmd {
	deps := m.deps
	return tea.Batch(utils.GetSizeCmd(), func() tea.Msg {
		// Opening the drawer is the acknowledgement: badge baseline moves to
		// the current server count and the Q&A dot clears.
		deps.Alerts.OpenDrawer()
		return drawerLoadedMsg{snapshot: deps.Alerts.Current()}
	})
}

type drawerLoadedMsg struct {
	snapshot notify.Snapshot
}

func (m NotificationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		listWidth := m.width - 8
		if listWidth < 16 {
			listWidth = 16
		}

		listHeight := msg.Height - 10
		if listHeight < 8 {
			listHeight = 8
		}

		m.alerts.SetSize(listWidth, listHeight)
		return m, nil

	case drawerLoadedMsg:
		m.setEntries(msg.snapshot.Entries)
		return m, nil

	case BusEventMsg:
		switch msg.Topic {
		case bus.TopicNotifications:
			if snap, ok := msg.Data.(notify.Snapshot); ok {
				m.setEntries(snap.Entries)
			}
		case bus.TopicClosePanel:
			next := NewMainChatModel(m.deps)
			return next, next.Init()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.flashMessage = "Refreshing..."
			m.flashStyle = styles.StatusInfoStyle
			deps := m.deps
			return m, func() tea.Msg {
				deps.Alerts.PollQuestionsNow()
				return drawerLoadedMsg{snapshot: deps.Alerts.Current()}
			}

		case "enter":
			if it, ok := m.alerts.SelectedItem().(alertItem); ok {
				if it.entry.Type == notify.EntryMessage && it.entry.CounterpartID != 0 {
					next := NewThreadModel(m.deps, it.entry.CounterpartID, it.entry.ProductID, false)
					return next, next.Init()
				}
			}
			return m, nil

		case "esc", "q":
			next := NewMainChatModel(m.deps)
			return next, next.Init()

		case "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.alerts, cmd = m.alerts.Update(msg)
	return m, cmd
}

func (m *NotificationsModel) setEntries(entries []notify.Entry) {
	m.alerts.SetItems(buildAlertItems(entries))
	m.flashMessage = fmt.Sprintf("%d notifications", len(entries))
	m.flashStyle = styles.StatusInfoStyle
	if len(entries) == 0 {
		m.flashMessage = "You're all caught up."
	}
}

func (m NotificationsModel) View() string {
	header := styles.TitleStyle.Render("Notifications")
	subtitle := styles.SubtitleStyle.Render("Messages, offers and Q&A on your listings.")

	status := m.flashMessage
	statusStyle := m.flashStyle
	if status == "" {
		status = fmt.Sprintf("%d notifications", len(m.alerts.Items()))
		statusStyle = styles.StatusInfoStyle
	}

	helpItems := []string{
		styles.RenderKeyBinding("Enter", "Open conversation"),
		styles.RenderKeyBinding("r", "Refresh"),
		styles.RenderKeyBinding("Esc", "Back"),
	}
	help := strings.Join(helpItems, styles.HelpStyle.Render("  "))

	footerContent := statusStyle.Render(status) + "\n" + styles.HelpStyle.Render(help)
	footer := styles.StatusBarStyle.Render(footerContent)

	layout := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		subtitle,
		"",
		m.alerts.View(),
		"",
		footer,
	)

	if m.width > 0 && m.height > 0 {
		app := styles.AppStyle.Copy().Width(m.width).Height(m.height)
		return app.Render(layout)
	}
	return styles.AppStyle.Render(layout)
}

type alertItem struct {
	entry notify.Entry
}

func (a alertItem) Title() string       { return a.entry.Title }
func (a alertItem) FilterValue() string { return a.entry.Title }

type alertDelegate struct{}

func newAlertDelegate() alertDelegate { return alertDelegate{} }

func (d alertDelegate) Height() int                               { return 2 }
func (d alertDelegate) Spacing() int                              { return 1 }
func (d alertDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d alertDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(alertItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()
	titleStyle := styles.ListItemTitleStyle
	if isSelected {
		titleStyle = styles.ListItemTitleSelectedStyle
	}

	label := item.entry.Title
	if item.entry.Unread {
		label = "● " + label
	}
	title := titleStyle.Render(label)

	meta := item.entry.Body
	if meta != "" {
		meta += " · "
	}
	meta += formatRelativeTime(item.entry.Timestamp)

	pointer := "  "
	if isSelected {
		pointer = styles.KeyStyle.Render("> ")
	}

	fmt.Fprintf(w, "%s%s\n    %s", pointer, title, styles.ListItemMetaStyle.Render(meta))
}

func buildAlertItems(entries []notify.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = alertItem{entry: entry}
	}
	return items
}

func formatRelativeTime(t time.Time) string {
	now := time.Now()
	if t.IsZero() {
		return "sometime"
	}
	if t.After(now) {
		return fmt.Sprintf("in %s", humanizeDuration(t.Sub(now)))
	}
	return fmt.Sprintf("%s ago", humanizeDuration(now.Sub(t)))
}

func humanizeDuration(d time.Duration) string {
	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 1 {
			secs = 1
		}
		return fmt.Sprintf("%ds", secs)
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	days := int(d.Hours() / 24)
	return fmt.Sprintf("%dd", days)
}
