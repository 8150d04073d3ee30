package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/bus"
	appmodels "github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// OfferModal collects an amount and an optional note, then hands the proposal
// to the channel and drops back into the thread.
type OfferModal struct {
	parent     ThreadModel
	amount     textinput.Model
	note       textinput.Model
	focusIndex int
	status     string
	submitting bool
}

type offerSentMsg struct {
	err error
}

func NewOfferModal(parent ThreadModel) OfferModal {
	amount := textinput.New()
	amount.Placeholder = "Amount"
	amount.Prompt = "> "
	amount.CharLimit = 12
	amount.Width = 24
	amount.Focus()

	note := textinput.New()
	note.Placeholder = "Note (optional)"
	note.Prompt = "> "
	note.CharLimit = 200
	note.Width = 40

	return OfferModal{
		parent: parent,
		amount: amount,
		note:   note,
	}
}

func (m OfferModal) Init() tea.Cmd {
	return textinput.Blink
}

func (m OfferModal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case BusEventMsg:
		if msg.Topic == bus.TopicClosePanel {
			parent := m.parent
			parent.flash = "Este anúncio acabou de ser vendido."
			parent.flashError = true
			return parent, nil
		}
		// The thread keeps polling behind the modal; feed it so the view the
		// user drops back into is current.
		next, cmd := m.parent.Update(msg)
		if parent, ok := next.(ThreadModel); ok {
			m.parent = parent
		}
		if msg.Topic == bus.TopicThreadUpdated && m.parent.product != nil && m.parent.product.Status == appmodels.ProductSold {
			// No point composing an offer on a sold listing.
			b := m.parent.deps.Bus
			return m, tea.Batch(cmd, func() tea.Msg {
				b.Publish(bus.TopicClosePanel, nil)
				return nil
			})
		}
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m.parent, nil

		case "tab", "shift+tab":
			m.focusIndex = 1 - m.focusIndex
			if m.focusIndex == 0 {
				m.note.Blur()
				return m, m.amount.Focus()
			}
			m.amount.Blur()
			return m, m.note.Focus()

		case "enter":
			if m.submitting {
				return m, nil
			}
			amount, err := strconv.ParseFloat(strings.TrimSpace(m.amount.Value()), 64)
			if err != nil || amount <= 0 {
				m.status = "Enter a positive amount."
				return m, nil
			}
			m.submitting = true
			m.status = "Sending offer..."
			ch := m.parent.deps.Channel
			note := strings.TrimSpace(m.note.Value())
			return m, func() tea.Msg {
				return offerSentMsg{err: ch.SendOffer(amount, note)}
			}

		case "ctrl+c":
			return m, tea.Quit
		}

	case offerSentMsg:
		m.submitting = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		parent := m.parent
		parent.flash = "Oferta enviada."
		parent.flashError = false
		return parent, nil
	}

	var cmds [2]tea.Cmd
	m.amount, cmds[0] = m.amount.Update(msg)
	m.note, cmds[1] = m.note.Update(msg)
	return m, tea.Batch(cmds[0], cmds[1])
}

func (m OfferModal) View() string {
	currency := "BRL"
	if m.parent.product != nil {
		currency = m.parent.product.Currency
	}

	amountField := styles.InputFieldStyle.Render(m.amount.View())
	noteField := styles.InputFieldStyle.Render(m.note.View())
	if m.focusIndex == 0 {
		amountField = styles.InputFieldFocusedStyle.Render(m.amount.View())
	} else {
		noteField = styles.InputFieldFocusedStyle.Render(m.note.View())
	}

	sections := []string{
		styles.CardTitleStyle.Render("Make an offer"),
		styles.CardSubtitleStyle.Render(fmt.Sprintf("Currency: %s", currency)),
		amountField,
		noteField,
	}
	if m.status != "" {
		sections = append(sections, styles.StatusInfoStyle.Render(m.status))
	}
	sections = append(sections, styles.HelpStyle.Render("[Enter] Send  [Tab] Switch field  [Esc] Cancel"))

	card := styles.CardStyle.Render(strings.Join(sections, "\n\n"))
	if m.parent.width > 0 && m.parent.height > 0 {
		return lipgloss.Place(m.parent.width, m.parent.height, lipgloss.Center, lipgloss.Center, card)
	}
	return card
}
