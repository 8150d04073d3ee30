package models

import (
	"fmt"
	"strings"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/bus"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/chat"
	appmodels "github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/payload"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/tui/styles"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/utils"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const maxVisibleMessages = 8

// ThreadModel is one open conversation: the live message feed, the listing
// card, and the offer affordances. The channel poll loop feeds it through the
// bus; everything rendered here is re-derived from the feed on every update.
type ThreadModel struct {
	deps          Deps
	counterpartID uint
	productID     uint
	withContext   bool

	messages    []appmodels.Message
	product     *appmodels.Product
	offers      []chat.OfferView
	input       textarea.Model
	scrollIndex int
	flash       string
	flashError  bool
	width       int
	height      int
}

type sendResultMsg struct {
	err error
}

type offerActionMsg struct {
	action string
	err    error
}

type conversationDeletedMsg struct {
	err error
}

func NewThreadModel(deps Deps, counterpartID, productID uint, withContext bool) ThreadModel {
	input := textarea.New()
	input.Placeholder = "Type a message..."
	input.Focus()
	input.SetWidth(80)
	input.SetHeight(3)
	input.CharLimit = 500

	return ThreadModel{
		deps:          deps,
		counterpartID: counterpartID,
		productID:     productID,
		withContext:   withContext,
		input:         input,
	}
}

func (m ThreadModel) Init() tea.Cmd {
	deps := m.deps
	counterpartID, productID, withContext := m.counterpartID, m.productID, m.withContext
	return tea.Batch(textarea.Blink, utils.GetSizeCmd(), func() tea.Msg {
		deps.Channel.Open(counterpartID, productID, withContext)
		return nil
	})
}

func (m ThreadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width - 8
		if w > 100 {
			w = 100
		}
		if w < 30 {
			w = 30
		}
		m.input.SetWidth(w)
		return m, nil

	case BusEventMsg:
		if msg.Topic != bus.TopicThreadUpdated {
			return m, nil
		}
		update, ok := msg.Data.(chat.ThreadUpdate)
		if !ok || update.Target.CounterpartID != m.counterpartID || update.Target.ProductID != m.productID {
			return m, nil
		}
		m.messages = update.Messages
		if update.Product != nil {
			m.product = update.Product
		}
		m.offers = m.resolveOffers()
		m.scrollIndex = len(m.messages) - maxVisibleMessages
		if m.scrollIndex < 0 {
			m.scrollIndex = 0
		}
		if update.PlaySound {
			fmt.Print("\a")
		}
		for _, r := range update.NewResponses {
			if r.ResponderID != m.deps.UserID {
				if r.Status == payload.StatusAccepted {
					m.flash = chat.AcceptedBanner
				} else {
					m.flash = "Sua oferta foi recusada."
				}
				m.flashError = false
			}
		}
		return m, nil

	case sendResultMsg:
		if msg.err != nil {
			m.flash = msg.err.Error()
			m.flashError = true
		}
		return m, nil

	case conversationDeletedMsg:
		if msg.err != nil {
			m.flash = msg.err.Error()
			m.flashError = true
			return m, nil
		}
		m.deps.Channel.Close()
		next := NewMainChatModel(m.deps)
		return next, next.Init()

	case offerActionMsg:
		if msg.err != nil {
			m.flash = msg.err.Error()
			m.flashError = true
		} else if msg.action == "accept" {
			m.flash = chat.AcceptedBanner
			m.flashError = false
		} else {
			m.flash = "Oferta recusada."
			m.flashError = false
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if inputValue := strings.TrimSpace(m.input.Value()); inputValue != "" {
				m.input.Reset()
				m.flash = ""
				ch := m.deps.Channel
				return m, func() tea.Msg {
					return sendResultMsg{err: ch.SendMessage(inputValue)}
				}
			}
		case "esc":
			m.deps.Channel.Close()
			next := NewMainChatModel(m.deps)
			return next, next.Init()
		case "ctrl+o":
			if m.productID == 0 || (m.product != nil && m.product.SellerID == m.deps.UserID) {
				m.flash = "Offers are made on another seller's listing."
				m.flashError = true
				return m, nil
			}
			modal := NewOfferModal(m)
			return modal, modal.Init()
		case "ctrl+a":
			return m.respondToOffer("accept")
		case "ctrl+d":
			return m.respondToOffer("decline")
		case "ctrl+x":
			client := m.deps.Client
			productID, counterpartID := m.productID, m.counterpartID
			return m, func() tea.Msg {
				return conversationDeletedMsg{err: client.DeleteConversation(productID, counterpartID)}
			}
		case "up":
			if m.scrollIndex > 0 {
				m.scrollIndex--
			}
		case "down":
			if m.scrollIndex+maxVisibleMessages < len(m.messages) {
				m.scrollIndex++
			}
		case "ctrl+c":
			return m, tea.Quit
		default:
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	default:
		m.input, cmd = m.input.Update(msg)
	}

	return m, cmd
}

// respondToOffer acts on the newest offer still awaiting this seller.
func (m ThreadModel) respondToOffer(action string) (tea.Model, tea.Cmd) {
	var target *chat.OfferView
	for i := range m.offers {
		if m.offers[i].CanRespond {
			target = &m.offers[i]
		}
	}
	if target == nil {
		m.flash = "No pending offer to respond to."
		m.flashError = true
		return m, nil
	}

	view := *target
	ch := m.deps.Channel
	return m, func() tea.Msg {
		var err error
		if action == "accept" {
			err = ch.AcceptOffer(view)
		} else {
			err = ch.DeclineOffer(view)
		}
		return offerActionMsg{action: action, err: err}
	}
}

func (m ThreadModel) resolveOffers() []chat.OfferView {
	var ownerID uint
	sold := false
	if m.product != nil {
		ownerID = m.product.SellerID
		sold = m.product.Status == appmodels.ProductSold
	}
	return chat.ResolveOffers(m.messages, m.deps.UserID, ownerID, sold)
}

func (m ThreadModel) View() string {
	var sb strings.Builder

	title := fmt.Sprintf("Conversation with user %d", m.counterpartID)
	if m.product != nil {
		title = fmt.Sprintf("User %d · %s", m.counterpartID, m.product.Title)
	}
	sb.WriteString(styles.TitleStyle.Render(title) + "\n")

	if m.product != nil {
		sb.WriteString(renderListingCard(*m.product) + "\n")
	}
	sb.WriteString("\n")

	start := m.scrollIndex
	if start < 0 {
		start = 0
	}
	end := min(len(m.messages), start+maxVisibleMessages)

	for _, message := range m.messages[start:end] {
		sb.WriteString(m.renderMessage(message) + "\n")
	}

	if len(m.messages) > maxVisibleMessages {
		sb.WriteString("\n")
		if m.scrollIndex > 0 {
			sb.WriteString(styles.NavStyle.Render("[↑] "))
		} else {
			sb.WriteString("    ")
		}
		if m.scrollIndex+maxVisibleMessages < len(m.messages) {
			sb.WriteString(styles.NavStyle.Render("[↓]"))
		}
		sb.WriteString("\n")
	}

	if m.flash != "" {
		if m.flashError {
			sb.WriteString("\n" + styles.StatusErrorStyle.Render(m.flash) + "\n")
		} else {
			sb.WriteString("\n" + styles.BannerStyle.Render(m.flash) + "\n")
		}
	}

	sb.WriteString("\n" + styles.InputStyle.Render(m.input.View()))
	help := "[Esc] Back • [Enter] Send"
	if m.productID != 0 {
		help += " • [Ctrl+O] Make offer"
	}
	if m.hasActionableOffer() {
		help += " • [Ctrl+A] Accept offer • [Ctrl+D] Decline"
	}
	help += " • [Ctrl+X] Delete conversation"
	sb.WriteString(styles.CommandStyle.Render(help) + "\n")
	return styles.ContainerStyle.Render(sb.String())
}

func (m ThreadModel) hasActionableOffer() bool {
	for _, v := range m.offers {
		if v.CanRespond {
			return true
		}
	}
	return false
}

func (m ThreadModel) renderMessage(message appmodels.Message) string {
	mine := message.SenderID == m.deps.UserID
	prefix := styles.CounterpartStyle.Render(fmt.Sprintf("user %d", message.SenderID))
	if mine {
		prefix = styles.UsernameStyle.Render("you")
	}

	switch payload.Classify(message.Content) {
	case payload.KindOffer:
		o := payload.DecodeOffer(message.Content)
		if o == nil {
			return prefix + " " + styles.MessageStyle.Render(message.Content)
		}
		return prefix + "\n" + m.renderOffer(message, *o)

	case payload.KindOfferResponse:
		r := payload.DecodeOfferResponse(message.Content)
		if r == nil {
			return prefix + " " + styles.MessageStyle.Render(message.Content)
		}
		if r.Status == payload.StatusAccepted {
			return styles.BannerStyle.Render(chat.AcceptedBanner)
		}
		return styles.DeclinedBannerStyle.Render(fmt.Sprintf("Oferta de %s %.2f recusada por %s", r.Offer.Currency, r.Offer.Amount, r.ResponderName))

	case payload.KindProductContext:
		ctx := payload.DecodeProductContext(message.Content)
		if ctx == nil {
			return prefix + " " + styles.MessageStyle.Render(message.Content)
		}
		card := fmt.Sprintf("%s\n%s %.2f · %s", ctx.Title, "R$", ctx.Price, ctx.Location)
		return styles.ProductCardStyle.Render(card)
	}

	body := styles.MessageStyle.Render(message.Content)
	if mine {
		body = styles.MessageMineStyle.Render(message.Content)
	}
	return prefix + " " + body + " " + styles.TimestampStyle.Render(message.CreatedAt.Format("15:04"))
}

func (m ThreadModel) renderOffer(message appmodels.Message, o payload.Offer) string {
	view, _ := chat.OfferFor(m.offers, chat.MessageKey(message))

	lines := []string{
		fmt.Sprintf("Offer: %s %.2f", o.Currency, o.Amount),
	}
	if o.Message != "" {
		lines = append(lines, o.Message)
	}

	switch view.State {
	case chat.OfferAccepted:
		lines = append(lines, styles.StatusSuccessStyle.Render("accepted"))
	case chat.OfferDeclined:
		lines = append(lines, styles.StatusErrorStyle.Render("declined"))
	default:
		if view.CanRespond {
			lines = append(lines, styles.StatusInfoStyle.Render("pending — Ctrl+A accept / Ctrl+D decline"))
		} else if view.AwaitingSeller {
			lines = append(lines, styles.MutedTextStyle.Render("waiting for the seller"))
		} else {
			lines = append(lines, styles.MutedTextStyle.Render("pending"))
		}
	}

	return styles.OfferCardStyle.Render(strings.Join(lines, "\n"))
}

func renderListingCard(p appmodels.Product) string {
	status := p.Status
	if status == appmodels.ProductSold {
		status = styles.StatusErrorStyle.Render("sold")
	}
	return styles.ProductCardStyle.Render(fmt.Sprintf("%s — %s %.2f (%s)", p.Title, p.Currency, p.Price, status))
}
