package main

import (
	"log"
	"os"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/bus"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/config"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/store"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/tui/client"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/tui/models"
	"github.com/GuilhermeTebaldi/saleday-sub000/internal/utils"
	tea "github.com/charmbracelet/bubbletea"
)

// mainModel pumps bus events into whichever screen is active and keeps the
// subscription armed across screen transitions.
type mainModel struct {
	currentModel tea.Model
	events       <-chan bus.Event
}

func (m mainModel) Init() tea.Cmd {
	return tea.Batch(m.currentModel.Init(), models.WaitForEvent(m.events))
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.currentModel, cmd = m.currentModel.Update(msg)

	if _, ok := msg.(models.BusEventMsg); ok {
		return m, tea.Batch(cmd, models.WaitForEvent(m.events))
	}
	return m, cmd
}

func (m mainModel) View() string {
	return m.currentModel.View()
}

func main() {
	cfg := config.LoadClient()

	st, err := store.Open(cfg.StateDir)
	if err != nil {
		log.Printf("state store unavailable, running in-memory: %v", err)
		st = store.InMemory()
	}

	b := bus.New()
	relay := bus.NewRelay(b, cfg.StateDir, cfg.RelayPollInterval)
	relay.Start()
	defer relay.Stop()

	deps := models.Deps{
		Cfg:   cfg,
		Store: st,
		Bus:   b,
		Relay: relay,
	}

	apiClient, err := client.NewAPIClient(cfg)
	if err != nil {
		program := tea.NewProgram(models.NewServerDownModel(), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			log.Fatal(err)
		}
		os.Exit(1)
	}
	deps.Client = apiClient

	var currentModel tea.Model

	// Try to resume the previous session from the saved token pair
	if tokenPair, err := utils.LoadTokenPair(); err == nil && tokenPair.AccessToken != "" {
		apiClient.SetTokenPair(tokenPair.AccessToken, tokenPair.RefreshToken)

		if tokenClaims, err := utils.GetClaimsFromToken(tokenPair.AccessToken); err == nil {
			username, uok := tokenClaims["username"].(string)
			userIDFloat, iok := tokenClaims["userID"].(float64)
			if uok && iok {
				session := models.NewSession(deps, uint(userIDFloat), username)
				currentModel = models.NewMainChatModel(session)
			}
		}
	}

	// Fall back to login if the token is missing or unreadable
	if currentModel == nil {
		currentModel = models.NewLoginModel(deps)
	}

	events, cancel := b.Subscribe()
	defer cancel()

	program := tea.NewProgram(mainModel{currentModel: currentModel, events: events}, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatal(err)
	}
}
