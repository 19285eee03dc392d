package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finplan/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/finplan/internal/config"
	"github.com/MrJamesThe3rd/finplan/internal/database"
	"github.com/MrJamesThe3rd/finplan/internal/export"
	"github.com/MrJamesThe3rd/finplan/internal/lender"
	lenderStore "github.com/MrJamesThe3rd/finplan/internal/lender/store"
	"github.com/MrJamesThe3rd/finplan/internal/offer"
	"github.com/MrJamesThe3rd/finplan/internal/plan"
	planStore "github.com/MrJamesThe3rd/finplan/internal/plan/store"
)

type model struct {
	planService   *plan.Service
	exportService *export.Service
	owner         string

	currentView View

	plannerView view.PlannerModel
	savedView   view.SavedModel
	offersView  view.OffersModel
}

type View int

const (
	ViewMenu    View = 0
	ViewPlanner View = 1
	ViewSaved   View = 2
	ViewOffers  View = 3
)

func initialModel() (model, func()) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	offers, closeOffers, err := offer.NewProvider(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to set up offer provider", "error", err)
		os.Exit(1)
	}

	planSvc := plan.NewService(planStore.New(db), offers)
	lenderSvc := lender.NewService(lenderStore.New(db))
	expSvc := export.NewService(planSvc, lenderSvc)
	owner := cfg.App.LocalOwner

	cleanup := func() {
		closeOffers()
		db.Close()
	}

	return model{
		planService:   planSvc,
		exportService: expSvc,
		owner:         owner,
		currentView:   ViewMenu,
		plannerView:   view.NewPlannerModel(planSvc, owner),
		savedView:     view.NewSavedModel(planSvc, expSvc, owner),
		offersView:    view.NewOffersModel(planSvc),
	}, cleanup
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewPlanner
				m.plannerView = view.NewPlannerModel(m.planService, m.owner)

				return m, m.plannerView.Init()
			case "2":
				m.currentView = ViewSaved
				m.savedView = view.NewSavedModel(m.planService, m.exportService, m.owner)

				return m, m.savedView.Init()
			case "3":
				m.currentView = ViewOffers
				m.offersView = view.NewOffersModel(m.planService)

				return m, m.offersView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewPlanner:
		var newModel tea.Model
		newModel, cmd = m.plannerView.Update(msg)
		m.plannerView = newModel.(view.PlannerModel)
	case ViewSaved:
		var newModel tea.Model
		newModel, cmd = m.savedView.Update(msg)
		m.savedView = newModel.(view.SavedModel)
	case ViewOffers:
		var newModel tea.Model
		newModel, cmd = m.offersView.Update(msg)
		m.offersView = newModel.(view.OffersModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Financing Planner\n\n" +
				"1. New plan\n" +
				"2. Saved plans\n" +
				"3. Browse offers\n\n" +
				"q. Quit",
		)
	case ViewPlanner:
		current = m.plannerView
	case ViewSaved:
		current = m.savedView
	case ViewOffers:
		current = m.offersView
	default:
		return "Unknown View"
	}

	header := lipgloss.NewStyle().Bold(true).Render(current.Title()) + "  " +
		lipgloss.NewStyle().Faint(true).Render(current.ShortHelp())

	return header + "\n" + current.View()
}

func main() {
	m, cleanup := initialModel()
	defer cleanup()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
