package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/rechesh-io/rechesh/cmd/tui/internal/view"
	"github.com/rechesh-io/rechesh/internal/config"
	"github.com/rechesh-io/rechesh/internal/database"
	"github.com/rechesh-io/rechesh/internal/export"
	"github.com/rechesh-io/rechesh/internal/hierarchy"
	hierarchyStore "github.com/rechesh-io/rechesh/internal/hierarchy/store"
	"github.com/rechesh-io/rechesh/internal/purpose"
	purposeStore "github.com/rechesh-io/rechesh/internal/purpose/store"
)

type model struct {
	purposeService   *purpose.Service
	hierarchyService *hierarchy.Service
	exportService    *export.Service

	currentView View

	purposesView    view.PurposesModel
	hierarchiesView view.HierarchiesModel
	exportView      view.ExportModel
}

type View int

const (
	ViewMenu        View = 0
	ViewPurposes    View = 1
	ViewHierarchies View = 2
	ViewExport      View = 3
)

func initialModel() model {
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

	hierarchySvc := hierarchy.NewService(hierarchyStore.New(db))
	purposeSvc := purpose.NewService(purposeStore.New(db), hierarchySvc, nil)
	exportSvc := export.NewService(purposeSvc, hierarchySvc)

	return model{
		purposeService:   purposeSvc,
		hierarchyService: hierarchySvc,
		exportService:    exportSvc,
		currentView:      ViewMenu,
		purposesView:     view.NewPurposesModel(purposeSvc, hierarchySvc),
		hierarchiesView:  view.NewHierarchiesModel(hierarchySvc),
		exportView:       view.NewExportModel(exportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewPurposes
				m.purposesView = view.NewPurposesModel(m.purposeService, m.hierarchyService)

				return m, m.purposesView.Init()
			case "2":
				m.currentView = ViewHierarchies
				m.hierarchiesView = view.NewHierarchiesModel(m.hierarchyService)

				return m, m.hierarchiesView.Init()
			case "3":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewPurposes:
		var newModel tea.Model
		newModel, cmd = m.purposesView.Update(msg)
		m.purposesView = newModel.(view.PurposesModel)
	case ViewHierarchies:
		var newModel tea.Model
		newModel, cmd = m.hierarchiesView.Update(msg)
		m.hierarchiesView = newModel.(view.HierarchiesModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Rechesh TUI\n\n" +
				"1. Browse Purposes\n" +
				"2. Hierarchy Tree\n" +
				"3. Export Purposes CSV\n\n" +
				"q. Quit",
		)
	case ViewPurposes:
		return m.purposesView.View()
	case ViewHierarchies:
		return m.hierarchiesView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
