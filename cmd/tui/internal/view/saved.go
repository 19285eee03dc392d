package view

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finplan/internal/export"
	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

type savedState int

const (
	savedStateBrowse savedState = iota
	savedStateDetail
)

// SavedModel lists stored snapshots and shows, exports or deletes them.
type SavedModel struct {
	planService   *plan.Service
	exportService *export.Service
	owner         string

	state   savedState
	table   table.Model
	snaps   []*plan.Snapshot
	detail  string
	loading bool
	err     error
	status  string
}

func NewSavedModel(planSvc *plan.Service, exportSvc *export.Service, owner string) SavedModel {
	return SavedModel{
		planService:   planSvc,
		exportService: exportSvc,
		owner:         owner,
		loading:       true,
		table: newTable([]table.Column{
			{Title: "Created", Width: 12},
			{Title: "Asset", Width: 9},
			{Title: "Price", Width: 16},
			{Title: "Required", Width: 16},
			{Title: "Peak/month", Width: 14},
		}, 15),
	}
}

func (m SavedModel) Title() string { return "Saved Plans" }

func (m SavedModel) ShortHelp() string {
	if m.state == savedStateDetail {
		return "Esc: back to list | x: export zip"
	}

	return "Esc: back | Enter: details | d: delete | r: refresh"
}

func (m SavedModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SavedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSavedMsg:
		m.loading = false
		m.err = msg.err
		m.snaps = msg.snaps
		m.refreshTable()

		return m, nil

	case detailMsg:
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		m.detail = msg.summary
		m.state = savedStateDetail

		return m, nil

	case savedActionMsg:
		m.status = msg.text
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Error: %v", msg.err))
		}

		if msg.reload {
			return m, m.loadCmd()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)

	if m.state == savedStateDetail {
		if ok {
			switch keyMsg.String() {
			case "esc":
				m.state = savedStateBrowse
				m.detail = ""

				return m, nil
			case "x":
				return m, m.exportCmd()
			}
		}

		return m, nil
	}

	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "enter":
			return m, m.detailCmd()
		case "d":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m SavedModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading plans...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := boxed(m.table.View())
	if m.state == savedStateDetail {
		content = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(m.detail)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *SavedModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.snaps))
	for _, s := range m.snaps {
		rows = append(rows, table.Row{
			FormatDate(s.Plan.CreatedAt),
			string(s.Plan.AssetType),
			FormatAmount(s.Plan.TargetPrice),
			FormatAmount(s.RequiredFunding),
			FormatAmount(s.Affordability.PeakObligation),
		})
	}

	m.table.SetRows(rows)
}

func (m SavedModel) selected() *plan.Snapshot {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.snaps) {
		return nil
	}

	return m.snaps[idx]
}

// Messages

type loadSavedMsg struct {
	snaps []*plan.Snapshot
	err   error
}

func (m SavedModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snaps, err := m.planService.List(ctx, m.owner)

		return loadSavedMsg{snaps: snaps, err: err}
	}
}

type detailMsg struct {
	summary string
	err     error
}

func (m SavedModel) detailCmd() tea.Cmd {
	snap := m.selected()
	if snap == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		doc, err := m.exportService.Prepare(ctx, m.owner, snap.Plan.ID)
		if err != nil {
			return detailMsg{err: err}
		}

		return detailMsg{summary: export.GenerateSummary(doc)}
	}
}

type savedActionMsg struct {
	text   string
	reload bool
	err    error
}

func (m SavedModel) deleteCmd() tea.Cmd {
	snap := m.selected()
	if snap == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.planService.Delete(ctx, m.owner, snap.Plan.ID); err != nil {
			return savedActionMsg{err: err}
		}

		return savedActionMsg{text: "Plan deleted", reload: true}
	}
}

func (m SavedModel) exportCmd() tea.Cmd {
	snap := m.selected()
	if snap == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		doc, err := m.exportService.Prepare(ctx, m.owner, snap.Plan.ID)
		if err != nil {
			return savedActionMsg{err: err}
		}

		path := filepath.Join(".", fmt.Sprintf("plan_%s.zip", snap.Plan.ID))

		f, err := os.Create(path)
		if err != nil {
			return savedActionMsg{err: fmt.Errorf("creating file: %w", err)}
		}
		defer f.Close()

		if err := export.WriteArchive(f, doc); err != nil {
			return savedActionMsg{err: err}
		}

		return savedActionMsg{text: "Exported to " + path}
	}
}
