package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finplan/internal/money"
	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

type offersState int

const (
	offersStateForm offersState = iota
	offersStateLoading
	offersStateResult
)

type offerFields struct {
	Category  string
	Principal string
	Term      string
}

// OffersModel asks the offer provider for quotes and shows them ranked.
type OffersModel struct {
	planService *plan.Service

	state  offersState
	fields *offerFields
	form   *huh.Form
	table  table.Model
	err    error
}

func NewOffersModel(svc *plan.Service) OffersModel {
	m := OffersModel{
		planService: svc,
		fields:      &offerFields{Category: string(plan.CategoryPersonal)},
		table: newTable([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Lender", Width: 16},
			{Title: "Rate %", Width: 8},
			{Title: "Monthly", Width: 14},
			{Title: "Total", Width: 16},
		}, 12),
	}
	m.form = m.buildForm()

	return m
}

func (m OffersModel) Title() string { return "Browse Offers" }

func (m OffersModel) ShortHelp() string {
	if m.state == offersStateResult {
		return "Esc: back | n: new search"
	}

	return "Esc: back | Enter: next"
}

func (m OffersModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m OffersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.(quotesMsg); ok {
		m.state = offersStateResult
		m.err = res.err
		m.setRows(res.quotes)

		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)

	switch m.state {
	case offersStateForm:
		if isKey && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		m.state = offersStateLoading

		return m, m.quotesCmd()

	case offersStateResult:
		if isKey {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "n":
				m.state = offersStateForm
				m.form = m.buildForm()

				return m, m.form.Init()
			}
		}

		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m OffersModel) buildForm() *huh.Form {
	f := m.fields

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Credit").
				Options(
					huh.NewOption("Personal", string(plan.CategoryPersonal)),
					huh.NewOption("Primary (mortgage / auto)", string(plan.CategoryPrimary)),
				).
				Value(&f.Category),
			huh.NewInput().Title("Principal").Value(&f.Principal).Validate(requiredAmount),
			huh.NewInput().Title("Term (months)").Value(&f.Term).Validate(func(s string) error {
				if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n < 1 {
					return fmt.Errorf("term must be a positive number of months")
				}

				return nil
			}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m *OffersModel) setRows(quotes []plan.Quote) {
	rows := make([]table.Row, 0, len(quotes))
	for i, q := range quotes {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			q.LenderID,
			q.RatePercent.StringFixed(2),
			FormatAmount(q.MonthlyPayment),
			FormatAmount(q.TotalPayment),
		})
	}

	m.table.SetRows(rows)
}

func (m OffersModel) View() string {
	switch m.state {
	case offersStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case offersStateLoading:
		return lipgloss.NewStyle().Padding(2).Render("Fetching quotes...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	return lipgloss.NewStyle().Padding(1).Render(boxed(m.table.View()))
}

type quotesMsg struct {
	quotes []plan.Quote
	err    error
}

func (m OffersModel) quotesCmd() tea.Cmd {
	f := *m.fields

	return func() tea.Msg {
		principal, err := money.Parse(f.Principal)
		if err != nil {
			return quotesMsg{err: err}
		}

		term, err := strconv.Atoi(strings.TrimSpace(f.Term))
		if err != nil {
			return quotesMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		quotes, err := m.planService.Quotes(ctx, plan.QuoteRequest{
			Principal:  principal,
			TermMonths: term,
			Category:   plan.CreditCategory(f.Category),
		})

		return quotesMsg{quotes: quotes, err: err}
	}
}
