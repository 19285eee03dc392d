package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finplan/internal/money"
	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

type plannerState int

const (
	plannerStateForm plannerState = iota
	plannerStateResult
)

// PlannerModel collects a plan through a form and shows its live evaluation.
type PlannerModel struct {
	planService *plan.Service
	owner       string

	state  plannerState
	fields *planFields
	form   *huh.Form
	table  table.Model

	input  plan.Input
	eval   *plan.Evaluation
	err    error
	status string
}

func NewPlannerModel(svc *plan.Service, owner string) PlannerModel {
	m := PlannerModel{
		planService: svc,
		owner:       owner,
		fields:      newPlanFields(),
		table: newTable([]table.Column{
			{Title: "Months", Width: 12},
			{Title: "Length", Width: 8},
			{Title: "Monthly", Width: 16},
			{Title: "Credits", Width: 8},
		}, 10),
	}
	m.form = m.buildForm()

	return m
}

func (m PlannerModel) Title() string { return "New Plan" }

func (m PlannerModel) ShortHelp() string {
	if m.state == plannerStateResult {
		return "Esc: back | e: edit | d: add down payment | p: add personal credit | s: save"
	}

	return "Esc: back | Enter: next"
}

func (m PlannerModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m PlannerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planSavedMsg:
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Not saved: %v", msg.err))
		} else {
			m.status = okStyle(fmt.Sprintf("Saved plan %s", msg.snap.Plan.ID))
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-20, 5))
		return m, nil
	}

	switch m.state {
	case plannerStateForm:
		return m.updateForm(msg)
	case plannerStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m PlannerModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		if m.eval == nil && m.err == nil {
			return m, Back
		}

		m.evaluate()
		m.state = plannerStateResult

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.evaluate()
	m.state = plannerStateResult

	return m, nil
}

func (m *PlannerModel) evaluate() {
	m.eval, m.err, m.status = nil, nil, ""

	in, err := m.fields.toInput(m.owner)
	if err != nil {
		m.err = err
		return
	}

	m.input = in

	p, err := plan.Build(in)
	if err != nil {
		m.err = err
		return
	}

	eval, err := plan.Evaluate(*p)
	if err != nil {
		m.err = err
		return
	}

	m.eval = &eval

	rows := make([]table.Row, 0, len(eval.Schedule))
	for _, seg := range eval.Schedule {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d-%d", seg.StartMonth, seg.EndMonth),
			fmt.Sprintf("%d", seg.Months()),
			FormatAmount(seg.MonthlyObligation),
			fmt.Sprintf("%d", len(seg.ActiveCreditIDs)),
		})
	}

	m.table.SetRows(rows)
}

func (m PlannerModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "e":
			return m.openForm(m.buildForm())
		case "d":
			n := len(m.fields.Downs) + 1
			return m.openForm(newForm(downGroup(n, m.fields.addDown())))
		case "p":
			n := len(m.fields.Personals) + 1
			return m.openForm(newForm(creditGroup(fmt.Sprintf("Personal %d", n), m.fields.addPersonal())))
		case "s":
			if m.eval == nil || !m.eval.Reconciliation.IsExact() {
				m.status = errorStyle("Only fully funded plans can be saved")
				return m, nil
			}

			return m, m.saveCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m PlannerModel) openForm(form *huh.Form) (tea.Model, tea.Cmd) {
	m.state = plannerStateForm
	m.form = form

	return m, m.form.Init()
}

func requiredAmount(s string) error {
	_, err := money.Parse(s)
	return err
}

func optionalAmountInput(s string) error {
	_, err := optionalAmount(s)
	return err
}

func creditGroup(title string, c *creditFields) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().Title(title+" lender").Value(&c.Lender),
		huh.NewInput().Title(title+" principal").Description("Leave empty to skip").
			Value(&c.Principal).Validate(optionalAmountInput),
		huh.NewInput().Title("Rate %").Value(&c.Rate),
		huh.NewInput().Title("Term (months)").Value(&c.Term),
		huh.NewInput().Title("Monthly payment").Value(&c.Monthly).Validate(optionalAmountInput),
	)
}

func downGroup(n int, d *downFields) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().Title(fmt.Sprintf("Down payment %d", n)).Placeholder("600,000").
			Value(&d.Amount).Validate(optionalAmountInput),
		huh.NewInput().Title("Source").Placeholder("Savings").Value(&d.Description),
	)
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithWidth(50).WithShowHelp(false)
}

func (m PlannerModel) buildForm() *huh.Form {
	f := m.fields

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Asset").
				Options(
					huh.NewOption("Housing", string(plan.AssetHousing)),
					huh.NewOption("Vehicle", string(plan.AssetVehicle)),
				).
				Value(&f.Asset),
			huh.NewInput().Title("Target price").Placeholder("1,000,000.00").
				Value(&f.Price).Validate(requiredAmount),
		),
	}

	for i, d := range f.Downs {
		groups = append(groups, downGroup(i+1, d))
	}

	groups = append(groups,
		huh.NewGroup(
			huh.NewInput().Title("Notary").Value(&f.Notary).Validate(optionalAmountInput),
			huh.NewInput().Title("Appraisal").Value(&f.Appraisal).Validate(optionalAmountInput),
			huh.NewInput().Title("Registry").Value(&f.Registry).Validate(optionalAmountInput),
			huh.NewInput().Title("Bank commission").Value(&f.BankCommission).Validate(optionalAmountInput),
		).WithHideFunc(func() bool { return f.Asset != string(plan.AssetHousing) }),
		creditGroup("Primary", &f.Primary),
	)

	for i, c := range f.Personals {
		groups = append(groups, creditGroup(fmt.Sprintf("Personal %d", i+1), c))
	}

	groups = append(groups, huh.NewGroup(
		huh.NewInput().Title("Monthly income").Value(&f.Income).Validate(optionalAmountInput),
	))

	return newForm(groups...)
}

func (m PlannerModel) View() string {
	if m.state == plannerStateForm {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	var sb strings.Builder

	if m.err != nil {
		sb.WriteString(errorStyle("Plan has problems:") + "\n")

		var errs plan.ValidationErrors
		if errors.As(m.err, &errs) {
			for _, e := range errs {
				sb.WriteString("  * " + e.Error() + "\n")
			}
		} else {
			sb.WriteString("  * " + m.err.Error() + "\n")
		}

		sb.WriteString("\nPress e to edit.")

		return lipgloss.NewStyle().Padding(1).Render(sb.String())
	}

	rec := m.eval.Reconciliation

	state := string(rec.State)
	switch rec.State {
	case plan.StateExactMatch:
		state = okStyle("exact match")
	case plan.StateShortfall:
		state = errorStyle(fmt.Sprintf("short by %s", FormatAmount(rec.Remaining)))
	case plan.StateOverfunded:
		state = errorStyle(fmt.Sprintf("over by %s", FormatAmount(-rec.Remaining)))
	}

	fmt.Fprintf(&sb, "Required funding: %s\n", FormatAmount(m.eval.RequiredFunding))
	fmt.Fprintf(&sb, "Sources:          %s\n", FormatAmount(rec.Sources))
	fmt.Fprintf(&sb, "Status:           %s\n", state)

	if a := m.eval.Affordability; a.MonthlyIncome > 0 {
		fmt.Fprintf(&sb, "Peak obligation:  %s (%s%% of income)\n",
			FormatAmount(a.PeakObligation), activeStyle(a.ObligationRatio.StringFixed(2)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sb.String(), boxed(m.table.View()))

	if m.status != "" {
		content = m.status + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type planSavedMsg struct {
	snap *plan.Snapshot
	err  error
}

func (m PlannerModel) saveCmd() tea.Cmd {
	in := m.input

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := m.planService.Save(ctx, in)

		return planSavedMsg{snap: snap, err: err}
	}
}
