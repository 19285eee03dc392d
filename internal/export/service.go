package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finplan/internal/money"
	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

type PlanSource interface {
	Get(ctx context.Context, ownerID string, id uuid.UUID) (*plan.Snapshot, error)
}

type LenderNames interface {
	Names(ctx context.Context, ids []string) (map[string]string, error)
}

// Document is a saved plan together with everything needed to render it.
type Document struct {
	Snapshot *plan.Snapshot
	Lenders  map[string]string
}

func (d *Document) lenderName(id string) string {
	if name, ok := d.Lenders[id]; ok {
		return name
	}

	return id
}

// Service prepares saved plans for export.
type Service struct {
	plans   PlanSource
	lenders LenderNames
}

func NewService(plans PlanSource, lenders LenderNames) *Service {
	return &Service{plans: plans, lenders: lenders}
}

// Prepare loads the snapshot and resolves the lender names it mentions.
func (s *Service) Prepare(ctx context.Context, ownerID string, id uuid.UUID) (*Document, error) {
	snap, err := s.plans.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, c := range snap.Plan.Credits() {
		if c.LenderID != "" {
			ids = append(ids, c.LenderID)
		}
	}

	names, err := s.lenders.Names(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolving lender names: %w", err)
	}

	return &Document{Snapshot: snap, Lenders: names}, nil
}

// GenerateSummary renders a short plain-text overview of the plan.
func GenerateSummary(doc *Document) string {
	snap := doc.Snapshot
	p := snap.Plan

	var sb strings.Builder

	fmt.Fprintf(&sb, "Plan %s (%s)\n", p.ID, p.AssetType)
	fmt.Fprintf(&sb, "Target price:      %s\n", money.FormatGrouped(p.TargetPrice))

	if p.Expenses != nil {
		fmt.Fprintf(&sb, "Expenses:          %s\n", money.FormatGrouped(p.Expenses.Total()))
	}

	fmt.Fprintf(&sb, "Required funding:  %s\n", money.FormatGrouped(snap.RequiredFunding))
	fmt.Fprintf(&sb, "Down payments:     %s\n", money.FormatGrouped(p.DownPayments.Total()))

	sb.WriteString("\nCredits:\n")

	for _, c := range p.Credits() {
		fmt.Fprintf(&sb, "* %s | %s | %s @ %s%% | %d months | %s/month\n",
			c.Category, doc.lenderName(c.LenderID), money.FormatGrouped(c.Principal),
			c.RatePercent.String(), c.TermMonths, money.FormatGrouped(c.MonthlyPayment))
	}

	sb.WriteString("\nSchedule:\n")

	for _, seg := range snap.Schedule {
		fmt.Fprintf(&sb, "* months %d-%d: %s/month\n",
			seg.StartMonth, seg.EndMonth, money.FormatGrouped(seg.MonthlyObligation))
	}

	fmt.Fprintf(&sb, "\nTotal repaid: %s\n", money.FormatGrouped(plan.ScheduleTotal(snap.Schedule)))

	if a := snap.Affordability; a.MonthlyIncome > 0 {
		fmt.Fprintf(&sb, "Peak obligation: %s%% of monthly income\n", a.ObligationRatio.StringFixed(2))
	}

	return sb.String()
}
