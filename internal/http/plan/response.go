package plan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finplan/internal/http/respond"
	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

type segmentResponse struct {
	StartMonth        int         `json:"start_month"`
	EndMonth          int         `json:"end_month"`
	Months            int         `json:"months"`
	MonthlyObligation int64       `json:"monthly_obligation"`
	ActiveCreditIDs   []uuid.UUID `json:"active_credit_ids"`
}

type affordabilityResponse struct {
	MonthlyIncome   int64           `json:"monthly_income"`
	PeakObligation  int64           `json:"peak_obligation"`
	ObligationRatio decimal.Decimal `json:"obligation_ratio"`
}

type evaluationResponse struct {
	RequiredFunding int64                  `json:"required_funding"`
	Reconciliation  respond.Reconciliation `json:"reconciliation"`
	Schedule        []segmentResponse      `json:"schedule"`
	ScheduleTotal   int64                  `json:"schedule_total"`
	Affordability   affordabilityResponse  `json:"affordability"`
}

type downPaymentResponse struct {
	ID          uuid.UUID `json:"id"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
}

type creditResponse struct {
	ID             uuid.UUID           `json:"id"`
	LenderID       string              `json:"lender_id"`
	Category       plan.CreditCategory `json:"category"`
	Principal      int64               `json:"principal"`
	RatePercent    decimal.Decimal     `json:"rate_percent"`
	TermMonths     int                 `json:"term_months"`
	MonthlyPayment int64               `json:"monthly_payment"`
	TotalPayment   int64               `json:"total_payment"`
}

type expensesResponse struct {
	TransferFee    int64           `json:"transfer_fee"`
	Notary         int64           `json:"notary"`
	Appraisal      int64           `json:"appraisal"`
	Registry       int64           `json:"registry"`
	BankCommission int64           `json:"bank_commission"`
	Custom         []amountRequest `json:"custom"`
	Total          int64           `json:"total"`
}

type incomeResponse struct {
	ID          uuid.UUID `json:"id"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
}

type snapshotResponse struct {
	ID              uuid.UUID             `json:"id"`
	AssetType       plan.AssetType        `json:"asset_type"`
	TargetPrice     int64                 `json:"target_price"`
	DownPayments    []downPaymentResponse `json:"down_payments"`
	PrimaryCredit   *creditResponse       `json:"primary_credit,omitempty"`
	PersonalCredits []creditResponse      `json:"personal_credits"`
	Expenses        *expensesResponse     `json:"expenses,omitempty"`
	MonthlyIncomes  []incomeResponse      `json:"monthly_incomes"`
	CreatedAt       time.Time             `json:"created_at"`
	Evaluation      evaluationResponse    `json:"evaluation"`
}

type summaryResponse struct {
	ID              uuid.UUID      `json:"id"`
	AssetType       plan.AssetType `json:"asset_type"`
	TargetPrice     int64          `json:"target_price"`
	RequiredFunding int64          `json:"required_funding"`
	PeakObligation  int64          `json:"peak_obligation"`
	CreatedAt       time.Time      `json:"created_at"`
}

func toSegments(segments []plan.Segment) []segmentResponse {
	resp := make([]segmentResponse, len(segments))
	for i, s := range segments {
		resp[i] = segmentResponse{
			StartMonth:        s.StartMonth,
			EndMonth:          s.EndMonth,
			Months:            s.Months(),
			MonthlyObligation: s.MonthlyObligation,
			ActiveCreditIDs:   s.ActiveCreditIDs,
		}
	}

	return resp
}

func toEvaluation(e plan.Evaluation) evaluationResponse {
	return evaluationResponse{
		RequiredFunding: e.RequiredFunding,
		Reconciliation:  respond.ToReconciliation(e.Reconciliation),
		Schedule:        toSegments(e.Schedule),
		ScheduleTotal:   plan.ScheduleTotal(e.Schedule),
		Affordability: affordabilityResponse{
			MonthlyIncome:   e.Affordability.MonthlyIncome,
			PeakObligation:  e.Affordability.PeakObligation,
			ObligationRatio: e.Affordability.ObligationRatio,
		},
	}
}

func toCreditResponse(c plan.Credit) creditResponse {
	return creditResponse{
		ID:             c.ID,
		LenderID:       c.LenderID,
		Category:       c.Category,
		Principal:      c.Principal,
		RatePercent:    c.RatePercent,
		TermMonths:     c.TermMonths,
		MonthlyPayment: c.MonthlyPayment,
		TotalPayment:   c.TotalPayment,
	}
}

func toResponse(snap *plan.Snapshot) snapshotResponse {
	p := snap.Plan

	resp := snapshotResponse{
		ID:              p.ID,
		AssetType:       p.AssetType,
		TargetPrice:     p.TargetPrice,
		DownPayments:    make([]downPaymentResponse, 0, p.DownPayments.Len()),
		PersonalCredits: make([]creditResponse, 0, len(p.PersonalCredits)),
		MonthlyIncomes:  make([]incomeResponse, 0, len(p.MonthlyIncomes)),
		CreatedAt:       p.CreatedAt,
		Evaluation: toEvaluation(plan.Evaluation{
			RequiredFunding: snap.RequiredFunding,
			Reconciliation:  snap.Reconciliation,
			Schedule:        snap.Schedule,
			Affordability:   snap.Affordability,
		}),
	}

	for _, dp := range p.DownPayments.Items() {
		resp.DownPayments = append(resp.DownPayments, downPaymentResponse{ID: dp.ID, Amount: dp.Amount, Description: dp.Description})
	}

	if p.PrimaryCredit != nil {
		resp.PrimaryCredit = new(toCreditResponse(*p.PrimaryCredit))
	}

	for _, c := range p.PersonalCredits {
		resp.PersonalCredits = append(resp.PersonalCredits, toCreditResponse(c))
	}

	if e := p.Expenses; e != nil {
		resp.Expenses = &expensesResponse{
			TransferFee:    e.TransferFee,
			Notary:         e.Fees.Notary,
			Appraisal:      e.Fees.Appraisal,
			Registry:       e.Fees.Registry,
			BankCommission: e.Fees.BankCommission,
			Custom:         make([]amountRequest, 0, len(e.Custom)),
			Total:          e.Total(),
		}

		for _, item := range e.Custom {
			resp.Expenses.Custom = append(resp.Expenses.Custom, amountRequest{Amount: item.Amount, Description: item.Description})
		}
	}

	for _, in := range p.MonthlyIncomes {
		resp.MonthlyIncomes = append(resp.MonthlyIncomes, incomeResponse{ID: in.ID, Amount: in.Amount, Description: in.Description})
	}

	return resp
}

func toSummaryList(snaps []*plan.Snapshot) []summaryResponse {
	resp := make([]summaryResponse, len(snaps))
	for i, s := range snaps {
		resp[i] = summaryResponse{
			ID:              s.Plan.ID,
			AssetType:       s.Plan.AssetType,
			TargetPrice:     s.Plan.TargetPrice,
			RequiredFunding: s.RequiredFunding,
			PeakObligation:  s.Affordability.PeakObligation,
			CreatedAt:       s.Plan.CreatedAt,
		}
	}

	return resp
}
