package offer

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finplan/internal/http/respond"
	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

type LenderNames interface {
	Names(ctx context.Context, ids []string) (map[string]string, error)
}

type Handler struct {
	plans   *plan.Service
	lenders LenderNames
}

func NewHandler(plans *plan.Service, lenders LenderNames) *Handler {
	return &Handler{plans: plans, lenders: lenders}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.quotes)
	r.Get("/eligibility", h.eligibility)
}

type quoteQuery struct {
	Principal int64  `json:"principal" validate:"gt=0"`
	Term      int    `json:"term" validate:"gte=1"`
	Category  string `json:"category" validate:"oneof=primary personal"`
}

type quoteResponse struct {
	Rank           int             `json:"rank"`
	LenderID       string          `json:"lender_id"`
	LenderName     string          `json:"lender_name"`
	RatePercent    decimal.Decimal `json:"rate_percent"`
	MonthlyPayment int64           `json:"monthly_payment"`
	TotalPayment   int64           `json:"total_payment"`
}

func (h *Handler) quotes(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuoteQuery(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	ranked, err := h.plans.Quotes(r.Context(), plan.QuoteRequest{
		Principal:  q.Principal,
		TermMonths: q.Term,
		Category:   plan.CreditCategory(q.Category),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	ids := make([]string, len(ranked))
	for i, quote := range ranked {
		ids[i] = quote.LenderID
	}

	names, err := h.lenders.Names(r.Context(), ids)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]quoteResponse, len(ranked))
	for i, quote := range ranked {
		resp[i] = quoteResponse{
			Rank:           i + 1,
			LenderID:       quote.LenderID,
			LenderName:     names[quote.LenderID],
			RatePercent:    quote.RatePercent,
			MonthlyPayment: quote.MonthlyPayment,
			TotalPayment:   quote.TotalPayment,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type eligibilityResponse struct {
	Eligible   bool   `json:"eligible"`
	Rule       string `json:"rule,omitempty"`
	Reason     string `json:"reason,omitempty"`
	MaxTerm    int    `json:"max_term,omitempty"`
	VehicleCap *int64 `json:"vehicle_cap,omitempty"`
}

// eligibility checks the personal tiers for personal credits, and the vehicle
// bracket cap for primary credits when a price is given.
func (h *Handler) eligibility(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuoteQuery(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	var (
		resp     eligibilityResponse
		checkErr error
	)

	switch plan.CreditCategory(q.Category) {
	case plan.CategoryPersonal:
		resp.MaxTerm, _ = plan.MaxPersonalTerm(q.Principal)
		checkErr = plan.CheckPersonalCredit(q.Principal, q.Term)
	case plan.CategoryPrimary:
		s := r.URL.Query().Get("price")
		if s == "" {
			break
		}

		price, err := strconv.ParseInt(s, 10, 64)
		if err != nil || price <= 0 {
			respond.Error(w, &respond.BadRequestError{Message: "price must be a positive integer"})
			return
		}

		resp.VehicleCap = new(plan.VehicleCreditCap(price))
		checkErr = plan.CheckVehicleCredit(q.Principal, price)
	}

	resp.Eligible = checkErr == nil

	var ee *plan.EligibilityError

	switch {
	case errors.As(checkErr, &ee):
		resp.Rule = ee.Rule
		resp.Reason = ee.Reason
	case checkErr != nil:
		respond.Error(w, checkErr)
		return
	}

	respond.JSON(w, http.StatusOK, resp)
}

func parseQuoteQuery(r *http.Request) (quoteQuery, error) {
	values := r.URL.Query()

	principal, err := strconv.ParseInt(values.Get("principal"), 10, 64)
	if err != nil {
		return quoteQuery{}, &respond.BadRequestError{Message: "principal must be an integer amount in cents"}
	}

	term, err := strconv.Atoi(values.Get("term"))
	if err != nil {
		return quoteQuery{}, &respond.BadRequestError{Message: "term must be an integer number of months"}
	}

	q := quoteQuery{Principal: principal, Term: term, Category: values.Get("category")}

	return q, respond.Validate(q)
}
