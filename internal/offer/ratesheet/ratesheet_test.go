package ratesheet_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finplan/internal/money"
	"github.com/MrJamesThe3rd/finplan/internal/offer/ratesheet"
	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

const englishSheet = `Lender,Category,Min term,Max term,Rate,Min amount,Max amount
Banorte,mortgage,60,240,9.5%,,
BBVA,primary,12,360,8.75,"500,000.00",
BBVA,primary,120,180,8.25,,
Santander,personal,6,36,18.9,,"200,000.00"
`

func TestParse_English(t *testing.T) {
	rates, err := ratesheet.Parse(strings.NewReader(englishSheet))
	require.NoError(t, err)
	require.Len(t, rates, 4)

	assert.Equal(t, "banorte", rates[0].LenderID)
	assert.Equal(t, plan.CategoryPrimary, rates[0].Category)
	assert.True(t, rates[0].RatePercent.Equal(decimal.RequireFromString("9.5")))
	assert.Equal(t, int64(50000000), rates[1].MinAmount)
	assert.Equal(t, int64(0), rates[1].MaxAmount)
	assert.Equal(t, plan.CategoryPersonal, rates[3].Category)
	assert.Equal(t, int64(20000000), rates[3].MaxAmount)
}

func TestParse_SpanishLatin1(t *testing.T) {
	// Windows-1252: í = 0xED, á = 0xE1.
	sheet := []byte("Entidad;Producto;Plazo m\xednimo;Plazo m\xe1ximo;Tasa anual;Monto m\xe1ximo\n" +
		"HSBC;personal;12;48;19,5;150.000,00\n")

	rates, err := ratesheet.Parse(bytes.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, rates, 1)

	assert.Equal(t, "hsbc", rates[0].LenderID)
	assert.Equal(t, 12, rates[0].MinTerm)
	assert.Equal(t, 48, rates[0].MaxTerm)
	assert.True(t, rates[0].RatePercent.Equal(decimal.RequireFromString("19.5")))
	assert.Equal(t, int64(15000000), rates[0].MaxAmount)
}

func TestParse_UTF8BOM(t *testing.T) {
	sheet := append([]byte{0xEF, 0xBB, 0xBF}, []byte(englishSheet)...)

	rates, err := ratesheet.Parse(bytes.NewReader(sheet))
	require.NoError(t, err)
	assert.Len(t, rates, 4)
}

func TestParse_Errors(t *testing.T) {
	type testCase struct {
		name  string
		sheet string
	}

	tests := []testCase{
		{name: "UnknownLayout", sheet: "Date,Amount\n01-01-2024,10\n"},
		{name: "UnknownCategory", sheet: "Lender,Category,Min term,Max term,Rate\nX,boat,1,12,5\n"},
		{name: "BadTermRange", sheet: "Lender,Category,Min term,Max term,Rate\nX,personal,24,12,5\n"},
		{name: "NegativeRate", sheet: "Lender,Category,Min term,Max term,Rate\nX,personal,1,12,-5\n"},
		{name: "BadTerm", sheet: "Lender,Category,Min term,Max term,Rate\nX,personal,one,12,5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ratesheet.Parse(strings.NewReader(tt.sheet))
			assert.Error(t, err)
		})
	}
}

func TestParse_NoProfileSentinel(t *testing.T) {
	_, err := ratesheet.Parse(strings.NewReader("foo,bar\n1,2\n"))
	assert.ErrorIs(t, err, ratesheet.ErrNoProfile)
}

func TestMonthlyPayment(t *testing.T) {
	type args struct {
		principal int64
		rate      string
		term      int
	}

	type testCase struct {
		name string
		args args
		want int64
	}

	tests := []testCase{
		{name: "TwelvePercentOneYear", args: args{principal: 1000000, rate: "12", term: 12}, want: 88849},
		{name: "Mortgage", args: args{principal: 20000000, rate: "6.5", term: 240}, want: 149115},
		{name: "ZeroRate", args: args{principal: 1200000, rate: "0", term: 12}, want: 100000},
		{name: "ZeroRateRoundsUp", args: args{principal: 1000000, rate: "0", term: 7}, want: 142858},
		{name: "TinyRateCoversPrincipal", args: args{principal: 1000000, rate: "0.0001", term: 7}, want: 142858},
		{name: "ZeroTerm", args: args{principal: 1000000, rate: "5", term: 0}, want: 0},
		{name: "ZeroPrincipal", args: args{principal: 0, rate: "5", term: 12}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ratesheet.MonthlyPayment(tt.args.principal, decimal.RequireFromString(tt.args.rate), tt.args.term)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProvider_GetQuotes(t *testing.T) {
	rates, err := ratesheet.Parse(strings.NewReader(englishSheet))
	require.NoError(t, err)

	p := ratesheet.New(rates)

	quotes, err := p.GetQuotes(context.Background(), plan.QuoteRequest{
		Principal:  100000000,
		TermMonths: 120,
		Category:   plan.CategoryPrimary,
	})
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	assert.Equal(t, "banorte", quotes[0].LenderID)
	assert.Equal(t, "bbva", quotes[1].LenderID)
	assert.True(t, quotes[1].RatePercent.Equal(decimal.RequireFromString("8.25")), "cheapest bbva row wins")
	assert.Equal(t, int64(1226526), quotes[1].MonthlyPayment)
	assert.Equal(t, int64(1226526*120), quotes[1].TotalPayment)
}

func TestProvider_GetQuotes_Filters(t *testing.T) {
	rates, err := ratesheet.Parse(strings.NewReader(englishSheet))
	require.NoError(t, err)

	p := ratesheet.New(rates)

	type testCase struct {
		name string
		req  plan.QuoteRequest
		want []string
	}

	tests := []testCase{
		{
			name: "BelowMinAmount",
			req:  plan.QuoteRequest{Principal: 10000000, TermMonths: 300, Category: plan.CategoryPrimary},
			want: []string{},
		},
		{
			name: "TermOutsideBanorte",
			req:  plan.QuoteRequest{Principal: 60000000, TermMonths: 300, Category: plan.CategoryPrimary},
			want: []string{"bbva"},
		},
		{
			name: "PersonalOverMaxAmount",
			req:  plan.QuoteRequest{Principal: 30000000, TermMonths: 12, Category: plan.CategoryPersonal},
			want: []string{},
		},
		{
			name: "Personal",
			req:  plan.QuoteRequest{Principal: 5000000, TermMonths: 12, Category: plan.CategoryPersonal},
			want: []string{"santander"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotes, err := p.GetQuotes(context.Background(), tt.req)
			require.NoError(t, err)

			got := make([]string, 0, len(quotes))
			for _, q := range quotes {
				got = append(got, q.LenderID)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProvider_GetQuotes_ZeroRateQuoteFitsPlan(t *testing.T) {
	sheet := "Lender,Category,Min term,Max term,Rate,Min amount,Max amount\n" +
		"Coppel,personal,1,36,0,,\"125,000\"\n"

	rates, err := ratesheet.Parse(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, int64(12500000), rates[0].MaxAmount)

	req := plan.QuoteRequest{Principal: 1000000, TermMonths: 7, Category: plan.CategoryPersonal}

	quotes, err := ratesheet.New(rates).GetQuotes(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	assert.Equal(t, int64(142858), quotes[0].MonthlyPayment)
	assert.GreaterOrEqual(t, quotes[0].TotalPayment, req.Principal)

	p, err := plan.New("owner", plan.AssetVehicle, money.FromMajor(300_000))
	require.NoError(t, err)

	_, err = p.AddPersonalCredit(plan.CreditFromQuote(quotes[0], req))
	assert.NoError(t, err)
}

func TestProvider_GetQuotes_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ratesheet.New(nil).GetQuotes(ctx, plan.QuoteRequest{Principal: 1, TermMonths: 1, Category: plan.CategoryPersonal})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.csv")
	require.NoError(t, os.WriteFile(path, []byte(englishSheet), 0o600))

	p, err := ratesheet.Load(path)
	require.NoError(t, err)

	quotes, err := p.GetQuotes(context.Background(), plan.QuoteRequest{
		Principal: 5000000, TermMonths: 12, Category: plan.CategoryPersonal,
	})
	require.NoError(t, err)
	assert.Len(t, quotes, 1)

	_, err = ratesheet.Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
