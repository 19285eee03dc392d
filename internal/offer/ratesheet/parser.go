package ratesheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finplan/internal/money"
	"github.com/MrJamesThe3rd/finplan/internal/plan"
)

var ErrNoProfile = errors.New("no matching rate sheet layout found")

// Rate is one row of a lender rate sheet.
type Rate struct {
	LenderID    string
	Category    plan.CreditCategory
	MinTerm     int
	MaxTerm     int
	MinAmount   int64
	MaxAmount   int64 // zero means unbounded
	RatePercent decimal.Decimal
}

func (r Rate) covers(req plan.QuoteRequest) bool {
	if r.Category != req.Category {
		return false
	}

	if req.TermMonths < r.MinTerm || req.TermMonths > r.MaxTerm {
		return false
	}

	if req.Principal < r.MinAmount {
		return false
	}

	return r.MaxAmount == 0 || req.Principal <= r.MaxAmount
}

var categoryAliases = map[string]plan.CreditCategory{
	"primary":     plan.CategoryPrimary,
	"mortgage":    plan.CategoryPrimary,
	"auto":        plan.CategoryPrimary,
	"hipotecario": plan.CategoryPrimary,
	"automotriz":  plan.CategoryPrimary,
	"personal":    plan.CategoryPersonal,
}

// Parse reads a rate sheet in any supported layout and encoding.
func Parse(r io.Reader) ([]Rate, error) {
	utf8r, _, err := utf8Reader(r)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("reading rate sheet: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = sniffDelimiter(raw)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrNoProfile
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// sniffDelimiter picks ';' when the first line uses it more than ','.
func sniffDelimiter(raw []byte) rune {
	line, _, _ := bytes.Cut(raw, []byte("\n"))
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}

	return ','
}

func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]Rate, error) {
	var rates []Rate

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		lender := cellValue(row, cols[p.LenderCol])
		if lender == "" {
			continue
		}

		rate, err := parseRow(p, cols, row, lender)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		rates = append(rates, rate)
	}

	return rates, nil
}

func parseRow(p *Profile, cols colIndex, row []string, lender string) (Rate, error) {
	category, ok := categoryAliases[strings.ToLower(cellValue(row, cols[p.CategoryCol]))]
	if !ok {
		return Rate{}, fmt.Errorf("unknown category %q", cellValue(row, cols[p.CategoryCol]))
	}

	minTerm, err := strconv.Atoi(cellValue(row, cols[p.MinTermCol]))
	if err != nil {
		return Rate{}, fmt.Errorf("parsing min term: %w", err)
	}

	maxTerm, err := strconv.Atoi(cellValue(row, cols[p.MaxTermCol]))
	if err != nil {
		return Rate{}, fmt.Errorf("parsing max term: %w", err)
	}

	if minTerm < 1 || maxTerm < minTerm {
		return Rate{}, fmt.Errorf("invalid term range %d-%d", minTerm, maxTerm)
	}

	pct, err := parsePercent(cellValue(row, cols[p.RateCol]))
	if err != nil {
		return Rate{}, err
	}

	minAmount, err := optionalAmount(row, cols, p.MinAmountCol)
	if err != nil {
		return Rate{}, err
	}

	maxAmount, err := optionalAmount(row, cols, p.MaxAmountCol)
	if err != nil {
		return Rate{}, err
	}

	return Rate{
		LenderID:    strings.ToLower(lender),
		Category:    category,
		MinTerm:     minTerm,
		MaxTerm:     maxTerm,
		MinAmount:   minAmount,
		MaxAmount:   maxAmount,
		RatePercent: pct,
	}, nil
}

func parsePercent(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.TrimSuffix(s, "%"))
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing rate %q: %w", s, err)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative rate %q", s)
	}

	return d, nil
}

func optionalAmount(row []string, cols colIndex, col string) (int64, error) {
	idx, ok := cols[col]
	if !ok {
		return 0, nil
	}

	s := cellValue(row, idx)
	if s == "" {
		return 0, nil
	}

	return money.Parse(s)
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
