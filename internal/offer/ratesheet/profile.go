package ratesheet

import "strings"

// Profile describes the column layout of a lender rate sheet. Amount columns
// are optional; when absent a row applies to any principal.
type Profile struct {
	Name         string
	LenderCol    string
	CategoryCol  string
	MinTermCol   string
	MaxTermCol   string
	RateCol      string
	MinAmountCol string
	MaxAmountCol string
}

func (p Profile) requiredCols() []string {
	return []string{p.LenderCol, p.CategoryCol, p.MinTermCol, p.MaxTermCol, p.RateCol}
}

// profiles is tried in order during header detection.
var profiles = []Profile{
	{
		Name:         "en",
		LenderCol:    "lender",
		CategoryCol:  "category",
		MinTermCol:   "min term",
		MaxTermCol:   "max term",
		RateCol:      "rate",
		MinAmountCol: "min amount",
		MaxAmountCol: "max amount",
	},
	{
		Name:         "es",
		LenderCol:    "entidad",
		CategoryCol:  "producto",
		MinTermCol:   "plazo mínimo",
		MaxTermCol:   "plazo máximo",
		RateCol:      "tasa anual",
		MinAmountCol: "monto mínimo",
		MaxAmountCol: "monto máximo",
	},
}

type colIndex map[string]int

func headerKey(cell string) string {
	return strings.ToLower(strings.TrimSpace(cell))
}

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex, len(row))

		for i, cell := range row {
			if name := headerKey(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}
