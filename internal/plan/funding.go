package plan

// RequiredFunding is the amount the plan's sources must cover: the price, plus
// the expense breakdown for housing.
func RequiredFunding(p Plan) (int64, error) {
	if p.TargetPrice <= 0 {
		return 0, &ValidationError{Field: "target_price", Message: "is required"}
	}

	required := p.TargetPrice
	if p.AssetType == AssetHousing && p.Expenses != nil {
		required += p.Expenses.Total()
	}

	return required, nil
}
