package models

// Transaction categories, in the order the dashboard cycles through them
const (
	CategoryUnorganized   = "unorganized"
	CategoryAllowance     = "allowance"
	CategoryNeed          = "need"
	CategoryReimburse     = "reimburse"
	CategoryReimbursed    = "reimbursed"
	CategoryNotReimbursed = "not_reimbursed"
)

// categoryCycle is the fixed ring a category advances through on each toggle
var categoryCycle = []string{
	CategoryUnorganized,
	CategoryAllowance,
	CategoryNeed,
	CategoryReimburse,
	CategoryReimbursed,
	CategoryNotReimbursed,
}

// AllCategories returns all valid category constants in cycle order
func AllCategories() []string {
	out := make([]string, len(categoryCycle))
	copy(out, categoryCycle)
	return out
}

// IsValidCategory checks if a category string is valid
func IsValidCategory(category string) bool {
	for _, validCategory := range categoryCycle {
		if category == validCategory {
			return true
		}
	}
	return false
}

// NextCategory advances a category exactly one step around the cycle,
// wrapping at the end. Unknown or empty categories are treated as
// unorganized, so their next step is allowance.
func NextCategory(category string) string {
	for i, c := range categoryCycle {
		if c == category {
			return categoryCycle[(i+1)%len(categoryCycle)]
		}
	}
	return categoryCycle[1]
}

// IsAccumulatingCategory reports whether transactions in the category
// contribute to a running balance and the allowance aggregate total.
func IsAccumulatingCategory(category string) bool {
	return category == CategoryAllowance || category == CategoryReimburse
}

// AccumulatingCategories returns the categories that carry running balances
func AccumulatingCategories() []string {
	return []string{CategoryAllowance, CategoryReimburse}
}
