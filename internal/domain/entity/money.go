package entity

import "github.com/shopspring/decimal"

// AmountScale is the number of decimal places money columns keep.
const AmountScale = 2

// FitsAmountScale reports whether amount can be stored without rounding.
// Trailing zeros such as 10.500 are accepted.
func FitsAmountScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(AmountScale))
}
