// Package statistics contains the period statistics use cases.
package statistics

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	"github.com/finance-tracker/personal-finance/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// Totals are the income/expense sums of a set of transactions.
type Totals struct {
	Income           decimal.Decimal
	Expense          decimal.Decimal
	Net              decimal.Decimal
	TransactionCount int
	IncomeCount      int
	ExpenseCount     int
}

// CategoryBreakdownItem is the aggregate of one category within one transaction type.
// CategoryID is nil for the "Other" bucket.
type CategoryBreakdownItem struct {
	CategoryID *uuid.UUID
	Name       string
	Type       entity.TransactionType
	Amount     decimal.Decimal
	Count      int
	Average    decimal.Decimal
	Percentage float64
}

// CategoryBreakdown holds the per-type category breakdowns.
type CategoryBreakdown struct {
	Income  []CategoryBreakdownItem
	Expense []CategoryBreakdownItem
}

// SeriesPoint is one bucket of a time series.
type SeriesPoint struct {
	Key     string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
	Count   int
}

// Comparison holds percentage changes against a previous period.
type Comparison struct {
	IncomeChange  float64
	ExpenseChange float64
	NetChange     float64
}

// ComputeTotals sums income and expense. An empty set yields zero totals.
func ComputeTotals(txs []PeriodTransaction) Totals {
	totals := Totals{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}
	for _, tx := range txs {
		switch tx.Type {
		case entity.TransactionTypeIncome:
			totals.Income = totals.Income.Add(tx.Amount)
			totals.IncomeCount++
		case entity.TransactionTypeExpense:
			totals.Expense = totals.Expense.Add(tx.Amount)
			totals.ExpenseCount++
		}
	}
	totals.TransactionCount = totals.IncomeCount + totals.ExpenseCount
	totals.Net = totals.Income.Sub(totals.Expense)
	return totals
}

// BreakdownByCategory groups the transactions of one type by category. Each
// item carries its share of that type's total. Items are sorted by amount
// descending, then by name.
func BreakdownByCategory(txs []PeriodTransaction, txType entity.TransactionType) []CategoryBreakdownItem {
	type key struct {
		id    uuid.UUID
		other bool
	}

	buckets := make(map[key]*CategoryBreakdownItem)
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Type != txType {
			continue
		}
		total = total.Add(tx.Amount)

		k := key{other: true}
		if tx.CategoryID != nil && tx.CategoryName != nil {
			k = key{id: *tx.CategoryID}
		}
		name := categoryName(tx)

		item, ok := buckets[k]
		if !ok {
			item = &CategoryBreakdownItem{Name: name, Type: txType, Amount: decimal.Zero}
			if !k.other {
				id := k.id
				item.CategoryID = &id
			}
			buckets[k] = item
		}
		item.Amount = item.Amount.Add(tx.Amount)
		item.Count++
	}

	items := make([]CategoryBreakdownItem, 0, len(buckets))
	for _, item := range buckets {
		item.Average = item.Amount.Div(decimal.NewFromInt(int64(item.Count))).Round(2)
		item.Percentage = PercentageOf(item.Amount, total)
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Amount.Equal(items[j].Amount) {
			return items[i].Amount.GreaterThan(items[j].Amount)
		}
		return items[i].Name < items[j].Name
	})
	return items
}

// BuildBreakdown computes both the income and the expense breakdowns.
func BuildBreakdown(txs []PeriodTransaction) CategoryBreakdown {
	return CategoryBreakdown{
		Income:  BreakdownByCategory(txs, entity.TransactionTypeIncome),
		Expense: BreakdownByCategory(txs, entity.TransactionTypeExpense),
	}
}

// BuildSeries buckets transactions by granularity. Only buckets containing at
// least one transaction are emitted, in chronological order.
func BuildSeries(txs []PeriodTransaction, granularity valueobject.Granularity) []SeriesPoint {
	buckets := make(map[string]*SeriesPoint)
	for _, tx := range txs {
		k := granularity.BucketKey(tx.Date)
		point, ok := buckets[k]
		if !ok {
			point = &SeriesPoint{Key: k, Income: decimal.Zero, Expense: decimal.Zero}
			buckets[k] = point
		}
		switch tx.Type {
		case entity.TransactionTypeIncome:
			point.Income = point.Income.Add(tx.Amount)
		case entity.TransactionTypeExpense:
			point.Expense = point.Expense.Add(tx.Amount)
		}
		point.Count++
	}

	series := make([]SeriesPoint, 0, len(buckets))
	for _, point := range buckets {
		point.Net = point.Income.Sub(point.Expense)
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Key < series[j].Key
	})
	return series
}

// PercentageOf returns part/total*100 rounded to two decimals, or 0 when total is 0.
func PercentageOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	pct, _ := part.Mul(hundred).Div(total).Round(2).Float64()
	return pct
}

// PercentageChange returns (current-previous)/previous*100 rounded to two
// decimals, or 0 when previous is 0. Small non-zero denominators are not clamped.
func PercentageChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	pct, _ := current.Sub(previous).Div(previous).Mul(hundred).Round(2).Float64()
	return pct
}

// Compare computes the period-over-period changes of two totals.
func Compare(current, previous Totals) Comparison {
	return Comparison{
		IncomeChange:  PercentageChange(current.Income, previous.Income),
		ExpenseChange: PercentageChange(current.Expense, previous.Expense),
		NetChange:     PercentageChange(current.Net, previous.Net),
	}
}
