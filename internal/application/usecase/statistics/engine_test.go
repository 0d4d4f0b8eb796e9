package statistics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	"github.com/finance-tracker/personal-finance/internal/domain/valueobject"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func tx(txType entity.TransactionType, amount int64, date time.Time, category *uuid.UUID, name string) PeriodTransaction {
	p := PeriodTransaction{
		ID:         uuid.New(),
		Type:       txType,
		Amount:     decimal.NewFromInt(amount),
		Date:       date,
		CategoryID: category,
	}
	if name != "" {
		p.CategoryName = &name
	}
	return p
}

func ref(id uuid.UUID) *uuid.UUID {
	return &id
}

func TestComputeTotals_EmptySet(t *testing.T) {
	totals := ComputeTotals(nil)

	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Expense.IsZero())
	assert.True(t, totals.Net.IsZero())
	assert.Equal(t, 0, totals.TransactionCount)

	breakdown := BuildBreakdown(nil)
	assert.Empty(t, breakdown.Income)
	assert.Empty(t, breakdown.Expense)
	assert.Empty(t, BuildSeries(nil, valueobject.GranularityDaily))
}

func TestBreakdownByCategory_ExpenseOnly(t *testing.T) {
	catA, catB := uuid.New(), uuid.New()
	txs := []PeriodTransaction{
		tx(entity.TransactionTypeExpense, 100, day(2026, 3, 1), ref(catA), "A"),
		tx(entity.TransactionTypeExpense, 200, day(2026, 3, 2), ref(catA), "A"),
		tx(entity.TransactionTypeExpense, 200, day(2026, 3, 3), ref(catB), "B"),
	}

	totals := ComputeTotals(txs)
	breakdown := BuildBreakdown(txs)

	assert.True(t, totals.Net.Equal(decimal.NewFromInt(-500)))
	assert.Empty(t, breakdown.Income)
	require.Len(t, breakdown.Expense, 2)

	assert.Equal(t, "A", breakdown.Expense[0].Name)
	assert.Equal(t, 60.0, breakdown.Expense[0].Percentage)
	assert.Equal(t, 2, breakdown.Expense[0].Count)
	assert.True(t, breakdown.Expense[0].Average.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, catA, *breakdown.Expense[0].CategoryID)

	assert.Equal(t, "B", breakdown.Expense[1].Name)
	assert.Equal(t, 40.0, breakdown.Expense[1].Percentage)
}

func TestBreakdownByCategory_DeletedCategoryGoesToOther(t *testing.T) {
	deleted := uuid.New()
	txs := []PeriodTransaction{
		tx(entity.TransactionTypeIncome, 50, day(2026, 3, 1), ref(deleted), ""),
		tx(entity.TransactionTypeIncome, 30, day(2026, 3, 2), nil, ""),
		tx(entity.TransactionTypeIncome, 20, day(2026, 3, 2), ref(uuid.New()), "Salary"),
	}

	items := BreakdownByCategory(txs, entity.TransactionTypeIncome)

	require.Len(t, items, 2)
	assert.Equal(t, entity.OtherCategoryName, items[0].Name)
	assert.Nil(t, items[0].CategoryID)
	assert.True(t, items[0].Amount.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, 80.0, items[0].Percentage)
	assert.Equal(t, "Salary", items[1].Name)
}

func TestBuildSeries(t *testing.T) {
	txs := []PeriodTransaction{
		tx(entity.TransactionTypeExpense, 10, day(2026, 3, 5), nil, ""),
		tx(entity.TransactionTypeIncome, 100, day(2026, 3, 1), nil, ""),
		tx(entity.TransactionTypeExpense, 40, day(2026, 3, 1), nil, ""),
		tx(entity.TransactionTypeExpense, 5, day(2026, 4, 2), nil, ""),
	}

	t.Run("daily buckets only where transactions exist", func(t *testing.T) {
		series := BuildSeries(txs, valueobject.GranularityDaily)

		require.Len(t, series, 3)
		assert.Equal(t, "2026-03-01", series[0].Key)
		assert.True(t, series[0].Net.Equal(decimal.NewFromInt(60)))
		assert.Equal(t, 2, series[0].Count)
		assert.Equal(t, "2026-03-05", series[1].Key)
		assert.Equal(t, "2026-04-02", series[2].Key)
	})

	t.Run("monthly", func(t *testing.T) {
		series := BuildSeries(txs, valueobject.GranularityMonthly)

		require.Len(t, series, 2)
		assert.Equal(t, "2026-03", series[0].Key)
		assert.True(t, series[0].Expense.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, "2026-04", series[1].Key)
	})

	t.Run("yearly", func(t *testing.T) {
		series := BuildSeries(txs, valueobject.GranularityYearly)

		require.Len(t, series, 1)
		assert.Equal(t, "2026", series[0].Key)
		assert.Equal(t, 4, series[0].Count)
	})
}

func TestPercentages(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		previous int64
		want     float64
	}{
		{"zero previous", 100, 0, 0},
		{"increase", 150, 100, 50},
		{"decrease", 50, 200, -75},
		{"unchanged", 100, 100, 0},
		{"small denominator is not clamped", 100, 1, 9900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentageChange(decimal.NewFromInt(tt.current), decimal.NewFromInt(tt.previous))
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, 0.0, PercentageOf(decimal.NewFromInt(10), decimal.Zero))
	assert.Equal(t, 33.33, PercentageOf(decimal.NewFromInt(1), decimal.NewFromInt(3)))
}

func TestCustomMetrics(t *testing.T) {
	food := uuid.New()
	txs := []PeriodTransaction{
		tx(entity.TransactionTypeIncome, 1000, day(2026, 3, 1), ref(uuid.New()), "Salary"),
		tx(entity.TransactionTypeExpense, 100, day(2026, 3, 2), ref(food), "Food"),
		tx(entity.TransactionTypeExpense, 150, day(2026, 3, 3), ref(food), "Food"),
	}

	avg := AverageAmount(txs)
	assert.True(t, avg.Equal(decimal.RequireFromString("416.67")))

	largest := Largest(txs)
	require.NotNil(t, largest)
	assert.Equal(t, "Salary", largest.Category)

	frequent := MostFrequentCategory(txs)
	require.NotNil(t, frequent)
	assert.Equal(t, "Food", frequent.Name)
	assert.Equal(t, 2, frequent.Count)

	assert.Equal(t, 75.0, SavingRate(ComputeTotals(txs)))

	assert.Nil(t, Largest(nil))
	assert.Nil(t, MostFrequentCategory(nil))
	assert.True(t, AverageAmount(nil).IsZero())
}
