package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

type fixtureStatisticsRepository struct {
	txs     map[uuid.UUID][]PeriodTransaction
	err     error
	queries []PeriodFilter
}

func (r *fixtureStatisticsRepository) FindPeriodTransactions(_ context.Context, filter PeriodFilter) ([]PeriodTransaction, error) {
	r.queries = append(r.queries, filter)
	if r.err != nil {
		return nil, r.err
	}
	var out []PeriodTransaction
	for _, tx := range r.txs[filter.UserID] {
		if !filter.Period.Contains(tx.Date) {
			continue
		}
		if filter.Type != nil && tx.Type != *filter.Type {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (r *fixtureStatisticsRepository) CountTransactions(ctx context.Context, userID uuid.UUID, period entity.Period) (int, error) {
	txs, err := r.FindPeriodTransactions(ctx, PeriodFilter{UserID: userID, Period: period})
	return len(txs), err
}

func requireStatisticsCode(t *testing.T, err error, code domainerror.StatisticsErrorCode) {
	t.Helper()
	var statsErr *domainerror.StatisticsError
	require.True(t, errors.As(err, &statsErr), "expected StatisticsError, got %v", err)
	assert.Equal(t, code, statsErr.Code)
}

func newFixture(userID uuid.UUID) *fixtureStatisticsRepository {
	food := uuid.New()
	return &fixtureStatisticsRepository{txs: map[uuid.UUID][]PeriodTransaction{
		userID: {
			tx(entity.TransactionTypeIncome, 2000, day(2026, 2, 1), ref(uuid.New()), "Salary"),
			tx(entity.TransactionTypeExpense, 500, day(2026, 2, 10), ref(food), "Food"),
			tx(entity.TransactionTypeIncome, 3000, day(2026, 3, 1), ref(uuid.New()), "Salary"),
			tx(entity.TransactionTypeExpense, 750, day(2026, 3, 4), ref(food), "Food"),
			tx(entity.TransactionTypeExpense, 250, day(2026, 3, 4), nil, ""),
		},
	}}
}

func TestGetMonthlyStatistics(t *testing.T) {
	userID := uuid.New()
	repo := newFixture(userID)
	uc := NewGetMonthlyStatisticsUseCase(repo)

	out, err := uc.Execute(context.Background(), GetMonthlyStatisticsInput{UserID: userID, Month: 3, Year: 2026})
	require.NoError(t, err)

	assert.True(t, out.Totals.Income.Equal(decimal.NewFromInt(3000)))
	assert.True(t, out.Totals.Expense.Equal(decimal.NewFromInt(1000)))
	assert.True(t, out.Totals.Net.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, 50.0, out.Comparison.IncomeChange)
	assert.Equal(t, 100.0, out.Comparison.ExpenseChange)
	require.Len(t, out.CategoryBreakdown.Expense, 2)
	assert.Equal(t, 75.0, out.CategoryBreakdown.Expense[0].Percentage)
	assert.Equal(t, entity.OtherCategoryName, out.CategoryBreakdown.Expense[1].Name)
	require.Len(t, out.DailyBreakdown, 2)

	_, err = uc.Execute(context.Background(), GetMonthlyStatisticsInput{UserID: userID, Month: 13, Year: 2026})
	requireStatisticsCode(t, err, domainerror.ErrCodeInvalidMonth)
}

func TestGetMonthlyStatistics_EmptyMonth(t *testing.T) {
	repo := &fixtureStatisticsRepository{}
	out, err := NewGetMonthlyStatisticsUseCase(repo).Execute(context.Background(), GetMonthlyStatisticsInput{
		UserID: uuid.New(),
		Now:    day(2026, 5, 10),
	})
	require.NoError(t, err)

	assert.True(t, out.Totals.Net.IsZero())
	assert.Empty(t, out.CategoryBreakdown.Expense)
	assert.Empty(t, out.DailyBreakdown)
	assert.Equal(t, Comparison{}, out.Comparison)
	assert.Equal(t, time.May, out.Period.Start.Month())
}

func TestGetPeriodStatistics_ComparesWithPrevious(t *testing.T) {
	userID := uuid.New()
	repo := newFixture(userID)
	from, to := day(2026, 3, 1), day(2026, 3, 10)

	out, err := NewGetPeriodStatisticsUseCase(repo).Execute(context.Background(), GetPeriodStatisticsInput{
		UserID:              userID,
		FromDate:            &from,
		ToDate:              &to,
		CompareWithPrevious: true,
	})
	require.NoError(t, err)

	require.NotNil(t, out.Previous)
	assert.Equal(t, 10, out.Previous.Period.Days())
	assert.Equal(t, 19, out.Previous.Period.Start.Day())
	assert.Equal(t, time.February, out.Previous.Period.Start.Month())
	assert.Equal(t, 0, out.Previous.Totals.TransactionCount)
	assert.Equal(t, 0.0, out.Previous.Comparison.IncomeChange)
}

func TestGetTrends(t *testing.T) {
	userID := uuid.New()
	repo := newFixture(userID)
	from, to := day(2026, 1, 1), day(2026, 12, 31)
	uc := NewGetTrendsUseCase(repo)

	out, err := uc.Execute(context.Background(), GetTrendsInput{UserID: userID, Granularity: "monthly", StartDate: &from, EndDate: &to})
	require.NoError(t, err)
	require.Len(t, out.Points, 2)
	assert.Equal(t, "2026-02", out.Points[0].Key)
	assert.Equal(t, "2026-03", out.Points[1].Key)

	_, err = uc.Execute(context.Background(), GetTrendsInput{UserID: userID, Granularity: "hourly"})
	requireStatisticsCode(t, err, domainerror.ErrCodeInvalidGranularity)

	_, err = uc.Execute(context.Background(), GetTrendsInput{UserID: userID, StartDate: &to, EndDate: &from})
	requireStatisticsCode(t, err, domainerror.ErrCodeInvalidDateRange)
}

func TestGetCategoryStatistics_TypeFilter(t *testing.T) {
	userID := uuid.New()
	repo := newFixture(userID)
	from, to := day(2026, 3, 1), day(2026, 3, 31)
	income := entity.TransactionTypeIncome

	out, err := NewGetCategoryStatisticsUseCase(repo).Execute(context.Background(), GetCategoryStatisticsInput{
		UserID: userID, StartDate: &from, EndDate: &to, Type: &income,
	})
	require.NoError(t, err)
	require.Len(t, out.Categories, 1)
	assert.Equal(t, "Salary", out.Categories[0].Name)
	assert.Equal(t, 100.0, out.Categories[0].Percentage)

	bad := entity.TransactionType("transfer")
	_, err = NewGetCategoryStatisticsUseCase(repo).Execute(context.Background(), GetCategoryStatisticsInput{UserID: userID, Type: &bad})
	requireStatisticsCode(t, err, domainerror.ErrCodeInvalidStatisticsType)
}

func TestGetCustomStatistics(t *testing.T) {
	userID := uuid.New()
	repo := newFixture(userID)
	from, to := day(2026, 3, 1), day(2026, 3, 31)
	uc := NewGetCustomStatisticsUseCase(repo)

	out, err := uc.Execute(context.Background(), GetCustomStatisticsInput{
		UserID: userID, StartDate: &from, EndDate: &to, Metrics: []string{MetricSavingRate},
	})
	require.NoError(t, err)
	require.NotNil(t, out.SavingRate)
	assert.InDelta(t, 66.67, *out.SavingRate, 0.001)
	assert.Nil(t, out.LargestTransaction)

	_, err = uc.Execute(context.Background(), GetCustomStatisticsInput{UserID: userID, Metrics: []string{"median"}})
	requireStatisticsCode(t, err, domainerror.ErrCodeUnknownMetric)
}

func TestQueryFailureIsWrapped(t *testing.T) {
	repo := &fixtureStatisticsRepository{err: errors.New("connection refused")}

	_, err := NewGetPeriodStatisticsUseCase(repo).Execute(context.Background(), GetPeriodStatisticsInput{UserID: uuid.New()})
	requireStatisticsCode(t, err, domainerror.ErrCodeStatisticsQueryFailed)
}

func TestResolveRange(t *testing.T) {
	now := day(2026, 3, 15)

	p, err := ResolveRange(nil, nil, now)
	require.NoError(t, err)
	assert.Equal(t, entity.MonthPeriod(now), p)

	start := day(2026, 3, 10)
	p, err = ResolveRange(&start, nil, now)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Start.Day())
	assert.Equal(t, 15, p.End.Day())

	end := day(2026, 2, 20)
	p, err = ResolveRange(nil, &end, now)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Start.Day())
	assert.Equal(t, time.February, p.Start.Month())

	_, err = ParseDate("2026/01/01")
	requireStatisticsCode(t, err, domainerror.ErrCodeInvalidDateFormat)
}
