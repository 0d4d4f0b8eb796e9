package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/personal-finance/internal/application/usecase/statistics"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// MonthlyStatisticsQuery holds the query of GET /statistics/monthly. Period
// (YYYY-MM) is a shorthand for month and year.
type MonthlyStatisticsQuery struct {
	Month  int    `form:"month"`
	Year   int    `form:"year"`
	Period string `form:"period" binding:"omitempty,yearmonth"`
	Type   string `form:"type"`
}

// RangeQuery holds a date range with an optional type filter.
type RangeQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Type      string `form:"type"`
}

// TrendsQuery holds the query of GET /statistics/trends.
type TrendsQuery struct {
	RangeQuery
	Period string `form:"period"`
}

// CustomStatisticsQuery holds the query of GET /statistics/custom.
type CustomStatisticsQuery struct {
	RangeQuery
	Metrics string `form:"metrics"`
}

// PeriodStatisticsQuery holds the query of GET /statistics/period.
type PeriodStatisticsQuery struct {
	FromDate            string `form:"fromDate"`
	ToDate              string `form:"toDate"`
	Type                string `form:"type"`
	CompareWithPrevious bool   `form:"compareWithPrevious"`
}

// PeriodResponse describes a closed date range.
type PeriodResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Label     string `json:"label"`
}

// TotalsResponse holds the totals of a period.
type TotalsResponse struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	NetAmount        decimal.Decimal `json:"netAmount"`
	TransactionCount int             `json:"transactionCount"`
	IncomeCount      int             `json:"incomeCount"`
	ExpenseCount     int             `json:"expenseCount"`
}

// ComparisonResponse holds percentage changes against the previous period.
type ComparisonResponse struct {
	IncomeChange  float64 `json:"incomeChange"`
	ExpenseChange float64 `json:"expenseChange"`
	NetChange     float64 `json:"netChange"`
}

// CategoryStatResponse is one row of a category breakdown.
type CategoryStatResponse struct {
	CategoryID       *string         `json:"categoryId"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TransactionCount int             `json:"transactionCount"`
	AverageAmount    decimal.Decimal `json:"averageAmount"`
	Percentage       float64         `json:"percentage"`
}

// CategoryBreakdownResponse splits the breakdown by transaction type.
type CategoryBreakdownResponse struct {
	Income  []CategoryStatResponse `json:"income"`
	Expense []CategoryStatResponse `json:"expense"`
}

// SeriesPointResponse is one time-series bucket.
type SeriesPointResponse struct {
	Date             string          `json:"date"`
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	Net              decimal.Decimal `json:"net"`
	TransactionCount int             `json:"transactionCount"`
}

// MonthlyStatisticsResponse represents GET /statistics/monthly.
type MonthlyStatisticsResponse struct {
	Period                  PeriodResponse            `json:"period"`
	TotalsResponse
	PreviousMonthComparison ComparisonResponse        `json:"previousMonthComparison"`
	CategoryBreakdown       CategoryBreakdownResponse `json:"categoryBreakdown"`
	DailyBreakdown          []SeriesPointResponse     `json:"dailyBreakdown"`
}

// CategoryStatisticsResponse represents GET /statistics/categories.
type CategoryStatisticsResponse struct {
	Period     PeriodResponse         `json:"period"`
	Totals     TotalsResponse         `json:"totals"`
	Categories []CategoryStatResponse `json:"categories"`
}

// TrendsResponse represents GET /statistics/trends.
type TrendsResponse struct {
	Granularity string                `json:"period"`
	Range       PeriodResponse        `json:"range"`
	Trends      []SeriesPointResponse `json:"trends"`
}

// LargestTransactionResponse is the largest single transaction of a period.
type LargestTransactionResponse struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
	Category string          `json:"category"`
}

// FrequentCategoryResponse is the category with the most transactions.
type FrequentCategoryResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CustomStatisticsResponse represents GET /statistics/custom. Only requested
// metrics are set.
type CustomStatisticsResponse struct {
	Period               PeriodResponse              `json:"period"`
	AverageTransaction   *decimal.Decimal            `json:"averageTransaction,omitempty"`
	LargestTransaction   *LargestTransactionResponse `json:"largestTransaction,omitempty"`
	MostFrequentCategory *FrequentCategoryResponse   `json:"mostFrequentCategory,omitempty"`
	SavingRate           *float64                    `json:"savingRate,omitempty"`
}

// PreviousPeriodResponse is the comparison block of GET /statistics/period.
type PreviousPeriodResponse struct {
	Period  PeriodResponse     `json:"period"`
	Totals  TotalsResponse     `json:"totals"`
	Changes ComparisonResponse `json:"changes"`
}

// PeriodStatisticsResponse represents GET /statistics/period.
type PeriodStatisticsResponse struct {
	Period         PeriodResponse          `json:"period"`
	Totals         TotalsResponse          `json:"totals"`
	PreviousPeriod *PreviousPeriodResponse `json:"previousPeriod,omitempty"`
}

// ToPeriodResponse converts a period with its display label.
func ToPeriodResponse(p entity.Period) PeriodResponse {
	return PeriodResponse{
		StartDate: p.Start.Format(DateLayout),
		EndDate:   p.End.Format(DateLayout),
		Label:     statistics.GeneratePeriodLabel(p),
	}
}

// ToTotalsResponse converts period totals.
func ToTotalsResponse(t statistics.Totals) TotalsResponse {
	return TotalsResponse{
		TotalIncome:      t.Income,
		TotalExpense:     t.Expense,
		NetAmount:        t.Net,
		TransactionCount: t.TransactionCount,
		IncomeCount:      t.IncomeCount,
		ExpenseCount:     t.ExpenseCount,
	}
}

// ToComparisonResponse converts percentage changes.
func ToComparisonResponse(c statistics.Comparison) ComparisonResponse {
	return ComparisonResponse{
		IncomeChange:  c.IncomeChange,
		ExpenseChange: c.ExpenseChange,
		NetChange:     c.NetChange,
	}
}

// ToCategoryStats converts breakdown rows.
func ToCategoryStats(items []statistics.CategoryBreakdownItem) []CategoryStatResponse {
	out := make([]CategoryStatResponse, 0, len(items))
	for _, item := range items {
		row := CategoryStatResponse{
			Name:             item.Name,
			Type:             string(item.Type),
			TotalAmount:      item.Amount,
			TransactionCount: item.Count,
			AverageAmount:    item.Average,
			Percentage:       item.Percentage,
		}
		if item.CategoryID != nil {
			id := item.CategoryID.String()
			row.CategoryID = &id
		}
		out = append(out, row)
	}
	return out
}

// ToSeries converts time-series buckets.
func ToSeries(points []statistics.SeriesPoint) []SeriesPointResponse {
	out := make([]SeriesPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, SeriesPointResponse{
			Date:             p.Key,
			Income:           p.Income,
			Expense:          p.Expense,
			Net:              p.Net,
			TransactionCount: p.Count,
		})
	}
	return out
}

// ToMonthlyStatisticsResponse converts the monthly statistics output.
func ToMonthlyStatisticsResponse(output *statistics.GetMonthlyStatisticsOutput) MonthlyStatisticsResponse {
	return MonthlyStatisticsResponse{
		Period:                  ToPeriodResponse(output.Period),
		TotalsResponse:          ToTotalsResponse(output.Totals),
		PreviousMonthComparison: ToComparisonResponse(output.Comparison),
		CategoryBreakdown: CategoryBreakdownResponse{
			Income:  ToCategoryStats(output.CategoryBreakdown.Income),
			Expense: ToCategoryStats(output.CategoryBreakdown.Expense),
		},
		DailyBreakdown: ToSeries(output.DailyBreakdown),
	}
}

// ToCategoryStatisticsResponse converts the category statistics output.
func ToCategoryStatisticsResponse(output *statistics.GetCategoryStatisticsOutput) CategoryStatisticsResponse {
	return CategoryStatisticsResponse{
		Period:     ToPeriodResponse(output.Period),
		Totals:     ToTotalsResponse(output.Totals),
		Categories: ToCategoryStats(output.Categories),
	}
}

// ToTrendsResponse converts the trends output.
func ToTrendsResponse(output *statistics.GetTrendsOutput) TrendsResponse {
	return TrendsResponse{
		Granularity: string(output.Granularity),
		Range:       ToPeriodResponse(output.Period),
		Trends:      ToSeries(output.Points),
	}
}

// ToCustomStatisticsResponse converts the custom statistics output.
func ToCustomStatisticsResponse(output *statistics.GetCustomStatisticsOutput) CustomStatisticsResponse {
	resp := CustomStatisticsResponse{
		Period:             ToPeriodResponse(output.Period),
		AverageTransaction: output.AverageTransaction,
		SavingRate:         output.SavingRate,
	}
	if l := output.LargestTransaction; l != nil {
		resp.LargestTransaction = &LargestTransactionResponse{
			ID:       l.ID.String(),
			Type:     string(l.Type),
			Amount:   l.Amount,
			Date:     l.Date.Format(DateLayout),
			Category: l.Category,
		}
	}
	if f := output.MostFrequentCategory; f != nil {
		resp.MostFrequentCategory = &FrequentCategoryResponse{Name: f.Name, Count: f.Count}
	}
	return resp
}

// ToPeriodStatisticsResponse converts the period statistics output.
func ToPeriodStatisticsResponse(output *statistics.GetPeriodStatisticsOutput) PeriodStatisticsResponse {
	resp := PeriodStatisticsResponse{
		Period: ToPeriodResponse(output.Period),
		Totals: ToTotalsResponse(output.Totals),
	}
	if prev := output.Previous; prev != nil {
		resp.PreviousPeriod = &PreviousPeriodResponse{
			Period:  ToPeriodResponse(prev.Period),
			Totals:  ToTotalsResponse(prev.Totals),
			Changes: ToComparisonResponse(prev.Comparison),
		}
	}
	return resp
}
