package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/personal-finance/internal/application/usecase/statistics"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
)

// StatisticsUseCases groups the period statistics use cases.
type StatisticsUseCases struct {
	Monthly    *statistics.GetMonthlyStatisticsUseCase
	Categories *statistics.GetCategoryStatisticsUseCase
	Trends     *statistics.GetTrendsUseCase
	Custom     *statistics.GetCustomStatisticsUseCase
	Period     *statistics.GetPeriodStatisticsUseCase
}

// StatisticsController handles statistics endpoints.
type StatisticsController struct {
	uc StatisticsUseCases
}

// NewStatisticsController creates a new statistics controller instance.
func NewStatisticsController(useCases StatisticsUseCases) *StatisticsController {
	return &StatisticsController{uc: useCases}
}

const invalidQueryCode = string(domainerror.ErrCodeInvalidDateFormat)

// Monthly handles GET /statistics/monthly requests.
func (c *StatisticsController) Monthly(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var query dto.MonthlyStatisticsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, "Invalid query parameters: "+err.Error(), string(domainerror.ErrCodeInvalidMonth))
		return
	}

	input := statistics.GetMonthlyStatisticsInput{
		UserID: userID,
		Month:  query.Month,
		Year:   query.Year,
		Type:   typeFilter(query.Type),
		Now:    time.Now().UTC(),
	}
	if query.Period != "" {
		// validated by the yearmonth binding
		month, _ := time.Parse(dto.YearMonthLayout, query.Period)
		input.Month, input.Year = int(month.Month()), month.Year()
	}

	output, err := c.uc.Monthly.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToMonthlyStatisticsResponse(output)))
}

// Categories handles GET /statistics/categories requests.
func (c *StatisticsController) Categories(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var query dto.RangeQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, "Invalid query parameters: "+err.Error(), invalidQueryCode)
		return
	}
	start, end, err := parseRange(query.StartDate, query.EndDate)
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.uc.Categories.Execute(ctx.Request.Context(), statistics.GetCategoryStatisticsInput{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Type:      typeFilter(query.Type),
		Now:       time.Now().UTC(),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToCategoryStatisticsResponse(output)))
}

// Trends handles GET /statistics/trends requests.
func (c *StatisticsController) Trends(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var query dto.TrendsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, "Invalid query parameters: "+err.Error(), invalidQueryCode)
		return
	}
	start, end, err := parseRange(query.StartDate, query.EndDate)
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.uc.Trends.Execute(ctx.Request.Context(), statistics.GetTrendsInput{
		UserID:      userID,
		Granularity: query.Period,
		StartDate:   start,
		EndDate:     end,
		Type:        typeFilter(query.Type),
		Now:         time.Now().UTC(),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToTrendsResponse(output)))
}

// Custom handles GET /statistics/custom requests.
func (c *StatisticsController) Custom(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var query dto.CustomStatisticsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, "Invalid query parameters: "+err.Error(), invalidQueryCode)
		return
	}
	start, end, err := parseRange(query.StartDate, query.EndDate)
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.uc.Custom.Execute(ctx.Request.Context(), statistics.GetCustomStatisticsInput{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Type:      typeFilter(query.Type),
		Metrics:   splitMetrics(query.Metrics),
		Now:       time.Now().UTC(),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToCustomStatisticsResponse(output)))
}

// Period handles GET /statistics/period requests.
func (c *StatisticsController) Period(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var query dto.PeriodStatisticsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, "Invalid query parameters: "+err.Error(), invalidQueryCode)
		return
	}
	from, to, err := parseRange(query.FromDate, query.ToDate)
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.uc.Period.Execute(ctx.Request.Context(), statistics.GetPeriodStatisticsInput{
		UserID:              userID,
		FromDate:            from,
		ToDate:              to,
		Type:                typeFilter(query.Type),
		CompareWithPrevious: query.CompareWithPrevious,
		Now:                 time.Now().UTC(),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToPeriodStatisticsResponse(output)))
}

func parseRange(rawStart, rawEnd string) (*time.Time, *time.Time, error) {
	start, err := statistics.ParseDate(rawStart)
	if err != nil {
		return nil, nil, err
	}
	end, err := statistics.ParseDate(rawEnd)
	if err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

func typeFilter(raw string) *entity.TransactionType {
	if raw == "" {
		return nil
	}
	t := entity.TransactionType(raw)
	return &t
}

func splitMetrics(raw string) []string {
	var metrics []string
	for _, m := range strings.Split(raw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			metrics = append(metrics, m)
		}
	}
	return metrics
}
