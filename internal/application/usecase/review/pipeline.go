package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// DefaultGenerationTimeout bounds a single text generation call.
const DefaultGenerationTimeout = 60 * time.Second

// Pipeline turns a month snapshot into a persisted review. It is shared by the
// on-demand endpoint and the monthly batch.
type Pipeline struct {
	builder    *MonthDataBuilder
	generator  adapter.TextGenerator
	reviewRepo adapter.MonthlyReviewRepository
	timeout    time.Duration
}

// NewPipeline creates a new Pipeline. A non-positive timeout falls back to
// DefaultGenerationTimeout.
func NewPipeline(
	builder *MonthDataBuilder,
	generator adapter.TextGenerator,
	reviewRepo adapter.MonthlyReviewRepository,
	timeout time.Duration,
) *Pipeline {
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	return &Pipeline{
		builder:    builder,
		generator:  generator,
		reviewRepo: reviewRepo,
		timeout:    timeout,
	}
}

// Preflight checks that the generator is configured and reachable.
func (p *Pipeline) Preflight(ctx context.Context) error {
	if p.generator == nil || !p.generator.IsAvailable() {
		return domainerror.NewReviewError(
			domainerror.ErrCodeGeneratorUnavailable,
			"text generation service is not configured",
			domainerror.ErrGeneratorUnavailable,
		)
	}
	if err := p.generator.Ping(ctx); err != nil {
		return domainerror.NewReviewError(
			domainerror.ErrCodeGeneratorUnavailable,
			"text generation service is unreachable",
			errors.Join(domainerror.ErrGeneratorUnavailable, err),
		)
	}
	return nil
}

// Generate builds the previous month snapshot, asks the generator for the
// analysis and stores the review. When another writer stored the review for
// the same month first, the stored one is returned with cached set to true.
// Nothing is persisted when generation fails.
func (p *Pipeline) Generate(ctx context.Context, user *entity.User, month time.Time, current *entity.MonthData, now time.Time) (review *entity.MonthlyReview, cached bool, err error) {
	previousMonth := entity.MonthPeriod(month).PreviousMonth().Start
	previous, err := p.builder.Build(ctx, user.ID, previousMonth, now)
	if err != nil {
		return nil, false, err
	}

	prompt, err := BuildPrompt(user, current, previous)
	if err != nil {
		return nil, false, err
	}

	genCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	text, err := p.generator.Generate(genCtx, prompt)
	if err != nil {
		if genCtx.Err() != nil {
			err = errors.Join(domainerror.ErrGenerationTimeout, err)
		}
		return nil, false, classifyGenerationError(err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, false, domainerror.NewReviewError(
			domainerror.ErrCodeGenerationFailed,
			"text generation returned no content",
			domainerror.ErrEmptyGeneration,
		)
	}

	review = entity.NewMonthlyReview(user.ID, month, *current, previous, text)
	if err := p.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, domainerror.ErrMonthlyReviewExists) {
			existing, findErr := p.reviewRepo.FindByUserAndMonth(ctx, user.ID, review.Month)
			if findErr != nil {
				return nil, false, persistFailed(findErr)
			}
			return existing, true, nil
		}
		return nil, false, persistFailed(err)
	}

	return review, false, nil
}

func persistFailed(err error) error {
	return domainerror.NewReviewError(
		domainerror.ErrCodeReviewPersistFailed,
		"failed to store monthly review",
		err,
	)
}
