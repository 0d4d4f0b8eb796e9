package review

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/statistics"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

type fakeStatsRepo struct {
	txs      map[uuid.UUID][]statistics.PeriodTransaction
	countErr error
	loads    atomic.Int64
	counts   atomic.Int64
}

func (r *fakeStatsRepo) inPeriod(userID uuid.UUID, period entity.Period) []statistics.PeriodTransaction {
	var out []statistics.PeriodTransaction
	for _, tx := range r.txs[userID] {
		if period.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

func (r *fakeStatsRepo) FindPeriodTransactions(_ context.Context, filter statistics.PeriodFilter) ([]statistics.PeriodTransaction, error) {
	r.loads.Add(1)
	return r.inPeriod(filter.UserID, filter.Period), nil
}

func (r *fakeStatsRepo) CountTransactions(_ context.Context, userID uuid.UUID, period entity.Period) (int, error) {
	r.counts.Add(1)
	if r.countErr != nil {
		return 0, r.countErr
	}
	return len(r.inPeriod(userID, period)), nil
}

type fakeGoalRepo struct {
	adapter.GoalRepository
	goals []*entity.Goal
}

func (r *fakeGoalRepo) FindByUserCreatedBefore(_ context.Context, userID uuid.UUID, t time.Time) ([]*entity.Goal, error) {
	var out []*entity.Goal
	for _, g := range r.goals {
		if g.UserID == userID && !g.CreatedAt.After(t) {
			out = append(out, g)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	adapter.UserRepository
	users []*entity.User
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	return r.users, nil
}

type reviewKey struct {
	user  uuid.UUID
	month time.Time
}

// memoryReviewRepo enforces the (user, month) uniqueness like the unique index.
type memoryReviewRepo struct {
	mu      sync.Mutex
	reviews map[reviewKey]*entity.MonthlyReview
	creates atomic.Int64
}

func newMemoryReviewRepo() *memoryReviewRepo {
	return &memoryReviewRepo{reviews: make(map[reviewKey]*entity.MonthlyReview)}
}

func (r *memoryReviewRepo) Create(_ context.Context, review *entity.MonthlyReview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := reviewKey{review.UserID, review.Month}
	if _, ok := r.reviews[k]; ok {
		return domainerror.ErrMonthlyReviewExists
	}
	r.reviews[k] = review
	r.creates.Add(1)
	return nil
}

func (r *memoryReviewRepo) FindByUserAndMonth(_ context.Context, userID uuid.UUID, month time.Time) (*entity.MonthlyReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[reviewKey{userID, month}]
	if !ok {
		return nil, domainerror.ErrMonthlyReviewNotFound
	}
	return review, nil
}

func (r *memoryReviewRepo) ExistsByUserAndMonth(ctx context.Context, userID uuid.UUID, month time.Time) (bool, error) {
	_, err := r.FindByUserAndMonth(ctx, userID, month)
	if errors.Is(err, domainerror.ErrMonthlyReviewNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *memoryReviewRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.MonthlyReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.MonthlyReview
	for k, review := range r.reviews {
		if k.user == userID {
			out = append(out, review)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.After(out[j].Month) })
	return out, nil
}

func (r *memoryReviewRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reviews)
}

type fakeGenerator struct {
	mu        sync.Mutex
	available bool
	pingErr   error
	genErr    error
	failFor   map[string]bool
	prompts   []string
	calls     atomic.Int64
	delay     time.Duration
}

func (g *fakeGenerator) Ping(_ context.Context) error { return g.pingErr }

func (g *fakeGenerator) IsAvailable() bool { return g.available }

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	n := g.calls.Add(1)
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()

	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if g.genErr != nil {
		return "", g.genErr
	}
	for marker := range g.failFor {
		if containsAny(prompt, marker) {
			return "", errors.New("503 service unavailable")
		}
	}
	return fmt.Sprintf("analysis #%d", n), nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	reviews []*entity.MonthlyReview
}

func (n *recordingNotifier) NotifyReviewReady(_ context.Context, _ *entity.User, review *entity.MonthlyReview) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reviews = append(n.reviews, review)
	return nil
}
