package goal

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// memoryGoalRepository is an in-memory GoalRepository that enforces the same
// aggregate check as the gorm implementation.
type memoryGoalRepository struct {
	mu    sync.Mutex
	goals map[uuid.UUID]*entity.Goal
	saves int
}

func newMemoryGoalRepository() *memoryGoalRepository {
	return &memoryGoalRepository{goals: make(map[uuid.UUID]*entity.Goal)}
}

func cloneGoal(g *entity.Goal) *entity.Goal {
	c := *g
	c.Contributions = append([]entity.Contribution(nil), g.Contributions...)
	return &c
}

func (r *memoryGoalRepository) persist(goal *entity.Goal) error {
	if !goal.CurrentAmount.Equal(entity.RecomputeCurrentAmount(goal.Contributions)) {
		return domainerror.ErrGoalAggregateMismatch
	}
	r.goals[goal.ID] = cloneGoal(goal)
	r.saves++
	return nil
}

func (r *memoryGoalRepository) Create(_ context.Context, goal *entity.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.persist(goal)
}

func (r *memoryGoalRepository) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return nil, domainerror.ErrGoalNotFound
	}
	return cloneGoal(g), nil
}

func (r *memoryGoalRepository) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, cloneGoal(g))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Deadline.Before(out[j].Deadline) })
	return out, nil
}

func (r *memoryGoalRepository) FindByUserCreatedBefore(ctx context.Context, userID uuid.UUID, t time.Time) ([]*entity.Goal, error) {
	all, _ := r.FindByUser(ctx, userID)
	var out []*entity.Goal
	for _, g := range all {
		if !g.CreatedAt.After(t) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memoryGoalRepository) Mutate(_ context.Context, userID, id uuid.UUID, mutation adapter.GoalMutation) (*entity.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.goals[id]
	if !ok || stored.UserID != userID {
		return nil, domainerror.ErrGoalNotFound
	}
	goal := cloneGoal(stored)
	if err := mutation(goal); err != nil {
		return nil, err
	}
	if err := r.persist(goal); err != nil {
		return nil, err
	}
	return cloneGoal(goal), nil
}

func (r *memoryGoalRepository) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok || g.UserID != userID {
		return domainerror.ErrGoalNotFound
	}
	delete(r.goals, id)
	return nil
}
