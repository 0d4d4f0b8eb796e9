// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// GoalMutation changes a goal loaded inside the repository's write transaction.
// Returning an error aborts the write.
type GoalMutation func(goal *entity.Goal) error

// GoalRepository defines the interface for goal persistence operations.
// Implementations refuse to persist a goal whose CurrentAmount differs from
// the sum of its contributions.
type GoalRepository interface {
	// Create stores a goal together with its contributions.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal owned by userID, contributions ordered by date.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Goal, error)

	// FindByUser retrieves all goals of a user ordered by deadline.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// FindByUserCreatedBefore retrieves the user's goals created at or before t.
	FindByUserCreatedBefore(ctx context.Context, userID uuid.UUID, t time.Time) ([]*entity.Goal, error)

	// Mutate loads the goal under a row lock, applies mutation and persists the
	// goal with its contribution list as one atomic unit.
	Mutate(ctx context.Context, userID, id uuid.UUID, mutation GoalMutation) (*entity.Goal, error)

	// Delete removes a goal and its contributions.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
