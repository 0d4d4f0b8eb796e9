// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
// Every lookup is scoped by the owning user.
type CategoryRepository interface {
	// Create creates a new category. A duplicate (user, name, type) yields
	// domainerror.ErrCategoryNameExists.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category owned by userID.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Category, error)

	// FindByUser retrieves the user's categories, optionally filtered by type.
	FindByUser(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error)

	// Update updates an existing category. A duplicate (user, name, type) yields
	// domainerror.ErrCategoryNameExists.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category owned by userID.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
