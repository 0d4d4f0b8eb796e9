package category

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// memoryCategoryRepo enforces the (user, name, type) unique index.
type memoryCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*entity.Category
}

func newMemoryCategoryRepo() *memoryCategoryRepo {
	return &memoryCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (r *memoryCategoryRepo) taken(c *entity.Category) bool {
	for _, other := range r.categories {
		if other.ID != c.ID && other.UserID == c.UserID && other.Name == c.Name && other.Type == c.Type {
			return true
		}
	}
	return false
}

func (r *memoryCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(c) {
		return domainerror.ErrCategoryNameExists
	}
	stored := *c
	r.categories[c.ID] = &stored
	return nil
}

func (r *memoryCategoryRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok || c.UserID != userID {
		return nil, domainerror.ErrCategoryNotFound
	}
	out := *c
	return &out, nil
}

func (r *memoryCategoryRepo) FindByUser(_ context.Context, userID uuid.UUID, t *entity.CategoryType) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Category
	for _, c := range r.categories {
		if c.UserID == userID && (t == nil || c.Type == *t) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(c) {
		return domainerror.ErrCategoryNameExists
	}
	stored := *c
	r.categories[c.ID] = &stored
	return nil
}

func (r *memoryCategoryRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok || c.UserID != userID {
		return domainerror.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func requireCategoryCode(t *testing.T, err error, code domainerror.CategoryErrorCode) {
	t.Helper()
	var catErr *domainerror.CategoryError
	require.True(t, errors.As(err, &catErr), "expected CategoryError, got %v", err)
	assert.Equal(t, code, catErr.Code)
}

func TestCreateCategory_Uniqueness(t *testing.T) {
	repo := newMemoryCategoryRepo()
	uc := NewCreateCategoryUseCase(repo)
	userID := uuid.New()

	out, err := uc.Execute(context.Background(), CreateCategoryInput{UserID: userID, Name: "  Food ", Type: entity.CategoryTypeExpense})
	require.NoError(t, err)
	assert.Equal(t, "Food", out.Category.Name)

	_, err = uc.Execute(context.Background(), CreateCategoryInput{UserID: userID, Name: "Food", Type: entity.CategoryTypeExpense})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNameExists)

	_, err = uc.Execute(context.Background(), CreateCategoryInput{UserID: userID, Name: "Food", Type: entity.CategoryTypeIncome})
	assert.NoError(t, err, "same name with another type is allowed")

	_, err = uc.Execute(context.Background(), CreateCategoryInput{UserID: uuid.New(), Name: "Food", Type: entity.CategoryTypeExpense})
	assert.NoError(t, err, "same triple for another user is allowed")
}

func TestCreateCategory_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateCategoryInput
		code  domainerror.CategoryErrorCode
	}{
		{"blank name", CreateCategoryInput{Name: "  ", Type: entity.CategoryTypeExpense}, domainerror.ErrCodeCategoryNameRequired},
		{"long name", CreateCategoryInput{Name: strings.Repeat("a", 51), Type: entity.CategoryTypeExpense}, domainerror.ErrCodeCategoryNameTooLong},
		{"bad type", CreateCategoryInput{Name: "Food", Type: "transfer"}, domainerror.ErrCodeInvalidCategoryType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCreateCategoryUseCase(newMemoryCategoryRepo()).Execute(context.Background(), tt.input)
			requireCategoryCode(t, err, tt.code)
		})
	}
}

func TestUpdateListDeleteCategory(t *testing.T) {
	repo := newMemoryCategoryRepo()
	userID := uuid.New()
	create := NewCreateCategoryUseCase(repo)

	food, err := create.Execute(context.Background(), CreateCategoryInput{UserID: userID, Name: "Food", Type: entity.CategoryTypeExpense})
	require.NoError(t, err)
	_, err = create.Execute(context.Background(), CreateCategoryInput{UserID: userID, Name: "Rent", Type: entity.CategoryTypeExpense})
	require.NoError(t, err)

	rent := "Rent"
	_, err = NewUpdateCategoryUseCase(repo).Execute(context.Background(), UpdateCategoryInput{UserID: userID, CategoryID: food.Category.ID, Name: &rent})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNameExists)

	groceries := "Groceries"
	updated, err := NewUpdateCategoryUseCase(repo).Execute(context.Background(), UpdateCategoryInput{UserID: userID, CategoryID: food.Category.ID, Name: &groceries})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Category.Name)

	_, err = NewUpdateCategoryUseCase(repo).Execute(context.Background(), UpdateCategoryInput{UserID: uuid.New(), CategoryID: food.Category.ID, Name: &groceries})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNotFound)

	expense := entity.CategoryTypeExpense
	list, err := NewListCategoriesUseCase(repo).Execute(context.Background(), ListCategoriesInput{UserID: userID, Type: &expense})
	require.NoError(t, err)
	require.Len(t, list.Categories, 2)
	assert.Equal(t, "Groceries", list.Categories[0].Name)

	require.NoError(t, NewDeleteCategoryUseCase(repo).Execute(context.Background(), DeleteCategoryInput{UserID: userID, CategoryID: food.Category.ID}))
	err = NewDeleteCategoryUseCase(repo).Execute(context.Background(), DeleteCategoryInput{UserID: userID, CategoryID: food.Category.ID})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNotFound)

	income := entity.CategoryTypeIncome
	empty, err := NewListCategoriesUseCase(repo).Execute(context.Background(), ListCategoriesInput{UserID: userID, Type: &income})
	require.NoError(t, err)
	assert.NotNil(t, empty.Categories)
	assert.Empty(t, empty.Categories)
}
