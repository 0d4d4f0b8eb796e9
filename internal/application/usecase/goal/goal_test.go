package goal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func requireGoalCode(t *testing.T, err error, code domainerror.GoalErrorCode) {
	t.Helper()
	var goalErr *domainerror.GoalError
	require.True(t, errors.As(err, &goalErr), "expected GoalError, got %v", err)
	assert.Equal(t, code, goalErr.Code)
}

func createGoal(t *testing.T, repo *memoryGoalRepository, userID uuid.UUID, amounts ...int64) *entity.Goal {
	t.Helper()
	var contributions []ContributionInput
	for _, a := range amounts {
		contributions = append(contributions, ContributionInput{Amount: dec(a)})
	}
	out, err := NewCreateGoalUseCase(repo).Execute(context.Background(), CreateGoalInput{
		UserID:        userID,
		Title:         "Emergency fund",
		TargetAmount:  dec(1000),
		Deadline:      time.Now().Add(90 * 24 * time.Hour),
		Contributions: contributions,
	})
	require.NoError(t, err)
	return out.Goal
}

func TestCreateGoalUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("derives current amount from initial contributions", func(t *testing.T) {
		repo := newMemoryGoalRepository()
		goal := createGoal(t, repo, userID, 200, 300)
		assert.True(t, goal.CurrentAmount.Equal(dec(500)))
	})

	tests := []struct {
		name  string
		input CreateGoalInput
		code  domainerror.GoalErrorCode
	}{
		{
			name:  "blank title",
			input: CreateGoalInput{UserID: userID, Title: "  ", TargetAmount: dec(10), Deadline: time.Now()},
			code:  domainerror.ErrCodeGoalTitleRequired,
		},
		{
			name:  "zero target",
			input: CreateGoalInput{UserID: userID, Title: "x", TargetAmount: decimal.Zero, Deadline: time.Now()},
			code:  domainerror.ErrCodeInvalidTargetAmount,
		},
		{
			name:  "missing deadline",
			input: CreateGoalInput{UserID: userID, Title: "x", TargetAmount: dec(10)},
			code:  domainerror.ErrCodeGoalDeadlineRequired,
		},
		{
			name: "negative contribution",
			input: CreateGoalInput{UserID: userID, Title: "x", TargetAmount: dec(10), Deadline: time.Now(),
				Contributions: []ContributionInput{{Amount: dec(-1)}}},
			code: domainerror.ErrCodeInvalidContributionAmount,
		},
		{
			name:  "sub-cent target",
			input: CreateGoalInput{UserID: userID, Title: "x", TargetAmount: decimal.RequireFromString("10.001"), Deadline: time.Now()},
			code:  domainerror.ErrCodeInvalidTargetAmount,
		},
		{
			name: "sub-cent contributions",
			input: CreateGoalInput{UserID: userID, Title: "x", TargetAmount: dec(10), Deadline: time.Now(),
				Contributions: []ContributionInput{
					{Amount: decimal.RequireFromString("0.005")},
					{Amount: decimal.RequireFromString("0.005")},
				}},
			code: domainerror.ErrCodeInvalidContributionAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryGoalRepository()
			_, err := NewCreateGoalUseCase(repo).Execute(ctx, tt.input)
			requireGoalCode(t, err, tt.code)
			assert.Zero(t, repo.saves)
		})
	}
}

func TestContributionUseCases_KeepCurrentAmountInSync(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryGoalRepository()
	userID := uuid.New()
	goal := createGoal(t, repo, userID, 200, 300)

	added, err := NewAddContributionUseCase(repo).Execute(ctx, AddContributionInput{
		GoalID: goal.ID, UserID: userID, Contribution: ContributionInput{Amount: dec(100), Note: "bonus"},
	})
	require.NoError(t, err)
	assert.True(t, added.Goal.CurrentAmount.Equal(dec(600)))

	newAmount := dec(400)
	updated, err := NewUpdateContributionUseCase(repo).Execute(ctx, UpdateContributionInput{
		GoalID: goal.ID, UserID: userID, ContributionID: added.Contribution.ID, Amount: &newAmount,
	})
	require.NoError(t, err)
	assert.True(t, updated.Goal.CurrentAmount.Equal(dec(900)))

	deleted, err := NewDeleteContributionUseCase(repo).Execute(ctx, DeleteContributionInput{
		GoalID: goal.ID, UserID: userID, ContributionID: goal.Contributions[0].ID,
	})
	require.NoError(t, err)
	assert.True(t, deleted.Goal.CurrentAmount.Equal(dec(700)))

	stored, err := repo.FindByID(ctx, userID, goal.ID)
	require.NoError(t, err)
	assert.True(t, stored.CurrentAmount.Equal(entity.RecomputeCurrentAmount(stored.Contributions)))
	assert.Len(t, stored.Contributions, 2)
}

func TestContributionUseCases_Errors(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryGoalRepository()
	owner := uuid.New()
	goal := createGoal(t, repo, owner, 100)

	t.Run("unknown contribution", func(t *testing.T) {
		_, err := NewDeleteContributionUseCase(repo).Execute(ctx, DeleteContributionInput{
			GoalID: goal.ID, UserID: owner, ContributionID: uuid.New(),
		})
		requireGoalCode(t, err, domainerror.ErrCodeContributionNotFound)
	})

	t.Run("goal owned by someone else", func(t *testing.T) {
		_, err := NewAddContributionUseCase(repo).Execute(ctx, AddContributionInput{
			GoalID: goal.ID, UserID: uuid.New(), Contribution: ContributionInput{Amount: dec(5)},
		})
		requireGoalCode(t, err, domainerror.ErrCodeGoalNotFound)
	})

	t.Run("negative update is rejected before touching the store", func(t *testing.T) {
		saves := repo.saves
		negative := dec(-5)
		_, err := NewUpdateContributionUseCase(repo).Execute(ctx, UpdateContributionInput{
			GoalID: goal.ID, UserID: owner, ContributionID: goal.Contributions[0].ID, Amount: &negative,
		})
		requireGoalCode(t, err, domainerror.ErrCodeInvalidContributionAmount)
		assert.Equal(t, saves, repo.saves)
	})

	t.Run("sub-cent amounts are rejected on add and update", func(t *testing.T) {
		saves := repo.saves
		subCent := decimal.RequireFromString("12.345")
		_, err := NewAddContributionUseCase(repo).Execute(ctx, AddContributionInput{
			GoalID: goal.ID, UserID: owner, Contribution: ContributionInput{Amount: subCent},
		})
		requireGoalCode(t, err, domainerror.ErrCodeInvalidContributionAmount)

		_, err = NewUpdateContributionUseCase(repo).Execute(ctx, UpdateContributionInput{
			GoalID: goal.ID, UserID: owner, ContributionID: goal.Contributions[0].ID, Amount: &subCent,
		})
		requireGoalCode(t, err, domainerror.ErrCodeInvalidContributionAmount)
		assert.Equal(t, saves, repo.saves)
	})

	t.Run("trailing zeros are not sub-cent", func(t *testing.T) {
		added, err := NewAddContributionUseCase(repo).Execute(ctx, AddContributionInput{
			GoalID: goal.ID, UserID: owner, Contribution: ContributionInput{Amount: decimal.RequireFromString("10.500")},
		})
		require.NoError(t, err)
		assert.True(t, added.Goal.CurrentAmount.Equal(decimal.RequireFromString("110.5")))
	})
}

func TestUpdateGoalUseCase_ReplacesContributions(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryGoalRepository()
	userID := uuid.New()
	goal := createGoal(t, repo, userID, 200, 300)

	title := "House"
	replacement := []ContributionInput{{Amount: dec(50)}, {Amount: dec(25)}}
	out, err := NewUpdateGoalUseCase(repo).Execute(ctx, UpdateGoalInput{
		GoalID: goal.ID, UserID: userID, Title: &title, Contributions: &replacement,
	})
	require.NoError(t, err)
	assert.Equal(t, "House", out.Goal.Title)
	assert.True(t, out.Goal.CurrentAmount.Equal(dec(75)))
}

func TestAddContributionUseCase_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryGoalRepository()
	userID := uuid.New()
	goal := createGoal(t, repo, userID)

	uc := NewAddContributionUseCase(repo)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(ctx, AddContributionInput{
				GoalID: goal.ID, UserID: userID, Contribution: ContributionInput{Amount: dec(10)},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repo.FindByID(ctx, userID, goal.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Contributions, 50)
	assert.True(t, stored.CurrentAmount.Equal(dec(500)))
}

func TestSummarizeGoals(t *testing.T) {
	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	user := uuid.New()

	active := entity.NewGoal(user, "a", dec(1000), time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		[]entity.Contribution{entity.NewContribution(dec(200), now, ""), entity.NewContribution(dec(300), now, "")})
	completed := entity.NewGoal(user, "b", dec(100), time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		[]entity.Contribution{entity.NewContribution(dec(100), now, "")})
	expired := entity.NewGoal(user, "c", dec(400), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nil)

	out := SummarizeGoals([]*entity.Goal{active, completed, expired}, now)

	assert.Equal(t, 3, out.TotalGoals)
	assert.Equal(t, 1, out.ActiveGoals)
	assert.Equal(t, 1, out.CompletedGoals)
	assert.True(t, out.TotalTargetAmount.Equal(dec(1500)))
	assert.True(t, out.TotalCurrentAmount.Equal(dec(600)))
	assert.InDelta(t, 0.5, out.AverageProgress, 1e-9)

	require.Len(t, out.GoalsByMonth, 2)
	assert.Equal(t, "2026-01", out.GoalsByMonth[0].Month)
	assert.Equal(t, "2026-08", out.GoalsByMonth[1].Month)
	assert.Equal(t, 2, out.GoalsByMonth[1].Count)
	assert.True(t, out.GoalsByMonth[1].TargetAmount.Equal(dec(1100)))
}

func TestSummarizeGoals_Empty(t *testing.T) {
	out := SummarizeGoals(nil, time.Now())
	assert.Zero(t, out.TotalGoals)
	assert.Zero(t, out.AverageProgress)
	assert.Empty(t, out.GoalsByMonth)
	assert.True(t, out.TotalCurrentAmount.IsZero())
}
