package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestRecomputeCurrentAmount(t *testing.T) {
	t.Run("empty list sums to zero", func(t *testing.T) {
		assert.True(t, RecomputeCurrentAmount(nil).IsZero())
	})

	t.Run("sums every contribution exactly", func(t *testing.T) {
		got := RecomputeCurrentAmount([]Contribution{
			NewContribution(decimal.RequireFromString("0.10"), time.Now(), ""),
			NewContribution(decimal.RequireFromString("0.20"), time.Now(), ""),
		})
		assert.True(t, got.Equal(decimal.RequireFromString("0.30")), "got %s", got)
	})
}

func TestGoal_ContributionMutationsKeepInvariant(t *testing.T) {
	deadline := time.Now().Add(30 * 24 * time.Hour)
	first := NewContribution(amount(200), time.Now(), "first")
	second := NewContribution(amount(300), time.Now(), "")

	goal := NewGoal(uuid.New(), "Vacation", amount(1000), deadline, []Contribution{first, second})
	require.True(t, goal.CurrentAmount.Equal(amount(500)))

	assertInvariant := func(t *testing.T) {
		t.Helper()
		assert.True(t, goal.CurrentAmount.Equal(RecomputeCurrentAmount(goal.Contributions)),
			"current %s does not match contributions", goal.CurrentAmount)
	}

	t.Run("add", func(t *testing.T) {
		goal.AddContribution(NewContribution(amount(150), time.Now(), ""))
		assert.True(t, goal.CurrentAmount.Equal(amount(650)))
		assertInvariant(t)
	})

	t.Run("update amount in place", func(t *testing.T) {
		newAmount := amount(50)
		ok := goal.UpdateContribution(first.ID, &newAmount, nil, nil)
		require.True(t, ok)
		assert.True(t, goal.CurrentAmount.Equal(amount(500)))
		assertInvariant(t)
	})

	t.Run("update unknown contribution is reported", func(t *testing.T) {
		newAmount := amount(1)
		assert.False(t, goal.UpdateContribution(uuid.New(), &newAmount, nil, nil))
		assertInvariant(t)
	})

	t.Run("delete", func(t *testing.T) {
		require.True(t, goal.RemoveContribution(second.ID))
		assert.Len(t, goal.Contributions, 2)
		assert.True(t, goal.CurrentAmount.Equal(amount(200)))
		assertInvariant(t)
	})

	t.Run("delete unknown contribution is reported", func(t *testing.T) {
		assert.False(t, goal.RemoveContribution(second.ID))
	})

	t.Run("replace whole list", func(t *testing.T) {
		goal.ReplaceContributions([]Contribution{NewContribution(amount(999), time.Now(), "")})
		assert.True(t, goal.CurrentAmount.Equal(amount(999)))
		assertInvariant(t)
	})
}

func TestGoal_ActiveAndCompleted(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		deadline      time.Time
		contributions []int64
		wantActive    bool
		wantCompleted bool
	}{
		{"future deadline under target", now.AddDate(0, 1, 0), []int64{200, 300}, true, false},
		{"past deadline under target", now.AddDate(0, -1, 0), []int64{200, 300}, false, false},
		{"future deadline target reached", now.AddDate(0, 1, 0), []int64{600, 400}, false, true},
		{"past deadline over target", now.AddDate(0, -1, 0), []int64{1200}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var contributions []Contribution
			for _, v := range tt.contributions {
				contributions = append(contributions, NewContribution(amount(v), now, ""))
			}
			goal := NewGoal(uuid.New(), "Goal", amount(1000), tt.deadline, contributions)

			assert.Equal(t, tt.wantActive, goal.IsActive(now))
			assert.Equal(t, tt.wantCompleted, goal.IsCompleted())
		})
	}
}

func TestAverageActiveProgress(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 2, 0)

	t.Run("no active goals yields zero", func(t *testing.T) {
		done := NewGoal(uuid.New(), "done", amount(100), future, []Contribution{NewContribution(amount(100), now, "")})
		assert.Equal(t, 0.0, AverageActiveProgress([]*Goal{done}, now))
		assert.Equal(t, 0.0, AverageActiveProgress(nil, now))
	})

	t.Run("mean over active goals only", func(t *testing.T) {
		quarter := NewGoal(uuid.New(), "a", amount(100), future, []Contribution{NewContribution(amount(25), now, "")})
		half := NewGoal(uuid.New(), "b", amount(200), future, []Contribution{NewContribution(amount(100), now, "")})
		done := NewGoal(uuid.New(), "c", amount(100), future, []Contribution{NewContribution(amount(150), now, "")})

		assert.InDelta(t, 0.375, AverageActiveProgress([]*Goal{quarter, half, done}, now), 1e-9)
	})
}

func TestGoal_ContributedBetween(t *testing.T) {
	march := MonthPeriod(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	goal := NewGoal(uuid.New(), "g", amount(1000), march.End.AddDate(1, 0, 0), []Contribution{
		NewContribution(amount(10), time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC), ""),
		NewContribution(amount(20), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), ""),
		NewContribution(amount(30), time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC), ""),
		NewContribution(amount(40), time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), ""),
	})

	assert.True(t, goal.ContributedBetween(march.Start, march.End).Equal(amount(50)))
}
