// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contribution is a single deposit towards a savings goal.
type Contribution struct {
	ID     uuid.UUID
	Amount decimal.Decimal
	Date   time.Time
	Note   string
}

// NewContribution creates a new Contribution with a fresh identifier.
func NewContribution(amount decimal.Decimal, date time.Time, note string) Contribution {
	return Contribution{
		ID:     uuid.New(),
		Amount: amount,
		Date:   date,
		Note:   note,
	}
}

// Goal represents a savings goal. CurrentAmount is derived from Contributions
// and must be refreshed through Recompute after every change to the list.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      time.Time
	Contributions []Contribution
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGoal creates a new Goal entity with its current amount already derived.
func NewGoal(userID uuid.UUID, title string, targetAmount decimal.Decimal, deadline time.Time, contributions []Contribution) *Goal {
	now := time.Now().UTC()

	goal := &Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         title,
		TargetAmount:  targetAmount,
		Deadline:      deadline,
		Contributions: contributions,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	goal.Recompute()

	return goal
}

// RecomputeCurrentAmount returns the exact sum of the contribution amounts.
func RecomputeCurrentAmount(contributions []Contribution) decimal.Decimal {
	total := decimal.Zero
	for _, c := range contributions {
		total = total.Add(c.Amount)
	}
	return total
}

// Recompute refreshes CurrentAmount from the contribution list.
func (g *Goal) Recompute() {
	g.CurrentAmount = RecomputeCurrentAmount(g.Contributions)
}

// AddContribution appends a contribution and recomputes the current amount.
func (g *Goal) AddContribution(c Contribution) {
	g.Contributions = append(g.Contributions, c)
	g.Recompute()
	g.UpdatedAt = time.Now().UTC()
}

// UpdateContribution changes a contribution in place. It returns false when
// no contribution with the given id exists.
func (g *Goal) UpdateContribution(id uuid.UUID, amount *decimal.Decimal, date *time.Time, note *string) bool {
	for i := range g.Contributions {
		if g.Contributions[i].ID != id {
			continue
		}
		if amount != nil {
			g.Contributions[i].Amount = *amount
		}
		if date != nil {
			g.Contributions[i].Date = *date
		}
		if note != nil {
			g.Contributions[i].Note = *note
		}
		g.Recompute()
		g.UpdatedAt = time.Now().UTC()
		return true
	}
	return false
}

// RemoveContribution deletes a contribution. It returns false when no
// contribution with the given id exists.
func (g *Goal) RemoveContribution(id uuid.UUID) bool {
	for i := range g.Contributions {
		if g.Contributions[i].ID != id {
			continue
		}
		g.Contributions = append(g.Contributions[:i], g.Contributions[i+1:]...)
		g.Recompute()
		g.UpdatedAt = time.Now().UTC()
		return true
	}
	return false
}

// ReplaceContributions swaps the whole contribution list.
func (g *Goal) ReplaceContributions(contributions []Contribution) {
	g.Contributions = contributions
	g.Recompute()
	g.UpdatedAt = time.Now().UTC()
}

// IsCompleted reports whether the goal has reached its target.
func (g *Goal) IsCompleted() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// IsActive reports whether the goal is still open: deadline in the future and
// target not reached.
func (g *Goal) IsActive(now time.Time) bool {
	return g.Deadline.After(now) && g.CurrentAmount.LessThan(g.TargetAmount)
}

// Progress returns currentAmount/targetAmount, or 0 for a zero target.
func (g *Goal) Progress() float64 {
	if g.TargetAmount.IsZero() {
		return 0
	}
	ratio, _ := g.CurrentAmount.Div(g.TargetAmount).Float64()
	return ratio
}

// ContributedBetween sums contributions dated within [start, end].
func (g *Goal) ContributedBetween(start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, c := range g.Contributions {
		if c.Date.Before(start) || c.Date.After(end) {
			continue
		}
		total = total.Add(c.Amount)
	}
	return total
}

// AverageActiveProgress is the arithmetic mean of Progress over active goals.
// It returns 0 when no goal is active.
func AverageActiveProgress(goals []*Goal, now time.Time) float64 {
	var sum float64
	var active int
	for _, g := range goals {
		if !g.IsActive(now) {
			continue
		}
		sum += g.Progress()
		active++
	}
	if active == 0 {
		return 0
	}
	return sum / float64(active)
}
