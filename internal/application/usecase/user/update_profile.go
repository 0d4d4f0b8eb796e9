// Package user contains profile use cases.
package user

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
	"github.com/finance-tracker/personal-finance/internal/application/usecase/auth"
	"github.com/finance-tracker/personal-finance/internal/domain/entity"
	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
)

// MaxNameLength bounds first and last names.
const MaxNameLength = 50

// UpdateProfileInput represents a partial profile update. Empty fields are
// left unchanged.
type UpdateProfileInput struct {
	UserID    uuid.UUID
	FirstName string
	LastName  string
	BirthDate string
	Now       time.Time
}

// UpdateProfileOutput represents the updated profile.
type UpdateProfileOutput struct {
	User *entity.User
}

// UpdateProfileUseCase updates the caller's profile.
type UpdateProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(userRepo adapter.UserRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
	}
}

// Execute applies the update.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	u, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.FirstName); name != "" {
		if err := validateName(name); err != nil {
			return nil, err
		}
		u.FirstName = name
	}
	if name := strings.TrimSpace(input.LastName); name != "" {
		if err := validateName(name); err != nil {
			return nil, err
		}
		u.LastName = name
	}
	if input.BirthDate != "" {
		now := input.Now
		if now.IsZero() {
			now = time.Now().UTC()
		}
		birthDate, err := auth.ValidateBirthDate(input.BirthDate, now)
		if err != nil {
			return nil, err
		}
		u.BirthDate = birthDate
	}
	u.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &UpdateProfileOutput{User: u}, nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(name) > MaxNameLength {
		return domainerror.NewUserError(
			domainerror.ErrCodeInvalidProfile,
			fmt.Sprintf("names must not exceed %d characters", MaxNameLength),
			domainerror.ErrInvalidProfile,
		)
	}
	return nil
}
