// Package model defines database models for persistence layer.
package model

// All returns every model in dependency order, for AutoMigrate in tests.
func All() []any {
	return []any{
		&UserModel{},
		&CategoryModel{},
		&TransactionModel{},
		&GoalModel{},
		&ContributionModel{},
		&MonthlyReviewModel{},
		&EmailQueueModel{},
	}
}
