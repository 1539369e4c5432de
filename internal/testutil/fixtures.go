package testutil

import (
	"testing"

	"piggybank/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// CreateTestGoal creates an active goal with a random title and target.
func CreateTestGoal(t *testing.T, db *gorm.DB) *models.Goal {
	t.Helper()
	return CreateTestGoalWithTarget(t, db, gofakeit.Price(1000, 100000))
}

// CreateTestGoalWithTarget creates an active goal with the given target amount.
func CreateTestGoalWithTarget(t *testing.T, db *gorm.DB, target float64) *models.Goal {
	t.Helper()

	description := gofakeit.Sentence(6)
	goal := &models.Goal{
		Title:        gofakeit.ProductName(),
		TargetAmount: target,
		Description:  &description,
		IsActive:     true,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestTransaction inserts a transaction row directly, without touching
// the goal's balance.
func CreateTestTransaction(t *testing.T, db *gorm.DB, goalID uint, txType models.TransactionType, amount float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		GoalID:          goalID,
		Amount:          amount,
		TransactionType: txType,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestSettings stores a settings row with the given theme and locale,
// bypassing the clamp applied by the service.
func CreateTestSettings(t *testing.T, db *gorm.DB, theme, currency, language string) *models.Settings {
	t.Helper()

	settings := models.DefaultSettings()
	settings.Theme = theme
	settings.Currency = currency
	settings.Language = language
	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("failed to create test settings: %v", err)
	}
	return settings
}

// ReloadGoal reads the goal back from the database.
func ReloadGoal(t *testing.T, db *gorm.DB, id uint) *models.Goal {
	t.Helper()

	var goal models.Goal
	if err := db.First(&goal, id).Error; err != nil {
		t.Fatalf("failed to reload goal %d: %v", id, err)
	}
	return &goal
}
