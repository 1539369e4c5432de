package services

import (
	"time"

	"gorm.io/gorm"

	"piggybank/internal/models"
	"piggybank/internal/pagination"
	"piggybank/internal/patch"
)

// BalanceRecalculator recomputes a goal's derived balance from its transactions.
type BalanceRecalculator interface {
	// Recalculate returns (nil, nil) when the goal does not exist.
	Recalculate(tx *gorm.DB, goalID uint) (*models.Goal, error)
}

// GoalInput holds the fields accepted when creating a goal.
type GoalInput struct {
	Title        string
	TargetAmount float64
	TargetDate   *time.Time
	Description  *string
	ImageURL     *string
}

// GoalPatch holds a partial goal update. Absent fields are left untouched;
// null clears the optional columns.
type GoalPatch struct {
	Title        patch.Field[string]
	TargetAmount patch.Field[float64]
	TargetDate   patch.Field[time.Time]
	Description  patch.Field[string]
	ImageURL     patch.Field[string]
	IsActive     patch.Field[bool]
}

// GoalProgress summarizes how far a goal's balance is from its target.
type GoalProgress struct {
	GoalID         uint    `json:"goal_id"`
	TargetAmount   float64 `json:"target_amount"`
	CurrentBalance float64 `json:"current_balance"`
	Remaining      float64 `json:"remaining"`
	Percentage     float64 `json:"percentage"`
	Achieved       bool    `json:"achieved"`
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	ListGoals(page pagination.PageRequest) ([]models.Goal, error)
	GetGoal(id uint) (*models.Goal, error)
	CreateGoal(input GoalInput) (*models.Goal, error)
	UpdateGoal(id uint, p GoalPatch) (*models.Goal, error)
	DeleteGoal(id uint) error
	ListGoalTransactions(id uint, page pagination.PageRequest) ([]models.Transaction, error)
	GetGoalProgress(id uint) (*GoalProgress, error)
	ResetGoalProgress(id uint) (*models.Goal, error)
}

// TransactionInput holds the fields accepted when creating a transaction.
type TransactionInput struct {
	GoalID          uint
	Amount          float64
	TransactionType models.TransactionType
	Description     *string
}

// TransactionPatch holds a partial transaction update.
type TransactionPatch struct {
	GoalID          patch.Field[uint]
	Amount          patch.Field[float64]
	TransactionType patch.Field[models.TransactionType]
	Description     patch.Field[string]
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	GoalID *uint
	Type   *models.TransactionType
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	ListTransactions(page pagination.PageRequest, filter TransactionFilter) ([]models.Transaction, error)
	GetTransaction(id uint) (*models.Transaction, error)
	CreateTransaction(input TransactionInput) (*models.Transaction, error)
	UpdateTransaction(id uint, p TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(id uint) error
}

// SettingsPatch holds a settings update. Currency and Language are accepted so
// that callers can pass whatever the client sent; they are never applied.
type SettingsPatch struct {
	Theme    patch.Field[string]
	Currency patch.Field[string]
	Language patch.Field[string]
}

// SettingsServicer defines the contract for the global settings record.
type SettingsServicer interface {
	GetSettings() (*models.Settings, error)
	UpdateSettings(p SettingsPatch) (*models.Settings, error)
	EnsureDefaults() error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
