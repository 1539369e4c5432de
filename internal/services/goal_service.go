package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "piggybank/internal/errors"
	"piggybank/internal/models"
	"piggybank/internal/pagination"
)

// goalService handles goal-related business logic.
type goalService struct {
	db      *gorm.DB
	balance BalanceRecalculator
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, balance BalanceRecalculator) GoalServicer {
	return &goalService{db: db, balance: balance}
}

// ListGoals returns a page of goals in insertion order.
func (s *goalService) ListGoals(page pagination.PageRequest) ([]models.Goal, error) {
	goals := []models.Goal{}
	if err := s.db.Scopes(pagination.Paginate(page)).
		Order("id ASC").
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// GetGoal retrieves a goal by ID
func (s *goalService) GetGoal(id uint) (*models.Goal, error) {
	return findGoal(s.db, id)
}

// CreateGoal creates a new goal with a zero balance
func (s *goalService) CreateGoal(input GoalInput) (*models.Goal, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title is required")
	}
	if input.TargetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target_amount must be greater than zero")
	}

	goal := &models.Goal{
		Title:          input.Title,
		TargetAmount:   input.TargetAmount,
		CurrentBalance: 0,
		TargetDate:     input.TargetDate,
		Description:    input.Description,
		ImageURL:       input.ImageURL,
		IsActive:       true,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// UpdateGoal applies the fields present in p. The balance is not patchable.
func (s *goalService) UpdateGoal(id uint, p GoalPatch) (*models.Goal, error) {
	goal, err := s.GetGoal(id)
	if err != nil {
		return nil, err
	}

	columns, err := applyGoalPatch(goal, p)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return goal, nil
	}

	if err := s.db.Model(goal).Select(columns).Updates(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return findGoal(s.db, id)
}

// applyGoalPatch merges p into goal and returns the columns that changed.
func applyGoalPatch(goal *models.Goal, p GoalPatch) ([]string, error) {
	var columns []string

	if p.Title.Set {
		if p.Title.Null || strings.TrimSpace(p.Title.Value) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "title cannot be empty")
		}
		goal.Title = p.Title.Value
		columns = append(columns, "title")
	}
	if p.TargetAmount.Set {
		if p.TargetAmount.Null || p.TargetAmount.Value <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target_amount must be greater than zero")
		}
		goal.TargetAmount = p.TargetAmount.Value
		columns = append(columns, "target_amount")
	}
	if p.TargetDate.Set {
		goal.TargetDate = p.TargetDate.Ptr()
		columns = append(columns, "target_date")
	}
	if p.Description.Set {
		goal.Description = p.Description.Ptr()
		columns = append(columns, "description")
	}
	if p.ImageURL.Set {
		goal.ImageURL = p.ImageURL.Ptr()
		columns = append(columns, "image_url")
	}
	if p.IsActive.Set {
		if p.IsActive.Null {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "is_active cannot be null")
		}
		goal.IsActive = p.IsActive.Value
		columns = append(columns, "is_active")
	}

	return columns, nil
}

// DeleteGoal deletes a goal together with all of its transactions
func (s *goalService) DeleteGoal(id uint) error {
	goal, err := s.GetGoal(id)
	if err != nil {
		return err
	}

	if err := s.db.Select("Transactions").Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListGoalTransactions returns a page of the goal's transactions, newest first.
func (s *goalService) ListGoalTransactions(id uint, page pagination.PageRequest) ([]models.Transaction, error) {
	if _, err := s.GetGoal(id); err != nil {
		return nil, err
	}

	transactions := []models.Transaction{}
	if err := s.db.Where("goal_id = ?", id).
		Scopes(pagination.Paginate(page)).
		Order("created_at DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetGoalProgress reports the goal's balance against its target.
func (s *goalService) GetGoalProgress(id uint) (*GoalProgress, error) {
	goal, err := s.GetGoal(id)
	if err != nil {
		return nil, err
	}
	return progressOf(goal), nil
}

func progressOf(goal *models.Goal) *GoalProgress {
	target := decimal.NewFromFloat(goal.TargetAmount)
	balance := decimal.NewFromFloat(goal.CurrentBalance)

	remaining := target.Sub(balance)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	percentage := decimal.Zero
	if target.IsPositive() && balance.IsPositive() {
		percentage = balance.Div(target).Mul(decimal.NewFromInt(100)).Round(2)
		if percentage.GreaterThan(decimal.NewFromInt(100)) {
			percentage = decimal.NewFromInt(100)
		}
	}

	return &GoalProgress{
		GoalID:         goal.ID,
		TargetAmount:   goal.TargetAmount,
		CurrentBalance: goal.CurrentBalance,
		Remaining:      remaining.InexactFloat64(),
		Percentage:     percentage.InexactFloat64(),
		Achieved:       balance.GreaterThanOrEqual(target),
	}
}

// ResetGoalProgress removes every transaction of the goal and recalculates
// its balance, which brings it back to zero.
func (s *goalService) ResetGoalProgress(id uint) (*models.Goal, error) {
	if _, err := s.GetGoal(id); err != nil {
		return nil, err
	}

	var goal *models.Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		var recalcErr error
		goal, recalcErr = s.balance.Recalculate(tx, id)
		return recalcErr
	})
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, apperrors.ErrGoalNotFound
	}
	return goal, nil
}

// findGoal loads a goal or returns ErrGoalNotFound.
func findGoal(db *gorm.DB, id uint) (*models.Goal, error) {
	var goal models.Goal
	if err := db.First(&goal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}
