package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "piggybank/internal/errors"
	"piggybank/internal/logger"
	"piggybank/internal/models"
)

// balanceService recomputes goal balances from scratch.
type balanceService struct{}

// NewBalanceService creates a new BalanceRecalculator.
func NewBalanceService() BalanceRecalculator {
	return &balanceService{}
}

// Recalculate sets the goal's current_balance to the sum of its deposits minus
// the sum of its withdrawals. It runs on the caller's tx so the update commits
// together with the mutation that triggered it. A missing goal is a no-op.
func (s *balanceService) Recalculate(tx *gorm.DB, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	if err := tx.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Get().Debugw("skipping recalculation of missing goal", "goal_id", goalID)
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rows []models.Transaction
	if err := tx.Select("transaction_type", "amount").
		Where("goal_id = ?", goalID).
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	balance := SignedTotal(rows)
	if err := tx.Model(&goal).Update("current_balance", balance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	goal.CurrentBalance = balance

	logger.Get().Debugw("recalculated goal balance",
		"goal_id", goalID,
		"transactions", len(rows),
		"balance", balance,
	)
	return &goal, nil
}

// SignedTotal returns deposits minus withdrawals. Sums are accumulated as
// decimals so that many small amounts do not drift.
func SignedTotal(transactions []models.Transaction) float64 {
	deposits := decimal.Zero
	withdrawals := decimal.Zero
	for i := range transactions {
		amount := decimal.NewFromFloat(transactions[i].Amount)
		switch transactions[i].TransactionType {
		case models.TransactionTypeDeposit:
			deposits = deposits.Add(amount)
		case models.TransactionTypeWithdrawal:
			withdrawals = withdrawals.Add(amount)
		}
	}
	return deposits.Sub(withdrawals).InexactFloat64()
}
