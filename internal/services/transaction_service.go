package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "piggybank/internal/errors"
	"piggybank/internal/models"
	"piggybank/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db      *gorm.DB
	balance BalanceRecalculator
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, balance BalanceRecalculator) TransactionServicer {
	return &transactionService{
		db:      db,
		balance: balance,
	}
}

// ListTransactions returns a page of transactions, newest first.
func (s *transactionService) ListTransactions(page pagination.PageRequest, filter TransactionFilter) ([]models.Transaction, error) {
	q := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)

	transactions := []models.Transaction{}
	if err := q.Scopes(pagination.Paginate(page)).
		Order("created_at DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.GoalID != nil {
		q = q.Where("goal_id = ?", *f.GoalID)
	}
	if f.Type != nil {
		q = q.Where("transaction_type = ?", *f.Type)
	}
	return q
}

// GetTransaction retrieves a transaction by ID
func (s *transactionService) GetTransaction(id uint) (*models.Transaction, error) {
	return findTransaction(s.db, id)
}

// CreateTransaction records a deposit or withdrawal and recalculates the goal balance
func (s *transactionService) CreateTransaction(input TransactionInput) (*models.Transaction, error) {
	if _, err := findGoal(s.db, input.GoalID); err != nil {
		return nil, err
	}
	if !input.TransactionType.IsValid() {
		return nil, apperrors.ErrInvalidTransactionType
	}

	transaction := &models.Transaction{
		GoalID:          input.GoalID,
		Amount:          input.Amount,
		TransactionType: input.TransactionType,
		Description:     input.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		_, err := s.balance.Recalculate(tx, transaction.GoalID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// UpdateTransaction applies the fields present in p and recalculates the
// balance of the goal it belonged to, then of the goal it was moved to.
func (s *transactionService) UpdateTransaction(id uint, p TransactionPatch) (*models.Transaction, error) {
	transaction, err := s.GetTransaction(id)
	if err != nil {
		return nil, err
	}

	oldGoalID := transaction.GoalID

	columns, err := applyTransactionPatch(transaction, p)
	if err != nil {
		return nil, err
	}

	newGoalID := transaction.GoalID
	if newGoalID != oldGoalID {
		if _, err := findGoal(s.db, newGoalID); err != nil {
			return nil, err
		}
	}

	if len(columns) == 0 {
		return transaction, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(transaction).Select(columns).Updates(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if _, err := s.balance.Recalculate(tx, oldGoalID); err != nil {
			return err
		}
		if newGoalID != oldGoalID {
			if _, err := s.balance.Recalculate(tx, newGoalID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return findTransaction(s.db, id)
}

// applyTransactionPatch merges p into t and returns the columns that changed.
// Validation happens here, before anything is written.
func applyTransactionPatch(t *models.Transaction, p TransactionPatch) ([]string, error) {
	var columns []string

	if p.TransactionType.Set {
		if p.TransactionType.Null || !p.TransactionType.Value.IsValid() {
			return nil, apperrors.ErrInvalidTransactionType
		}
		t.TransactionType = p.TransactionType.Value
		columns = append(columns, "transaction_type")
	}
	if p.GoalID.Set {
		if p.GoalID.Null || p.GoalID.Value == 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal_id cannot be empty")
		}
		t.GoalID = p.GoalID.Value
		columns = append(columns, "goal_id")
	}
	if p.Amount.Set {
		if p.Amount.Null {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount cannot be null")
		}
		t.Amount = p.Amount.Value
		columns = append(columns, "amount")
	}
	if p.Description.Set {
		t.Description = p.Description.Ptr()
		columns = append(columns, "description")
	}

	return columns, nil
}

// DeleteTransaction deletes a transaction and recalculates its goal's balance
func (s *transactionService) DeleteTransaction(id uint) error {
	transaction, err := s.GetTransaction(id)
	if err != nil {
		return err
	}

	goalID := transaction.GoalID

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		_, err := s.balance.Recalculate(tx, goalID)
		return err
	})
}

// findTransaction loads a transaction or returns ErrTransactionNotFound.
func findTransaction(db *gorm.DB, id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}
