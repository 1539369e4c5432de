package models

// TransactionType represents the direction of money for a goal
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

// IsValid reports whether t is one of the supported transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal:
		return true
	}
	return false
}

// Transaction is a single deposit or withdrawal recorded against a goal
type Transaction struct {
	Base
	GoalID          uint            `gorm:"not null;index" json:"goal_id"`
	Amount          float64         `gorm:"not null" json:"amount"`
	TransactionType TransactionType `gorm:"not null" json:"transaction_type"`
	Description     *string         `json:"description"`

	// Relationships
	Goal *Goal `gorm:"foreignKey:GoalID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
