package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeProfit  TransactionType = "profit"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether the type is one of the supported ledger entry types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeProfit || t == TransactionTypeExpense
}

// Transaction is a single profit or expense ledger entry owned by one user.
// Amounts are positive decimals with two-decimal precision.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category    string          `gorm:"not null" json:"category"`
	Description string          `json:"description"`
	Timestamp   time.Time       `gorm:"not null" json:"timestamp"`
}

// CategorySuggestions lists the conventional categories offered per
// transaction type. Category remains free text; these are suggestions only.
var CategorySuggestions = map[TransactionType][]string{
	TransactionTypeProfit:  {"Sales", "Investment", "Refund", "Other"},
	TransactionTypeExpense: {"Rent", "Utilities", "Inventory", "Salary", "Food", "Marketing", "Miscellaneous"},
}

// Categories written by billing derivation.
const (
	CategoryInventory = "Inventory"
	CategorySales     = "Sales"
)
