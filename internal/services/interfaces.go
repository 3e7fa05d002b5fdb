package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, name, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
}

// TransactionUpdateFields carries the replacement values for an update.
// Type, Amount, and Category are always applied; Description and Timestamp
// keep their existing values when nil.
type TransactionUpdateFields struct {
	Type        models.TransactionType
	Amount      decimal.Decimal
	Category    string
	Description *string
	Timestamp   *time.Time
}

// TransactionServicer defines the contract for the transaction store.
// GetTransactionByID performs no ownership check; mutating operations verify
// the caller owns the record before touching it.
type TransactionServicer interface {
	CreateTransaction(userID string, txType models.TransactionType, amount decimal.Decimal, category, description string, timestamp time.Time) (*models.Transaction, error)
	GetTransactionByID(transactionID string) (*models.Transaction, error)
	ListUserTransactions(userID string, filter TransactionFilter) ([]models.Transaction, error)
	UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// StatsServicer derives summaries from a user's transaction set.
type StatsServicer interface {
	GetSummary(userID string, filter TransactionFilter) (*Summary, error)
}

// SaleRecord holds the pair of transactions derived from one recorded sale.
type SaleRecord struct {
	Expense *models.Transaction `json:"expense"`
	Profit  *models.Transaction `json:"profit"`
}

// BillingServicer turns one sale into a paired expense+profit transaction.
type BillingServicer interface {
	RecordSale(userID, productName string, purchasePrice, sellingPrice decimal.Decimal, quantity int) (*SaleRecord, error)
}

// InsightServicer is the boundary to the external LLM. GetInsight returns an
// error only when the user's data cannot be loaded; upstream LLM failures are
// normalized into canned reply strings with a nil error.
type InsightServicer interface {
	GetInsight(ctx context.Context, userID, question string) (string, error)
}
