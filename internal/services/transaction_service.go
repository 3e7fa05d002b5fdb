package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/pranjalsingh001/ShopOwnerDashboard/internal/errors"
	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/models"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// validateTransactionInput checks the invariants shared by create and update.
func validateTransactionInput(txType models.TransactionType, amount decimal.Decimal, category string) error {
	if !txType.Valid() {
		return apperrors.ErrInvalidTransactionType
	}
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if category == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	return nil
}

// CreateTransaction creates a new transaction for a user
func (s *transactionService) CreateTransaction(
	userID string,
	txType models.TransactionType,
	amount decimal.Decimal,
	category string,
	description string,
	timestamp time.Time,
) (*models.Transaction, error) {
	if err := validateTransactionInput(txType, amount, category); err != nil {
		return nil, err
	}

	// Default timestamp to now if not provided
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount.Round(2),
		Category:    category,
		Description: description,
		Timestamp:   timestamp,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetTransactionByID retrieves a transaction by ID. Ownership is not checked
// here; callers decide whether the requesting user may act on the record.
func (s *transactionService) GetTransactionByID(transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// ListUserTransactions retrieves all transactions for a user in storage
// order, optionally filtered by date range and type. No ORDER BY is applied:
// "recent" elsewhere means first-in-storage-order.
func (s *transactionService) ListUserTransactions(userID string, filter TransactionFilter) ([]models.Transaction, error) {
	q := s.db.Where("user_id = ?", userID)
	if filter.FromDate != nil {
		q = q.Where("timestamp >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		q = q.Where("timestamp <= ?", *filter.ToDate)
	}
	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// UpdateTransaction replaces a transaction's fields after verifying the
// caller owns it. Description and Timestamp keep their stored values when
// not supplied. Concurrent updates are last-write-wins.
func (s *transactionService) UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.UserID != userID {
		return nil, apperrors.WithMessage(apperrors.ErrForbidden, "cannot modify another user's transaction")
	}

	if err := validateTransactionInput(fields.Type, fields.Amount, fields.Category); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"type":     fields.Type,
		"amount":   fields.Amount.Round(2),
		"category": fields.Category,
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Timestamp != nil {
		updates["timestamp"] = *fields.Timestamp
	}

	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction after verifying ownership.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return err
	}
	if transaction.UserID != userID {
		return apperrors.WithMessage(apperrors.ErrForbidden, "cannot delete another user's transaction")
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
