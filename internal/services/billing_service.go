package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/pranjalsingh001/ShopOwnerDashboard/internal/errors"
	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/models"
)

// billingService derives paired transactions from recorded sales.
type billingService struct {
	db *gorm.DB
}

// NewBillingService creates a new BillingServicer.
func NewBillingService(db *gorm.DB) BillingServicer {
	return &billingService{db: db}
}

// RecordSale turns one sale into exactly two transactions: an Inventory
// expense for the purchase cost and a Sales profit for the sale total, both
// sharing one timestamp. The writes run inside a single database transaction
// so a failure leaves no orphaned half of the pair.
//
// The profit description embeds "Sale of <quantity> <product> @" exactly as
// the chatbot context builder expects to parse it back out.
func (s *billingService) RecordSale(
	userID string,
	productName string,
	purchasePrice decimal.Decimal,
	sellingPrice decimal.Decimal,
	quantity int,
) (*SaleRecord, error) {
	if productName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product name is required")
	}
	if !purchasePrice.IsPositive() || !sellingPrice.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "purchase and selling prices must be greater than zero")
	}
	if quantity < 1 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be at least 1")
	}

	qty := decimal.NewFromInt(int64(quantity))
	totalCost := purchasePrice.Mul(qty).Round(2)
	totalSale := sellingPrice.Mul(qty).Round(2)
	totalProfit := totalSale.Sub(totalCost)

	now := time.Now()

	expense := &models.Transaction{
		UserID:   userID,
		Type:     models.TransactionTypeExpense,
		Amount:   totalCost,
		Category: models.CategoryInventory,
		Description: fmt.Sprintf("Purchase of %d %s @ %s each",
			quantity, productName, purchasePrice.StringFixed(2)),
		Timestamp: now,
	}
	profit := &models.Transaction{
		UserID:   userID,
		Type:     models.TransactionTypeProfit,
		Amount:   totalSale,
		Category: models.CategorySales,
		Description: fmt.Sprintf("Sale of %d %s @ %s each (profit: %s)",
			quantity, productName, sellingPrice.StringFixed(2), totalProfit.StringFixed(2)),
		Timestamp: now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Create(profit).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SaleRecord{Expense: expense, Profit: profit}, nil
}
