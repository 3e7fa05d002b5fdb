package services

import (
	"github.com/shopspring/decimal"

	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/models"
)

// Summary holds derived totals over a transaction set. It is never persisted;
// every read recomputes it from the live transactions.
type Summary struct {
	TotalProfit      decimal.Decimal `json:"totalProfit"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	NetBalance       decimal.Decimal `json:"netBalance"`
	TransactionCount int             `json:"transactionCount"`
}

// Summarize derives totals from a transaction list in a single pass.
// An empty list yields the all-zero summary.
func Summarize(transactions []models.Transaction) Summary {
	totalProfit := decimal.Zero
	totalExpense := decimal.Zero

	for _, t := range transactions {
		switch t.Type {
		case models.TransactionTypeProfit:
			totalProfit = totalProfit.Add(t.Amount)
		case models.TransactionTypeExpense:
			totalExpense = totalExpense.Add(t.Amount)
		}
	}

	return Summary{
		TotalProfit:      totalProfit,
		TotalExpense:     totalExpense,
		NetBalance:       totalProfit.Sub(totalExpense),
		TransactionCount: len(transactions),
	}
}

// statsService derives summaries from stored transactions.
type statsService struct {
	transactions TransactionServicer
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(transactions TransactionServicer) StatsServicer {
	return &statsService{transactions: transactions}
}

// GetSummary loads the user's (optionally date-filtered) transactions and
// reduces them to a Summary.
func (s *statsService) GetSummary(userID string, filter TransactionFilter) (*Summary, error) {
	transactions, err := s.transactions.ListUserTransactions(userID, filter)
	if err != nil {
		return nil, err
	}

	summary := Summarize(transactions)
	return &summary, nil
}
