package services

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/models"
)

const (
	recentTransactionLimit = 10
	topExpenseCategories   = 5
	topProductCount        = 5
)

// saleDescriptionPattern extracts product info from billing-derived profit
// descriptions ("Sale of 3 Widget @ 15.00 each ..."). Profit transactions
// whose description does not match this shape are silently excluded.
var saleDescriptionPattern = regexp.MustCompile(`Sale of (\d+) (.+?) @`)

// CategoryTotal is an expense category with its summed amount.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// ProductSales accumulates units sold and revenue for one product name.
type ProductSales struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ShopContext is the bounded summary of a user's transactions assembled
// before calling the LLM. It is rebuilt per chatbot request and never stored.
type ShopContext struct {
	RecentTransactions []models.Transaction `json:"recentTransactions"`
	ExpenseSummary     []CategoryTotal      `json:"expenseSummary"`
	TopProducts        []ProductSales       `json:"topProducts"`
	TotalStats         Summary              `json:"totalStats"`
}

// BuildShopContext derives the chatbot context from a user's full transaction
// list. RecentTransactions takes the first N in storage-returned order (not
// re-sorted by timestamp); TotalStats covers the whole list, not a subset.
func BuildShopContext(transactions []models.Transaction) ShopContext {
	recent := transactions
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}

	return ShopContext{
		RecentTransactions: recent,
		ExpenseSummary:     summarizeExpenses(transactions),
		TopProducts:        extractTopProducts(transactions),
		TotalStats:         Summarize(transactions),
	}
}

// summarizeExpenses groups expense transactions by category, sums the
// amounts, and returns the top categories by total descending.
func summarizeExpenses(transactions []models.Transaction) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	var order []string

	for _, t := range transactions {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	result := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		result = append(result, CategoryTotal{Category: category, Total: totals[category]})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})

	if len(result) > topExpenseCategories {
		result = result[:topExpenseCategories]
	}
	return result
}

// extractTopProducts parses product names and quantities out of profit
// transaction descriptions and ranks them by accumulated revenue. Revenue is
// the transaction amount, not unit price times quantity.
func extractTopProducts(transactions []models.Transaction) []ProductSales {
	byName := make(map[string]*ProductSales)
	var order []string

	for _, t := range transactions {
		if t.Type != models.TransactionTypeProfit {
			continue
		}
		matches := saleDescriptionPattern.FindStringSubmatch(t.Description)
		if matches == nil {
			continue
		}

		quantity, err := strconv.Atoi(matches[1])
		if err != nil {
			continue
		}
		name := matches[2]

		if existing, ok := byName[name]; ok {
			existing.Quantity += quantity
			existing.Revenue = existing.Revenue.Add(t.Amount)
		} else {
			byName[name] = &ProductSales{Name: name, Quantity: quantity, Revenue: t.Amount}
			order = append(order, name)
		}
	}

	result := make([]ProductSales, 0, len(order))
	for _, name := range order {
		result = append(result, *byName[name])
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Revenue.GreaterThan(result[j].Revenue)
	})

	if len(result) > topProductCount {
		result = result[:topProductCount]
	}
	return result
}
