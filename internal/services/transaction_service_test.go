package services

import (
	"testing"
	"time"

	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/models"
	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		ts := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
		tx, err := svc.CreateTransaction(user.ID, models.TransactionTypeProfit, testutil.Amount(t, "150.50"), "Sales", "Morning sales", ts)
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected non-empty transaction ID")
		}
		if tx.UserID != user.ID {
			t.Errorf("expected user ID %s, got %s", user.ID, tx.UserID)
		}
		testutil.AssertDecimalEqual(t, "150.50", tx.Amount)
		if !tx.Timestamp.Equal(ts) {
			t.Errorf("expected timestamp %v, got %v", ts, tx.Timestamp)
		}
	})

	t.Run("zero_timestamp_defaults_to_now", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		before := time.Now()
		tx, err := svc.CreateTransaction(user.ID, models.TransactionTypeExpense, testutil.Amount(t, "20"), "Rent", "", time.Time{})
		testutil.AssertNoError(t, err)

		if tx.Timestamp.Before(before.Add(-time.Second)) {
			t.Errorf("expected timestamp near now, got %v", tx.Timestamp)
		}
	})

	t.Run("amount_rounded_to_cents", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.CreateTransaction(user.ID, models.TransactionTypeProfit, testutil.Amount(t, "10.456"), "Sales", "", time.Now())
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, "10.46", tx.Amount)
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(user.ID, models.TransactionTypeProfit, testutil.Amount(t, "0"), "Sales", "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(user.ID, models.TransactionTypeExpense, testutil.Amount(t, "-5"), "Rent", "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(user.ID, models.TransactionType("income"), testutil.Amount(t, "10"), "Sales", "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})

	t.Run("empty_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(user.ID, models.TransactionTypeProfit, testutil.Amount(t, "10"), "", "", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListUserTransactions(t *testing.T) {
	t.Run("only_own_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeProfit, testutil.Amount(t, "10"))
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, testutil.Amount(t, "5"))
		testutil.CreateTestTransaction(t, db, other.ID, models.TransactionTypeProfit, testutil.Amount(t, "99"))

		list, err := svc.ListUserTransactions(user.ID, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(list) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(list))
		}
		for _, tx := range list {
			if tx.UserID != user.ID {
				t.Errorf("leaked transaction from user %s", tx.UserID)
			}
		}
	})

	t.Run("empty_list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		list, err := svc.ListUserTransactions(user.ID, TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(list) != 0 {
			t.Errorf("expected empty list, got %d transactions", len(list))
		}
	})

	t.Run("filter_by_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeProfit, testutil.Amount(t, "10"))
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, testutil.Amount(t, "5"))

		expense := models.TransactionTypeExpense
		list, err := svc.ListUserTransactions(user.ID, TransactionFilter{Type: &expense})
		testutil.AssertNoError(t, err)
		if len(list) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(list))
		}
		if list[0].Type != models.TransactionTypeExpense {
			t.Errorf("expected expense, got %s", list[0].Type)
		}
	})

	t.Run("filter_by_date_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		old := &models.Transaction{
			UserID:    user.ID,
			Type:      models.TransactionTypeProfit,
			Amount:    testutil.Amount(t, "10"),
			Category:  "Sales",
			Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		if err := db.Create(old).Error; err != nil {
			t.Fatalf("failed to create fixture: %v", err)
		}
		recent := &models.Transaction{
			UserID:    user.ID,
			Type:      models.TransactionTypeProfit,
			Amount:    testutil.Amount(t, "20"),
			Category:  "Sales",
			Timestamp: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		}
		if err := db.Create(recent).Error; err != nil {
			t.Fatalf("failed to create fixture: %v", err)
		}

		from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		list, err := svc.ListUserTransactions(user.ID, TransactionFilter{FromDate: &from})
		testutil.AssertNoError(t, err)
		if len(list) != 1 {
			t.Fatalf("expected 1 transaction after %v, got %d", from, len(list))
		}
		testutil.AssertDecimalEqual(t, "20", list[0].Amount)
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeProfit, testutil.Amount(t, "10"))

		desc := "Updated description"
		updated, err := svc.UpdateTransaction(user.ID, tx.ID, TransactionUpdateFields{
			Type:        models.TransactionTypeExpense,
			Amount:      testutil.Amount(t, "25.50"),
			Category:    "Rent",
			Description: &desc,
		})
		testutil.AssertNoError(t, err)

		if updated.Type != models.TransactionTypeExpense {
			t.Errorf("expected expense, got %s", updated.Type)
		}
		testutil.AssertDecimalEqual(t, "25.50", updated.Amount)
		if updated.Category != "Rent" {
			t.Errorf("expected category Rent, got %s", updated.Category)
		}

		var stored models.Transaction
		if err := db.First(&stored, "id = ?", tx.ID).Error; err != nil {
			t.Fatalf("failed to reload transaction: %v", err)
		}
		if stored.Description != desc {
			t.Errorf("expected description %q, got %q", desc, stored.Description)
		}
	})

	t.Run("nil_description_keeps_existing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransactionFull(t, db, user.ID, models.TransactionTypeProfit, testutil.Amount(t, "10"), "Sales", "keep me")

		_, err := svc.UpdateTransaction(user.ID, tx.ID, TransactionUpdateFields{
			Type:     models.TransactionTypeProfit,
			Amount:   testutil.Amount(t, "15"),
			Category: "Sales",
		})
		testutil.AssertNoError(t, err)

		var stored models.Transaction
		if err := db.First(&stored, "id = ?", tx.ID).Error; err != nil {
			t.Fatalf("failed to reload transaction: %v", err)
		}
		if stored.Description != "keep me" {
			t.Errorf("expected description preserved, got %q", stored.Description)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateTransaction(user.ID, "00000000-0000-0000-0000-000000000000", TransactionUpdateFields{
			Type:     models.TransactionTypeProfit,
			Amount:   testutil.Amount(t, "10"),
			Category: "Sales",
		})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("not_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, owner.ID, models.TransactionTypeProfit, testutil.Amount(t, "10"))

		_, err := svc.UpdateTransaction(intruder.ID, tx.ID, TransactionUpdateFields{
			Type:     models.TransactionTypeProfit,
			Amount:   testutil.Amount(t, "10"),
			Category: "Sales",
		})
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("invalid_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeProfit, testutil.Amount(t, "10"))

		_, err := svc.UpdateTransaction(user.ID, tx.ID, TransactionUpdateFields{
			Type:     models.TransactionTypeProfit,
			Amount:   testutil.Amount(t, "0"),
			Category: "Sales",
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeProfit, testutil.Amount(t, "10"))

		err := svc.DeleteTransaction(user.ID, tx.ID)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Transaction{}).Where("id = ?", tx.ID).Count(&count)
		if count != 0 {
			t.Error("expected transaction to be removed from storage")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteTransaction(user.ID, "00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("not_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, owner.ID, models.TransactionTypeProfit, testutil.Amount(t, "10"))

		err := svc.DeleteTransaction(intruder.ID, tx.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")

		var count int64
		db.Model(&models.Transaction{}).Where("id = ?", tx.ID).Count(&count)
		if count != 1 {
			t.Error("expected transaction to survive a forbidden delete")
		}
	})
}
