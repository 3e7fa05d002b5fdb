package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/models"
	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/testutil"
	"gorm.io/gorm"
)

// newTestInsightService wires an insightService against a stub chat-completion
// endpoint instead of the real provider.
func newTestInsightService(db *gorm.DB, baseURL string) *insightService {
	clientConfig := openai.DefaultConfig("test-key")
	clientConfig.BaseURL = baseURL

	return &insightService{
		transactions: NewTransactionService(db),
		client:       openai.NewClientWithConfig(clientConfig),
		model:        "llama3-70b-8192",
		timeout:      5 * time.Second,
	}
}

func stubCompletionServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGetInsight(t *testing.T) {
	t.Run("success_passes_reply_through", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeProfit, testutil.Amount(t, "100"))

		server := stubCompletionServer(t, http.StatusOK, `{
			"id": "cmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Focus on your best sellers."}, "finish_reason": "stop"}]
		}`)
		svc := newTestInsightService(db, server.URL)

		reply, err := svc.GetInsight(context.Background(), user.ID, "How is my shop doing?")
		testutil.AssertNoError(t, err)
		if reply != "Focus on your best sellers." {
			t.Errorf("unexpected reply: %q", reply)
		}
	})

	t.Run("quota_exhausted_429", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		server := stubCompletionServer(t, http.StatusTooManyRequests, `{
			"error": {"message": "You exceeded your current quota", "type": "insufficient_quota", "code": "insufficient_quota"}
		}`)
		svc := newTestInsightService(db, server.URL)

		reply, err := svc.GetInsight(context.Background(), user.ID, "Any advice?")
		testutil.AssertNoError(t, err)
		if reply != replyQuotaExceeded {
			t.Errorf("expected quota reply, got %q", reply)
		}
	})

	t.Run("rate_limited_429", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		server := stubCompletionServer(t, http.StatusTooManyRequests, `{
			"error": {"message": "Rate limit reached", "type": "rate_limit_exceeded", "code": "rate_limit_exceeded"}
		}`)
		svc := newTestInsightService(db, server.URL)

		reply, err := svc.GetInsight(context.Background(), user.ID, "Any advice?")
		testutil.AssertNoError(t, err)
		if reply != replyRateLimited {
			t.Errorf("expected rate-limit reply, got %q", reply)
		}
	})

	t.Run("auth_failure_401", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		server := stubCompletionServer(t, http.StatusUnauthorized, `{
			"error": {"message": "Invalid API key", "type": "invalid_request_error", "code": "invalid_api_key"}
		}`)
		svc := newTestInsightService(db, server.URL)

		reply, err := svc.GetInsight(context.Background(), user.ID, "Any advice?")
		testutil.AssertNoError(t, err)
		if reply != replyAuthFailure {
			t.Errorf("expected auth reply, got %q", reply)
		}
	})

	t.Run("generic_failure_500", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		server := stubCompletionServer(t, http.StatusInternalServerError, `{
			"error": {"message": "The server had an error", "type": "server_error"}
		}`)
		svc := newTestInsightService(db, server.URL)

		reply, err := svc.GetInsight(context.Background(), user.ID, "Any advice?")
		testutil.AssertNoError(t, err)
		if reply != replyUnavailable {
			t.Errorf("expected generic unavailable reply, got %q", reply)
		}
	})

	t.Run("empty_completion", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		user := testutil.CreateTestUser(t, db)

		server := stubCompletionServer(t, http.StatusOK, `{
			"id": "cmpl-2",
			"object": "chat.completion",
			"choices": []
		}`)
		svc := newTestInsightService(db, server.URL)

		reply, err := svc.GetInsight(context.Background(), user.ID, "Any advice?")
		testutil.AssertNoError(t, err)
		if reply != replyEmpty {
			t.Errorf("expected empty-completion reply, got %q", reply)
		}
	})
}

func TestBuildInsightPrompt(t *testing.T) {
	t.Run("includes_totals_and_question", func(t *testing.T) {
		sc := BuildShopContext([]models.Transaction{
			{Type: models.TransactionTypeProfit, Amount: testutil.Amount(t, "100.50"), Category: "Sales",
				Description: "Sale of 2 Notebook @ 50.25 each (profit: 20.00)", Timestamp: time.Now()},
			{Type: models.TransactionTypeExpense, Amount: testutil.Amount(t, "40.00"), Category: "Rent", Timestamp: time.Now()},
		})

		prompt := buildInsightPrompt("Should I raise prices?", sc)

		for _, want := range []string{
			"Total Profit: $100.50",
			"Total Expenses: $40.00",
			"Net Balance: $60.50",
			"Notebook: 2 units, $100.50 revenue",
			"Rent: $40.00",
			`"Should I raise prices?"`,
		} {
			if !strings.Contains(prompt, want) {
				t.Errorf("expected prompt to contain %q", want)
			}
		}
	})

	t.Run("placeholders_without_data", func(t *testing.T) {
		prompt := buildInsightPrompt("Anything?", BuildShopContext(nil))

		if !strings.Contains(prompt, "No product data available yet") {
			t.Error("expected product placeholder for empty shop")
		}
		if !strings.Contains(prompt, "No categorized expense data available yet") {
			t.Error("expected expense placeholder for empty shop")
		}
	})

	t.Run("recent_transactions_capped_at_five", func(t *testing.T) {
		var transactions []models.Transaction
		for i := 0; i < 8; i++ {
			transactions = append(transactions, models.Transaction{
				Type:      models.TransactionTypeProfit,
				Amount:    testutil.Amount(t, "10"),
				Category:  "Sales",
				Timestamp: time.Now(),
			})
		}

		prompt := buildInsightPrompt("Anything?", BuildShopContext(transactions))

		if got := strings.Count(prompt, "- PROFIT:"); got != 5 {
			t.Errorf("expected 5 transaction lines in prompt, got %d", got)
		}
	})
}
