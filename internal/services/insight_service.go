package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/config"
	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/logger"
)

const (
	insightTemperature = 0.7
	insightMaxTokens   = 500

	promptProductLimit     = 3
	promptCategoryLimit    = 3
	promptTransactionLimit = 5
)

// systemInstruction constrains the assistant to shop-financial advice.
const systemInstruction = "You are a helpful business assistant that provides insights and advice based on shop data."

// Fixed user-facing replies substituted for upstream failures. The chatbot
// endpoint never surfaces raw provider errors.
const (
	replyQuotaExceeded = "I apologize, but the AI service is currently unavailable due to quota limits. Please try again later or contact support to upgrade your plan."
	replyRateLimited   = "I apologize, but the AI service is currently experiencing high demand. Please try again in a few moments."
	replyAuthFailure   = "There seems to be an authentication issue with the AI service. Please contact support."
	replyUnavailable   = "I apologize, but I'm having trouble analyzing your data right now. Please try again later."
	replyEmpty         = "I couldn't generate a response. Please try again with a more specific question."
)

// insightService sends shop context plus the user's question to an
// OpenAI-compatible chat-completion endpoint (Groq in production).
type insightService struct {
	transactions TransactionServicer
	client       *openai.Client
	model        string
	timeout      time.Duration
}

// NewInsightService creates a new InsightServicer from application config.
func NewInsightService(transactions TransactionServicer, cfg *config.Config) InsightServicer {
	clientConfig := openai.DefaultConfig(cfg.GroqAPIKey)
	clientConfig.BaseURL = cfg.GroqBaseURL

	return &insightService{
		transactions: transactions,
		client:       openai.NewClientWithConfig(clientConfig),
		model:        cfg.GroqModel,
		timeout:      cfg.InsightTimeout,
	}
}

// GetInsight builds the shop context for the user, renders the prompt, and
// asks the LLM once. No retries; the request is bounded by the configured
// timeout and runs to completion or error once issued.
func (s *insightService) GetInsight(ctx context.Context, userID, question string) (string, error) {
	transactions, err := s.transactions.ListUserTransactions(userID, TransactionFilter{})
	if err != nil {
		return "", err
	}

	shopContext := BuildShopContext(transactions)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: buildInsightPrompt(question, shopContext)},
		},
		Temperature: insightTemperature,
		MaxTokens:   insightMaxTokens,
	})
	if err != nil {
		logger.Get().Warnw("insight request failed",
			"user_id", userID,
			"error", err.Error(),
		)
		return classifyInsightFailure(err), nil
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return replyEmpty, nil
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyInsightFailure maps provider errors onto the fixed reply strings:
// quota-exhausted 429s, other 429s, auth failures, and everything else.
func classifyInsightFailure(err error) string {
	status := 0

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
		if status == http.StatusTooManyRequests {
			if code, ok := apiErr.Code.(string); ok && code == "insufficient_quota" {
				return replyQuotaExceeded
			}
		}
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch status {
	case http.StatusTooManyRequests:
		return replyRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		return replyAuthFailure
	default:
		return replyUnavailable
	}
}

// buildInsightPrompt renders the single templated prompt sent as the user
// message: totals, top products, top expense categories, recent transactions,
// and the owner's question.
func buildInsightPrompt(question string, sc ShopContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, `
You are an expert business advisor for a shop owner.
Based on the following business data, please provide insightful and helpful advice responding to the owner's question.

SHOP FINANCIAL SUMMARY:
- Total Profit: $%s
- Total Expenses: $%s
- Net Balance: $%s
- Total Transactions: %d
`,
		sc.TotalStats.TotalProfit.StringFixed(2),
		sc.TotalStats.TotalExpense.StringFixed(2),
		sc.TotalStats.NetBalance.StringFixed(2),
		sc.TotalStats.TransactionCount,
	)

	b.WriteString("\nTOP SELLING PRODUCTS:\n")
	if len(sc.TopProducts) == 0 {
		b.WriteString("No product data available yet\n")
	}
	for i, p := range sc.TopProducts {
		if i == promptProductLimit {
			break
		}
		fmt.Fprintf(&b, "%s: %d units, $%s revenue\n", p.Name, p.Quantity, p.Revenue.StringFixed(2))
	}

	b.WriteString("\nTOP EXPENSE CATEGORIES:\n")
	if len(sc.ExpenseSummary) == 0 {
		b.WriteString("No categorized expense data available yet\n")
	}
	for i, e := range sc.ExpenseSummary {
		if i == promptCategoryLimit {
			break
		}
		fmt.Fprintf(&b, "%s: $%s\n", e.Category, e.Total.StringFixed(2))
	}

	b.WriteString("\nRECENT TRANSACTIONS (LAST 5):\n")
	for i, t := range sc.RecentTransactions {
		if i == promptTransactionLimit {
			break
		}
		description := t.Description
		if description == "" {
			description = "No description"
		}
		fmt.Fprintf(&b, "- %s: $%s - %s (%s)\n",
			strings.ToUpper(string(t.Type)),
			t.Amount.StringFixed(2),
			description,
			t.Timestamp.Format("2006-01-02"),
		)
	}

	fmt.Fprintf(&b, "\nSHOP OWNER'S QUESTION: %q\n\n", question)
	b.WriteString("Please provide a helpful, concise response with actionable advice based on the data. " +
		"If the question is not related to the shop's financial data, politely explain that you can only provide insights based on the shop's financial information.\n")

	return b.String()
}
