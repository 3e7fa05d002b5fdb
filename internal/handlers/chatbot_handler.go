package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/pranjalsingh001/ShopOwnerDashboard/internal/errors"
	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/services"
)

// ChatbotHandler handles chatbot requests.
type ChatbotHandler struct {
	insightService services.InsightServicer
}

// NewChatbotHandler creates a new ChatbotHandler.
func NewChatbotHandler(insightService services.InsightServicer) *ChatbotHandler {
	return &ChatbotHandler{insightService: insightService}
}

// ChatbotRequest represents the chatbot message payload
type ChatbotRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// ChatbotResponse represents the chatbot reply
type ChatbotResponse struct {
	Reply string `json:"reply"`
}

// Chat sends the user's question plus shop context to the LLM
// @Summary     Ask the business chatbot
// @Description Ask a question about the shop's finances; upstream AI failures come back as apologetic replies, not HTTP errors
// @Tags        chatbot
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChatbotRequest true "Question for the assistant"
// @Success     200 {object} ChatbotResponse "Assistant reply"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /chatbot [post]
func (h *ChatbotHandler) Chat(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ChatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	reply, err := h.insightService.GetInsight(c.Request.Context(), userID, req.Message)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
