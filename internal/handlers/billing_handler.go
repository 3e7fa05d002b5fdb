package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "github.com/pranjalsingh001/ShopOwnerDashboard/internal/errors"
	"github.com/pranjalsingh001/ShopOwnerDashboard/internal/services"
)

// BillingHandler handles sale recording requests.
type BillingHandler struct {
	billingService services.BillingServicer
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(billingService services.BillingServicer) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// RecordSaleRequest represents the payload for recording a sale. The
// optional margin percentage shown in the UI is a client-side convenience
// and is intentionally not part of this payload.
type RecordSaleRequest struct {
	ProductName   string          `json:"productName" binding:"required,max=200"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" binding:"required,gt=0"`
	SellingPrice  decimal.Decimal `json:"sellingPrice" binding:"required,gt=0"`
	Quantity      int             `json:"quantity" binding:"required,min=1"`
}

// RecordSale derives and stores the expense/profit pair for one sale
// @Summary     Record a sale
// @Description Create the paired Inventory expense and Sales profit transactions for one sale
// @Tags        billing
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecordSaleRequest true "Sale details"
// @Success     201 {object} services.SaleRecord "Derived transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /billing [post]
func (h *BillingHandler) RecordSale(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.billingService.RecordSale(userID, req.ProductName, req.PurchasePrice, req.SellingPrice, req.Quantity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}
