package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khatahub/khata-dashboard/internal/core/domain"
	"github.com/khatahub/khata-dashboard/internal/core/ports"
)

// TransactionHandler serves the transaction history screens.
type TransactionHandler struct {
	api ports.DataAPI
}

func NewTransactionHandler(api ports.DataAPI) *TransactionHandler {
	return &TransactionHandler{api: api}
}

// List returns the credit transactions for the current identity.
//
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Success      200  {array}  domain.Transaction
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	txs, err := h.api.ListTransactions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, txs)
}

// Create records a new credit transaction.
//
// @Summary      Create transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body      domain.NewTransaction  true  "Transaction fields"
// @Success      201   {object}  domain.Transaction
// @Failure      400   {object}  map[string]string
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c echo.Context) error {
	var req domain.NewTransaction
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	created, err := h.api.CreateTransaction(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}
