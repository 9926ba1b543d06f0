package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
	"github.com/SscSPs/invoice_ledger/internal/dto"
	"github.com/SscSPs/invoice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type accountHandler struct {
	accounts portssvc.AccountDirectory
}

// registerAccountRoutes registers the read-only chart-of-accounts routes
func registerAccountRoutes(rg *gin.RouterGroup, accounts portssvc.AccountDirectory) {
	h := &accountHandler{accounts: accounts}
	rg.GET("/accounts", h.listAccounts)
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.accounts.ListAccounts(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}
