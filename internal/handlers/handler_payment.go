package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
	"github.com/SscSPs/invoice_ledger/internal/dto"
	"github.com/SscSPs/invoice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{
		paymentService: ps,
	}
}

// registerPaymentRoutes registers payment specific routes
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.processPayment)
		payments.GET("", h.listPayments)
	}
}

// processPayment godoc
// @Summary Apply a payment to an invoice
// @Description Reduces the invoice's outstanding balance and posts Dr CASH / Cr AR
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.ProcessPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or amount"
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Failure 409 {object} dto.ErrorResponse "Invoice modified concurrently"
// @Failure 422 {object} dto.ErrorResponse "Invoice already paid or payment exceeds balance"
// @Failure 500 {object} dto.ErrorResponse "Failed to process payment"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) processPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, logger, err)
		return
	}

	paymentDate, err := dto.ParseDate(req.PaymentDate)
	if err != nil {
		respondWithError(c, logger, apperrors.NewValidationError("paymentDate", "must be YYYY-MM-DD"), "Invalid payment date")
		return
	}

	logger = logger.With(slog.String("invoice_id", req.InvoiceID))

	payment, err := h.paymentService.ApplyPayment(c.Request.Context(), portssvc.ApplyPaymentInput{
		InvoiceID:            req.InvoiceID,
		Amount:               *req.PaymentAmount,
		PaymentDate:          paymentDate,
		PaymentMethod:        req.PaymentMethod,
		TransactionReference: req.TransactionReference,
	})
	if err != nil {
		respondWithError(c, logger, err, "Failed to process payment")
		return
	}

	logger.Info("Payment processed via API", slog.String("payment_id", payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// listPayments godoc
// @Summary List payments
// @Description Lists all payments, or only those for one invoice
// @Tags payments
// @Produce  json
// @Param   invoiceId query string false "Invoice ID filter"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to list payments"
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadRequest(c, logger, err)
		return
	}

	var (
		payments []domain.Payment
		err      error
	)
	if params.InvoiceID != "" {
		payments, err = h.paymentService.ListPaymentsForInvoice(c.Request.Context(), params.InvoiceID)
	} else {
		payments, err = h.paymentService.ListAllPayments(c.Request.Context())
	}
	if err != nil {
		respondWithError(c, logger, err, "Failed to list payments")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPaymentsResponse(payments))
}
