package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/invoice_ledger/internal/core/ports/services"
	"github.com/SscSPs/invoice_ledger/internal/dto"
	"github.com/SscSPs/invoice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to ledger reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to ledger reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/integrity", h.getIntegrity)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Totals debits and credits per account over all committed journal entries
// @Tags reports
// @Produce json
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.TrialBalance(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate trial balance")
		return
	}

	logger.Debug("Trial balance generated", slog.Int("rows", len(report.Rows)))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getIntegrity godoc
// @Summary Check ledger integrity
// @Description Re-derives invoice balances and entry totals and reports any disagreement
// @Tags reports
// @Produce json
// @Success 200 {object} dto.IntegrityReportResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to run integrity check"
// @Security BearerAuth
// @Router /reports/integrity [get]
func (h *reportingHandler) getIntegrity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.CheckIntegrity(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to run integrity check")
		return
	}

	c.JSON(http.StatusOK, dto.ToIntegrityReportResponse(report))
}
