package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/invoice_ledger/internal/apperrors"
	"github.com/SscSPs/invoice_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// statusForKind maps an error category to its HTTP status.
func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindDuplicate, apperrors.KindConcurrentModification:
		return http.StatusConflict
	case apperrors.KindDomainState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes the error body for err. Server-side failures are
// logged at error level and their details are not exposed to the client.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, failureMsg string) {
	kind := apperrors.KindOf(err)
	status := statusForKind(kind)

	if status >= http.StatusInternalServerError {
		logger.Error(failureMsg, slog.String("error", err.Error()), slog.String("kind", string(kind)))
		c.JSON(status, dto.ErrorResponse{Error: failureMsg, Kind: string(kind)})
		return
	}

	logger.Warn(failureMsg, slog.String("error", err.Error()), slog.String("kind", string(kind)))
	c.JSON(status, dto.ErrorResponse{Error: err.Error(), Kind: string(kind)})
}

// respondBadRequest reports a request that failed binding.
func respondBadRequest(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request format: " + err.Error(),
		Kind:  string(apperrors.KindValidation),
	})
}
