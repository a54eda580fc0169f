package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	portssvc "github.com/velia-fin/ledgercore/internal/core/ports/services"
	"github.com/velia-fin/ledgercore/internal/core/services"
	"github.com/velia-fin/ledgercore/internal/dto"
	"github.com/velia-fin/ledgercore/internal/middleware"
)

// reconciliationHandler handles HTTP requests for bank reconciliation.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: rs}
}

// registerReconciliationRoutes registers routes related to bank reconciliation.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	bank := rg.Group("/bank")
	{
		bank.POST("/statements", h.importStatement)
		bank.GET("/transactions/:bankTxnID", h.getTransaction)
		bank.GET("/suggestions", h.suggestMatches)
		bank.POST("/reconcile", h.reconcile)
	}
}

// importStatement ingests pre-parsed bank statement rows.
func (h *reconciliationHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ImportStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for importStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.reconciliationService.ImportBankStatement(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyStatement) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to import statement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import statement"})
		}
		return
	}

	logger.Info("Statement imported", slog.Int("imported", result.Imported), slog.Int("skipped", result.Skipped))
	c.JSON(http.StatusOK, result)
}

// getTransaction retrieves one imported bank transaction.
func (h *reconciliationHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankTxnID := c.Param("bankTxnID")

	txn, err := h.reconciliationService.GetBankTransaction(c.Request.Context(), bankTxnID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank transaction not found"})
		} else {
			logger.Error("Failed to get bank transaction", slog.String("error", err.Error()), slog.String("bank_txn_id", bankTxnID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get bank transaction"})
		}
		return
	}
	c.JSON(http.StatusOK, txn)
}

// suggestMatches returns advisory match suggestions for one account.
func (h *reconciliationHandler) suggestMatches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountCode := c.Query("accountCode")
	if accountCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountCode query parameter is required"})
		return
	}

	suggestions, err := h.reconciliationService.SuggestMatches(c.Request.Context(), accountCode)
	if err != nil {
		if errors.Is(err, services.ErrUnknownAccount) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute suggestions", slog.String("error", err.Error()), slog.String("account_code", accountCode))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute suggestions"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// reconcile confirms one posting / bank transaction pair.
func (h *reconciliationHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reconcile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.reconciliationService.Reconcile(c.Request.Context(), req.PostingID, req.BankTxnID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrReconciliationConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to reconcile", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile"})
		}
		return
	}

	logger.Info("Reconciled", slog.String("posting_id", req.PostingID), slog.String("bank_txn_id", req.BankTxnID))
	c.Status(http.StatusNoContent)
}
