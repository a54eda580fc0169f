package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTxnInput is one pre-parsed bank-statement row supplied by the import
// collaborator. Amount is signed: negative means money left the bank account.
type BankTxnInput struct {
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExternalRef string          `json:"externalRef" binding:"required"`
}

// ImportStatementRequest defines the payload for a bank statement import.
type ImportStatementRequest struct {
	Transactions []BankTxnInput `json:"transactions" binding:"required,dive"`
}

// ReconcileRequest links one posting to one bank transaction.
type ReconcileRequest struct {
	PostingID string `json:"postingID" binding:"required"`
	BankTxnID string `json:"bankTxnID" binding:"required"`
}
