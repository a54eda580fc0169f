package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is one imported bank-statement row. ExternalRef is the
// bank-side identifier and dedups re-imports; LinkedPostingID is set by
// reconciliation and links 1:1 to a Posting.
type BankTransaction struct {
	BankTxnID       string          `json:"bankTxnID"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"` // signed: negative = money out
	ExternalRef     string          `json:"externalRef"`
	LinkedPostingID *string         `json:"linkedPostingID,omitempty"`
}

// MatchSuggestion pairs a bank transaction with the posting the greedy
// matcher selected for it.
type MatchSuggestion struct {
	BankTxnID string          `json:"bankTxnID"`
	PostingID string          `json:"postingID"`
	Amount    decimal.Decimal `json:"amount"`
}

// ImportResult summarizes an idempotent statement import.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
