package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType categorizes the origin of a journal entry.
type EntryType string

const (
	EntryManual       EntryType = "MANUAL"
	EntryInventory    EntryType = "INVENTORY"
	EntryAcquisition  EntryType = "ACQUISITION"
	EntryDepreciation EntryType = "DEPRECIATION"
)

// JournalEntry is the header of a balanced financial event. Totals are cached
// at write time; the ledger is append-only, so the cache never goes stale.
type JournalEntry struct {
	EntryID     string          `json:"entryID"`
	Date        time.Time       `json:"date"`
	Type        EntryType       `json:"type"`
	Description string          `json:"description"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Voided      bool            `json:"voided"`
	ActorID     string          `json:"actorID"`
	AuditFields

	// Postings are loaded on demand; nil on list responses.
	Postings []Posting `json:"postings,omitempty"`
}

// Posting is one debit-or-credit line within a journal entry. Exactly one of
// Debit/Credit is greater than zero.
type Posting struct {
	PostingID    string          `json:"postingID"`
	EntryID      string          `json:"entryID"`
	AccountCode  string          `json:"accountCode"`
	Detail       string          `json:"detail"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	ThirdPartyID string          `json:"thirdPartyID"`
	Reconciled   bool            `json:"reconciled"`
	Voided       bool            `json:"voided"`
}
