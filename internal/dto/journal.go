package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/velia-fin/ledgercore/internal/core/domain"
)

// PostingInput is one debit-or-credit line in a PostEntry request. Exactly
// one of Debit/Credit must be greater than zero; the service enforces this.
type PostingInput struct {
	AccountCode  string          `json:"accountCode" binding:"required"`
	Detail       string          `json:"detail"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	ThirdPartyID string          `json:"thirdPartyID"`
}

// PostEntryRequest defines the payload for posting a journal entry.
type PostEntryRequest struct {
	Date        time.Time      `json:"date" binding:"required"`
	Type        string         `json:"type"`
	Description string         `json:"description" binding:"required"`
	Postings    []PostingInput `json:"postings" binding:"required,dive"`
}

// PostingResponse defines the data returned for a posting line.
type PostingResponse struct {
	PostingID    string          `json:"postingID"`
	AccountCode  string          `json:"accountCode"`
	Detail       string          `json:"detail"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	ThirdPartyID string          `json:"thirdPartyID,omitempty"`
	Reconciled   bool            `json:"reconciled"`
}

// EntryResponse defines the data returned for a journal entry header.
type EntryResponse struct {
	EntryID     string            `json:"entryID"`
	Date        time.Time         `json:"date"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Voided      bool              `json:"voided"`
	ActorID     string            `json:"actorID"`
	CreatedAt   time.Time         `json:"createdAt"`
	Postings    []PostingResponse `json:"postings,omitempty"`
}

// ListEntriesParams holds pagination parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is a page of journal entries plus the cursor for the
// next page, nil when exhausted.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToPostingResponse converts a domain.Posting to PostingResponse DTO.
func ToPostingResponse(p *domain.Posting) PostingResponse {
	return PostingResponse{
		PostingID:    p.PostingID,
		AccountCode:  p.AccountCode,
		Detail:       p.Detail,
		Debit:        p.Debit,
		Credit:       p.Credit,
		ThirdPartyID: p.ThirdPartyID,
		Reconciled:   p.Reconciled,
	}
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:     e.EntryID,
		Date:        e.Date,
		Type:        string(e.Type),
		Description: e.Description,
		TotalDebit:  e.TotalDebit,
		TotalCredit: e.TotalCredit,
		Voided:      e.Voided,
		ActorID:     e.ActorID,
		CreatedAt:   e.CreatedAt,
	}
	if len(e.Postings) > 0 {
		resp.Postings = make([]PostingResponse, len(e.Postings))
		for i := range e.Postings {
			resp.Postings[i] = ToPostingResponse(&e.Postings[i])
		}
	}
	return resp
}
