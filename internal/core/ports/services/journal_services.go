package services

import (
	"context"

	"github.com/velia-fin/ledgercore/internal/core/domain"
	"github.com/velia-fin/ledgercore/internal/dto"
)

// JournalSvcFacade is the journal posting engine surface.
type JournalSvcFacade interface {
	// PostEntry validates and atomically persists a balanced journal entry.
	PostEntry(ctx context.Context, req dto.PostEntryRequest, actorID string) (*domain.JournalEntry, error)

	// GetEntry returns the entry header with postings populated.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries returns a date-cursor page of entry headers.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// VoidEntry marks an entry and its postings voided. The ledger stays
	// append-only: voiding is the only mutation an entry ever sees.
	VoidEntry(ctx context.Context, entryID string, actorID string) error
}
