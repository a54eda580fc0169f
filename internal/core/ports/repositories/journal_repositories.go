package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/velia-fin/ledgercore/internal/core/domain"
)

// JournalRepository persists journal entries and their postings. Every
// mutation runs in exactly one database transaction; a failed save leaves
// zero rows behind.
type JournalRepository interface {
	// SaveEntry writes the entry header and all postings atomically.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, postings []domain.Posting) error

	// SaveEntries writes several entries (each carrying its Postings) in one
	// transaction. Used by the depreciation run so a whole period posts
	// all-or-nothing.
	SaveEntries(ctx context.Context, entries []domain.JournalEntry) error

	// InsertEntryInTx writes an entry inside a caller-owned transaction so
	// sub-ledger repositories can mirror their writes into the ledger
	// atomically.
	InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, postings []domain.Posting) error

	// FindEntryByID returns the header without postings;
	// apperrors.ErrNotFound when absent.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindPostingsByEntryID returns the entry's postings in insertion order.
	FindPostingsByEntryID(ctx context.Context, entryID string) ([]domain.Posting, error)

	// ListEntries returns a date-cursor page of entry headers, newest first,
	// plus the token for the next page (nil when exhausted).
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// VoidEntry flips the voided flag on the entry and its postings in one
	// transaction. apperrors.ErrConflict when already voided.
	VoidEntry(ctx context.Context, entryID string, actorID string, at time.Time) error
}
