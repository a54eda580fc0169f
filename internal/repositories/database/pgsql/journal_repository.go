package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	"github.com/velia-fin/ledgercore/internal/core/domain"
	portsrepo "github.com/velia-fin/ledgercore/internal/core/ports/repositories"
	"github.com/velia-fin/ledgercore/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry and posting data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepository
var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, entry_date, entry_type, description, total_debit, total_credit, voided, actor_id, created_at, created_by`

func scanEntry(row pgx.Row) (domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID,
		&e.Date,
		&e.Type,
		&e.Description,
		&e.TotalDebit,
		&e.TotalCredit,
		&e.Voided,
		&e.ActorID,
		&e.CreatedAt,
		&e.CreatedBy,
	)
	return e, err
}

// InsertEntryInTx writes the entry header and queues all posting inserts as
// one batch inside the caller's transaction. Sub-ledger repositories use it
// to mirror their writes atomically.
func (r *PgxJournalRepository) InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, postings []domain.Posting) error {
	entryQuery := `
		INSERT INTO journal_entries (
			entry_id, entry_date, entry_type, description, total_debit, total_credit,
			voided, actor_id, created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.Date,
		entry.Type,
		entry.Description,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.Voided,
		entry.ActorID,
		entry.CreatedAt,
		entry.CreatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	postingQuery := `
		INSERT INTO postings (
			posting_id, entry_id, account_code, detail, debit, credit,
			third_party_id, reconciled, voided
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, p := range postings {
		batch.Queue(postingQuery,
			p.PostingID,
			p.EntryID,
			p.AccountCode,
			p.Detail,
			p.Debit,
			p.Credit,
			p.ThirdPartyID,
			p.Reconciled,
			p.Voided,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute posting batch for entry "+entry.EntryID, err)
	}
	return nil
}

// SaveEntry writes the entry header and all postings within a DB transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, postings []domain.Posting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.InsertEntryInTx(ctx, tx, entry, postings); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveEntries writes several entries, each carrying its postings, within a
// single DB transaction.
func (r *PgxJournalRepository) SaveEntries(ctx context.Context, entries []domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	for _, entry := range entries {
		if err := r.InsertEntryInTx(ctx, tx, entry, entry.Postings); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}
	return &entry, nil
}

// FindPostingsByEntryID retrieves all postings of an entry in insertion order.
func (r *PgxJournalRepository) FindPostingsByEntryID(ctx context.Context, entryID string) ([]domain.Posting, error) {
	query := `
		SELECT posting_id, entry_id, account_code, detail, debit, credit, third_party_id, reconciled, voided
		FROM postings
		WHERE entry_id = $1
		ORDER BY posting_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query postings for entry "+entryID, err)
	}
	defer rows.Close()

	postings := []domain.Posting{}
	for rows.Next() {
		var p domain.Posting
		err := rows.Scan(
			&p.PostingID,
			&p.EntryID,
			&p.AccountCode,
			&p.Detail,
			&p.Debit,
			&p.Credit,
			&p.ThirdPartyID,
			&p.Reconciled,
			&p.Voided,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan posting row for entry "+entryID, err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating posting rows for entry "+entryID, err)
	}
	return postings, nil
}

// ListEntries retrieves a paginated list of entry headers using token-based
// pagination, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`
	// Stable ordering: entry_date DESC with created_at DESC as tie-breaker.
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `WHERE (entry_date, created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}
	return entries, nextTokenVal, nil
}

// VoidEntry flips the voided flag on the entry and all its postings within
// a DB transaction. The row is locked so concurrent voids cannot both pass
// the state check.
func (r *PgxJournalRepository) VoidEntry(ctx context.Context, entryID string, actorID string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var voided bool
	err = tx.QueryRow(ctx, `SELECT voided FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, entryID).Scan(&voided)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock journal entry "+entryID, err)
	}
	if voided {
		return apperrors.ErrConflict
	}

	_, err = tx.Exec(ctx, `
		UPDATE journal_entries
		SET voided = TRUE, voided_at = $2, voided_by = $3
		WHERE entry_id = $1;
	`, entryID, at, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to void journal entry "+entryID, err)
	}

	_, err = tx.Exec(ctx, `UPDATE postings SET voided = TRUE WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to void postings for entry "+entryID, err)
	}

	return r.Commit(ctx, tx)
}
