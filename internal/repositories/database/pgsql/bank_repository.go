package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	"github.com/velia-fin/ledgercore/internal/core/domain"
	portsrepo "github.com/velia-fin/ledgercore/internal/core/ports/repositories"
)

type PgxBankRepository struct {
	BaseRepository
}

// newPgxBankRepository creates a new repository for bank statement data.
func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepository {
	return &PgxBankRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBankRepository implements portsrepo.BankRepository
var _ portsrepo.BankRepository = (*PgxBankRepository)(nil)

const bankTxnColumns = `bank_txn_id, txn_date, description, amount, external_ref, linked_posting_id`

func scanBankTxn(row pgx.Row) (domain.BankTransaction, error) {
	var t domain.BankTransaction
	err := row.Scan(
		&t.BankTxnID,
		&t.Date,
		&t.Description,
		&t.Amount,
		&t.ExternalRef,
		&t.LinkedPostingID,
	)
	return t, err
}

// InsertTransactions inserts statement rows within one transaction. Rows
// whose external_ref already exists are skipped via ON CONFLICT DO NOTHING,
// so re-importing the same statement is harmless.
func (r *PgxBankRepository) InsertTransactions(ctx context.Context, txns []domain.BankTransaction) (*domain.ImportResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO bank_transactions (bank_txn_id, txn_date, description, amount, external_ref)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (external_ref) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, txn := range txns {
		batch.Queue(query, txn.BankTxnID, txn.Date, txn.Description, txn.Amount, txn.ExternalRef)
	}

	result := &domain.ImportResult{}
	br := tx.SendBatch(ctx, batch)
	for range txns {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return nil, apperrors.NewAppError(500, "failed to insert bank transaction batch", err)
		}
		if tag.RowsAffected() > 0 {
			result.Imported++
		} else {
			result.Skipped++
		}
	}
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to close bank transaction batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return result, nil
}

// FindTransactionByID retrieves one bank transaction by its ID.
func (r *PgxBankRepository) FindTransactionByID(ctx context.Context, bankTxnID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTxnColumns + ` FROM bank_transactions WHERE bank_txn_id = $1;`

	txn, err := scanBankTxn(r.Pool.QueryRow(ctx, query, bankTxnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank transaction by ID "+bankTxnID, err)
	}
	return &txn, nil
}

// ListUnlinkedTransactions retrieves imported transactions not yet linked to
// a posting, oldest first.
func (r *PgxBankRepository) ListUnlinkedTransactions(ctx context.Context) ([]domain.BankTransaction, error) {
	query := `
		SELECT ` + bankTxnColumns + `
		FROM bank_transactions
		WHERE linked_posting_id IS NULL
		ORDER BY txn_date ASC, bank_txn_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unlinked bank transactions", err)
	}
	defer rows.Close()

	txns := []domain.BankTransaction{}
	for rows.Next() {
		txn, err := scanBankTxn(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank transaction row", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank transaction rows", err)
	}
	return txns, nil
}

// ListUnreconciledPostings retrieves non-voided, unreconciled postings
// against the given account, oldest first.
func (r *PgxBankRepository) ListUnreconciledPostings(ctx context.Context, accountCode string) ([]domain.Posting, error) {
	query := `
		SELECT p.posting_id, p.entry_id, p.account_code, p.detail, p.debit, p.credit, p.third_party_id, p.reconciled, p.voided
		FROM postings p
		JOIN journal_entries e ON p.entry_id = e.entry_id
		WHERE p.account_code = $1 AND p.reconciled = FALSE AND p.voided = FALSE
		ORDER BY e.entry_date ASC, p.posting_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountCode)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query unreconciled postings for account "+accountCode, err)
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
			return nil, apperrors.NewAppError(500, "failed to scan posting row for account "+accountCode, err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating posting rows for account "+accountCode, err)
	}
	return postings, nil
}

// Reconcile links one posting to one bank transaction. Both rows are locked
// and both must still be unlinked; any other state aborts the transaction.
func (r *PgxBankRepository) Reconcile(ctx context.Context, postingID, bankTxnID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var reconciled bool
	err = tx.QueryRow(ctx, `SELECT reconciled FROM postings WHERE posting_id = $1 FOR UPDATE;`, postingID).Scan(&reconciled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock posting "+postingID, err)
	}
	if reconciled {
		return apperrors.ErrConflict
	}

	var linkedPostingID *string
	err = tx.QueryRow(ctx, `SELECT linked_posting_id FROM bank_transactions WHERE bank_txn_id = $1 FOR UPDATE;`, bankTxnID).Scan(&linkedPostingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock bank transaction "+bankTxnID, err)
	}
	if linkedPostingID != nil {
		return apperrors.ErrConflict
	}

	_, err = tx.Exec(ctx, `UPDATE postings SET reconciled = TRUE WHERE posting_id = $1;`, postingID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark posting reconciled "+postingID, err)
	}
	_, err = tx.Exec(ctx, `UPDATE bank_transactions SET linked_posting_id = $2 WHERE bank_txn_id = $1;`, bankTxnID, postingID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link bank transaction "+bankTxnID, err)
	}

	return r.Commit(ctx, tx)
}
