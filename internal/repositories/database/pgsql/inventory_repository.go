package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/velia-fin/ledgercore/internal/apperrors"
	"github.com/velia-fin/ledgercore/internal/core/domain"
	portsrepo "github.com/velia-fin/ledgercore/internal/core/ports/repositories"
	"github.com/velia-fin/ledgercore/internal/utils/accounting"
)

type PgxInventoryRepository struct {
	BaseRepository
	journalRepo portsrepo.JournalRepository
}

// newPgxInventoryRepository creates a new repository for inventory items and
// their Kardex. The journal repository is injected so movements can mirror
// into the ledger inside the same transaction.
func newPgxInventoryRepository(pool *pgxpool.Pool, journalRepo portsrepo.JournalRepository) portsrepo.InventoryRepository {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		journalRepo:    journalRepo,
	}
}

// Ensure PgxInventoryRepository implements portsrepo.InventoryRepository
var _ portsrepo.InventoryRepository = (*PgxInventoryRepository)(nil)

const itemColumns = `item_id, sku, name, qty_on_hand, avg_cost, created_at, created_by`

func scanItem(row pgx.Row) (domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := row.Scan(
		&item.ItemID,
		&item.SKU,
		&item.Name,
		&item.QtyOnHand,
		&item.AvgCost,
		&item.CreatedAt,
		&item.CreatedBy,
	)
	return item, err
}

// SaveItem inserts a new item row.
func (r *PgxInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (item_id, sku, name, qty_on_hand, avg_cost, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		item.ItemID,
		item.SKU,
		item.Name,
		item.QtyOnHand,
		item.AvgCost,
		item.CreatedAt,
		item.CreatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on sku
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert inventory item "+item.SKU, err)
	}
	return nil
}

// FindItemByID retrieves one item by its ID.
func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE item_id = $1;`

	item, err := scanItem(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find inventory item by ID "+itemID, err)
	}
	return &item, nil
}

// ListItems retrieves all items ordered by SKU.
func (r *PgxInventoryRepository) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items ORDER BY sku ASC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query inventory items", err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan inventory item row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating inventory item rows", err)
	}
	return items, nil
}

// ApplyMovement mutates item state under a row lock. Quantity and weighted
// average cost are recomputed from the locked values, the Kardex row is
// appended, and the mirroring journal entry (when requested) lands in the
// same transaction. An outbound movement larger than the stock on hand
// aborts the whole transaction.
func (r *PgxInventoryRepository) ApplyMovement(ctx context.Context, movement domain.InventoryMovement, mirror *portsrepo.MovementMirror) (*domain.InventoryItem, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + itemColumns + ` FROM inventory_items WHERE item_id = $1 FOR UPDATE;`
	item, err := scanItem(tx.QueryRow(ctx, lockQuery, movement.ItemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock inventory item "+movement.ItemID, err)
	}

	var ledgerAmount decimal.Decimal
	if movement.Kind.Inbound() {
		item.QtyOnHand, item.AvgCost = accounting.NextWeightedAverage(item.QtyOnHand, item.AvgCost, movement.Qty, movement.UnitCost)
		ledgerAmount = movement.Qty.Mul(movement.UnitCost)
	} else {
		if movement.Qty.GreaterThan(item.QtyOnHand) {
			return nil, apperrors.ErrInsufficientStock
		}
		// Outbound leaves the average untouched and is valued at it.
		ledgerAmount = movement.Qty.Mul(item.AvgCost).Round(2)
		item.QtyOnHand = item.QtyOnHand.Sub(movement.Qty)
	}

	_, err = tx.Exec(ctx, `
		UPDATE inventory_items SET qty_on_hand = $2, avg_cost = $3 WHERE item_id = $1;
	`, item.ItemID, item.QtyOnHand, item.AvgCost)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update inventory item "+item.ItemID, err)
	}

	if mirror != nil && ledgerAmount.IsPositive() {
		entryID, err := r.insertMirrorEntry(ctx, tx, movement, item.SKU, ledgerAmount, mirror)
		if err != nil {
			return nil, err
		}
		movement.EntryID = &entryID
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO inventory_movements (movement_id, item_id, movement_date, kind, qty, unit_cost, entry_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`,
		movement.MovementID,
		movement.ItemID,
		movement.Date,
		movement.Kind,
		movement.Qty,
		movement.UnitCost,
		movement.EntryID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert inventory movement "+movement.MovementID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &item, nil
}

// insertMirrorEntry posts the movement's ledger counterpart: inbound debits
// inventory and credits the counterpart account, outbound the reverse.
func (r *PgxInventoryRepository) insertMirrorEntry(ctx context.Context, tx pgx.Tx, movement domain.InventoryMovement, sku string, amount decimal.Decimal, mirror *portsrepo.MovementMirror) (string, error) {
	now := time.Now().UTC()
	entryID := uuid.NewString()

	description := mirror.Description
	if description == "" {
		description = string(movement.Kind) + " " + sku
	}

	debitAccount, creditAccount := mirror.InventoryAccount, mirror.CounterpartAccount
	if !movement.Kind.Inbound() {
		debitAccount, creditAccount = mirror.CounterpartAccount, mirror.InventoryAccount
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		Date:        movement.Date,
		Type:        domain.EntryInventory,
		Description: description,
		TotalDebit:  amount,
		TotalCredit: amount,
		ActorID:     mirror.ActorID,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: mirror.ActorID,
		},
	}
	postings := []domain.Posting{
		{
			PostingID:   uuid.NewString(),
			EntryID:     entryID,
			AccountCode: debitAccount,
			Detail:      description,
			Debit:       amount,
			Credit:      decimal.Zero,
		},
		{
			PostingID:   uuid.NewString(),
			EntryID:     entryID,
			AccountCode: creditAccount,
			Detail:      description,
			Debit:       decimal.Zero,
			Credit:      amount,
		},
	}

	if err := r.journalRepo.InsertEntryInTx(ctx, tx, entry, postings); err != nil {
		return "", err
	}
	return entryID, nil
}

// ListMovementsByItem retrieves the Kardex for one item, oldest first.
func (r *PgxInventoryRepository) ListMovementsByItem(ctx context.Context, itemID string) ([]domain.InventoryMovement, error) {
	query := `
		SELECT movement_id, item_id, movement_date, kind, qty, unit_cost, entry_id
		FROM inventory_movements
		WHERE item_id = $1
		ORDER BY movement_date ASC, movement_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query movements for item "+itemID, err)
	}
	defer rows.Close()

	movements := []domain.InventoryMovement{}
	for rows.Next() {
		var m domain.InventoryMovement
		err := rows.Scan(
			&m.MovementID,
			&m.ItemID,
			&m.Date,
			&m.Kind,
			&m.Qty,
			&m.UnitCost,
			&m.EntryID,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan movement row for item "+itemID, err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating movement rows for item "+itemID, err)
	}
	return movements, nil
}
