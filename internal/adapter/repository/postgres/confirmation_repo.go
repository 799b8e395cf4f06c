package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bozor/daftar/internal/domain"
	"github.com/bozor/daftar/internal/usecase"
)

const confirmationColumns = `id, entry_id, requested_by, market_id, requested_status, current_status, status, reviewed_by, reviewed_at, created_at`

// ConfirmationRepository implements usecase.ConfirmationRepository.
// A missing payment_confirmations table surfaces as
// domain.ErrSchemaOutdated so callers can degrade instead of failing.
type ConfirmationRepository struct {
	pool *pgxpool.Pool
}

// NewConfirmationRepository creates a new ConfirmationRepository.
func NewConfirmationRepository(pool *pgxpool.Pool) *ConfirmationRepository {
	return &ConfirmationRepository{pool: pool}
}

// Create inserts a new confirmation within a transaction.
func (r *ConfirmationRepository) Create(ctx context.Context, tx usecase.Transaction, confirmation *domain.PaymentConfirmation) error {
	pgxTx := tx.(*Tx).PgxTx()
	query := `
		INSERT INTO payment_confirmations (` + confirmationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := pgxTx.Exec(ctx, query,
		confirmation.ID,
		confirmation.EntryID,
		confirmation.RequestedBy,
		confirmation.MarketID,
		confirmation.RequestedStatus,
		confirmation.CurrentStatus,
		confirmation.Status,
		confirmation.ReviewedBy,
		confirmation.ReviewedAt,
		confirmation.CreatedAt,
	)

	return mapSchemaErr(err)
}

// GetByID retrieves a confirmation by ID.
func (r *ConfirmationRepository) GetByID(ctx context.Context, id string) (*domain.PaymentConfirmation, error) {
	query := `SELECT ` + confirmationColumns + ` FROM payment_confirmations WHERE id = $1`
	return scanConfirmation(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a confirmation by ID with a row lock.
func (r *ConfirmationRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.PaymentConfirmation, error) {
	pgxTx := tx.(*Tx).PgxTx()
	query := `SELECT ` + confirmationColumns + ` FROM payment_confirmations WHERE id = $1 FOR UPDATE`
	return scanConfirmation(pgxTx.QueryRow(ctx, query, id))
}

// GetPendingByEntry retrieves the outstanding pending confirmation for
// an entry, if any. Returns ErrConfirmationNotFound when there is none.
func (r *ConfirmationRepository) GetPendingByEntry(ctx context.Context, tx usecase.Transaction, entryID string) (*domain.PaymentConfirmation, error) {
	pgxTx := tx.(*Tx).PgxTx()
	query := `
		SELECT ` + confirmationColumns + `
		FROM payment_confirmations
		WHERE entry_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanConfirmation(pgxTx.QueryRow(ctx, query, entryID))
}

// UpdateStatus resolves a confirmation within a transaction.
func (r *ConfirmationRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.ConfirmationStatus, reviewedBy string, reviewedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	query := `
		UPDATE payment_confirmations
		SET status = $2, reviewed_by = $3, reviewed_at = $4
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, id, status, reviewedBy, reviewedAt)
	if err != nil {
		return mapSchemaErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConfirmationNotFound
	}

	return nil
}

// ListPendingByMarket retrieves a market's review queue, oldest first.
// Each confirmation comes joined with its entry so the reviewer sees
// what is being approved in one query.
func (r *ConfirmationRepository) ListPendingByMarket(ctx context.Context, marketID string, limit, offset int) ([]*domain.ReviewItem, error) {
	query := `
		SELECT pc.id, pc.entry_id, pc.requested_by, pc.market_id, pc.requested_status, pc.current_status, pc.status, pc.reviewed_by, pc.reviewed_at, pc.created_at,
		       e.id, e.user_id, e.market_id, e.client, e.mahsulot, e.miqdor, e.narx, e.summa, e.holat, e.izoh, e.sana, e.created_at, e.updated_at
		FROM payment_confirmations pc
		JOIN entries e ON e.id = pc.entry_id
		WHERE pc.market_id = $1 AND pc.status = 'pending'
		ORDER BY pc.created_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, marketID, limit, offset)
	if err != nil {
		return nil, mapSchemaErr(err)
	}
	defer rows.Close()

	var items []*domain.ReviewItem
	for rows.Next() {
		var c domain.PaymentConfirmation
		var e domain.Entry
		err := rows.Scan(
			&c.ID,
			&c.EntryID,
			&c.RequestedBy,
			&c.MarketID,
			&c.RequestedStatus,
			&c.CurrentStatus,
			&c.Status,
			&c.ReviewedBy,
			&c.ReviewedAt,
			&c.CreatedAt,
			&e.ID,
			&e.SellerID,
			&e.MarketID,
			&e.ClientName,
			&e.Product,
			&e.Quantity,
			&e.Price,
			&e.Total,
			&e.Status,
			&e.Phone,
			&e.SaleDate,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, &domain.ReviewItem{Confirmation: &c, Entry: &e})
	}

	return items, rows.Err()
}

func scanConfirmation(row pgx.Row) (*domain.PaymentConfirmation, error) {
	var c domain.PaymentConfirmation
	err := row.Scan(
		&c.ID,
		&c.EntryID,
		&c.RequestedBy,
		&c.MarketID,
		&c.RequestedStatus,
		&c.CurrentStatus,
		&c.Status,
		&c.ReviewedBy,
		&c.ReviewedAt,
		&c.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrConfirmationNotFound
	}
	if err != nil {
		return nil, mapSchemaErr(err)
	}

	return &c, nil
}

func mapSchemaErr(err error) error {
	if isUndefinedTable(err) {
		return domain.ErrSchemaOutdated
	}
	return err
}
