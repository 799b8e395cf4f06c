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

// entryColumns is the scan order shared by every entry query. Column
// names follow the original daftar schema: mahsulot is the product,
// miqdor the quantity, narx the unit price, summa the total, holat the
// payment status, izoh the phone/notes field and sana the sale date.
const entryColumns = `id, user_id, market_id, client, mahsulot, miqdor, narx, summa, holat, izoh, sana, created_at, updated_at`

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create inserts a new entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.SellerID,
		entry.MarketID,
		entry.ClientName,
		entry.Product,
		entry.Quantity,
		entry.Price,
		entry.Total,
		entry.Status,
		entry.Phone,
		entry.SaleDate,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	return err
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`
	return scanEntry(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves an entry by ID with a row lock, within a transaction.
func (r *EntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Entry, error) {
	pgxTx := tx.(*Tx).PgxTx()
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1 FOR UPDATE`
	return scanEntry(pgxTx.QueryRow(ctx, query, id))
}

// Update rewrites an entry's editable fields within a transaction.
func (r *EntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()
	query := `
		UPDATE entries
		SET market_id = $2, client = $3, mahsulot = $4, miqdor = $5,
		    narx = $6, summa = $7, holat = $8, izoh = $9, sana = $10,
		    updated_at = $11
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query,
		entry.ID,
		entry.MarketID,
		entry.ClientName,
		entry.Product,
		entry.Quantity,
		entry.Price,
		entry.Total,
		entry.Status,
		entry.Phone,
		entry.SaleDate,
		entry.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// UpdateStatus sets only the payment status, within a transaction.
func (r *EntryRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.PaymentStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	query := `UPDATE entries SET holat = $2, updated_at = $3 WHERE id = $1`

	tag, err := pgxTx.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// Delete removes an entry.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// ListBySeller retrieves a seller's entries, newest sale first.
func (r *EntryRepository) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE user_id = $1
		ORDER BY sana DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, sellerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByMarket retrieves entries addressed to a market, newest sale first.
func (r *EntryRepository) ListByMarket(ctx context.Context, marketID string, limit, offset int) ([]*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE market_id = $1
		ORDER BY sana DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, marketID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var entry domain.Entry
	err := row.Scan(
		&entry.ID,
		&entry.SellerID,
		&entry.MarketID,
		&entry.ClientName,
		&entry.Product,
		&entry.Quantity,
		&entry.Price,
		&entry.Total,
		&entry.Status,
		&entry.Phone,
		&entry.SaleDate,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func scanEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	for rows.Next() {
		var entry domain.Entry
		err := rows.Scan(
			&entry.ID,
			&entry.SellerID,
			&entry.MarketID,
			&entry.ClientName,
			&entry.Product,
			&entry.Quantity,
			&entry.Price,
			&entry.Total,
			&entry.Status,
			&entry.Phone,
			&entry.SaleDate,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
