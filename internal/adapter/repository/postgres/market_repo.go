package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bozor/daftar/internal/domain"
)

// MarketRepository implements usecase.MarketRepository.
type MarketRepository struct {
	pool *pgxpool.Pool
}

// NewMarketRepository creates a new MarketRepository.
func NewMarketRepository(pool *pgxpool.Pool) *MarketRepository {
	return &MarketRepository{pool: pool}
}

// Create inserts a new market.
func (r *MarketRepository) Create(ctx context.Context, market *domain.Market) error {
	query := `
		INSERT INTO markets (id, name, phone, address, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		market.ID,
		market.Name,
		market.Phone,
		market.Address,
		market.AvatarURL,
		market.CreatedAt,
	)

	return err
}

// GetByID retrieves a market by ID.
func (r *MarketRepository) GetByID(ctx context.Context, id string) (*domain.Market, error) {
	query := `
		SELECT id, name, phone, address, avatar_url, created_at
		FROM markets
		WHERE id = $1
	`
	return scanMarket(r.pool.QueryRow(ctx, query, id))
}

// GetByName retrieves a market by exact name. Entries recorded before
// market linking carry only the client name, so the confirmation flow
// resolves the market through this lookup.
func (r *MarketRepository) GetByName(ctx context.Context, name string) (*domain.Market, error) {
	query := `
		SELECT id, name, phone, address, avatar_url, created_at
		FROM markets
		WHERE name = $1
	`
	return scanMarket(r.pool.QueryRow(ctx, query, name))
}

// Delete removes a market.
func (r *MarketRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM markets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMarketNotFound
	}

	return nil
}

// List retrieves markets ordered by name.
func (r *MarketRepository) List(ctx context.Context, limit, offset int) ([]*domain.Market, error) {
	query := `
		SELECT id, name, phone, address, avatar_url, created_at
		FROM markets
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var markets []*domain.Market
	for rows.Next() {
		var market domain.Market
		err := rows.Scan(
			&market.ID,
			&market.Name,
			&market.Phone,
			&market.Address,
			&market.AvatarURL,
			&market.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		markets = append(markets, &market)
	}

	return markets, rows.Err()
}

func scanMarket(row pgx.Row) (*domain.Market, error) {
	var market domain.Market
	err := row.Scan(
		&market.ID,
		&market.Name,
		&market.Phone,
		&market.Address,
		&market.AvatarURL,
		&market.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMarketNotFound
	}
	if err != nil {
		return nil, err
	}

	return &market, nil
}
