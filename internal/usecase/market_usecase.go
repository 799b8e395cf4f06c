package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bozor/daftar/internal/domain"
)

// MarketUseCase handles the market registry. The list is cached and
// the cache dropped on every mutation; realtime subscribers get a
// change event and re-fetch.
type MarketUseCase struct {
	txManager  TransactionManager
	marketRepo MarketRepository
	outboxRepo OutboxRepository
	cache      Cache
	idGen      IDGenerator
}

// NewMarketUseCase creates a new MarketUseCase.
func NewMarketUseCase(
	txManager TransactionManager,
	marketRepo MarketRepository,
	outboxRepo OutboxRepository,
	cache Cache,
	idGen IDGenerator,
) *MarketUseCase {
	return &MarketUseCase{
		txManager:  txManager,
		marketRepo: marketRepo,
		outboxRepo: outboxRepo,
		cache:      cache,
		idGen:      idGen,
	}
}

// AddMarketInput represents input for registering a market.
type AddMarketInput struct {
	Name      string
	Phone     string
	Address   string
	AvatarURL string
}

// AddMarket registers a new market.
func (uc *MarketUseCase) AddMarket(ctx context.Context, input AddMarketInput) (*domain.Market, error) {
	if err := domain.ValidateMarketName(input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	market := &domain.Market{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Phone:     input.Phone,
		Address:   input.Address,
		AvatarURL: input.AvatarURL,
		CreatedAt: now,
	}

	if err := uc.marketRepo.Create(ctx, market); err != nil {
		return nil, err
	}

	uc.afterMutation(ctx, market.ID, domain.EventTypeMarketCreated, now)

	return market, nil
}

// DeleteMarket removes a market. Deletion is unconditional; entries
// referencing the market keep it as a dangling name.
func (uc *MarketUseCase) DeleteMarket(ctx context.Context, id string) error {
	if err := uc.marketRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.afterMutation(ctx, id, domain.EventTypeMarketDeleted, time.Now().UTC())

	return nil
}

// GetMarket retrieves a market by ID.
func (uc *MarketUseCase) GetMarket(ctx context.Context, id string) (*domain.Market, error) {
	return uc.marketRepo.GetByID(ctx, id)
}

// ListMarkets lists markets ordered by name. Only the canonical first
// page is served from cache; any other limit or offset goes straight
// to the repo, so a small page can never truncate a larger request.
func (uc *MarketUseCase) ListMarkets(ctx context.Context, limit, offset int) ([]*domain.Market, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	cacheable := offset == 0 && limit == MarketListCacheLimit && uc.cache != nil

	if cacheable {
		if raw, err := uc.cache.Get(ctx, MarketListCacheKey); err == nil {
			var markets []*domain.Market
			if err := json.Unmarshal(raw, &markets); err == nil {
				return markets, nil
			}
		}
	}

	markets, err := uc.marketRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if raw, err := json.Marshal(markets); err == nil {
			_ = uc.cache.Set(ctx, MarketListCacheKey, raw, MarketListCacheTTL)
		}
	}

	return markets, nil
}

// afterMutation drops the list cache and records a change event for
// realtime subscribers. Event write failures are not fatal: the list
// itself is already durable.
func (uc *MarketUseCase) afterMutation(ctx context.Context, marketID, eventType string, now time.Time) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, MarketListCacheKey)
	}

	if uc.outboxRepo == nil || uc.txManager == nil {
		return
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   marketID,
		AggregateType: domain.AggregateTypeMarket,
		EventType:     eventType,
		Payload:       map[string]any{"market_id": marketID},
		CreatedAt:     now,
		Published:     false,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return
	}

	_ = tx.Commit(ctx)
}
