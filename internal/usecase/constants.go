package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds confirmation workflow transactions.
	DefaultTransactionTimeout = 5 * time.Second

	// MarketListCacheKey is the cache key for the canonical market
	// list page. Only the default first page is cached; a page fetched
	// with another limit would be replayed to callers asking for more
	// rows than it holds.
	MarketListCacheKey = "markets:list"

	// MarketListCacheLimit is the page size the cached list is fetched
	// with. Matches the ValidatePagination default.
	MarketListCacheLimit = 50

	// MarketListCacheTTL bounds staleness between invalidations.
	MarketListCacheTTL = 5 * time.Minute
)
