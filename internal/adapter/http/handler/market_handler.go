package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bozor/daftar/internal/adapter/http/dto"
	"github.com/bozor/daftar/internal/domain"
	"github.com/bozor/daftar/internal/usecase"
)

// MarketService defines the behavior needed by MarketHandler.
type MarketService interface {
	AddMarket(ctx context.Context, input usecase.AddMarketInput) (*domain.Market, error)
	GetMarket(ctx context.Context, id string) (*domain.Market, error)
	ListMarkets(ctx context.Context, limit, offset int) ([]*domain.Market, error)
	DeleteMarket(ctx context.Context, id string) error
}

// MarketHandler handles the market registry endpoints.
type MarketHandler struct {
	marketUC MarketService
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketUC MarketService) *MarketHandler {
	return &MarketHandler{marketUC: marketUC}
}

// Create registers a new market.
func (h *MarketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMarketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	market, err := h.marketUC.AddMarket(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MarketFromDomain(market))
}

// Get retrieves a single market.
func (h *MarketHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	market, err := h.marketUC.GetMarket(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MarketFromDomain(market))
}

// List returns the market registry ordered by name.
func (h *MarketHandler) List(w http.ResponseWriter, r *http.Request) {
	markets, err := h.marketUC.ListMarkets(r.Context(),
		parseIntQuery(r, "limit", 50),
		parseIntQuery(r, "offset", 0),
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MarketsFromDomain(markets))
}

// Delete removes a market from the registry.
func (h *MarketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.marketUC.DeleteMarket(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
