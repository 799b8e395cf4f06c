package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/bozor/daftar/internal/adapter/http/dto"
	"github.com/bozor/daftar/internal/adapter/http/middleware"
	"github.com/bozor/daftar/internal/domain"
	"github.com/bozor/daftar/internal/usecase"
)

type entryServiceStub struct {
	addFn    func(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error)
	updateFn func(ctx context.Context, input usecase.UpdateEntryInput) (*domain.Entry, error)
	deleteFn func(ctx context.Context, entryID, sellerID string) error
	getFn    func(ctx context.Context, id string) (*domain.Entry, error)
	listFn   func(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.Entry, error)
}

func (s *entryServiceStub) AddEntry(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error) {
	return s.addFn(ctx, input)
}

func (s *entryServiceStub) UpdateEntry(ctx context.Context, input usecase.UpdateEntryInput) (*domain.Entry, error) {
	return s.updateFn(ctx, input)
}

func (s *entryServiceStub) DeleteEntry(ctx context.Context, entryID, sellerID string) error {
	return s.deleteFn(ctx, entryID, sellerID)
}

func (s *entryServiceStub) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return s.getFn(ctx, id)
}

func (s *entryServiceStub) ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.Entry, error) {
	return s.listFn(ctx, input)
}

func testEntry() *domain.Entry {
	return &domain.Entry{
		ID:         "entry-1",
		SellerID:   "seller-1",
		ClientName: "Chorsu bozori",
		Product:    "olma",
		Quantity:   "10 kg",
		Price:      decimal.NewFromInt(50000),
		Total:      decimal.NewFromInt(50000),
		Status:     domain.PaymentStatusUnpaid,
	}
}

func withAuthUser(r *http.Request, user *middleware.AuthUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.UserContextKey, user))
}

func sellerUser() *middleware.AuthUser {
	return &middleware.AuthUser{ID: "seller-1", Email: "seller@example.com", Role: domain.RoleSeller}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}

func TestEntryHandler_Create_Success(t *testing.T) {
	var captured usecase.AddEntryInput
	handler := NewEntryHandler(&entryServiceStub{
		addFn: func(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error) {
			captured = input
			return testEntry(), nil
		},
	})

	body, _ := json.Marshal(dto.CreateEntryRequest{
		Client:   "Chorsu bozori",
		Product:  "olma",
		Quantity: "10 kg",
		Price:    "50000",
	})

	req := httptest.NewRequest(http.MethodPost, "/entries", bytes.NewReader(body))
	req = withAuthUser(req, sellerUser())
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.SellerID != "seller-1" {
		t.Fatalf("expected seller from token, got %s", captured.SellerID)
	}
	if !captured.Price.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("expected parsed price 50000, got %s", captured.Price)
	}

	var resp dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "entry-1" || resp.Price != "50000" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestEntryHandler_Create_InvalidPrice(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		addFn: func(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error) {
			t.Fatal("AddEntry should not be called for invalid price")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.CreateEntryRequest{
		Client:   "Chorsu bozori",
		Product:  "olma",
		Quantity: "10 kg",
		Price:    "not-a-number",
	})

	req := httptest.NewRequest(http.MethodPost, "/entries", bytes.NewReader(body))
	req = withAuthUser(req, sellerUser())
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_Create_NoAuth(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/entries", bytes.NewReader([]byte("{}")))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestEntryHandler_Update_PaidEntryConflict(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateEntryInput) (*domain.Entry, error) {
			return nil, domain.ErrEntryPaid
		},
	})

	product := "anor"
	body, _ := json.Marshal(dto.UpdateEntryRequest{Product: &product})

	req := httptest.NewRequest(http.MethodPatch, "/entries/entry-1", bytes.NewReader(body))
	req = withAuthUser(req, sellerUser())
	req = setChiURLParam(req, "id", "entry-1")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestEntryHandler_Update_InvalidStatus(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		updateFn: func(ctx context.Context, input usecase.UpdateEntryInput) (*domain.Entry, error) {
			t.Fatal("UpdateEntry should not be called for invalid status")
			return nil, nil
		},
	})

	status := "qarzdor"
	body, _ := json.Marshal(dto.UpdateEntryRequest{Status: &status})

	req := httptest.NewRequest(http.MethodPatch, "/entries/entry-1", bytes.NewReader(body))
	req = withAuthUser(req, sellerUser())
	req = setChiURLParam(req, "id", "entry-1")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_Get_NotFound(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Entry, error) {
			return nil, domain.ErrEntryNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/entries/missing", nil)
	req = setChiURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEntryHandler_Delete(t *testing.T) {
	var deletedID, deletedBy string
	handler := NewEntryHandler(&entryServiceStub{
		deleteFn: func(ctx context.Context, entryID, sellerID string) error {
			deletedID, deletedBy = entryID, sellerID
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/entries/entry-1", nil)
	req = withAuthUser(req, sellerUser())
	req = setChiURLParam(req, "id", "entry-1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deletedID != "entry-1" || deletedBy != "seller-1" {
		t.Fatalf("expected delete entry-1 by seller-1, got %s by %s", deletedID, deletedBy)
	}
}

func TestEntryHandler_List(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		listFn: func(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.Entry, error) {
			if input.MarketID != "market-1" {
				t.Fatalf("expected market filter, got %+v", input)
			}
			return []*domain.Entry{testEntry()}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/entries?market_id=market-1", nil)
	req = withAuthUser(req, sellerUser())
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []dto.EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(resp))
	}
}
