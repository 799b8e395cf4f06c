package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/bozor/daftar/internal/domain"
	"github.com/bozor/daftar/internal/usecase"
	"github.com/bozor/daftar/internal/usecase/mocks"
)

func TestProductUseCase_AddProduct(t *testing.T) {
	ctrl := gomock.NewController(t)
	productRepo := mocks.NewMockProductRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	idGen.EXPECT().Generate().Return("product-id")
	productRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	uc := usecase.NewProductUseCase(productRepo, idGen)

	product, err := uc.AddProduct(context.Background(), "olma")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != "product-id" || product.Name != "olma" {
		t.Errorf("unexpected product: %+v", product)
	}
}

func TestProductUseCase_AddProductEmptyName(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := usecase.NewProductUseCase(mocks.NewMockProductRepository(ctrl), mocks.NewMockIDGenerator(ctrl))

	_, err := uc.AddProduct(context.Background(), "   ")
	if !errors.Is(err, domain.ErrInvalidMarketName) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestProductUseCase_ListProducts(t *testing.T) {
	ctrl := gomock.NewController(t)
	productRepo := mocks.NewMockProductRepository(ctrl)

	productRepo.EXPECT().List(gomock.Any(), 50, 0).
		Return([]*domain.Product{{ID: "p1", Name: "olma"}}, nil)

	uc := usecase.NewProductUseCase(productRepo, mocks.NewMockIDGenerator(ctrl))

	products, err := uc.ListProducts(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 {
		t.Errorf("expected 1 product, got %d", len(products))
	}
}
