package usecase

import (
	"context"
	"time"

	"github.com/bozor/daftar/internal/domain"
)

// ProductUseCase handles the product registry.
type ProductUseCase struct {
	productRepo ProductRepository
	idGen       IDGenerator
}

// NewProductUseCase creates a new ProductUseCase.
func NewProductUseCase(productRepo ProductRepository, idGen IDGenerator) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		idGen:       idGen,
	}
}

// AddProduct registers a new product name.
func (uc *ProductUseCase) AddProduct(ctx context.Context, name string) (*domain.Product, error) {
	if err := domain.ValidateMarketName(name); err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:        uc.idGen.Generate(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	return uc.productRepo.Delete(ctx, id)
}

// ListProducts lists products by recency.
func (uc *ProductUseCase) ListProducts(ctx context.Context, limit, offset int) ([]*domain.Product, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.productRepo.List(ctx, limit, offset)
}
