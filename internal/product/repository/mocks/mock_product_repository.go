package mocks

import (
	"context"

	"github.com/ridloal/skincare-store-api/internal/product/domain"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	if p != nil && args.Error(0) == nil {
		p.ID = "mock-product-id"
	}
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
