package mocks

import (
	"context"

	productDomain "github.com/ridloal/skincare-store-api/internal/product/domain"
	"github.com/stretchr/testify/mock"
)

type MockProductCatalog struct {
	mock.Mock
}

func (m *MockProductCatalog) GetProductByID(ctx context.Context, id string) (*productDomain.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*productDomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}
