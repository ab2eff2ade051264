package mocks

import (
	"context"

	"github.com/ridloal/skincare-store-api/internal/order/domain"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrderWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	args := m.Called(ctx, order, items)
	if order != nil && args.Error(0) == nil {
		order.ID = "mock-order-id"
		order.Items = items
	}
	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(ctx, statuses)
	if o := args.Get(0); o != nil {
		return o.([]domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus) (*domain.Order, error) {
	args := m.Called(ctx, orderID, newStatus)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListPaymentProofRefs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if refs := args.Get(0); refs != nil {
		return refs.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}
