package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ridloal/skincare-store-api/internal/order/domain"
	"github.com/ridloal/skincare-store-api/internal/order/repository"
	repoMocks "github.com/ridloal/skincare-store-api/internal/order/repository/mocks"
	catalogMocks "github.com/ridloal/skincare-store-api/internal/order/service/mocks"
	productDomain "github.com/ridloal/skincare-store-api/internal/product/domain"
	productRepo "github.com/ridloal/skincare-store-api/internal/product/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validCustomerInfo() domain.CustomerInfo {
	return domain.CustomerInfo{
		Name:    "Ayu Lestari",
		Email:   "ayu@example.com",
		Phone:   "+62811111111",
		Address: "Jl. Melati 12, Bandung",
	}
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.TODO()

	t.Run("Successful creation from price hints when products are discontinued", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		mockCatalog := new(catalogMocks.MockProductCatalog)
		svc := NewOrderService(mockRepo, mockCatalog)

		mockCatalog.On("GetProductByID", ctx, "p1").Return(nil, productRepo.ErrProductNotFound).Once()
		mockCatalog.On("GetProductByID", ctx, "p2").Return(nil, productRepo.ErrProductNotFound).Once()
		mockRepo.On("CreateOrderWithItems", ctx, mock.AnythingOfType("*domain.Order"), mock.AnythingOfType("[]domain.OrderItem")).Return(nil).Once()

		order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
			Items: []domain.CartItemRequest{
				{ProductID: "p1", Name: "Face Mask", Price: 100, Quantity: 2},
				{ProductID: "p2", Name: "Serum", Price: 50, Quantity: 1},
			},
			CustomerInfo: validCustomerInfo(),
		})

		assert.NoError(t, err)
		assert.NotNil(t, order)
		assert.Equal(t, "mock-order-id", order.ID)
		assert.Equal(t, domain.StatusPending, order.Status)
		assert.Equal(t, 250.0, order.Total)
		assert.Len(t, order.Items, 2)
		mockRepo.AssertExpectations(t)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Catalog price and name win over client hints", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		mockCatalog := new(catalogMocks.MockProductCatalog)
		svc := NewOrderService(mockRepo, mockCatalog)

		mockCatalog.On("GetProductByID", ctx, "p1").Return(&productDomain.Product{
			ID: "p1", Name: "Niacinamide Serum", Price: 120,
		}, nil).Once()
		mockRepo.On("CreateOrderWithItems", ctx, mock.AnythingOfType("*domain.Order"), mock.AnythingOfType("[]domain.OrderItem")).Return(nil).Once()

		order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
			Items: []domain.CartItemRequest{
				// Tampered hint: client claims a lower price
				{ProductID: "p1", Name: "Cheap Serum", Price: 1, Quantity: 2},
			},
			CustomerInfo: validCustomerInfo(),
		})

		assert.NoError(t, err)
		assert.Equal(t, 240.0, order.Total)
		assert.Equal(t, "Niacinamide Serum", order.Items[0].Name)
		assert.Equal(t, 120.0, order.Items[0].Price)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Empty cart is rejected before any side effect", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		mockCatalog := new(catalogMocks.MockProductCatalog)
		svc := NewOrderService(mockRepo, mockCatalog)

		order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
			Items:        []domain.CartItemRequest{},
			CustomerInfo: validCustomerInfo(),
		})

		assert.Nil(t, order)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.True(t, IsValidationError(err))
		mockRepo.AssertNotCalled(t, "CreateOrderWithItems")
		mockCatalog.AssertNotCalled(t, "GetProductByID")
	})

	t.Run("Non-positive quantity is rejected", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		mockCatalog := new(catalogMocks.MockProductCatalog)
		svc := NewOrderService(mockRepo, mockCatalog)

		order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
			Items:        []domain.CartItemRequest{{ProductID: "p1", Price: 10, Quantity: 0}},
			CustomerInfo: validCustomerInfo(),
		})

		assert.Nil(t, order)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		mockRepo.AssertNotCalled(t, "CreateOrderWithItems")
	})

	t.Run("Incomplete customer info is rejected", func(t *testing.T) {
		for _, clear := range []func(*domain.CustomerInfo){
			func(ci *domain.CustomerInfo) { ci.Name = "" },
			func(ci *domain.CustomerInfo) { ci.Email = "   " },
			func(ci *domain.CustomerInfo) { ci.Phone = "" },
			func(ci *domain.CustomerInfo) { ci.Address = "" },
		} {
			mockRepo := new(repoMocks.MockOrderRepository)
			mockCatalog := new(catalogMocks.MockProductCatalog)
			svc := NewOrderService(mockRepo, mockCatalog)

			info := validCustomerInfo()
			clear(&info)

			order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
				Items:        []domain.CartItemRequest{{ProductID: "p1", Price: 10, Quantity: 1}},
				CustomerInfo: info,
			})

			assert.Nil(t, order)
			assert.ErrorIs(t, err, ErrIncompleteCustomerInfo)
			mockRepo.AssertNotCalled(t, "CreateOrderWithItems")
		}
	})

	t.Run("Repository failure surfaces as creation error", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		mockCatalog := new(catalogMocks.MockProductCatalog)
		svc := NewOrderService(mockRepo, mockCatalog)

		mockCatalog.On("GetProductByID", ctx, "p1").Return(nil, productRepo.ErrProductNotFound).Once()
		repoErr := errors.New("db transaction error")
		mockRepo.On("CreateOrderWithItems", ctx, mock.AnythingOfType("*domain.Order"), mock.AnythingOfType("[]domain.OrderItem")).Return(repoErr).Once()

		order, err := svc.CreateOrder(ctx, domain.CreateOrderRequest{
			Items:        []domain.CartItemRequest{{ProductID: "p1", Price: 10, Quantity: 1}},
			CustomerInfo: validCustomerInfo(),
		})

		assert.Nil(t, order)
		assert.ErrorIs(t, err, ErrOrderCreationFailed)
		assert.False(t, IsValidationError(err))
		mockRepo.AssertExpectations(t)
	})
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.TODO()

	t.Run("Surrounding whitespace in the id is trimmed", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		svc := NewOrderService(mockRepo, new(catalogMocks.MockProductCatalog))

		stored := &domain.Order{ID: "order-1", Status: domain.StatusPending}
		mockRepo.On("GetOrderByID", ctx, "order-1").Return(stored, nil).Once()

		order, err := svc.GetOrder(ctx, "  order-1\n")

		assert.NoError(t, err)
		assert.Equal(t, "order-1", order.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown id returns not found", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		svc := NewOrderService(mockRepo, new(catalogMocks.MockProductCatalog))

		mockRepo.On("GetOrderByID", ctx, "missing").Return(nil, repository.ErrOrderNotFound).Once()

		order, err := svc.GetOrder(ctx, "missing")

		assert.Nil(t, order)
		assert.ErrorIs(t, err, repository.ErrOrderNotFound)
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	ctx := context.TODO()

	t.Run("Any transition between valid statuses is allowed", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		svc := NewOrderService(mockRepo, new(catalogMocks.MockProductCatalog))

		delivered := &domain.Order{ID: "order-1", Status: domain.StatusDelivered}
		reverted := &domain.Order{ID: "order-1", Status: domain.StatusPending}
		mockRepo.On("GetOrderByID", ctx, "order-1").Return(delivered, nil).Once()
		mockRepo.On("UpdateOrderStatus", ctx, "order-1", domain.StatusPending).Return(reverted, nil).Once()

		order, err := svc.UpdateOrderStatus(ctx, "order-1", domain.StatusPending)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusPending, order.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown status value is rejected without touching the store", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		svc := NewOrderService(mockRepo, new(catalogMocks.MockProductCatalog))

		order, err := svc.UpdateOrderStatus(ctx, "order-1", domain.OrderStatus("not-a-real-status"))

		assert.Nil(t, order)
		assert.ErrorIs(t, err, ErrInvalidStatus)
		mockRepo.AssertNotCalled(t, "GetOrderByID")
		mockRepo.AssertNotCalled(t, "UpdateOrderStatus")
	})

	t.Run("Missing order returns not found after id trim", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		svc := NewOrderService(mockRepo, new(catalogMocks.MockProductCatalog))

		mockRepo.On("GetOrderByID", ctx, "ghost").Return(nil, repository.ErrOrderNotFound).Once()

		order, err := svc.UpdateOrderStatus(ctx, " ghost ", domain.StatusConfirmed)

		assert.Nil(t, order)
		assert.ErrorIs(t, err, repository.ErrOrderNotFound)
		mockRepo.AssertNotCalled(t, "UpdateOrderStatus")
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	ctx := context.TODO()

	t.Run("Status filter is validated", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		svc := NewOrderService(mockRepo, new(catalogMocks.MockProductCatalog))

		orders, err := svc.ListOrders(ctx, []domain.OrderStatus{"bogus"})

		assert.Nil(t, orders)
		assert.ErrorIs(t, err, ErrInvalidStatus)
		mockRepo.AssertNotCalled(t, "ListOrders")
	})

	t.Run("Valid filter is passed through", func(t *testing.T) {
		mockRepo := new(repoMocks.MockOrderRepository)
		svc := NewOrderService(mockRepo, new(catalogMocks.MockProductCatalog))

		filter := []domain.OrderStatus{domain.StatusConfirmed, domain.StatusDelivered}
		mockRepo.On("ListOrders", ctx, filter).Return([]domain.Order{{ID: "o1"}}, nil).Once()

		orders, err := svc.ListOrders(ctx, filter)

		assert.NoError(t, err)
		assert.Len(t, orders, 1)
		mockRepo.AssertExpectations(t)
	})
}
