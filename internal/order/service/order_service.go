package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ridloal/skincare-store-api/internal/order/domain"
	"github.com/ridloal/skincare-store-api/internal/order/repository"
	"github.com/ridloal/skincare-store-api/internal/platform/logger"
	productDomain "github.com/ridloal/skincare-store-api/internal/product/domain"
	productRepo "github.com/ridloal/skincare-store-api/internal/product/repository"
)

var (
	ErrEmptyCart              = errors.New("order must contain at least one item")
	ErrInvalidQuantity        = errors.New("cart item quantity must be at least 1")
	ErrIncompleteCustomerInfo = errors.New("customer info requires name, email, phone and address")
	ErrInvalidStatus          = errors.New("unknown order status")
	ErrOrderCreationFailed    = errors.New("order creation failed")
)

// IsValidationError reports whether err is a client-input problem rather
// than an internal failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrIncompleteCustomerInfo) ||
		errors.Is(err, ErrInvalidStatus)
}

// ProductCatalog is the read-only slice of the product layer the order
// service needs for price resolution.
type ProductCatalog interface {
	GetProductByID(ctx context.Context, id string) (*productDomain.Product, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus) (*domain.Order, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
	catalog   ProductCatalog
}

func NewOrderService(or repository.OrderRepository, catalog ProductCatalog) OrderService {
	return &orderServiceImpl{orderRepo: or, catalog: catalog}
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, item.ProductID)
		}
	}
	if err := validateCustomerInfo(req.CustomerInfo); err != nil {
		return nil, err
	}

	// Resolve authoritative price and name from the catalog. The client
	// still sends hints, but they only win for products that no longer
	// exist (a discontinued product in a stale cart stays orderable).
	var total float64
	orderItems := make([]domain.OrderItem, len(req.Items))
	for i, itemReq := range req.Items {
		name, price := itemReq.Name, itemReq.Price
		product, err := s.catalog.GetProductByID(ctx, itemReq.ProductID)
		switch {
		case err == nil:
			name, price = product.Name, product.Price
		case errors.Is(err, productRepo.ErrProductNotFound):
			logger.Warn("CreateOrder: product %s not in catalog, using client snapshot", itemReq.ProductID)
		default:
			logger.Error("CreateOrder: catalog lookup failed", err)
			return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
		}

		orderItems[i] = domain.OrderItem{
			ProductID: itemReq.ProductID,
			Name:      name,
			Price:     price,
			Quantity:  itemReq.Quantity,
		}
		total += orderItems[i].LineTotal()
	}

	newOrder := &domain.Order{
		Total:        total,
		Status:       domain.StatusPending,
		CustomerInfo: trimCustomerInfo(req.CustomerInfo),
		PaymentProof: req.PaymentProof,
	}

	if err := s.orderRepo.CreateOrderWithItems(ctx, newOrder, orderItems); err != nil {
		logger.Error("CreateOrder: failed to save order", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}
	return newOrder, nil
}

// GetOrder trims incidental whitespace from the id before lookup, order
// ids arrive via copy-paste from confirmation emails.
func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orderRepo.GetOrderByID(ctx, strings.TrimSpace(orderID))
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error) {
	for _, st := range statuses {
		if !st.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, st)
		}
	}
	return s.orderRepo.ListOrders(ctx, statuses)
}

func (s *orderServiceImpl) UpdateOrderStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus) (*domain.Order, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}
	orderID = strings.TrimSpace(orderID)

	current, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(current.Status, newStatus) {
		return nil, fmt.Errorf("%w: cannot move %s to %s", ErrInvalidStatus, current.Status, newStatus)
	}
	return s.orderRepo.UpdateOrderStatus(ctx, orderID, newStatus)
}

func validateCustomerInfo(info domain.CustomerInfo) error {
	if strings.TrimSpace(info.Name) == "" ||
		strings.TrimSpace(info.Email) == "" ||
		strings.TrimSpace(info.Phone) == "" ||
		strings.TrimSpace(info.Address) == "" {
		return ErrIncompleteCustomerInfo
	}
	return nil
}

func trimCustomerInfo(info domain.CustomerInfo) domain.CustomerInfo {
	return domain.CustomerInfo{
		Name:    strings.TrimSpace(info.Name),
		Email:   strings.TrimSpace(info.Email),
		Phone:   strings.TrimSpace(info.Phone),
		Address: strings.TrimSpace(info.Address),
	}
}
