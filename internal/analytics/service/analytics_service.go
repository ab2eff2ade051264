package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ridloal/skincare-store-api/internal/analytics/domain"
	orderDomain "github.com/ridloal/skincare-store-api/internal/order/domain"
	productDomain "github.com/ridloal/skincare-store-api/internal/product/domain"
)

// OrderSource is the read slice of the order layer the aggregator needs.
type OrderSource interface {
	ListOrders(ctx context.Context, statuses []orderDomain.OrderStatus) ([]orderDomain.Order, error)
}

// CatalogSource supplies products for the category breakdown.
type CatalogSource interface {
	ListProducts(ctx context.Context) ([]productDomain.Product, error)
}

// DashboardSales is the legacy sales summary shape.
type DashboardSales struct {
	TotalSales  float64               `json:"totalSales"`
	BestSellers []domain.ProductSales `json:"bestSellers"`
}

// DashboardAnalytics is the legacy year/month analytics shape.
type DashboardAnalytics struct {
	SalesByYearMonth []domain.YearMonthSales `json:"salesByYearMonth"`
	TopProducts      []domain.ProductSales   `json:"topProducts"`
}

type AnalyticsService interface {
	// Report is the storefront dashboard: confirmed/delivered orders,
	// revenue recomputed from line-item snapshots, top 4 sellers.
	Report(ctx context.Context) (*domain.Report, error)
	// DashboardSales keeps the older sales widget alive: every
	// non-cancelled order, stored totals, top 5 sellers.
	DashboardSales(ctx context.Context) (*DashboardSales, error)
	DashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error)
}

type analyticsServiceImpl struct {
	orders  OrderSource
	catalog CatalogSource
	now     func() time.Time
}

func NewAnalyticsService(orders OrderSource, catalog CatalogSource) AnalyticsService {
	return &analyticsServiceImpl{orders: orders, catalog: catalog, now: time.Now}
}

var reportOptions = domain.Options{
	IncludeStatuses: []orderDomain.OrderStatus{orderDomain.StatusConfirmed, orderDomain.StatusDelivered},
	Revenue:         domain.RevenueFromItems,
	BestSellerLimit: 4,
}

var dashboardOptions = domain.Options{
	IncludeStatuses: []orderDomain.OrderStatus{
		orderDomain.StatusPending, orderDomain.StatusConfirmed,
		orderDomain.StatusShipped, orderDomain.StatusDelivered,
	},
	Revenue:         domain.RevenueStoredTotal,
	BestSellerLimit: 5,
}

func (s *analyticsServiceImpl) Report(ctx context.Context) (*domain.Report, error) {
	orders, categories, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	report := domain.Compute(s.now(), orders, categories, reportOptions)
	return &report, nil
}

func (s *analyticsServiceImpl) DashboardSales(ctx context.Context) (*DashboardSales, error) {
	orders, categories, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	report := domain.Compute(s.now(), orders, categories, dashboardOptions)
	return &DashboardSales{TotalSales: report.TotalSales, BestSellers: report.BestSellers}, nil
}

func (s *analyticsServiceImpl) DashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error) {
	orders, categories, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	report := domain.Compute(s.now(), orders, categories, dashboardOptions)
	return &DashboardAnalytics{
		SalesByYearMonth: domain.GroupSalesByYearMonth(orders, dashboardOptions),
		TopProducts:      report.BestSellers,
	}, nil
}

// load takes one snapshot of orders and the catalog. Single synchronous
// read, fail-fast: a persistence error surfaces to the caller unretried.
func (s *analyticsServiceImpl) load(ctx context.Context) ([]orderDomain.Order, map[string]string, error) {
	orders, err := s.orders.ListOrders(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load orders for analytics: %w", err)
	}
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog for analytics: %w", err)
	}
	categories := make(map[string]string, len(products))
	for _, p := range products {
		categories[p.ID] = p.Category
	}
	return orders, categories, nil
}
