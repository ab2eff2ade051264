package domain

import (
	"testing"
	"time"

	orderDomain "github.com/ridloal/skincare-store-api/internal/order/domain"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

func order(id string, status orderDomain.OrderStatus, createdAt time.Time, items ...orderDomain.OrderItem) orderDomain.Order {
	var total float64
	for _, it := range items {
		total += it.LineTotal()
	}
	return orderDomain.Order{
		ID:           id,
		Items:        items,
		Total:        total,
		Status:       status,
		CustomerInfo: orderDomain.CustomerInfo{Name: "Customer " + id},
		CreatedAt:    createdAt,
	}
}

func item(productID, name string, price float64, qty int) orderDomain.OrderItem {
	return orderDomain.OrderItem{ProductID: productID, Name: name, Price: price, Quantity: qty}
}

func confirmedDeliveredOptions() Options {
	return Options{
		IncludeStatuses: []orderDomain.OrderStatus{orderDomain.StatusConfirmed, orderDomain.StatusDelivered},
		Revenue:         RevenueFromItems,
	}
}

func TestCompute_EmptyOrderSet(t *testing.T) {
	report := Compute(testNow, nil, nil, Options{})

	assert.Equal(t, 0.0, report.TotalSales)
	assert.Equal(t, 0, report.TotalOrders)
	assert.Equal(t, 0.0, report.AvgOrderValue)
	assert.Empty(t, report.BestSellers)
	assert.Empty(t, report.RecentOrders)
	assert.Empty(t, report.CategoryPerformance)
	assert.Len(t, report.SalesByMonth, 6)
	assert.Len(t, report.DailySales, 7)
	for _, s := range orderDomain.AllStatuses() {
		assert.Equal(t, 0, report.OrdersByStatus[s])
	}
}

func TestCompute_StatusFilterExcludesRevenue(t *testing.T) {
	orders := []orderDomain.Order{
		order("o1", orderDomain.StatusConfirmed, testNow.Add(-2*time.Hour),
			item("p1", "Face Mask", 100, 2)),
		order("o2", orderDomain.StatusDelivered, testNow.Add(-1*time.Hour),
			item("p2", "Serum", 50, 3)),
		order("o3", orderDomain.StatusCancelled, testNow.Add(-30*time.Minute),
			item("p1", "Face Mask", 100, 10)),
	}
	categories := map[string]string{"p1": "Masks", "p2": "Serums"}

	report := Compute(testNow, orders, categories, confirmedDeliveredOptions())

	assert.Equal(t, 350.0, report.TotalSales) // cancelled o3 excluded
	assert.Equal(t, 2, report.TotalOrders)
	assert.Equal(t, 175.0, report.AvgOrderValue)

	// o3's 10 masks must not inflate best sellers
	assert.Len(t, report.BestSellers, 2)
	assert.Equal(t, "p2", report.BestSellers[0].ProductID)
	assert.Equal(t, 3, report.BestSellers[0].Sales)
	assert.Equal(t, "p1", report.BestSellers[1].ProductID)
	assert.Equal(t, 2, report.BestSellers[1].Sales)

	assert.Equal(t, []CategorySales{
		{Category: "Masks", Sales: 2, Revenue: 200},
		{Category: "Serums", Sales: 3, Revenue: 150},
	}, report.CategoryPerformance)
}

func TestCompute_OrdersByStatusCoversUnfilteredSet(t *testing.T) {
	orders := []orderDomain.Order{
		order("o1", orderDomain.StatusConfirmed, testNow.Add(-3*time.Hour)),
		order("o2", orderDomain.StatusConfirmed, testNow.Add(-2*time.Hour)),
		order("o3", orderDomain.StatusCancelled, testNow.Add(-1*time.Hour)),
	}

	report := Compute(testNow, orders, nil, confirmedDeliveredOptions())

	assert.Equal(t, 2, report.OrdersByStatus[orderDomain.StatusConfirmed])
	assert.Equal(t, 1, report.OrdersByStatus[orderDomain.StatusCancelled])
	assert.Equal(t, 0, report.OrdersByStatus[orderDomain.StatusPending])
	assert.Equal(t, 0, report.OrdersByStatus[orderDomain.StatusShipped])
	assert.Equal(t, 0, report.OrdersByStatus[orderDomain.StatusDelivered])
}

func TestCompute_BestSellerTieKeepsGroupingOrder(t *testing.T) {
	orders := []orderDomain.Order{
		order("o1", orderDomain.StatusConfirmed, testNow.Add(-2*time.Hour),
			item("pA", "Toner", 10, 2),
			item("pB", "Cleanser", 20, 2)),
		order("o2", orderDomain.StatusConfirmed, testNow.Add(-1*time.Hour),
			item("pC", "Moisturizer", 30, 5)),
	}

	report := Compute(testNow, orders, nil, confirmedDeliveredOptions())

	// pC leads on quantity; pA and pB tie and keep first-seen order
	assert.Equal(t, []string{"pC", "pA", "pB"},
		[]string{report.BestSellers[0].ProductID, report.BestSellers[1].ProductID, report.BestSellers[2].ProductID})
}

func TestCompute_BestSellerLimit(t *testing.T) {
	items := []orderDomain.OrderItem{
		item("p1", "a", 1, 9), item("p2", "b", 1, 8), item("p3", "c", 1, 7),
		item("p4", "d", 1, 6), item("p5", "e", 1, 5), item("p6", "f", 1, 4),
	}
	orders := []orderDomain.Order{order("o1", orderDomain.StatusConfirmed, testNow, items...)}

	report := Compute(testNow, orders, nil, confirmedDeliveredOptions())
	assert.Len(t, report.BestSellers, 4) // default limit

	opts := confirmedDeliveredOptions()
	opts.BestSellerLimit = 5
	report = Compute(testNow, orders, nil, opts)
	assert.Len(t, report.BestSellers, 5)
}

func TestCompute_SalesByMonthWindow(t *testing.T) {
	thisMonth := order("recent", orderDomain.StatusConfirmed,
		time.Date(2026, time.August, 3, 9, 0, 0, 0, time.UTC),
		item("p1", "Face Mask", 100, 1))
	sevenMonthsAgo := order("ancient", orderDomain.StatusConfirmed,
		time.Date(2026, time.January, 20, 9, 0, 0, 0, time.UTC),
		item("p1", "Face Mask", 100, 1))
	lastDayOfOldestMonth := order("edge", orderDomain.StatusConfirmed,
		time.Date(2026, time.March, 31, 23, 30, 0, 0, time.UTC),
		item("p2", "Serum", 40, 1))

	report := Compute(testNow, []orderDomain.Order{thisMonth, sevenMonthsAgo, lastDayOfOldestMonth}, nil, confirmedDeliveredOptions())

	assert.Len(t, report.SalesByMonth, 6)
	// Oldest first: Mar..Aug
	assert.Equal(t, "Mar", report.SalesByMonth[0].Month)
	assert.Equal(t, "Aug", report.SalesByMonth[5].Month)

	assert.Equal(t, 40.0, report.SalesByMonth[0].Sales)  // late-month order still counts
	assert.Equal(t, 100.0, report.SalesByMonth[5].Sales) // this month
	var total float64
	for _, m := range report.SalesByMonth {
		total += m.Sales
	}
	assert.Equal(t, 140.0, total) // January order falls outside the window
}

func TestCompute_DailySalesWindow(t *testing.T) {
	today := order("t", orderDomain.StatusConfirmed,
		time.Date(2026, time.August, 15, 8, 0, 0, 0, time.UTC),
		item("p1", "Face Mask", 25, 1))
	sixDaysAgo := order("s", orderDomain.StatusConfirmed,
		time.Date(2026, time.August, 9, 23, 59, 0, 0, time.UTC),
		item("p1", "Face Mask", 25, 2))
	eightDaysAgo := order("e", orderDomain.StatusConfirmed,
		time.Date(2026, time.August, 7, 10, 0, 0, 0, time.UTC),
		item("p1", "Face Mask", 25, 4))

	report := Compute(testNow, []orderDomain.Order{today, sixDaysAgo, eightDaysAgo}, nil, confirmedDeliveredOptions())

	assert.Len(t, report.DailySales, 7)
	assert.Equal(t, 50.0, report.DailySales[0].Sales) // Aug 9, oldest bucket
	assert.Equal(t, 1, report.DailySales[0].Orders)
	assert.Equal(t, 25.0, report.DailySales[6].Sales) // today
	assert.Equal(t, 1, report.DailySales[6].Orders)

	var count int
	for _, d := range report.DailySales {
		count += d.Orders
	}
	assert.Equal(t, 2, count) // Aug 7 order outside the 7-day window
}

func TestCompute_RecentOrders(t *testing.T) {
	orders := make([]orderDomain.Order, 0, 7)
	for i := 0; i < 7; i++ {
		orders = append(orders, order(
			string(rune('a'+i)), orderDomain.StatusConfirmed,
			testNow.Add(-time.Duration(i)*time.Hour),
			item("p1", "Face Mask", 10, i+1),
		))
	}

	report := Compute(testNow, orders, nil, confirmedDeliveredOptions())

	assert.Len(t, report.RecentOrders, 5)
	assert.Equal(t, "a", report.RecentOrders[0].ID) // newest first
	assert.Equal(t, "e", report.RecentOrders[4].ID)
	assert.Equal(t, "Customer a", report.RecentOrders[0].CustomerName)
	assert.Equal(t, 10.0, report.RecentOrders[0].Amount) // recomputed from items
}

func TestCompute_RevenueSourceDivergence(t *testing.T) {
	// Stored total drifted from the line items (e.g. manual data fix)
	o := order("o1", orderDomain.StatusConfirmed, testNow, item("p1", "Face Mask", 100, 1))
	o.Total = 999

	fromItems := Compute(testNow, []orderDomain.Order{o}, nil,
		Options{Revenue: RevenueFromItems})
	fromStored := Compute(testNow, []orderDomain.Order{o}, nil,
		Options{Revenue: RevenueStoredTotal})

	assert.Equal(t, 100.0, fromItems.TotalSales)
	assert.Equal(t, 999.0, fromStored.TotalSales)
}

func TestCompute_CategorySkipsUnknownProducts(t *testing.T) {
	orders := []orderDomain.Order{
		order("o1", orderDomain.StatusConfirmed, testNow,
			item("p1", "Face Mask", 100, 1),
			item("deleted", "Gone Product", 50, 1)),
	}
	categories := map[string]string{"p1": "Masks"}

	report := Compute(testNow, orders, categories, confirmedDeliveredOptions())

	assert.Len(t, report.CategoryPerformance, 1)
	assert.Equal(t, "Masks", report.CategoryPerformance[0].Category)
	// Unknown product still counts toward revenue, just not a category
	assert.Equal(t, 150.0, report.TotalSales)
}

func TestGroupSalesByYearMonth(t *testing.T) {
	orders := []orderDomain.Order{
		order("dec", orderDomain.StatusConfirmed, time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC),
			item("p1", "Face Mask", 100, 1)),
		order("jan1", orderDomain.StatusConfirmed, time.Date(2026, time.January, 3, 0, 0, 0, 0, time.UTC),
			item("p1", "Face Mask", 100, 2)),
		order("jan2", orderDomain.StatusShipped, time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC),
			item("p2", "Serum", 50, 1)),
		order("cancelled", orderDomain.StatusCancelled, time.Date(2026, time.January, 21, 0, 0, 0, 0, time.UTC),
			item("p2", "Serum", 50, 8)),
	}

	opts := Options{
		IncludeStatuses: []orderDomain.OrderStatus{
			orderDomain.StatusPending, orderDomain.StatusConfirmed,
			orderDomain.StatusShipped, orderDomain.StatusDelivered,
		},
		Revenue: RevenueStoredTotal,
	}
	buckets := GroupSalesByYearMonth(orders, opts)

	assert.Equal(t, []YearMonthSales{
		{Year: 2025, Month: 12, Sales: 100, Orders: 1},
		{Year: 2026, Month: 1, Sales: 250, Orders: 2},
	}, buckets)
}
