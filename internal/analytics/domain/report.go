package domain

import (
	"sort"
	"time"

	orderDomain "github.com/ridloal/skincare-store-api/internal/order/domain"
)

// RevenueSource picks where an order's revenue figure comes from. The two
// sources can disagree after a data fix that touches items but not the
// stored total; each endpoint states which one it reports.
type RevenueSource int

const (
	// RevenueFromItems recomputes revenue as the sum of snapshot line
	// totals (price-at-purchase times quantity).
	RevenueFromItems RevenueSource = iota
	// RevenueStoredTotal reuses the total computed at order creation.
	RevenueStoredTotal
)

const (
	defaultBestSellerLimit = 4
	recentOrderLimit       = 5
	trailingMonths         = 6
	trailingDays           = 7
)

type Options struct {
	// IncludeStatuses restricts the revenue-bearing order set. Empty
	// means every order counts.
	IncludeStatuses []orderDomain.OrderStatus
	Revenue         RevenueSource
	// BestSellerLimit defaults to 4 when zero.
	BestSellerLimit int
}

type MonthlySales struct {
	Month string  `json:"month"`
	Year  int     `json:"year"`
	Sales float64 `json:"sales"`
}

type DailySales struct {
	Day    string  `json:"day"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

type ProductSales struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Sales     int     `json:"sales"`
	Revenue   float64 `json:"revenue"`
}

type OrderSummary struct {
	ID           string                  `json:"id"`
	CustomerName string                  `json:"customerName"`
	Amount       float64                 `json:"amount"`
	Status       orderDomain.OrderStatus `json:"status"`
	CreatedAt    time.Time               `json:"createdAt"`
}

type CategorySales struct {
	Category string  `json:"category"`
	Sales    int     `json:"sales"`
	Revenue  float64 `json:"revenue"`
}

type Report struct {
	TotalSales          float64                         `json:"totalSales"`
	TotalOrders         int                             `json:"totalOrders"`
	AvgOrderValue       float64                         `json:"avgOrderValue"`
	SalesByMonth        []MonthlySales                  `json:"salesByMonth"`
	DailySales          []DailySales                    `json:"dailySales"`
	BestSellers         []ProductSales                  `json:"bestSellers"`
	OrdersByStatus      map[orderDomain.OrderStatus]int `json:"ordersByStatus"`
	RecentOrders        []OrderSummary                  `json:"recentOrders"`
	CategoryPerformance []CategorySales                 `json:"categoryPerformance"`
}

// Compute derives the full analytics report from an order snapshot. It is
// a pure function of its inputs: orders is the complete order set,
// categories maps product id to category for the category breakdown, and
// now anchors the trailing month/day windows.
//
// OrdersByStatus is always computed over the complete set so the status
// breakdown stays meaningful regardless of the revenue filter; every
// other figure covers only the orders opts.IncludeStatuses admits.
func Compute(now time.Time, orders []orderDomain.Order, categories map[string]string, opts Options) Report {
	included := filterByStatus(orders, opts.IncludeStatuses)

	report := Report{
		TotalOrders:    len(included),
		OrdersByStatus: countByStatus(orders),
	}

	for _, o := range included {
		report.TotalSales += orderRevenue(o, opts.Revenue)
	}
	if report.TotalOrders > 0 {
		report.AvgOrderValue = report.TotalSales / float64(report.TotalOrders)
	}

	report.SalesByMonth = monthlySales(now, included, opts.Revenue)
	report.DailySales = dailySales(now, included, opts.Revenue)
	report.BestSellers = bestSellers(included, opts.BestSellerLimit)
	report.RecentOrders = recentOrders(included)
	report.CategoryPerformance = categoryPerformance(included, categories)
	return report
}

// YearMonthSales is the legacy dashboard grouping: all-time revenue per
// calendar year/month.
type YearMonthSales struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

// GroupSalesByYearMonth buckets the given orders by calendar year and
// month, oldest first, using the same status filter and revenue source
// semantics as Compute.
func GroupSalesByYearMonth(orders []orderDomain.Order, opts Options) []YearMonthSales {
	included := filterByStatus(orders, opts.IncludeStatuses)

	type key struct{ year, month int }
	buckets := map[key]*YearMonthSales{}
	order := []key{}
	for _, o := range included {
		k := key{o.CreatedAt.Year(), int(o.CreatedAt.Month())}
		b, ok := buckets[k]
		if !ok {
			b = &YearMonthSales{Year: k.year, Month: k.month}
			buckets[k] = b
			order = append(order, k)
		}
		b.Sales += orderRevenue(o, opts.Revenue)
		b.Orders++
	}

	out := make([]YearMonthSales, 0, len(order))
	for _, k := range order {
		out = append(out, *buckets[k])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

func filterByStatus(orders []orderDomain.Order, statuses []orderDomain.OrderStatus) []orderDomain.Order {
	if len(statuses) == 0 {
		return orders
	}
	allowed := make(map[orderDomain.OrderStatus]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	included := []orderDomain.Order{}
	for _, o := range orders {
		if allowed[o.Status] {
			included = append(included, o)
		}
	}
	return included
}

func orderRevenue(o orderDomain.Order, source RevenueSource) float64 {
	if source == RevenueStoredTotal {
		return o.Total
	}
	return itemsRevenue(o)
}

func itemsRevenue(o orderDomain.Order) float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.LineTotal()
	}
	return sum
}

func countByStatus(orders []orderDomain.Order) map[orderDomain.OrderStatus]int {
	counts := make(map[orderDomain.OrderStatus]int, len(orderDomain.AllStatuses()))
	for _, s := range orderDomain.AllStatuses() {
		counts[s] = 0
	}
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts
}

// monthlySales covers the trailing six calendar months, oldest first,
// current month included. Each bucket spans the whole month.
func monthlySales(now time.Time, orders []orderDomain.Order, source RevenueSource) []MonthlySales {
	out := make([]MonthlySales, 0, trailingMonths)
	for i := trailingMonths - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		var sales float64
		for _, o := range orders {
			if !o.CreatedAt.Before(start) && o.CreatedAt.Before(end) {
				sales += orderRevenue(o, source)
			}
		}
		out = append(out, MonthlySales{Month: start.Format("Jan"), Year: start.Year(), Sales: sales})
	}
	return out
}

// dailySales covers the trailing seven calendar days, oldest first, with
// [dayStart, nextDayStart) buckets.
func dailySales(now time.Time, orders []orderDomain.Order, source RevenueSource) []DailySales {
	out := make([]DailySales, 0, trailingDays)
	for i := trailingDays - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -i)
		end := start.AddDate(0, 0, 1)

		bucket := DailySales{Day: start.Format("Mon")}
		for _, o := range orders {
			if !o.CreatedAt.Before(start) && o.CreatedAt.Before(end) {
				bucket.Sales += orderRevenue(o, source)
				bucket.Orders++
			}
		}
		out = append(out, bucket)
	}
	return out
}

// bestSellers groups line items by product, sums quantity and snapshot
// revenue, and returns the top sellers by quantity. Ties keep
// first-grouped order.
func bestSellers(orders []orderDomain.Order, limit int) []ProductSales {
	if limit <= 0 {
		limit = defaultBestSellerLimit
	}

	byProduct := map[string]*ProductSales{}
	seen := []string{}
	for _, o := range orders {
		for _, item := range o.Items {
			ps, ok := byProduct[item.ProductID]
			if !ok {
				ps = &ProductSales{ProductID: item.ProductID, Name: item.Name}
				byProduct[item.ProductID] = ps
				seen = append(seen, item.ProductID)
			}
			ps.Sales += item.Quantity
			ps.Revenue += item.LineTotal()
		}
	}

	ranked := make([]ProductSales, 0, len(seen))
	for _, id := range seen {
		ranked = append(ranked, *byProduct[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Sales > ranked[j].Sales })

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// recentOrders reduces the five most recent orders to the dashboard row
// shape. Amount is always recomputed from line items.
func recentOrders(orders []orderDomain.Order) []OrderSummary {
	sorted := make([]orderDomain.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })

	if len(sorted) > recentOrderLimit {
		sorted = sorted[:recentOrderLimit]
	}
	out := make([]OrderSummary, 0, len(sorted))
	for _, o := range sorted {
		out = append(out, OrderSummary{
			ID:           o.ID,
			CustomerName: o.CustomerInfo.Name,
			Amount:       itemsRevenue(o),
			Status:       o.Status,
			CreatedAt:    o.CreatedAt,
		})
	}
	return out
}

// categoryPerformance groups line items by the referenced product's
// category, descending by revenue. Items whose product has no catalog
// entry anymore are skipped; their category is unknowable.
func categoryPerformance(orders []orderDomain.Order, categories map[string]string) []CategorySales {
	byCategory := map[string]*CategorySales{}
	seen := []string{}
	for _, o := range orders {
		for _, item := range o.Items {
			category, ok := categories[item.ProductID]
			if !ok || category == "" {
				continue
			}
			cs, found := byCategory[category]
			if !found {
				cs = &CategorySales{Category: category}
				byCategory[category] = cs
				seen = append(seen, category)
			}
			cs.Sales += item.Quantity
			cs.Revenue += item.LineTotal()
		}
	}

	ranked := make([]CategorySales, 0, len(seen))
	for _, c := range seen {
		ranked = append(ranked, *byCategory[c])
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Revenue > ranked[j].Revenue })
	return ranked
}
