package reports

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storepos-system/internal/database/models"
)

const (
	DASHBOARD_CACHE_KEY    = "reports:dashboard"
	SALES_CHART_CACHE_KEY  = "reports:sales-chart"
	TOP_PRODUCTS_CACHE_KEY = "reports:top-products"
	CACHE_TTL_SHORT        = 5 * time.Minute
)

// Service produces the dashboard, the two chart series and the CSV exports.
// Everything here is read-only; the ledger and catalog invalidate the
// cached results when they write.
type Service struct {
	db    *gorm.DB
	redis *redis.Client
	now   func() time.Time
}

func NewService(db *gorm.DB, redisClient *redis.Client) *Service {
	return &Service{
		db:    db,
		redis: redisClient,
		now:   time.Now,
	}
}

type ProductSales struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Revenue  string `json:"revenue"`
}

type Dashboard struct {
	TotalProducts  int64          `json:"total_products"`
	TotalUnitsSold int64          `json:"total_units_sold"`
	TodayItems     int64          `json:"today_items"`
	TodayValue     string         `json:"today_value"`
	TotalRevenue   string         `json:"total_revenue"`
	TotalProfit    string         `json:"total_profit"`
	LowStockCount  int64          `json:"low_stock_count"`
	TopProducts    []ProductSales `json:"top_products"`
}

type SalesChart struct {
	Dates    []string  `json:"dates"`
	Revenues []float64 `json:"revenues"`
}

type TopProducts struct {
	Products   []string `json:"products"`
	Quantities []int64  `json:"quantities"`
}

func (s *Service) cached(ctx context.Context, key string, out interface{}) bool {
	if s.redis == nil {
		return false
	}
	payload, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(payload), out) == nil
}

func (s *Service) cache(ctx context.Context, key string, v interface{}) {
	if s.redis == nil {
		return
	}
	if payload, err := json.Marshal(v); err == nil {
		_ = s.redis.Set(ctx, key, payload, CACHE_TTL_SHORT)
	}
}

// Dashboard aggregates the store-wide totals. Revenue and profit are summed
// with decimals over the sale snapshots rather than in SQL, so the money
// math matches the ledger's to the cent.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var dash Dashboard
	if s.cached(ctx, DASHBOARD_CACHE_KEY, &dash) {
		return &dash, nil
	}

	if err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&dash.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("stock <= min_stock").Count(&dash.LowStockCount).Error; err != nil {
		return nil, err
	}

	var sales []models.Sale
	if err := s.db.WithContext(ctx).Preload("Product").Find(&sales).Error; err != nil {
		return nil, err
	}

	today := s.now().Format("2006-01-02")
	revenue := decimal.Zero
	profit := decimal.Zero
	todayValue := decimal.Zero

	for _, sale := range sales {
		dash.TotalUnitsSold += int64(sale.Quantity)

		total, err := decimal.NewFromString(sale.TotalAmount)
		if err != nil {
			return nil, fmt.Errorf("invalid total on sale %d: %w", sale.ID, err)
		}
		revenue = revenue.Add(total)

		if sale.SaleTime.Format("2006-01-02") == today {
			dash.TodayItems += int64(sale.Quantity)
			todayValue = todayValue.Add(total)
		}

		if sale.Product != nil {
			price, perr := decimal.NewFromString(sale.Product.Price)
			cost, cerr := decimal.NewFromString(sale.Product.Cost)
			if perr == nil && cerr == nil {
				margin := price.Sub(cost).Mul(decimal.NewFromInt32(sale.Quantity))
				profit = profit.Add(margin)
			}
		}
	}

	dash.TotalRevenue = revenue.StringFixed(2)
	dash.TotalProfit = profit.StringFixed(2)
	dash.TodayValue = todayValue.StringFixed(2)

	top, err := s.topProductSales(ctx, 10)
	if err != nil {
		return nil, err
	}
	dash.TopProducts = top

	s.cache(ctx, DASHBOARD_CACHE_KEY, &dash)
	return &dash, nil
}

// SalesChart returns revenue per day for the last 7 days, oldest first.
func (s *Service) SalesChart(ctx context.Context) (*SalesChart, error) {
	var chart SalesChart
	if s.cached(ctx, SALES_CHART_CACHE_KEY, &chart) {
		return &chart, nil
	}

	since := s.now().AddDate(0, 0, -7)
	var sales []models.Sale
	if err := s.db.WithContext(ctx).
		Where("sale_time >= ?", since).
		Find(&sales).Error; err != nil {
		return nil, err
	}

	byDay := map[string]decimal.Decimal{}
	for _, sale := range sales {
		total, err := decimal.NewFromString(sale.TotalAmount)
		if err != nil {
			return nil, fmt.Errorf("invalid total on sale %d: %w", sale.ID, err)
		}
		day := sale.SaleTime.Format("2006-01-02")
		byDay[day] = byDay[day].Add(total)
	}

	dates := make([]string, 0, len(byDay))
	for day := range byDay {
		dates = append(dates, day)
	}
	sort.Strings(dates)

	chart.Dates = dates
	chart.Revenues = make([]float64, len(dates))
	for i, day := range dates {
		chart.Revenues[i] = byDay[day].InexactFloat64()
	}

	s.cache(ctx, SALES_CHART_CACHE_KEY, &chart)
	return &chart, nil
}

// TopProducts returns the five best sellers by quantity.
func (s *Service) TopProducts(ctx context.Context) (*TopProducts, error) {
	var top TopProducts
	if s.cached(ctx, TOP_PRODUCTS_CACHE_KEY, &top) {
		return &top, nil
	}

	rows, err := s.topProductSales(ctx, 5)
	if err != nil {
		return nil, err
	}

	top.Products = make([]string, len(rows))
	top.Quantities = make([]int64, len(rows))
	for i, row := range rows {
		top.Products[i] = row.Name
		top.Quantities[i] = row.Quantity
	}

	s.cache(ctx, TOP_PRODUCTS_CACHE_KEY, &top)
	return &top, nil
}

func (s *Service) topProductSales(ctx context.Context, limit int) ([]ProductSales, error) {
	type row struct {
		Name      string
		TotalSold int64
		Revenue   float64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&models.Sale{}).
		Select("products.name AS name, SUM(sales.quantity) AS total_sold, SUM(sales.total_amount) AS revenue").
		Joins("JOIN products ON products.id = sales.product_id").
		Group("products.id, products.name").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]ProductSales, len(rows))
	for i, r := range rows {
		out[i] = ProductSales{
			Name:     r.Name,
			Quantity: r.TotalSold,
			Revenue:  decimal.NewFromFloat(r.Revenue).StringFixed(2),
		}
	}
	return out, nil
}

// ExportSalesCSV writes the full sales ledger, newest first.
func (s *Service) ExportSalesCSV(ctx context.Context, w io.Writer) error {
	var sales []models.Sale
	if err := s.db.WithContext(ctx).
		Preload("Product").
		Order("sale_time DESC").
		Find(&sales).Error; err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Sale Time", "Product Name", "Quantity", "Price", "Total"}); err != nil {
		return err
	}
	for _, sale := range sales {
		name, price := "", ""
		if sale.Product != nil {
			name = sale.Product.Name
			price = sale.Product.Price
		}
		record := []string{
			sale.SaleTime.Format("2006-01-02 15:04:05"),
			name,
			strconv.FormatInt(int64(sale.Quantity), 10),
			price,
			sale.TotalAmount,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportInventoryCSV writes the current product snapshot.
func (s *Service) ExportInventoryCSV(ctx context.Context, w io.Writer) error {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Name", "Cost", "Price", "Stock", "Category", "Barcode", "Created At"}); err != nil {
		return err
	}
	for _, p := range products {
		barcode := ""
		if p.Barcode != nil {
			barcode = *p.Barcode
		}
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Cost,
			p.Price,
			strconv.FormatInt(int64(p.Stock), 10),
			p.Category,
			barcode,
			p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
