package reports_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storepos-system/internal/database"
	"storepos-system/internal/database/models"
	"storepos-system/internal/reports"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, cost, price string, stock, minStock int32) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:      name,
		Cost:      cost,
		Price:     price,
		Stock:     stock,
		MinStock:  minStock,
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedSale(t *testing.T, db *gorm.DB, productID int64, quantity int32, total string, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Sale{
		ProductID:   productID,
		Quantity:    quantity,
		TotalAmount: total,
		SaleTime:    at,
	}).Error)
}

func requireAmount(t *testing.T, want string, got string) {
	t.Helper()
	wantDec := decimal.RequireFromString(want)
	gotDec := decimal.RequireFromString(got)
	require.True(t, wantDec.Equal(gotDec), "amount mismatch: want %s, got %s", want, got)
}

func TestDashboard(t *testing.T) {
	db := setupDB(t)
	svc := reports.NewService(db, nil)
	ctx := context.Background()

	widget := seedProduct(t, db, "Widget", "2.00", "10.00", 3, 5)
	gadget := seedProduct(t, db, "Gadget", "4.00", "6.00", 50, 5)

	now := time.Now()
	seedSale(t, db, widget.ID, 3, "30.00", now)
	seedSale(t, db, gadget.ID, 2, "12.00", now.AddDate(0, 0, -3))

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	require.Equal(t, int64(2), dash.TotalProducts)
	require.Equal(t, int64(5), dash.TotalUnitsSold)
	require.Equal(t, int64(1), dash.LowStockCount)
	requireAmount(t, "42.00", dash.TotalRevenue)
	// profit = 3*(10-2) + 2*(6-4)
	requireAmount(t, "28.00", dash.TotalProfit)
	require.Equal(t, int64(3), dash.TodayItems)
	requireAmount(t, "30.00", dash.TodayValue)

	require.Len(t, dash.TopProducts, 2)
	require.Equal(t, "Widget", dash.TopProducts[0].Name)
	require.Equal(t, int64(3), dash.TopProducts[0].Quantity)
}

func TestDashboard_Empty(t *testing.T) {
	db := setupDB(t)
	svc := reports.NewService(db, nil)

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(0), dash.TotalProducts)
	requireAmount(t, "0.00", dash.TotalRevenue)
	requireAmount(t, "0.00", dash.TotalProfit)
	require.Empty(t, dash.TopProducts)
}

func TestSalesChart(t *testing.T) {
	db := setupDB(t)
	svc := reports.NewService(db, nil)
	ctx := context.Background()

	widget := seedProduct(t, db, "Widget", "2.00", "10.00", 20, 5)

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	seedSale(t, db, widget.ID, 1, "10.00", yesterday)
	seedSale(t, db, widget.ID, 2, "20.00", now)
	seedSale(t, db, widget.ID, 1, "10.00", now)
	// outside the 7-day window
	seedSale(t, db, widget.ID, 5, "50.00", now.AddDate(0, 0, -10))

	chart, err := svc.SalesChart(ctx)
	require.NoError(t, err)

	require.Equal(t, []string{
		yesterday.Format("2006-01-02"),
		now.Format("2006-01-02"),
	}, chart.Dates)
	require.Equal(t, []float64{10, 30}, chart.Revenues)
}

func TestTopProducts(t *testing.T) {
	db := setupDB(t)
	svc := reports.NewService(db, nil)
	ctx := context.Background()

	widget := seedProduct(t, db, "Widget", "2.00", "10.00", 20, 5)
	gadget := seedProduct(t, db, "Gadget", "4.00", "6.00", 20, 5)

	now := time.Now()
	seedSale(t, db, widget.ID, 2, "20.00", now)
	seedSale(t, db, gadget.ID, 4, "24.00", now)
	seedSale(t, db, gadget.ID, 3, "18.00", now)

	top, err := svc.TopProducts(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Gadget", "Widget"}, top.Products)
	require.Equal(t, []int64{7, 2}, top.Quantities)
}

func TestExportSalesCSV(t *testing.T) {
	db := setupDB(t)
	svc := reports.NewService(db, nil)
	ctx := context.Background()

	widget := seedProduct(t, db, "Widget", "2.00", "10.00", 20, 5)
	now := time.Now()
	seedSale(t, db, widget.ID, 3, "30.00", now)
	seedSale(t, db, widget.ID, 1, "10.00", now.Add(-time.Hour))

	var buf bytes.Buffer
	require.NoError(t, svc.ExportSalesCSV(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, []string{"Sale Time", "Product Name", "Quantity", "Price", "Total"}, records[0])

	// newest first
	require.Equal(t, "Widget", records[1][1])
	require.Equal(t, "3", records[1][2])
	requireAmount(t, "30.00", records[1][4])
	require.Equal(t, "1", records[2][2])
}

func TestExportInventoryCSV(t *testing.T) {
	db := setupDB(t)
	svc := reports.NewService(db, nil)
	ctx := context.Background()

	barcode := "4006381333931"
	product := seedProduct(t, db, "Widget", "2.00", "10.00", 20, 5)
	require.NoError(t, db.Model(product).Updates(map[string]interface{}{
		"category": "Misc",
		"barcode":  barcode,
	}).Error)
	seedProduct(t, db, "Gadget", "4.00", "6.00", 50, 5)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportInventoryCSV(ctx, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, []string{"ID", "Name", "Cost", "Price", "Stock", "Category", "Barcode", "Created At"}, records[0])

	require.Equal(t, "Widget", records[1][1])
	require.Equal(t, "20", records[1][4])
	require.Equal(t, "Misc", records[1][5])
	require.Equal(t, barcode, records[1][6])

	require.Equal(t, "Gadget", records[2][1])
	require.Equal(t, "", records[2][6], "missing barcode exports as empty")
}
