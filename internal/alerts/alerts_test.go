package alerts_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storepos-system/internal/alerts"
	"storepos-system/internal/database"
	"storepos-system/internal/database/models"
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

func seedProduct(t *testing.T, db *gorm.DB, name string, stock, minStock int32) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Cost:     "1.00",
		Price:    "2.00",
		Stock:    stock,
		MinStock: minStock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestListLowStock(t *testing.T) {
	db := setupDB(t)
	svc := alerts.NewService(db, nil)
	ctx := context.Background()

	seedProduct(t, db, "Plenty", 50, 5)
	atBoundary := seedProduct(t, db, "Boundary", 5, 5)
	nearlyOut := seedProduct(t, db, "Nearly out", 1, 5)

	low, err := svc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)

	// most urgent first
	require.Equal(t, nearlyOut.ID, low[0].ID)
	require.Equal(t, atBoundary.ID, low[1].ID, "stock equal to min_stock counts as low")
}

func TestListLowStock_Empty(t *testing.T) {
	db := setupDB(t)
	svc := alerts.NewService(db, nil)

	seedProduct(t, db, "Plenty", 50, 5)

	low, err := svc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Empty(t, low)
}

func TestSetThreshold_CreatesRow(t *testing.T) {
	db := setupDB(t)
	svc := alerts.NewService(db, nil)
	ctx := context.Background()

	product := seedProduct(t, db, "Widget", 10, 5)

	alert, err := svc.SetThreshold(ctx, product.ID, 8)
	require.NoError(t, err)
	require.Equal(t, product.ID, alert.ProductID)
	require.Equal(t, int32(8), alert.AlertThreshold)
	require.True(t, alert.IsActive)
}

func TestSetThreshold_UpsertsSingleRow(t *testing.T) {
	db := setupDB(t)
	svc := alerts.NewService(db, nil)
	ctx := context.Background()

	product := seedProduct(t, db, "Widget", 10, 5)

	first, err := svc.SetThreshold(ctx, product.ID, 8)
	require.NoError(t, err)

	// deactivate, then set again: the same row comes back active
	require.NoError(t, db.Model(&models.StockAlert{}).
		Where("id = ?", first.ID).
		Update("is_active", false).Error)

	second, err := svc.SetThreshold(ctx, product.ID, 3)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, int32(3), second.AlertThreshold)
	require.True(t, second.IsActive)

	var count int64
	require.NoError(t, db.Model(&models.StockAlert{}).
		Where("product_id = ?", product.ID).
		Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSetThreshold_Validation(t *testing.T) {
	db := setupDB(t)
	svc := alerts.NewService(db, nil)
	ctx := context.Background()

	product := seedProduct(t, db, "Widget", 10, 5)

	_, err := svc.SetThreshold(ctx, product.ID, -1)
	require.ErrorIs(t, err, alerts.ErrInvalidThreshold)

	_, err = svc.SetThreshold(ctx, 999, 5)
	require.ErrorIs(t, err, alerts.ErrProductNotFound)
}

func TestListSettings(t *testing.T) {
	db := setupDB(t)
	svc := alerts.NewService(db, nil)
	ctx := context.Background()

	zebra := seedProduct(t, db, "Zebra Mints", 10, 5)
	apple := seedProduct(t, db, "Apple Juice", 10, 5)

	_, err := svc.SetThreshold(ctx, zebra.ID, 4)
	require.NoError(t, err)
	_, err = svc.SetThreshold(ctx, apple.ID, 6)
	require.NoError(t, err)

	settings, err := svc.ListSettings(ctx)
	require.NoError(t, err)
	require.Len(t, settings, 2)

	// ordered by product name
	require.Equal(t, "Apple Juice", settings[0].Product.Name)
	require.Equal(t, int32(6), settings[0].Alert.AlertThreshold)
	require.Equal(t, "Zebra Mints", settings[1].Product.Name)
	require.Equal(t, int32(4), settings[1].Alert.AlertThreshold)
}
