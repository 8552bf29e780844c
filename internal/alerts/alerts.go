package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"storepos-system/internal/database/models"
)

const (
	LOW_STOCK_CACHE_KEY = "alerts:low-stock"
	CACHE_TTL_SHORT     = 5 * time.Minute
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidThreshold = errors.New("threshold must be >= 0")
)

// Service derives low-stock status from current stock levels and maintains
// per-product alert thresholds. Low-stock derivation is stateless and
// recomputed on read.
type Service struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewService(db *gorm.DB, redisClient *redis.Client) *Service {
	return &Service{
		db:    db,
		redis: redisClient,
	}
}

// AlertSetting is a stock alert row joined with its product, for the alert
// settings screen.
type AlertSetting struct {
	Alert   models.StockAlert `json:"alert"`
	Product models.Product    `json:"product"`
}

// ListLowStock returns products with stock at or below their min_stock,
// most urgent first. The per-product min_stock is intentionally independent
// of the stock_alerts threshold.
func (s *Service) ListLowStock(ctx context.Context) ([]models.Product, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, LOW_STOCK_CACHE_KEY).Result(); err == nil {
			var products []models.Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
		}
	}

	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Supplier").
		Where("stock <= min_stock").
		Order("stock ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(products); err == nil {
			_ = s.redis.Set(ctx, LOW_STOCK_CACHE_KEY, payload, CACHE_TTL_SHORT)
		}
	}

	return products, nil
}

// SetThreshold upserts the alert configuration for a product: an existing
// row gets the new threshold and is reactivated, otherwise a row is
// inserted. Callers must go through this instead of inserting directly so a
// product never ends up with duplicate alert rows.
func (s *Service) SetThreshold(ctx context.Context, productID int64, threshold int32) (*models.StockAlert, error) {
	if threshold < 0 {
		return nil, ErrInvalidThreshold
	}

	var alert models.StockAlert
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		err := tx.Where("product_id = ?", productID).First(&alert).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			alert = models.StockAlert{
				ProductID:      productID,
				AlertThreshold: threshold,
				IsActive:       true,
			}
			return tx.Create(&alert).Error
		}
		if err != nil {
			return err
		}

		alert.AlertThreshold = threshold
		alert.IsActive = true
		return tx.Save(&alert).Error
	})
	if err != nil {
		return nil, err
	}

	return &alert, nil
}

// ListSettings returns all alert configurations with their products,
// ordered by product name.
func (s *Service) ListSettings(ctx context.Context) ([]AlertSetting, error) {
	var alerts []models.StockAlert
	err := s.db.WithContext(ctx).
		Preload("Product").
		Joins("JOIN products ON products.id = stock_alerts.product_id").
		Order("products.name").
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}

	settings := make([]AlertSetting, 0, len(alerts))
	for _, a := range alerts {
		setting := AlertSetting{Alert: a}
		if a.Product != nil {
			setting.Product = *a.Product
		}
		setting.Alert.Product = nil
		settings = append(settings, setting)
	}
	return settings, nil
}
