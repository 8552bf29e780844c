package ledger

import (
	"context"
	"errors"
	"fmt"
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
	LOW_STOCK_CACHE_KEY    = "alerts:low-stock"
)

// Service is the sole authority for mutating product stock. Every stock
// adjustment is applied in the same transaction as the sale or purchase
// order record that justifies it.
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

type PurchaseOrderInput struct {
	SupplierID       int64
	ProductID        int64
	Quantity         int32
	CostPerUnit      string
	ExpectedDelivery *string
	Notes            *string
}

func (s *Service) invalidateCaches(ctx context.Context) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, DASHBOARD_CACHE_KEY, SALES_CHART_CACHE_KEY, TOP_PRODUCTS_CACHE_KEY, LOW_STOCK_CACHE_KEY)
}

// RecordSale inserts a sale row and decrements the product stock in one
// transaction. The decrement is a conditional update so that two concurrent
// sales cannot oversell the same stock.
func (s *Service) RecordSale(ctx context.Context, productID int64, quantity int32) (*models.Sale, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var sale models.Sale
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", productID, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		price, err := decimal.NewFromString(product.Price)
		if err != nil {
			return fmt.Errorf("invalid price on product %d: %w", product.ID, err)
		}

		sale = models.Sale{
			ProductID:   product.ID,
			Quantity:    quantity,
			TotalAmount: price.Mul(decimal.NewFromInt32(quantity)).StringFixed(2),
			SaleTime:    s.now(),
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx)
	return &sale, nil
}

// CreatePurchaseOrder inserts a pending order. Stock is untouched until the
// order is received.
func (s *Service) CreatePurchaseOrder(ctx context.Context, in PurchaseOrderInput) (*models.PurchaseOrder, error) {
	if in.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	costPerUnit, err := decimal.NewFromString(in.CostPerUnit)
	if err != nil || costPerUnit.IsNegative() {
		return nil, ErrInvalidCost
	}

	var order models.PurchaseOrder
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var supplier models.Supplier
		if err := tx.First(&supplier, in.SupplierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSupplierNotFound
			}
			return err
		}
		var product models.Product
		if err := tx.First(&product, in.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		order = models.PurchaseOrder{
			SupplierID:       in.SupplierID,
			ProductID:        in.ProductID,
			Quantity:         in.Quantity,
			CostPerUnit:      costPerUnit.StringFixed(2),
			TotalCost:        costPerUnit.Mul(decimal.NewFromInt32(in.Quantity)).StringFixed(2),
			Status:           models.OrderStatusPending,
			OrderDate:        s.now(),
			ExpectedDelivery: in.ExpectedDelivery,
			Notes:            in.Notes,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// ReceivePurchaseOrder moves a pending order to received and increments the
// product stock by the ordered quantity. The status flip is a conditional
// update on status=pending, so an order can be received exactly once;
// received and cancelled orders are rejected.
func (s *Service) ReceivePurchaseOrder(ctx context.Context, orderID int64) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		receivedAt := s.now()
		res := tx.Model(&models.PurchaseOrder{}).
			Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
			Updates(map[string]interface{}{
				"status":        models.OrderStatusReceived,
				"received_date": receivedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidOrderState
		}

		if err := tx.Model(&models.Product{}).
			Where("id = ?", order.ProductID).
			Update("stock", gorm.Expr("stock + ?", order.Quantity)).Error; err != nil {
			return err
		}

		order.Status = models.OrderStatusReceived
		order.ReceivedDate = &receivedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx)
	return &order, nil
}

// CancelPurchaseOrder marks a pending order cancelled. No stock effect.
// Cancelling an already cancelled order is harmless; cancelling a received
// order is rejected because the stock increment has already happened.
func (s *Service) CancelPurchaseOrder(ctx context.Context, orderID int64) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Status == models.OrderStatusReceived {
			return ErrInvalidOrderState
		}
		if order.Status == models.OrderStatusCancelled {
			return nil
		}

		order.Status = models.OrderStatusCancelled
		return tx.Model(&models.PurchaseOrder{}).
			Where("id = ?", orderID).
			Update("status", models.OrderStatusCancelled).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (s *Service) GetPurchaseOrder(ctx context.Context, orderID int64) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	err := s.db.WithContext(ctx).Preload("Supplier").Preload("Product").First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Service) ListPurchaseOrders(ctx context.Context) ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	err := s.db.WithContext(ctx).
		Preload("Supplier").Preload("Product").
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

// ListSales returns the most recent sales, newest first, capped at limit.
func (s *Service) ListSales(ctx context.Context, limit int) ([]models.Sale, error) {
	if limit <= 0 {
		limit = 100
	}
	var sales []models.Sale
	err := s.db.WithContext(ctx).
		Preload("Product").
		Order("sale_time DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}
