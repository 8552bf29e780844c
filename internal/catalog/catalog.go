package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storepos-system/internal/database/models"
)

const (
	DASHBOARD_CACHE_KEY = "reports:dashboard"
	LOW_STOCK_CACHE_KEY = "alerts:low-stock"
)

// Service owns CRUD for products and suppliers plus the barcode uniqueness
// and price/cost validation rules.
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

type ProductInput struct {
	Name       string
	Cost       string
	Price      string
	Stock      int32
	MinStock   int32
	Category   string
	Barcode    string
	SupplierID *int64
}

type ProductPatch struct {
	Name       *string
	Cost       *string
	Price      *string
	Stock      *int32
	MinStock   *int32
	Category   *string
	SupplierID *int64
}

type SupplierInput struct {
	Name          string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
}

func (s *Service) invalidateCaches(ctx context.Context) {
	if s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, DASHBOARD_CACHE_KEY, LOW_STOCK_CACHE_KEY)
}

// validateAmounts parses cost and price and enforces price >= cost.
// Equal values are allowed.
func validateAmounts(cost, price string) (decimal.Decimal, decimal.Decimal, error) {
	c, err := decimal.NewFromString(cost)
	if err != nil || c.IsNegative() {
		return decimal.Zero, decimal.Zero, ErrInvalidAmount
	}
	p, err := decimal.NewFromString(price)
	if err != nil || p.IsNegative() {
		return decimal.Zero, decimal.Zero, ErrInvalidAmount
	}
	if p.LessThan(c) {
		return decimal.Zero, decimal.Zero, ErrPriceBelowCost
	}
	return c, p, nil
}

func barcodePtr(barcode string) *string {
	if barcode == "" {
		return nil
	}
	return &barcode
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	cost, price, err := validateAmounts(in.Cost, in.Price)
	if err != nil {
		return nil, err
	}

	minStock := in.MinStock
	if minStock <= 0 {
		minStock = 5
	}

	product := models.Product{
		Name:       in.Name,
		Cost:       cost.StringFixed(2),
		Price:      price.StringFixed(2),
		Stock:      in.Stock,
		MinStock:   minStock,
		Category:   in.Category,
		Barcode:    barcodePtr(in.Barcode),
		SupplierID: in.SupplierID,
		CreatedAt:  s.now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if product.Barcode != nil {
			var count int64
			if err := tx.Model(&models.Product{}).
				Where("barcode = ?", *product.Barcode).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateBarcode
			}
		}
		return tx.Create(&product).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx)
	return &product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, productID int64, patch ProductPatch) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if patch.Name != nil {
			product.Name = *patch.Name
		}
		if patch.Cost != nil {
			product.Cost = *patch.Cost
		}
		if patch.Price != nil {
			product.Price = *patch.Price
		}
		if patch.Stock != nil {
			product.Stock = *patch.Stock
		}
		if patch.MinStock != nil {
			product.MinStock = *patch.MinStock
		}
		if patch.Category != nil {
			product.Category = *patch.Category
		}
		if patch.SupplierID != nil {
			product.SupplierID = patch.SupplierID
		}

		cost, price, err := validateAmounts(product.Cost, product.Price)
		if err != nil {
			return err
		}
		product.Cost = cost.StringFixed(2)
		product.Price = price.StringFixed(2)

		return tx.Save(&product).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx)
	return &product, nil
}

// DeleteProduct refuses to delete a product that historical sales or
// purchase orders still reference, so the ledger never holds dangling
// foreign keys.
func (s *Service) DeleteProduct(ctx context.Context, productID int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		var saleCount int64
		if err := tx.Model(&models.Sale{}).Where("product_id = ?", productID).Count(&saleCount).Error; err != nil {
			return err
		}
		var orderCount int64
		if err := tx.Model(&models.PurchaseOrder{}).Where("product_id = ?", productID).Count(&orderCount).Error; err != nil {
			return err
		}
		if saleCount > 0 || orderCount > 0 {
			return ErrProductReferenced
		}

		if err := tx.Where("product_id = ?", productID).Delete(&models.StockAlert{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, productID).Error
	})
	if err != nil {
		return err
	}

	s.invalidateCaches(ctx)
	return nil
}

func (s *Service) GetProduct(ctx context.Context, productID int64) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Preload("Supplier").First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns all products ordered by name, optionally filtered by
// a search term matched against name and category.
func (s *Service) ListProducts(ctx context.Context, searchTerm string) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Preload("Supplier").Order("name")
	if searchTerm != "" {
		pattern := "%" + searchTerm + "%"
		query = query.Where("name LIKE ? OR category LIKE ?", pattern, pattern)
	}

	var products []models.Product
	err := query.Find(&products).Error
	return products, err
}

func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Distinct("category").
		Where("category <> ''").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (s *Service) CreateSupplier(ctx context.Context, in SupplierInput) (*models.Supplier, error) {
	supplier := models.Supplier{
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		CreatedAt:     s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (s *Service) UpdateSupplier(ctx context.Context, supplierID int64, in SupplierInput) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := s.db.WithContext(ctx).First(&supplier, supplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}

	supplier.Name = in.Name
	supplier.ContactPerson = in.ContactPerson
	supplier.Email = in.Email
	supplier.Phone = in.Phone
	supplier.Address = in.Address

	if err := s.db.WithContext(ctx).Save(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (s *Service) DeleteSupplier(ctx context.Context, supplierID int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Supplier{}, supplierID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSupplierNotFound
	}
	return nil
}

func (s *Service) GetSupplier(ctx context.Context, supplierID int64) (*models.Supplier, error) {
	var supplier models.Supplier
	err := s.db.WithContext(ctx).First(&supplier, supplierID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSupplierNotFound
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (s *Service) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := s.db.WithContext(ctx).Order("name").Find(&suppliers).Error
	return suppliers, err
}
