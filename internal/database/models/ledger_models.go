package models

import "time"

// Purchase order status values. Received and cancelled are terminal.
const (
	OrderStatusPending   = "pending"
	OrderStatusReceived  = "received"
	OrderStatusCancelled = "cancelled"
)

// Sale is immutable once created. TotalAmount snapshots quantity times the
// product price at sale time and is never recomputed.
type Sale struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	ProductID   int64  `gorm:"index;not null"`
	Quantity    int32  `gorm:"not null"`
	TotalAmount string `gorm:"type:decimal(18,2);not null"`
	SaleTime    time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

type PurchaseOrder struct {
	ID               int64  `gorm:"primaryKey;autoIncrement"`
	SupplierID       int64  `gorm:"index;not null"`
	ProductID        int64  `gorm:"index;not null"`
	Quantity         int32  `gorm:"not null"`
	CostPerUnit      string `gorm:"type:decimal(18,2);not null"`
	TotalCost        string `gorm:"type:decimal(18,2);not null"`
	Status           string `gorm:"size:20;not null;default:'pending'"`
	OrderDate        time.Time
	ExpectedDelivery *string `gorm:"size:50"`
	ReceivedDate     *time.Time
	Notes            *string `gorm:"type:text"`

	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
	Product  *Product  `gorm:"foreignKey:ProductID"`
}

type StockAlert struct {
	ID             int64 `gorm:"primaryKey;autoIncrement"`
	ProductID      int64 `gorm:"index;not null"`
	AlertThreshold int32 `gorm:"not null;default:5"`
	IsActive       bool  `gorm:"not null;default:true"`
	LastAlertSent  *time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
