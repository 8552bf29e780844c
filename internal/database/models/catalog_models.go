package models

import "time"

type Product struct {
	ID         int64   `gorm:"primaryKey;autoIncrement"`
	Name       string  `gorm:"size:255;not null"`
	Cost       string  `gorm:"type:decimal(18,2);not null"`
	Price      string  `gorm:"type:decimal(18,2);not null"`
	Stock      int32   `gorm:"not null"`
	MinStock   int32   `gorm:"not null;default:5"`
	Category   string  `gorm:"size:100"`
	Barcode    *string `gorm:"size:100;uniqueIndex"`
	SupplierID *int64
	CreatedAt  time.Time

	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}

type Supplier struct {
	ID            int64   `gorm:"primaryKey;autoIncrement"`
	Name          string  `gorm:"size:255;not null"`
	ContactPerson *string `gorm:"size:100"`
	Email         *string `gorm:"size:100"`
	Phone         *string `gorm:"size:50"`
	Address       *string `gorm:"size:255"`
	CreatedAt     time.Time

	Products []Product `gorm:"foreignKey:SupplierID"`
}
