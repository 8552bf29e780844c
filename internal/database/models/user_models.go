package models

import "time"

type User struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"size:50;not null;default:'user'"`
	LastLogin *time.Time
	CreatedAt time.Time
}
