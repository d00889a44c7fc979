package models

import (
	"time"

	"gorm.io/gorm"
)

// SupplierModel represents the database persistence model for suppliers.
// This is the anti-corruption layer between domain and database.
type SupplierModel struct {
	ID           uint   `gorm:"primarykey"`
	SID          string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: sup_xxx"`
	BusinessName string `gorm:"not null;size:200"`
	ContactName  string `gorm:"size:200"`
	Email        string `gorm:"not null;size:255;index"`
	RNC          string `gorm:"size:20;index;comment:Dominican tax registry number"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}
