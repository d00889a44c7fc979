package models

import (
	"time"

	"gorm.io/gorm"
)

// PlanUsageModel represents the database persistence model for monthly
// usage counters. One row per (supplier, month); counters only grow.
type PlanUsageModel struct {
	ID          uint   `gorm:"primarykey"`
	SupplierID  uint   `gorm:"not null;uniqueIndex:idx_supplier_month"`
	MonthKey    string `gorm:"not null;size:7;uniqueIndex:idx_supplier_month;comment:YYYY-MM"`
	Products    int    `gorm:"not null;default:0"`
	Quotes      int    `gorm:"not null;default:0"`
	Specialties int    `gorm:"not null;default:0"`
	Photos      int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (PlanUsageModel) TableName() string {
	return "plan_usages"
}

// BeforeUpdate hook for GORM
func (u *PlanUsageModel) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now().UTC()
	return nil
}
