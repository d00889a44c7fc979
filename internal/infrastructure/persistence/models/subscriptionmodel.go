package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubscriptionModel represents the database persistence model for subscriptions.
// This is the anti-corruption layer between domain and database.
type SubscriptionModel struct {
	ID                 uint      `gorm:"primarykey"`
	SID                string    `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	SupplierID         uint      `gorm:"not null;uniqueIndex:idx_supplier_subscription"`
	Plan               string    `gorm:"not null;size:30"`
	BillingCycle       string    `gorm:"not null;size:20"`
	Status             string    `gorm:"not null;size:20;index:idx_status"`
	TrialEndDate       *time.Time
	TrialDays          int       `gorm:"not null;default:0"`
	CurrentPeriodStart time.Time `gorm:"not null"`
	CurrentPeriodEnd   time.Time `gorm:"not null;index:idx_period_end"`
	MonthlyAmount      int64     `gorm:"not null;default:0;comment:DOP centavos"`
	CancelledAt        *time.Time
	CancelReason       *string `gorm:"size:500"`
	Metadata           datatypes.JSON
	Version            int `gorm:"not null;default:1"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
