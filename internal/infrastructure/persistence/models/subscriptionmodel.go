package models

import (
	"time"

	"gorm.io/gorm"

	"subhub/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions
type SubscriptionModel struct {
	ID                     uint      `gorm:"primarykey"`
	UserID                 uint      `gorm:"not null;index:idx_subscription_user"`
	ProductID              uint      `gorm:"not null;index:idx_subscription_product"`
	Plan                   string    `gorm:"not null;size:20"`
	Status                 string    `gorm:"not null;size:20;default:active;index:idx_subscription_status"`
	Amount                 float64   `gorm:"not null"`
	Currency               string    `gorm:"not null;size:3;default:INR"`
	BillingCycle           string    `gorm:"not null;size:20;default:monthly"`
	StartDate              time.Time `gorm:"not null"`
	EndDate                *time.Time `gorm:"index:idx_subscription_end_date"`
	TrialEndDate           *time.Time
	CanceledAt             *time.Time
	PaymentProvider        string  `gorm:"not null;size:20;default:phonepe"`
	ProviderSubscriptionID *string `gorm:"size:255"`
	ProviderCustomerID     *string `gorm:"size:255"`
	MaxUsers               int     `gorm:"not null;default:1"`
	MaxProjects            *int
	Features               *string `gorm:"size:1000"`
	AutoRenew              bool    `gorm:"not null;default:true"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DeletedAt              gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
