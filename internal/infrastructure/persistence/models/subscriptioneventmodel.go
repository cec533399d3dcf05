package models

import (
	"time"

	"gorm.io/datatypes"

	"subhub/internal/shared/constants"
)

// SubscriptionEventModel represents the database persistence model for
// subscription audit events. Rows are append-only.
type SubscriptionEventModel struct {
	ID             uint   `gorm:"primarykey"`
	SubscriptionID uint   `gorm:"not null;index:idx_event_subscription"`
	EventType      string `gorm:"not null;size:50"`
	Description    string `gorm:"size:255"`
	EventMetadata  datatypes.JSON
	CreatedAt      time.Time `gorm:"index:idx_event_created_at"`
}

// TableName specifies the table name for GORM
func (SubscriptionEventModel) TableName() string {
	return constants.TableSubscriptionEvents
}
