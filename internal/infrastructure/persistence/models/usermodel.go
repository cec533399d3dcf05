package models

import (
	"time"

	"gorm.io/gorm"

	"subhub/internal/shared/constants"
)

// UserModel represents the database persistence model for users
// This is the anti-corruption layer between domain and database
type UserModel struct {
	ID          uint    `gorm:"primarykey"`
	SubjectID   string  `gorm:"uniqueIndex;not null;size:255;comment:identity provider subject id"`
	Email       string  `gorm:"uniqueIndex;not null;size:255"`
	FullName    *string `gorm:"size:255"`
	Company     *string `gorm:"size:255"`
	Phone       *string `gorm:"size:50"`
	AvatarURL   *string `gorm:"size:500"`
	Role        string  `gorm:"not null;size:20;default:user"`
	Status      string  `gorm:"not null;size:20;default:active;index:idx_user_status"`
	IsSuperuser bool    `gorm:"not null;default:false"`
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
