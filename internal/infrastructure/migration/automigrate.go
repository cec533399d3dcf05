package migration

import (
	"fmt"

	"gorm.io/gorm"

	"subhub/internal/infrastructure/persistence/models"
	"subhub/internal/shared/logger"
)

// AutoMigrate syncs the schema from the persistence models. Intended for
// development; production deployments run the versioned SQL migrations.
func AutoMigrate(db *gorm.DB) error {
	logger.Info("running auto migration")

	if err := db.AutoMigrate(
		&models.UserModel{},
		&models.ProductModel{},
		&models.ProductFeatureModel{},
		&models.SubscriptionModel{},
		&models.SubscriptionEventModel{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	logger.Info("auto migration completed")
	return nil
}
