package migration

import (
	"billora-backend/entities"
	"billora-backend/internal/utils/logger"
	"fmt"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	log := logger.WithComponent("migrate")

	models := []any{
		&entities.Invoice{},
		&entities.AIAnalysis{},
		&entities.QRCode{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	log.Info().Int("tables", len(models)).Msg("Database migration complete")
	return nil
}
