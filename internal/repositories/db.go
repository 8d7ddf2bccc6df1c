package repositories

import (
	"postly/internal/config"
	"postly/internal/logger"
	"postly/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase() {
	dsn := config.Envs.DBURL
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.L.Fatal("failed to connect to database", zap.Error(err))
	}
	// Run migrations. Unique indexes on users and the composite vote key are
	// the source of truth for the conflict invariants; the application-level
	// pre-checks only exist to produce friendlier messages.
	err = db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Vote{},
	)
	if err != nil {
		logger.L.Fatal("migration failed", zap.Error(err))
	}
	DB = db
	logger.L.Info("successfully connected to database")
}
