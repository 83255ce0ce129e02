package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/irbrowse/core/internal/config"
	"github.com/irbrowse/core/internal/models"
)

// Connect opens a MySQL connection and optionally runs auto-migration.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               cfg.Database.DSN(),
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if autoMigrate {
		if err := migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return db, nil
}

// migrate runs GORM auto-migration for the corpus read models. Data ingestion
// happens out of band; migration only guarantees a fresh database can boot.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.CorpusModel{},
		&models.DatasetModel{},
		&models.QueryModel{},
		&models.DocumentModel{},
		&models.QRelModel{},
	); err != nil {
		return err
	}

	// AutoMigrate cannot express FULLTEXT indexes.
	if db.Dialector.Name() == "mysql" {
		if !db.Migrator().HasIndex(&models.DocumentModel{}, "ft_documents_title_text") {
			if err := db.Exec(
				"CREATE FULLTEXT INDEX ft_documents_title_text ON documents (title, text)",
			).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
