package database

import (
	"fmt"
	"time"

	"inventory-service/internal/model"
	"inventory-service/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB opens the configured database, applies pool settings and runs
// migrations. DB_DRIVER picks postgres (default) or a local sqlite
// file for single-machine setups.
func InitDB(config *config.Config) error {
	var (
		dialector gorm.Dialector
		err       error
	)

	switch config.DB.Driver {
	case "sqlite":
		dialector = sqlite.Open(config.DB.Path)
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  config.DB.GetDSN(),
			PreferSimpleProtocol: true, // Disables implicit prepared statement usage
		})
	default:
		return fmt.Errorf("unsupported database driver %q", config.DB.Driver)
	}

	db, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(config.DB.LogLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Set connection pool settings from config
	sqlDB.SetMaxIdleConns(config.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(config.DB.ConnMaxLifetime)

	// Run migrations
	if err := db.AutoMigrate(&model.Item{}, &model.Sale{}, &model.StockMovement{}); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	if config.DB.Seed {
		if err := Seed(db); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// Seed loads a small sample catalog for demos and local development.
// It is a no-op when items already exist.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Item{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	today := time.Now().Format("2006-01-02")
	items := []model.Item{
		{Name: "T-shirt", Category: "Clothing", Size: "M", Description: "Cotton round neck casual tee",
			Quantity: 10, Price: 15.99, Supplier: "Supplier A", EntryDate: today, Notes: "Best seller"},
		{Name: "Jeans", Category: "Clothing", Size: "L", Description: "Blue denim straight cut",
			Quantity: 5, Price: 39.99, Supplier: "Supplier B", EntryDate: today, Notes: "High quality denim"},
		{Name: "Jacket", Category: "Clothing", Size: "S", Description: "Black leather with zipper",
			Quantity: 3, Price: 59.99, Supplier: "Supplier C", EntryDate: today, Notes: "Winter wear"},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			mv := model.StockMovement{
				ItemID:   item.ID,
				Type:     "in",
				Quantity: item.Quantity,
				Reason:   "Initial stock",
			}
			if err := tx.Create(&mv).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
