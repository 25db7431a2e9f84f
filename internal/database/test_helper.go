package database

import (
	"testing"
	"time"

	"github.com/wcarvalho/sms-expense-tracker/internal/config"
	"github.com/wcarvalho/sms-expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			Driver:         config.DriverSQLite,
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	if err := db.Close(); err != nil {
		t.Logf("failed to close test database: %v", err)
	}
}

// CreateTestTransaction persists a transaction with sensible defaults for tests
func CreateTestTransaction(t *testing.T, db *DB, description string, amount float64, category string, date time.Time) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
		Category:    category,
		Date:        date,
	}

	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}

	return txn
}
