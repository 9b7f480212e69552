package database

import (
	"fmt"
	"testing"
	"time"

	"expense-manager/internal/config"
	"expense-manager/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// cleanupTables lists tables children first.
var cleanupTables = []string{
	"expenses",
	"incomes",
	"categories",
	"blacklisted_tokens",
	"users",
}

// SetupTestDB opens a migrated in-memory SQLite database.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// every pooled connection would otherwise get its own empty database
	sqlDB.SetMaxOpenConns(1)

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
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

	for _, table := range cleanupTables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}

func CreateTestUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "hashed_password",
		Name:         "Test User",
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

func CreateTestCategory(t *testing.T, db *DB, userID uuid.UUID, name string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:   name,
		Type:   categoryType,
		UserID: userID,
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	return category
}

func CreateTestExpense(t *testing.T, db *DB, category *models.Category, amount string, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Description: "test expense",
		Amount:      decimal.RequireFromString(amount),
		Date:        date,
		CategoryID:  category.ID,
		UserID:      category.UserID,
	}

	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}

	return expense
}

func CreateTestIncome(t *testing.T, db *DB, category *models.Category, amount string, date time.Time) *models.Income {
	t.Helper()

	income := &models.Income{
		Description: "test income",
		Amount:      decimal.RequireFromString(amount),
		Date:        date,
		CategoryID:  category.ID,
		UserID:      category.UserID,
	}

	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}

	return income
}
