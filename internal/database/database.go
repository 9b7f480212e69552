package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"expense-manager/internal/config"
	"expense-manager/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps the gorm handle shared by the repositories.
type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

// reportIndexes back the per-user period scans of the monthly report. The SQL
// migrations create them too; they are repeated for AutoMigrate schemas.
var reportIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_categories_user_type ON categories(user_id, type)",
	"CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses(user_id, date)",
	"CREATE INDEX IF NOT EXISTS idx_incomes_user_date ON incomes(user_id, date)",
	"CREATE INDEX IF NOT EXISTS idx_blacklisted_tokens_expires_at ON blacklisted_tokens(expires_at)",
}

// New connects to PostgreSQL with the pool limits from cfg.
func New(cfg *config.DatabaseConfig, logLevel logger.LogLevel) (*DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	db := &DB{DB: gdb, config: cfg}
	if err := db.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// AutoMigrate creates the schema from the models. Used when the SQL migrations
// are disabled or fail, and by the in-memory test database.
func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.User{},
		&models.BlacklistedToken{},
		&models.Category{},
		&models.Expense{},
		&models.Income{},
	)
}

func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) ensureIndexes(ctx context.Context) {
	for _, stmt := range reportIndexes {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			slog.Warn("failed to create index", "statement", stmt, "error", err)
		}
	}
}

// Initialize opens the database and brings the schema up to date. The SQL
// migrations run when AUTO_MIGRATE is set; otherwise, or when they fail, the
// schema comes from the gorm models.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	logLevel := logger.Warn
	if cfg.IsDevelopment() {
		logLevel = logger.Info
	}

	db, err := New(&cfg.Database, logLevel)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	migrated := false
	if cfg.Database.AutoMigrate {
		if err := RunMigrationsIfEnabled(ctx, sqlDB, &cfg.Database); err != nil {
			slog.Warn("SQL migrations failed, using model schema", "error", err)
		} else {
			migrated = true
		}
	}

	if !migrated {
		if err := db.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		db.ensureIndexes(ctx)
	}

	slog.Info("database initialized", "host", cfg.Database.Host, "name", cfg.Database.Name, "sql_migrations", migrated)
	return db, nil
}
