package database

import (
	"context"
	"fmt"
	"quizapp/internal/config"
	"quizapp/internal/model"
	"quizapp/pkg/logger"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured store without touching the schema.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.DSN)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	logLevel := gormlogger.Warn
	if cfg.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	// SQLite 只允许一个写连接，":memory:" 每个连接还是一个独立的库
	if cfg.Driver == config.DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	logger.Log.Info("Database connection established", zap.String("driver", cfg.Driver))
	return db, nil
}

// Migrate creates the questions and student_scores tables if absent.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Question{},
		&model.StudentScore{},
	)
}

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Log.Info("Database migration completed")

	if cfg.Seed {
		n, err := SeedQuestions(context.Background(), db)
		if err != nil {
			return nil, fmt.Errorf("seed questions: %w", err)
		}
		if n > 0 {
			logger.Log.Info("Seeded sample questions", zap.Int("count", n))
		}
	}

	return db, nil
}
