package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/killallgit/audioengine/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrPathNotConfigured is returned when no database path is set
var ErrPathNotConfigured = errors.New("database path is not configured")

type DB struct {
	*gorm.DB
}

// TableStatus describes one migrated model table
type TableStatus struct {
	Table  string `json:"table"`
	Exists bool   `json:"exists"`
	Rows   int64  `json:"rows"`
}

// Initialize creates a new database connection with the provided configuration
func Initialize(dbPath string, verbose bool) (*DB, error) {
	inMemory := dbPath == "" || dbPath == ":memory:"

	// Ensure the database directory exists
	if !inMemory {
		dir := filepath.Dir(dbPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	// Configure GORM logger
	logLevel := logger.Error
	if verbose {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	dsn := dbPath
	if !inMemory && !strings.Contains(dsn, "?") {
		// Concurrent waveform writers wait for the lock instead of failing
		dsn += "?_busy_timeout=5000"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	// Every connection to :memory: opens its own empty database
	if inMemory {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &DB{DB: db}, nil
}

// InitializeWithMigrations opens the database and migrates every model
func InitializeWithMigrations(dbPath string, verbose bool) (*DB, error) {
	if dbPath == "" {
		return nil, ErrPathNotConfigured
	}

	db, err := Initialize(dbPath, verbose)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is working
func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// AutoMigrate runs GORM auto migration for the provided models
func (db *DB) AutoMigrate(values ...any) error {
	if err := db.DB.AutoMigrate(values...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	log.Printf("[INFO] Successfully migrated %d model(s)", len(values))
	return nil
}

// Status reports whether each model's table exists and how many rows it holds
func (db *DB) Status(values ...any) ([]TableStatus, error) {
	statuses := make([]TableStatus, 0, len(values))
	for _, model := range values {
		stmt := &gorm.Statement{DB: db.DB}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}

		status := TableStatus{Table: stmt.Schema.Table}
		status.Exists = db.Migrator().HasTable(model)
		if status.Exists {
			if err := db.Model(model).Count(&status.Rows).Error; err != nil {
				return nil, fmt.Errorf("failed to count %s: %w", status.Table, err)
			}
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}
