// Package store is the persistence layer: gorm on SQLite, plus the
// conditional-write primitives the storefront relies on for mutual
// exclusion. No in-process locks live here; every race between requests
// (invite redemption, product purchase) is decided by a single
// conditional UPDATE and its affected-row count, so the store stays
// correct even when several server processes share one database file.
package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/felipemebarak500-lgtm/mebawear/internal/models"
)

// Business-rule failures callers are expected to branch on with errors.Is.
// Anything else coming out of the store is a storage fault.
var (
	ErrInviteNotFound     = errors.New("invite code not found")
	ErrInviteUsed         = errors.New("invite code already used")
	ErrInviteExists       = errors.New("invite code already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product no longer available")
	ErrLostRace           = errors.New("product claimed by concurrent purchase")
)

type Store struct {
	db *gorm.DB
}

// Open creates or opens the SQLite database at path and migrates the
// schema. WAL mode allows readers during writes; the busy timeout covers
// lock contention from other processes; a single pooled connection avoids
// SQLITE_BUSY between our own goroutines.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", path)

	// Quieter GORM logger
	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold: 1500 * time.Millisecond,
			LogLevel:      logger.Warn,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gLogger,
		TranslateError: true, // duplicate keys surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.InviteCode{},
		&models.Product{},
		&models.Purchase{},
	); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
