package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/entities"
)

// Database owns the gorm connection and opens units of work on it.
type Database struct {
	DB     *gorm.DB
	driver config.DatabaseDriver
}

func NewDatabase(cfg config.Database) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DatabaseDriverPostgres:
		if cfg.DSN == "" {
			return nil, errors.New("DATABASE_DSN is required for the postgres driver")
		}
		dialector = postgres.Open(cfg.DSN)
	case config.DatabaseDriverSQLite, "":
		cfg.Driver = config.DatabaseDriverSQLite
		dialector = sqlite.Open(sqliteDSN(cfg.Path))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully (%s)", cfg.Driver)

	return &Database{DB: db, driver: cfg.Driver}, nil
}

func migrate(db *gorm.DB) error {
	// Both sides of the many-to-many share the explicit join model.
	if err := db.SetupJoinTable(&entities.Book{}, "Authors", &entities.BookAuthor{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&entities.Author{}, "Books", &entities.BookAuthor{}); err != nil {
		return err
	}

	return db.AutoMigrate(
		&entities.User{},
		&entities.AccessToken{},
		&entities.Category{},
		&entities.Editorial{},
		&entities.Author{},
		&entities.Book{},
		&entities.BookAuthor{},
		&entities.BookDownload{},
		&entities.BookReview{},
		&entities.AuditEvent{},
	)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks database connectivity.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Transaction runs fn as one atomic unit: it commits when fn returns nil and
// rolls back every write otherwise.
func (d *Database) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.DB.WithContext(ctx).Transaction(fn)
}

// SerializableTransaction is Transaction for check-then-insert paths.
// On postgres the unit runs at SERIALIZABLE. On sqlite every unit begins
// IMMEDIATE (see sqliteDSN), so writers queue on the busy timeout.
func (d *Database) SerializableTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if d.driver == config.DatabaseDriverPostgres {
		return d.DB.WithContext(ctx).Transaction(fn, &sql.TxOptions{Isolation: sql.LevelSerializable})
	}
	return d.Transaction(ctx, fn)
}

// IsUniqueViolation reports whether err was caused by a unique or primary key
// constraint in either supported store.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// sqliteDSN enables foreign keys and makes every transaction take the write
// lock at BEGIN. Deferred transactions that read before writing fail with
// SQLITE_BUSY instead of waiting when two of them upgrade at once.
func sqliteDSN(path string) string {
	if path == "" {
		path = config.DefaultDatabasePath
	}
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
