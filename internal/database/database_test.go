package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(config.Database{
		Driver:   config.DatabaseDriverSQLite,
		Path:     filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase(t *testing.T) {
	t.Run("empty driver defaults to sqlite", func(t *testing.T) {
		db, err := NewDatabase(config.Database{Path: filepath.Join(t.TempDir(), "default.db"), LogLevel: "silent"})
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, config.DatabaseDriverSQLite, db.driver)
		assert.NoError(t, db.Ping(context.Background()))
		assert.True(t, db.DB.Migrator().HasTable(&entities.BookAuthor{}))
		assert.True(t, db.DB.Migrator().HasTable(&entities.AccessToken{}))
	})

	t.Run("postgres requires a DSN", func(t *testing.T) {
		_, err := NewDatabase(config.Database{Driver: config.DatabaseDriverPostgres})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_DSN")
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewDatabase(config.Database{Driver: "mysql"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	errStop := errors.New("stop")

	err := db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&entities.Category{Name: "Fiction"}).Error; err != nil {
			return err
		}
		return errStop
	})
	assert.ErrorIs(t, err, errStop)

	var count int64
	require.NoError(t, db.DB.Model(&entities.Category{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	err = db.SerializableTransaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&entities.Category{Name: "Fiction"}).Error
	})
	require.NoError(t, err)
	require.NoError(t, db.DB.Model(&entities.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIsUniqueViolation(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.DB.Create(&entities.Category{Name: "Fiction"}).Error)
	err := db.DB.Create(&entities.Category{Name: "Fiction"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("other")))
	assert.False(t, IsUniqueViolation(gorm.ErrRecordNotFound))
}

func TestMissingIDs(t *testing.T) {
	db := setupTestDB(t)

	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, db.DB.Create(&entities.Category{Name: name}).Error)
	}

	missing, err := MissingIDs(db.DB, &entities.Category{}, []uint{9, 1, 7, 3})
	require.NoError(t, err)
	assert.Equal(t, []uint{9, 7}, missing)

	missing, err = MissingIDs(db.DB, &entities.Category{}, []uint{1, 2})
	require.NoError(t, err)
	assert.Empty(t, missing)

	missing, err = MissingIDs(db.DB, &entities.Category{}, nil)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "./library-catalog.db?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", sqliteDSN(""))
	assert.Equal(t, "x.db?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", sqliteDSN("x.db"))
	assert.Equal(t, "file::memory:?cache=shared", sqliteDSN("file::memory:?cache=shared"))
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"silent":  logger.Silent,
		"ERROR":   logger.Error,
		"info":    logger.Info,
		"warn":    logger.Warn,
		"unknown": logger.Warn,
	}
	for level, want := range tests {
		assert.Equal(t, want, parseLogLevel(level), level)
	}
}
