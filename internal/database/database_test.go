package database

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm duplicated key", fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), true},
		{"postgres 23505", &pgconn.PgError{Code: "23505"}, true},
		{"postgres other code", &pgconn.PgError{Code: "23503", Message: "fk violation"}, false},
		{"sqlite message", errors.New("UNIQUE constraint failed: file_records.id"), true},
		{"unrelated", errors.New("connection refused"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsUniqueViolation(tc.err))
		})
	}
}

func TestConnectSQLiteMemory(t *testing.T) {
	db, err := Connect("file:database_connect_test?mode=memory&cache=shared", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	assert.NoError(t, Ping(db))
}

func TestSQLiteDSN(t *testing.T) {
	cases := []struct {
		name string
		dsn  string
		want string
	}{
		{"file path", "catalog.db", "catalog.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"},
		{"file uri with params", "file:catalog.db?cache=private", "file:catalog.db?cache=private&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"},
		{"shared memory", "file:x?mode=memory&cache=shared", "file:x?mode=memory&cache=shared&_pragma=busy_timeout(5000)"},
		{"explicit pragmas kept", "a.db?_pragma=busy_timeout(100)&_pragma=journal_mode(DELETE)", "a.db?_pragma=busy_timeout(100)&_pragma=journal_mode(DELETE)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SQLiteDSN(tc.dsn))
		})
	}
}

func TestConnectSQLiteFileUsesWAL(t *testing.T) {
	db, err := Connect(filepath.Join(t.TempDir(), "catalog.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	var mode string
	require.NoError(t, db.Raw("PRAGMA journal_mode").Scan(&mode).Error)
	assert.Equal(t, "wal", mode)

	var timeout int
	require.NoError(t, db.Raw("PRAGMA busy_timeout").Scan(&timeout).Error)
	assert.Equal(t, 5000, timeout)
}
