package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSqliteDSNEnablesForeignKeys(t *testing.T) {
	assert.Equal(t, "store_rating.db?_foreign_keys=on", sqliteDSN("store_rating.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", sqliteDSN("file:x?mode=memory"))
	assert.Equal(t, "a.db?_fk=1", sqliteDSN("a.db?_fk=1"))
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: users.email")))
	assert.True(t, IsUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email"`)))
	assert.False(t, IsUniqueViolation(errors.New("CHECK constraint failed")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestOpenSqliteEnforcesForeignKeys(t *testing.T) {
	db, err := Open(context.Background(), "sqlite", "file:fkcheck?mode=memory&cache=shared")
	require.NoError(t, err)
	defer Close(db)

	var on int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&on).Error)
	assert.Equal(t, 1, on)
	assert.NoError(t, Ping(context.Background(), db))
}
