package migration_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storerating/internal/testdb"
	"github.com/shashiranjanraj/storerating/pkg/migration"
)

func TestRunIsIdempotentAndRollsBack(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	runner := migration.New(ctx, db)

	applied, err := runner.Run()
	require.NoError(t, err)
	assert.Empty(t, applied, "testdb already migrated everything")

	status, err := runner.Status()
	require.NoError(t, err)
	require.NotEmpty(t, status)
	for _, s := range status {
		assert.True(t, s.Ran, s.Name)
		assert.Equal(t, 1, s.Batch)
	}

	undone, err := runner.Rollback()
	require.NoError(t, err)
	assert.Len(t, undone, len(status))
	assert.False(t, db.Migrator().HasTable("ratings"))
	assert.False(t, db.Migrator().HasTable("users"))

	applied, err = runner.Run()
	require.NoError(t, err)
	assert.Len(t, applied, len(status))
	assert.True(t, db.Migrator().HasTable("stores"))
}
