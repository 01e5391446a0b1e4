// Package testdb opens a private in-memory SQLite database migrated with the
// real schema migrations.
package testdb

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	_ "github.com/shashiranjanraj/storerating/database/migrations"
	"github.com/shashiranjanraj/storerating/config"
	"github.com/shashiranjanraj/storerating/pkg/database"
	"github.com/shashiranjanraj/storerating/pkg/migration"
)

var seq atomic.Int64

// New returns a migrated database that is closed when t ends. bcrypt runs
// at its minimum cost for the duration of the test.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	config.Set("BCRYPT_COST", "4")
	t.Cleanup(func() { config.Unset("BCRYPT_COST") })

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))

	ctx := context.Background()
	db, err := database.Open(ctx, "sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	_, err = migration.New(ctx, db).Run()
	require.NoError(t, err)
	return db
}
