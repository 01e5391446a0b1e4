// Package migration runs and tracks schema migrations.
//
// Migrations register themselves from init() in database/migrations:
//
//	func init() {
//	    migration.Register("20250101000000_create_users_table", &CreateUsersTable{})
//	}
//
// and are applied in name order from the CLI:
//
//	storerating migrate             // run all pending
//	storerating migrate:rollback    // roll back the last batch
//	storerating migrate:status      // list ran / pending
package migration

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storerating/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// migrationRecord is the row stored in the tracking table.
type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "schema_migrations" }

type registeredMigration struct {
	name string
	m    Migration
}

var registry []registeredMigration

// Register adds a migration. name must be timestamp-prefixed so that
// lexical order is chronological.
func Register(name string, m Migration) {
	registry = append(registry, registeredMigration{name: name, m: m})
}

func sorted() []registeredMigration {
	out := append([]registeredMigration(nil), registry...)
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Status describes one registered migration.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

// Runner executes and tracks migrations.
type Runner struct {
	db *gorm.DB
}

func New(ctx context.Context, db *gorm.DB) *Runner {
	return &Runner{db: db.WithContext(ctx)}
}

func (r *Runner) ensureTable() error {
	if err := r.db.AutoMigrate(&migrationRecord{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) ran() (map[string]migrationRecord, error) {
	var rows []migrationRecord
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("migration: load history: %w", err)
	}
	out := make(map[string]migrationRecord, len(rows))
	for _, rec := range rows {
		out[rec.Name] = rec
	}
	return out, nil
}

func (r *Runner) lastBatch() (int, error) {
	var last int
	err := r.db.Model(&migrationRecord{}).Select("COALESCE(MAX(batch), 0)").Scan(&last).Error
	return last, err
}

// Run applies all pending migrations as one batch and returns their names.
func (r *Runner) Run() ([]string, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	done, err := r.ran()
	if err != nil {
		return nil, err
	}

	var pending []registeredMigration
	for _, reg := range sorted() {
		if _, ok := done[reg.name]; !ok {
			pending = append(pending, reg)
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	last, err := r.lastBatch()
	if err != nil {
		return nil, fmt.Errorf("migration: read batch: %w", err)
	}
	batch := last + 1

	applied := make([]string, 0, len(pending))
	for _, reg := range pending {
		logger.Info("migration: running", "name", reg.name, "batch", batch)
		if err := reg.m.Up(r.db); err != nil {
			return applied, fmt.Errorf("migration: %s up: %w", reg.name, err)
		}
		if err := r.db.Create(&migrationRecord{Name: reg.name, Batch: batch}).Error; err != nil {
			return applied, fmt.Errorf("migration: record %s: %w", reg.name, err)
		}
		applied = append(applied, reg.name)
	}
	return applied, nil
}

// Rollback reverses the most recent batch, newest first, and returns the
// names rolled back.
func (r *Runner) Rollback() ([]string, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	last, err := r.lastBatch()
	if err != nil {
		return nil, fmt.Errorf("migration: read batch: %w", err)
	}
	if last == 0 {
		return nil, nil
	}

	var records []migrationRecord
	if err := r.db.Where("batch = ?", last).Order("name desc").Find(&records).Error; err != nil {
		return nil, err
	}

	byName := make(map[string]Migration, len(registry))
	for _, reg := range registry {
		byName[reg.name] = reg.m
	}

	var undone []string
	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return undone, fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}
		logger.Info("migration: rolling back", "name", rec.Name)
		if err := m.Down(r.db); err != nil {
			return undone, fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&rec).Error; err != nil {
			return undone, err
		}
		undone = append(undone, rec.Name)
	}
	return undone, nil
}

// Status lists every registered migration in order.
func (r *Runner) Status() ([]Status, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	done, err := r.ran()
	if err != nil {
		return nil, err
	}

	var out []Status
	for _, reg := range sorted() {
		rec, ok := done[reg.name]
		out = append(out, Status{Name: reg.name, Ran: ok, Batch: rec.Batch})
	}
	return out, nil
}
