package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storerating/pkg/metrics"
)

const startKey = "storerating:query_start"

// queryTimer is a GORM plugin feeding metrics.DBQueryDuration.
type queryTimer struct{}

func (queryTimer) Name() string { return "storerating:query_timer" }

func (queryTimer) Initialize(db *gorm.DB) error {
	before := func(tx *gorm.DB) { tx.InstanceSet(startKey, time.Now()) }
	after := func(op string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			if v, ok := tx.InstanceGet(startKey); ok {
				if start, ok := v.(time.Time); ok {
					metrics.ObserveDBQuery(op, start)
				}
			}
		}
	}

	cb := db.Callback()
	steps := []struct {
		op       string
		register func(name string, fn func(*gorm.DB)) error
		after    func(name string, fn func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}
	for _, s := range steps {
		if err := s.register("storerating:before_"+s.op, before); err != nil {
			return err
		}
		if err := s.after("storerating:after_"+s.op, after(s.op)); err != nil {
			return err
		}
	}
	return nil
}
