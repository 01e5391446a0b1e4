// Package orm is a thin chainable layer over GORM for list endpoints:
// optional filters that skip themselves when empty and sort keys resolved
// against an allow-list of typed columns.
package orm

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Query struct {
	db *gorm.DB
}

// From starts a query bound to ctx.
func From(ctx context.Context, db *gorm.DB) *Query {
	return &Query{db: db.WithContext(ctx)}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

// Table selects from a raw table expression such as "stores AS s".
func (q *Query) Table(name string, args ...interface{}) *Query {
	return &Query{db: q.db.Table(name, args...)}
}

func (q *Query) Select(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Select(query, args...)}
}

func (q *Query) Joins(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Joins(query, args...)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Group(name string) *Query {
	return &Query{db: q.db.Group(name)}
}

// WhereContains adds a case-insensitive substring match on col.
// An empty value adds nothing. LIKE wildcards in value match literally.
func (q *Query) WhereContains(col clause.Column, value string) *Query {
	value = strings.TrimSpace(value)
	if value == "" {
		return q
	}
	pattern := "%" + escapeLike(value) + "%"
	return &Query{db: q.db.Where(gorm.Expr("LOWER(?) LIKE LOWER(?) ESCAPE '!'", col, pattern))}
}

// WhereEquals adds an exact match on col. An empty value adds nothing.
func (q *Query) WhereEquals(col clause.Column, value string) *Query {
	value = strings.TrimSpace(value)
	if value == "" {
		return q
	}
	return &Query{db: q.db.Where(gorm.Expr("? = ?", col, value))}
}

// OrderBy appends the given columns in order.
func (q *Query) OrderBy(cols []clause.OrderByColumn) *Query {
	db := q.db
	for _, c := range cols {
		db = db.Order(c)
	}
	return &Query{db: db}
}

// Sort resolves raw against allow and orders by the result.
func (q *Query) Sort(allow SortAllowList, raw string) *Query {
	return q.OrderBy(allow.Resolve(raw))
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) Scan(dest interface{}) error {
	return q.db.Scan(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

// Take fetches one row without adding a primary-key order.
func (q *Query) Take(dest interface{}) error {
	return q.db.Take(dest).Error
}

func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

// DB exposes the underlying handle for operations the wrapper lacks.
func (q *Query) DB() *gorm.DB { return q.db }

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
