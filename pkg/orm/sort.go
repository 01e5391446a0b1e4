package orm

import (
	"strings"

	"gorm.io/gorm/clause"
)

// SortAllowList maps public sort field names onto typed columns. Anything a
// client sends that is not in the list resolves to the fallback order, so
// no client text ever reaches the ORDER BY clause.
type SortAllowList struct {
	columns  map[string]clause.Column
	fallback []clause.OrderByColumn
	then     []clause.OrderByColumn
}

// NewSortAllowList builds an allow-list. fallback is used for empty or
// unknown sort keys.
func NewSortAllowList(columns map[string]clause.Column, fallback ...clause.OrderByColumn) SortAllowList {
	return SortAllowList{columns: columns, fallback: fallback}
}

// Fixed returns an allow-list that always sorts by order.
func Fixed(order ...clause.OrderByColumn) SortAllowList {
	return SortAllowList{fallback: order}
}

// Then returns a copy of l that appends cols after a client-chosen column,
// so rows with equal sort values keep a stable order.
func (l SortAllowList) Then(cols ...clause.OrderByColumn) SortAllowList {
	l.then = append(append([]clause.OrderByColumn(nil), l.then...), cols...)
	return l
}

// Resolve parses "field:direction" (direction asc|desc, case-insensitive).
// A missing or unknown direction resolves to the fallback order.
func (l SortAllowList) Resolve(raw string) []clause.OrderByColumn {
	field, dir, hasDir := strings.Cut(strings.TrimSpace(raw), ":")
	col, ok := l.columns[field]
	if !ok || !hasDir {
		return l.fallback
	}

	var desc bool
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "asc":
	case "desc":
		desc = true
	default:
		return l.fallback
	}
	return append([]clause.OrderByColumn{{Column: col, Desc: desc}}, l.then...)
}
