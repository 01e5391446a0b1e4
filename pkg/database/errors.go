package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err came from a UNIQUE constraint.
// Drivers that do not translate errors are matched on their message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{
		"UNIQUE constraint failed",          // sqlite
		"duplicate key value",               // postgres
		"Duplicate entry",                   // mysql
		"Cannot insert duplicate key",       // sqlserver
		"Violation of UNIQUE KEY constraint", // sqlserver
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsForeignKeyViolation reports whether err came from a FOREIGN KEY
// constraint, such as an insert that references a deleted row.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range []string{
		"FOREIGN KEY constraint failed",   // sqlite
		"violates foreign key constraint", // postgres
		"a foreign key constraint fails",  // mysql
		"conflicted with the FOREIGN KEY", // sqlserver
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is GORM's record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
