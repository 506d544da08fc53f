package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned, wrapped, when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Visibility states whether soft-deleted rows take part in a query.
type Visibility int

const (
	// ExcludeDeleted hides rows flagged is_deleted.
	ExcludeDeleted Visibility = iota
	// IncludeDeleted returns every row.
	IncludeDeleted
)

// scopeVisible filters table's soft-deleted rows according to v.
func scopeVisible(table string, v Visibility) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if v == IncludeDeleted {
			return db
		}
		return db.Where(table+".is_deleted = ?", false)
	}
}

// notFound converts gorm.ErrRecordNotFound into ErrNotFound and wraps anything else.
func notFound(err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}
