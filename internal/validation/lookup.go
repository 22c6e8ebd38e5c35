package validation

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLookup resolves exists and unique directives against the database
type GormLookup struct {
	db *gorm.DB
}

// NewGormLookup creates a Lookup backed by db
func NewGormLookup(db *gorm.DB) *GormLookup {
	return &GormLookup{db: db}
}

// Exists reports whether a row of table has column equal to value
func (l *GormLookup) Exists(ctx context.Context, table, column string, value interface{}) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).
		Table(table).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Count(&count).Error
	return count > 0, err
}

// Unique reports whether no row of table other than ignoreID has column equal to value
func (l *GormLookup) Unique(ctx context.Context, table, column string, value interface{}, ignoreID uint) (bool, error) {
	query := l.db.WithContext(ctx).
		Table(table).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value})
	if ignoreID != 0 {
		query = query.Where(clause.Neq{Column: clause.Column{Name: "id"}, Value: ignoreID})
	}

	var count int64
	err := query.Count(&count).Error
	return count == 0, err
}
