package persistence

import (
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// forOffice scopes a query to one office. Every repository read and write
// goes through it. Scopes run at execution, so the condition follows any
// chained Where.
func forOffice(officeID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("office_id = ?", officeID)
	}
}

// paginate applies page and size; a zero page size leaves the query unbounded
func paginate(p shared.Pagination) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		p = p.Normalize()
		if p.PageSize == 0 {
			return db
		}
		return db.Offset(p.Offset()).Limit(p.PageSize)
	}
}

// inList adds "column IN ?" when values is not empty
func inList[T ~string](db *gorm.DB, column string, values []T) *gorm.DB {
	if len(values) == 0 {
		return db
	}
	return db.Where(column+" IN ?", values)
}
