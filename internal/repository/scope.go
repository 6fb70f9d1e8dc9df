// Package repository holds the persistence boundary: every read scopes
// out soft-deleted records unless it explicitly asks for them, and the
// uniqueness and numbering rules the domain relies on live here.
package repository

import "gorm.io/gorm"

// Active narrows a query to records that have not been soft-deleted
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// activeChildren is the preload condition for owned collections
const activeChildren = "deleted_at IS NULL"
