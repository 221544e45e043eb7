// Package postgres stores documents as JSONB rows through GORM.
//
// Every collection shares the documents table, keyed by (collection, id).
// The body column holds the document without its _id. Unique indexes are
// partial expression indexes scoped to one collection.
package postgres

import "time"

// DocumentDTO is one stored document.
type DocumentDTO struct {
	Collection string    `gorm:"type:text;primaryKey"`
	ID         string    `gorm:"type:text;primaryKey"`
	Body       string    `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the database table name for stored documents.
func (DocumentDTO) TableName() string {
	return "documents"
}
