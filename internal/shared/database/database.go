package database

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// ErrVersionConflict is returned by versioned writes that matched no row,
// meaning another transaction changed the row first.
var ErrVersionConflict = errors.New("database: row version changed concurrently")

// Bind returns a gorm handle that runs on tx when it is non-nil.
func Bind(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	session := db.WithContext(ctx)
	if tx != nil {
		session.Statement.ConnPool = tx
	}
	return session
}

// CheckVersioned turns a zero-row versioned update into ErrVersionConflict.
func CheckVersioned(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}
