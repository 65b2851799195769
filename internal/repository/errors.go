package repository

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a lookup matches no row. Services translate
// it into their own sentinels before it reaches a handler.
var ErrNotFound = errors.New("not found")

// HandleNoRowsError normalizes sql.ErrNoRows into ErrNotFound so callers
// never depend on database/sql directly.
func HandleNoRowsError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
