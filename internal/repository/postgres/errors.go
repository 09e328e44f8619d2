package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// isNoRowsError checks if error is a "no rows" error
func isNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
