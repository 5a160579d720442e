package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const mysqlErrDuplicateEntry = 1062

// isDuplicateEntry reports whether err is a store-level uniqueness
// violation. The UNIQUE KEY is the source of truth for uniqueness;
// any pre-check is only a fast path for a friendly message.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}
