package db

import "database/sql"

// DB wraps the sql pool so callers depend on this package,
// not on a driver.
type DB struct {
	*sql.DB
}
