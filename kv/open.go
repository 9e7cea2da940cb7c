package kv

import (
	"fmt"
	"io"
)

// Drivers accepted by Open.
const (
	DriverFile    = "file"
	DriverSQLite  = "sqlite"  // modernc.org/sqlite
	DriverSQLite3 = "sqlite3" // github.com/mattn/go-sqlite3, requires cgo
	DriverMemory  = "memory"
)

// StoreCloser is a Store holding resources.
type StoreCloser interface {
	Store
	io.Closer
}

// Open returns the store for driver located at path.
func Open(driver, path string) (StoreCloser, error) {
	switch driver {
	case DriverFile, "":
		return OpenFile(path)
	case DriverSQLite, DriverSQLite3:
		return OpenSQLite(driver, path)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
