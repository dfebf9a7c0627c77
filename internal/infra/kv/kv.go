// Package kv selects a concrete key-value storage backend.
package kv

import (
	"context"
	"fmt"
	"os"

	"subwaylog/internal/infra/kv/fs"
	"subwaylog/internal/infra/kv/memory"
	"subwaylog/internal/infra/kv/postgres"
	"subwaylog/internal/infra/kv/sqlite"
	"subwaylog/pkg/domain"
)

// Driver identifies a concrete key-value storage implementation.
type Driver string

const (
	DriverMemory   Driver = "memory"   // in-memory only (tests / ephemeral)
	DriverFS       Driver = "fs"       // one file per key under a directory
	DriverSQLite   Driver = "sqlite"   // embedded sqlite file
	DriverPostgres Driver = "postgres" // PostgreSQL server
)

// Open selects a backend using environment variables. Defaults to sqlite
// when unset.
//
//	SUBWAYLOG_STORAGE_DRIVER: memory|fs|sqlite|postgres (default sqlite)
//	SUBWAYLOG_FS_ROOT: directory root when driver=fs (default ./subwaylogdata)
//	SUBWAYLOG_SQLITE_PATH: path to sqlite file (default ./subwaylog.db)
//	SUBWAYLOG_POSTGRES_DSN: postgres DSN when driver=postgres
func Open(ctx context.Context) (domain.KeyValue, error) {
	driver := os.Getenv("SUBWAYLOG_STORAGE_DRIVER")
	if driver == "" {
		driver = string(DriverSQLite)
	}
	switch Driver(driver) {
	case DriverMemory:
		return memory.NewStore(), nil
	case DriverFS:
		return fs.NewStore(os.Getenv("SUBWAYLOG_FS_ROOT"))
	case DriverSQLite:
		return sqlite.NewStore(os.Getenv("SUBWAYLOG_SQLITE_PATH"))
	case DriverPostgres:
		return postgres.NewStore(ctx, os.Getenv("SUBWAYLOG_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
