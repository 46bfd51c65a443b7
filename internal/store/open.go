package store

import (
	"context"
	"fmt"
)

// Config selects and configures a backend.
type Config struct {
	Driver      Driver
	SQLitePath  string
	PostgresDSN string
	Redis       RedisConfig
}

// Open returns the backend named by cfg.Driver. Defaults to sqlite when unset.
func Open(ctx context.Context, cfg Config) (Backend, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = "wms.sqlite3"
		}
		return OpenSQLite(path)
	case DriverPostgres:
		return OpenPostgres(ctx, cfg.PostgresDSN)
	case DriverRedis:
		return OpenRedis(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
