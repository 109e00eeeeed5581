// Package dbmanager creates the database pool used by the Tyko server and hands out one
// connection per request. PostgreSQL and sqlite are supported; both are used through
// gorm.
package dbmanager

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/uiuclibrary/tyko/internal/tykosrv/config"
	"gorm.io/gorm"
)

// Pool is a database connection pool.
type Pool interface {
	// Conn returns a connection reserved for the caller until it is closed.
	Conn(ctx context.Context) (Conn, error)
	// Gorm returns a session that draws connections from the pool as needed. It is
	// meant for startup and admin tasks rather than request handling.
	Gorm(ctx context.Context) *gorm.DB
	// Stats returns the number of connection requests and returns.
	Stats() (requests, returns uint64)
	// Close closes the pool.
	Close() error
}

// Conn is a single database connection.
type Conn interface {
	// Gorm returns a gorm session bound to this connection and ctx.
	Gorm() *gorm.DB
	// Close returns the connection to the pool.
	Close(ctx context.Context)
}

// NewPool creates the pool for the configured driver.
func NewPool(ctx context.Context, cfg *config.ConfigParam) (Pool, error) {
	var (
		p   Pool
		err error
	)
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		p, err = NewPostgresqlDb(ctx, cfg)
	case config.DriverSqlite:
		p, err = NewSqliteDb(ctx, cfg.DB.Path)
	default:
		err = fmt.Errorf("unsupported database driver: %s", cfg.DB.Driver)
	}
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("driver", cfg.DB.Driver).Msg("failed to create database pool")
		return nil, err
	}
	return p, nil
}
