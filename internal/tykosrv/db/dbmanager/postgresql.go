package dbmanager

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/stdlib"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/uiuclibrary/tyko/internal/tykosrv/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// sqlPool is a pool of database/sql connections wrapped by gorm.
type sqlPool struct {
	db           *sql.DB
	gdb          *gorm.DB
	connRequests uint64
	connReturns  uint64
}

// sqlConn is a connection reserved from a sqlPool.
type sqlConn struct {
	conn   *sql.Conn
	gdb    *gorm.DB
	cancel context.CancelFunc
	pool   *sqlPool
}

// sessionParams returns the parameters set on every new PostgreSQL connection.
func sessionParams(cfg *config.ConfigParam) map[string]string {
	timeout := fmt.Sprintf("%dms", cfg.GetStatementTimeout().Milliseconds())
	return map[string]string{
		"lock_timeout":                        timeout,
		"statement_timeout":                   timeout,
		"idle_in_transaction_session_timeout": timeout,
	}
}

// setSessionParams is run by pgx on every new physical connection.
func setSessionParams(params map[string]string) func(context.Context, *pgx.Conn) error {
	return func(ctx context.Context, conn *pgx.Conn) error {
		for param, value := range params {
			query := fmt.Sprintf("SET %s = %s", pq.QuoteIdentifier(param), pq.QuoteLiteral(value))
			if _, err := conn.Exec(ctx, query); err != nil {
				return fmt.Errorf("failed to set %s: %w", param, err)
			}
		}
		return nil
	}
}

// NewPostgresqlDb opens a PostgreSQL pool through pgx and wraps it with gorm. The
// database is pinged until it answers or the attempts run out, so the server can
// start alongside its database.
func NewPostgresqlDb(ctx context.Context, cfg *config.ConfigParam) (Pool, error) {
	connConfig, err := pgx.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}
	sqlDB := stdlib.OpenDB(*connConfig, stdlib.OptionAfterConnect(setSessionParams(sessionParams(cfg))))

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	err = retry.Do(
		func() error {
			return sqlDB.PingContext(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(1*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().Err(err).Uint("attempt", n+1).Msg("database not reachable, retrying")
		}),
	)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}

	return &sqlPool{db: sqlDB, gdb: gdb}, nil
}

// Conn reserves a connection from the pool. The gorm session of the connection runs
// every statement, and every transaction, on that connection.
func (p *sqlPool) Conn(ctx context.Context) (Conn, error) {
	ctx, cancel := context.WithCancel(ctx)

	conn, err := p.db.Conn(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to obtain connection")
		cancel()
		return nil, fmt.Errorf("failed to obtain database connection: %w", err)
	}

	tx := p.gdb.Session(&gorm.Session{Context: ctx, NewDB: true})
	tx.Statement.ConnPool = conn

	atomic.AddUint64(&p.connRequests, 1)
	return &sqlConn{
		conn:   conn,
		gdb:    tx,
		cancel: cancel,
		pool:   p,
	}, nil
}

func (p *sqlPool) Gorm(ctx context.Context) *gorm.DB {
	return p.gdb.WithContext(ctx)
}

// Stats returns the number of connection requests and returns.
func (p *sqlPool) Stats() (requests, returns uint64) {
	return atomic.LoadUint64(&p.connRequests), atomic.LoadUint64(&p.connReturns)
}

// OpenConns returns the number of open connections in the pool.
func (p *sqlPool) OpenConns() int {
	return p.db.Stats().OpenConnections
}

func (p *sqlPool) Close() error {
	return p.db.Close()
}

func (h *sqlConn) Gorm() *gorm.DB {
	return h.gdb
}

// Close returns the connection to the pool. Closing twice is harmless.
func (h *sqlConn) Close(ctx context.Context) {
	if h.conn == nil {
		return
	}
	if err := h.conn.Close(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to release connection")
	}
	h.conn = nil
	if h.cancel != nil {
		h.cancel()
	}
	atomic.AddUint64(&h.pool.connReturns, 1)
}
